package merch

import (
	"testing"

	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseOrdering(t *testing.T) {
	cases := []struct {
		raw  string
		want Ordering
	}{
		{"", DefaultOrdering},
		{"id", Ordering{Column: "id"}},
		{"created", Ordering{Column: "created"}},
		{"-created", Ordering{Column: "created", Desc: true}},
		{"application_number", Ordering{Column: "application_number"}},
		{"-application_number", Ordering{Column: "application_number", Desc: true}},
	}
	for _, tc := range cases {
		got, err := ParseOrdering(tc.raw)
		require.NoError(t, err, "ordering %q", tc.raw)
		require.Equal(t, tc.want, got)
	}
}

func TestParseOrderingRejectsUnknownColumns(t *testing.T) {
	for _, raw := range []string{"merch_cost", "-tutor", "created; DROP TABLE users"} {
		_, err := ParseOrdering(raw)
		require.Error(t, err, "ordering %q", raw)
		require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
}
