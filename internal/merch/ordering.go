package merch

import (
	"strings"

	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
)

// DefaultOrdering sorts by identifier ascending.
var DefaultOrdering = Ordering{Column: "id"}

var orderableColumns = map[string]string{
	"id":                 "id",
	"created":            "created",
	"application_number": "application_number",
}

// ParseOrdering validates a sort instruction of the form "column" or
// "-column" against the allowlist. An empty value yields the default.
func ParseOrdering(raw string) (Ordering, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultOrdering, nil
	}
	desc := strings.HasPrefix(raw, "-")
	name := strings.TrimPrefix(raw, "-")
	column, ok := orderableColumns[name]
	if !ok {
		return Ordering{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported ordering field: "+name)
	}
	return Ordering{Column: column, Desc: desc}, nil
}
