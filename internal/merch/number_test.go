package merch

import (
	"context"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var numberRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{6}$`)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 14, 12, 30, 0, 0, time.UTC)
}

func TestGenerateProducesDatePrefixedNumber(t *testing.T) {
	gen := NewNumberGenerator(rand.New(rand.NewSource(1)), fixedNow)

	number, err := gen.Generate(context.Background(), func(ctx context.Context, n string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	require.True(t, numberRe.MatchString(number), "unexpected number format %q", number)
	require.Equal(t, "2026-03-14", number[:10])
}

func TestGenerateAppendsSuffixOnCollision(t *testing.T) {
	gen := NewNumberGenerator(rand.New(rand.NewSource(7)), fixedNow)

	calls := 0
	number, err := gen.Generate(context.Background(), func(ctx context.Context, n string) (bool, error) {
		calls++
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls, "collision handling must not re-check")
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}-\d{6}-\d{6}$`, number)
}

func TestGenerateRandomBlockStaysInRange(t *testing.T) {
	gen := NewNumberGenerator(rand.New(rand.NewSource(42)), fixedNow)

	for i := 0; i < 500; i++ {
		block := gen.block()
		require.GreaterOrEqual(t, block, 100000)
		require.LessOrEqual(t, block, 999999)
	}
}

func TestGenerateSeededSequenceIsDeterministic(t *testing.T) {
	exists := func(ctx context.Context, n string) (bool, error) { return false, nil }

	first := NewNumberGenerator(rand.New(rand.NewSource(99)), fixedNow)
	second := NewNumberGenerator(rand.New(rand.NewSource(99)), fixedNow)

	for i := 0; i < 10; i++ {
		a, err := first.Generate(context.Background(), exists)
		require.NoError(t, err)
		b, err := second.Generate(context.Background(), exists)
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}
