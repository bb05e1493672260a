package merch

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// NumberExistsFunc reports whether an application number is already taken.
type NumberExistsFunc func(ctx context.Context, number string) (bool, error)

// NumberGenerator produces application numbers of the form
// <YYYY-MM-DD>-<6 digits>. On a collision it appends one more random
// 6-digit block instead of retrying, so a single lookup bounds the work.
type NumberGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewNumberGenerator seeds a generator. A nil rnd falls back to a
// time-seeded source, a nil now falls back to time.Now.
func NewNumberGenerator(rnd *rand.Rand, now func() time.Time) *NumberGenerator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &NumberGenerator{rnd: rnd, now: now}
}

// Generate returns a fresh application number, consulting exists once.
func (g *NumberGenerator) Generate(ctx context.Context, exists NumberExistsFunc) (string, error) {
	candidate := fmt.Sprintf("%s-%06d", g.now().UTC().Format("2006-01-02"), g.block())
	taken, err := exists(ctx, candidate)
	if err != nil {
		return "", fmt.Errorf("checking application number: %w", err)
	}
	if !taken {
		return candidate, nil
	}
	return fmt.Sprintf("%s-%06d", candidate, g.block()), nil
}

func (g *NumberGenerator) block() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return 100000 + g.rnd.Intn(900000)
}
