// Package ratelimit provides ports.RateLimiter implementations.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/samirrijal/wayfinder/internal/core/ports"
)

// Gate admits one call per interval. The first call passes immediately.
type Gate struct {
	limiter *rate.Limiter
}

// NewGate returns a gate spacing calls at least interval apart. A
// non-positive interval disables limiting.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		return &Gate{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Gate{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

var _ ports.RateLimiter = (*Gate)(nil)

type unlimited struct{}

func (unlimited) Wait(ctx context.Context) error { return ctx.Err() }

// Unlimited returns a limiter that never blocks. Used in tests.
func Unlimited() ports.RateLimiter {
	return unlimited{}
}
