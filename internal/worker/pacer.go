// Package worker provides the pacing primitives shared by the verification
// and extraction orchestrators.
package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out external calls. It replaces bare sleeps so tests can run
// without touching the wall clock.
type Pacer interface {
	// Wait blocks until the next call is allowed or the context ends.
	Wait(ctx context.Context) error

	// Sleep blocks for d or until the context ends.
	Sleep(ctx context.Context, d time.Duration) error
}

// ratePacer paces calls with a token bucket of one token per interval.
type ratePacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a Pacer allowing one call per interval. The first call
// passes immediately.
func NewPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return NewNopPacer()
	}
	return &ratePacer{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (p *ratePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

func (p *ratePacer) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// nopPacer never blocks. Used in tests.
type nopPacer struct{}

// NewNopPacer returns a Pacer that never blocks.
func NewNopPacer() Pacer {
	return nopPacer{}
}

func (nopPacer) Wait(ctx context.Context) error { return ctx.Err() }

func (nopPacer) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }
