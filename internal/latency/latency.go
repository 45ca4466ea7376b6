// Package latency provides artificial-delay strategies used to simulate a
// remote backend in demos. Delays are a UX affordance only; every strategy
// honors context cancellation and None makes all calls synchronous.
package latency

import (
	"context"
	"math/rand"
	"time"
)

// Delayer pauses the caller before a service operation proceeds.
type Delayer interface {
	Wait(ctx context.Context) error
}

// None never waits.
type None struct{}

// Wait implements Delayer.
func (None) Wait(ctx context.Context) error { return ctx.Err() }

// Fixed waits for a constant duration.
type Fixed time.Duration

// Wait implements Delayer.
func (f Fixed) Wait(ctx context.Context) error { return sleep(ctx, time.Duration(f)) }

// Jitter waits Base plus a uniformly random amount in [0, Spread).
type Jitter struct {
	Base   time.Duration
	Spread time.Duration
}

// Wait implements Delayer.
func (j Jitter) Wait(ctx context.Context) error {
	d := j.Base
	if j.Spread > 0 {
		d += time.Duration(rand.Int63n(int64(j.Spread)))
	}
	return sleep(ctx, d)
}

// FromConfig picks a strategy for the configured base delay and jitter.
func FromConfig(base, spread time.Duration) Delayer {
	switch {
	case base <= 0 && spread <= 0:
		return None{}
	case spread <= 0:
		return Fixed(base)
	default:
		return Jitter{Base: base, Spread: spread}
	}
}

// OrNone returns d, or None when d is nil.
func OrNone(d Delayer) Delayer {
	if d == nil {
		return None{}
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
