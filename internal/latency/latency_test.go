package latency

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFromConfig_PicksStrategy(t *testing.T) {
	if _, ok := FromConfig(0, 0).(None); !ok {
		t.Fatal("zero config should be None")
	}
	if d, ok := FromConfig(5*time.Millisecond, 0).(Fixed); !ok || time.Duration(d) != 5*time.Millisecond {
		t.Fatalf("expected Fixed(5ms), got %#v", FromConfig(5*time.Millisecond, 0))
	}
	if _, ok := FromConfig(time.Millisecond, time.Millisecond).(Jitter); !ok {
		t.Fatal("spread should yield Jitter")
	}
}

func TestNone_ReturnsImmediately(t *testing.T) {
	if err := (None{}).Wait(context.Background()); err != nil {
		t.Fatalf("None.Wait: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (None{}).Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("None.Wait on canceled ctx = %v", err)
	}
}

func TestFixed_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := Fixed(time.Hour).Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("Wait did not return promptly on cancellation")
	}
}

func TestJitter_WaitsAtLeastBase(t *testing.T) {
	start := time.Now()
	if err := (Jitter{Base: 2 * time.Millisecond, Spread: time.Millisecond}).Wait(context.Background()); err != nil {
		t.Fatalf("Jitter.Wait: %v", err)
	}
	if time.Since(start) < 2*time.Millisecond {
		t.Fatal("Jitter returned before base delay")
	}
}

func TestOrNone(t *testing.T) {
	if _, ok := OrNone(nil).(None); !ok {
		t.Fatal("OrNone(nil) should be None")
	}
	if _, ok := OrNone(Fixed(1)).(Fixed); !ok {
		t.Fatal("OrNone should pass through non-nil")
	}
}
