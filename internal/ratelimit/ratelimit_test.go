package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recorder struct {
	calls []time.Duration
}

func (r *recorder) sleep(ctx context.Context, d time.Duration) error {
	r.calls = append(r.calls, d)
	return ctx.Err()
}

func TestWait_SleepsEveryCall(t *testing.T) {
	rec := &recorder{}
	l := NewWithSleep(250*time.Millisecond, rec.sleep)

	for i := 0; i < 3; i++ {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatalf("Wait error: %v", err)
		}
	}

	if len(rec.calls) != 3 {
		t.Fatalf("sleep calls = %d, want 3", len(rec.calls))
	}
	for i, d := range rec.calls {
		if d != 250*time.Millisecond {
			t.Errorf("call %d slept %v, want 250ms", i, d)
		}
	}
}

func TestWait_ZeroDelay(t *testing.T) {
	rec := &recorder{}
	l := NewWithSleep(0, rec.sleep)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("sleep calls = %d, want 0", len(rec.calls))
	}
}

func TestWait_NegativeDelayClamped(t *testing.T) {
	rec := &recorder{}
	l := NewWithSleep(-time.Second, rec.sleep)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("sleep calls = %v, want none", rec.calls)
	}
}

func TestWait_NilLimiter(t *testing.T) {
	var l *Limiter
	if err := l.Wait(context.Background()); err != nil {
		t.Errorf("nil Wait error: %v", err)
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Sleep error = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep did not return promptly on cancelled context")
	}
}

func TestSleep_Elapses(t *testing.T) {
	if err := Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep error: %v", err)
	}
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want time.Duration
	}{
		{1.0, time.Second},
		{0.5, 500 * time.Millisecond},
		{0, 0},
		{2.25, 2250 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := Seconds(tt.in); got != tt.want {
			t.Errorf("Seconds(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
