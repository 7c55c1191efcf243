package ratelimit

import (
	"context"
	"time"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Limiter applies a fixed delay before each request.
type Limiter struct {
	delay time.Duration
	sleep SleepFunc
}

// NewWithSleep returns a Limiter that waits with sleep. A nil sleep uses
// the real clock.
func NewWithSleep(delay time.Duration, sleep SleepFunc) *Limiter {
	if delay < 0 {
		delay = 0
	}
	if sleep == nil {
		sleep = Sleep
	}
	return &Limiter{delay: delay, sleep: sleep}
}

// Wait blocks for the configured delay. It returns ctx.Err() if the context
// is cancelled first. A nil Limiter never blocks.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.delay == 0 {
		return ctx.Err()
	}
	return l.sleep(ctx, l.delay)
}

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Seconds converts a fractional number of seconds to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
