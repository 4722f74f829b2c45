// Package pacing holds the interruptible sleep used to space provider calls.
package pacing

import (
	"context"
	"time"
)

// SleepFunc waits for d or until ctx is done, whichever comes first.
// It returns ctx.Err() when interrupted.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recorder is a SleepFunc for tests: it records every requested delay and returns immediately.
// Err, when set, is returned instead of sleeping.
type Recorder struct {
	Delays []time.Duration
	Err    error
}

// Sleep records d.
func (r *Recorder) Sleep(ctx context.Context, d time.Duration) error {
	r.Delays = append(r.Delays, d)
	if r.Err != nil {
		return r.Err
	}
	return ctx.Err()
}
