package timer

import (
	"context"
	"time"
)

// Scheduler calls fn once per period until ctx is done, then returns.
type Scheduler interface {
	Schedule(ctx context.Context, fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(ctx context.Context, fn func())

func (f SchedulerFunc) Schedule(ctx context.Context, fn func()) {
	f(ctx, fn)
}

// Interval is a time.Ticker backed Scheduler.
type Interval time.Duration

func (d Interval) Schedule(ctx context.Context, fn func()) {
	ticker := time.NewTicker(time.Duration(d))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
