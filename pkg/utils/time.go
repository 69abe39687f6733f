package utils

import (
	"context"
	"time"
)

// RunOnInterval runs the given fn once every interval, starting at the moment
// the function is called.  It stops when ctx is cancelled.  The first run is
// synchronous and runs never overlap; ticks missed while fn is running are
// coalesced by the ticker.  The returned channel is closed once ctx is done
// and no call of fn is running anymore.
func RunOnInterval(ctx context.Context, fn func(), interval time.Duration) <-chan struct{} {
	timer := time.NewTicker(interval)
	done := make(chan struct{})

	fn()
	go func() {
		defer close(done)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				fn()
			}
		}
	}()
	return done
}

// TimeToMillis converts t to epoch milliseconds, as used throughout the
// Jenkins API
func TimeToMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
