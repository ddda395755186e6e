// Package syncer implements the two polling loops at the heart of the
// daemon: the upload loop watching the local input directory, and the
// download loop watching the remote bucket. Each loop owns its own
// ledger; the only state they share is the cancellation context.
package syncer

import (
	"context"
	"time"
)

// sleep pauses between iterations. It returns false as soon as ctx is
// cancelled, and returns early (true) when a wake hint arrives. wake may
// be nil, in which case only the timer and the context apply.
func sleep(ctx context.Context, d time.Duration, wake <-chan struct{}) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	case _, ok := <-wake:
		if !ok {
			// Watcher closed; fall back to plain polling.
			select {
			case <-ctx.Done():
				return false
			case <-timer.C:
				return true
			}
		}
		return true
	}
}
