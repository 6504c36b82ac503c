// Package clicker generates fixed-interval synthetic clicks, independent
// of any recorded macro.
package clicker

import (
	"context"
	"time"

	"github.com/dshills/tapstorm/internal/macro"
)

// Run emits a down-then-up pair at the current target every interval,
// advancing round-robin through targets (wrapping). Liveness is checked
// via the context on every cycle and a cancellation wakes the in-flight
// interval wait early.
//
// Returns ctx.Err() when cancelled. An empty target list returns
// immediately; the controller's precondition normally prevents that
// session from starting at all.
func Run(ctx context.Context, targets []macro.Point, interval time.Duration, emit macro.EmitFunc) error {
	if len(targets) == 0 {
		return nil
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for i := 0; ; i = (i + 1) % len(targets) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		p := targets[i]
		emit(p, true)
		emit(p, false)

		timer.Reset(interval)
	}
}
