package macro

import (
	"context"
	"time"
)

// EmitFunc receives each replayed event in recorded order.
// The control package routes emits through a serializing injector so
// synthetic events reach the host on a single delivery timeline.
type EmitFunc func(p Point, down bool)

// Play replays events in stored order, waiting each event's Delay
// before emitting it. With loop set, playback restarts from the first
// event after every uncancelled full pass and only a context
// cancellation ends it.
//
// Cancellation is checked before every step and also wakes an in-flight
// delay early, so the worst-case stop latency is the select scheduling
// slack, not the longest recorded delay. Returns ctx.Err() when
// cancelled, nil after an uncancelled non-looping pass. An empty event
// slice returns immediately.
func Play(ctx context.Context, events []Event, loop bool, emit EmitFunc) error {
	if len(events) == 0 {
		return nil
	}

	for {
		for _, ev := range events {
			if err := ctx.Err(); err != nil {
				return err
			}

			timer := time.NewTimer(ev.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}

			emit(ev.Pos, ev.Down)
		}

		if !loop {
			return nil
		}
	}
}
