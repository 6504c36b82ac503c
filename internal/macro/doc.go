// Package macro provides touch-gesture macro recording and playback for
// Tapstorm.
//
// A macro is an ordered sequence of single-point touch events, each
// carrying the delay since the previous event. Macros are recorded live
// from the host's input path and replayed verbatim, preserving relative
// timing.
//
// # Recording
//
// A Recorder owns one Log and the capture timing. Reset clears the log
// and stamps the recording start; Capture appends one event with its
// measured delay. Capture runs inline on the host's input-delivery path
// and never blocks.
//
// Example:
//
//	log := macro.NewLog()
//	rec := macro.NewRecorder(clock.System{}, log)
//	rec.Reset()
//	// ... each raw touch sample passed to rec.Capture(pos, down) ...
//
// # Playback
//
// Play iterates a snapshot of recorded events in stored order, waiting
// each event's delay before handing it to the emit callback. The wait is
// cancellable through the context, so a stop request wakes an in-flight
// delay early instead of letting it run out.
//
// Example:
//
//	err := macro.Play(ctx, log.Events(), false, func(p macro.Point, down bool) {
//	    // deliver synthetic event
//	})
//
// # Thread Safety
//
// Log and Recorder are safe for concurrent use. Play is a pure consumer
// of the snapshot it is given; callers arrange that at most one playback
// runs at a time (see the control package).
package macro
