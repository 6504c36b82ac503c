// Package inject defines the synthetic touch injection boundary.
//
// The engine treats injection as an opaque side effect: every replayed
// or generated event is handed to an Injector as a (point, isDown) pair.
// The Serial wrapper delivers those pairs in order on a single goroutine,
// standing in for the host's primary event-serialization path so
// synthetic events never interleave with each other in an undefined
// order. Robot is the concrete robotgo-backed primitive.
package inject

import "github.com/dshills/tapstorm/internal/macro"

// Injector delivers one synthetic touch event into the host's input
// pipeline.
type Injector interface {
	// Touch injects a contact-began (down=true) or contact-ended
	// (down=false) event at p.
	Touch(p macro.Point, down bool)
}

// Func adapts an ordinary function to the Injector interface.
type Func func(p macro.Point, down bool)

// Touch calls f.
func (f Func) Touch(p macro.Point, down bool) {
	f(p, down)
}

// Discard is an Injector that drops every event. Useful as a feedback-
// free stand-in when no host backend is available.
var Discard = Func(func(macro.Point, bool) {})
