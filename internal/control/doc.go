// Package control implements the Tapstorm mode state machine.
//
// A Controller coordinates the recorder, the macro player and the
// auto-clicker, enforcing that at most one of them is active at any
// instant. The mode value is the single externally observable state:
// Idle, Recording, Playing or AutoClicking.
//
// Mode is stored atomically so the hot path (RecordTouch, called inline
// with real input delivery) reads it without taking a lock. Transitions
// are serialized under one mutex, making the controller a single-writer
// gate: entering any mode cancels the previous session, and invalid-
// state requests are silent no-ops rather than faults — dropped calls
// are tolerable in a live-input-driven tool, escalation into the host
// event path is not.
//
// Playback and auto-click run on background goroutines with cooperative
// cancellation via context; a stop request wakes an in-flight delay
// early. Synthetic events travel through the injector handed to New,
// typically an inject.Serial so delivery stays ordered on one timeline.
package control
