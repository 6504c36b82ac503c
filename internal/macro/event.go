package macro

import (
	"sync"
	"time"
)

// Point is a position in the host's screen coordinate space.
// No bounds validation is performed; coordinates are passed through as
// captured.
type Point struct {
	X float64
	Y float64
}

// Event is one recorded touch sample.
type Event struct {
	// Pos is where the contact occurred.
	Pos Point

	// Delay is the time elapsed since the previous event in the same
	// macro. For the first event it is the time since recording
	// started. Always >= 0.
	Delay time.Duration

	// Down is true when contact began, false when it ended.
	Down bool
}

// Log is an ordered, append-only sequence of recorded events.
// Insertion order is temporal order is replay order. The log is cleared
// in full at the start of every recording session; there is no
// append-to-existing-macro.
type Log struct {
	mu     sync.Mutex
	events []Event
}

// NewLog creates an empty event log.
func NewLog() *Log {
	return &Log{}
}

// Append adds one event to the end of the log.
func (l *Log) Append(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Events returns a snapshot copy of the log in stored order.
// Playback consumes the snapshot, so a later recording that resets the
// log cannot corrupt an in-flight replay.
func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return nil
	}
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Reset removes all events.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}
