// Package clock provides the monotonic time source used for macro
// delay capture.
//
// Recorded delays are computed as differences of timestamps taken from a
// Clock. The engine requires that a Clock never goes backward within a
// single process lifetime; Go's time.Now carries a monotonic reading, so
// Sub on two System timestamps is immune to wall-clock adjustments.
package clock

import (
	"sync"
	"time"
)

// Clock produces timestamps for delay measurement.
// Implementations must be monotonically non-decreasing for the life of
// the process.
type Clock interface {
	// Now returns the current time. The returned value should carry a
	// monotonic reading so that Sub between two values measures real
	// elapsed time at sub-millisecond precision.
	Now() time.Time
}

// System is the production Clock backed by time.Now.
type System struct{}

// Now returns the current system time with its monotonic reading.
func (System) Now() time.Time {
	return time.Now()
}

// Fake is a manually advanced Clock for deterministic tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a Fake clock starting at the given time.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake's current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake clock forward by d.
// Negative values are allowed so tests can simulate a misbehaving
// source; production clocks never regress.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
