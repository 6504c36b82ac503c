package macro

import (
	"sync"
	"time"

	"github.com/dshills/tapstorm/internal/clock"
)

// Recorder converts raw touch samples into log entries with measured
// inter-event delays. It is driven synchronously from the host's input
// path, so Capture must stay fast and never sleep.
type Recorder struct {
	mu   sync.Mutex
	clk  clock.Clock
	log  *Log
	last time.Time
}

// NewRecorder creates a recorder that appends to the given log using
// timestamps from clk.
func NewRecorder(clk clock.Clock, log *Log) *Recorder {
	return &Recorder{clk: clk, log: log}
}

// Reset clears the log and stamps the recording start time.
// Every recording session begins with an empty log.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.Reset()
	r.last = r.clk.Now()
}

// Capture appends one sample with the delay since the previous one.
// A regressing clock would produce a negative delta; that is clamped to
// zero since a negative delay is meaningless for scheduling a wait.
func (r *Recorder) Capture(p Point, down bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clk.Now()
	delay := now.Sub(r.last)
	if delay < 0 {
		delay = 0
	}
	r.last = now

	r.log.Append(Event{Pos: p, Delay: delay, Down: down})
}
