package inject

import (
	"sync"

	"github.com/dshills/tapstorm/internal/macro"
)

// queueSize bounds how many pending injections can back up before Touch
// blocks the producer. Playback produces at human timescales, so the
// queue stays near empty in practice.
const queueSize = 64

type request struct {
	pos  macro.Point
	down bool
}

// Serial delivers injections to a wrapped Injector in submission order
// on a single dedicated goroutine. Replay waits happen off the delivery
// timeline; delivery itself is serialized here.
type Serial struct {
	next Injector
	ch   chan request

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewSerial creates a started Serial wrapping next.
func NewSerial(next Injector) *Serial {
	s := &Serial{
		next: next,
		ch:   make(chan request, queueSize),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Serial) run() {
	defer close(s.done)
	for req := range s.ch {
		s.next.Touch(req.pos, req.down)
	}
}

// Touch enqueues one injection. Events are delivered strictly in the
// order Touch was called. Calls after Close are dropped.
func (s *Serial) Touch(p macro.Point, down bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.ch <- request{pos: p, down: down}
	s.mu.Unlock()
}

// Close stops the delivery goroutine after draining pending requests.
func (s *Serial) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()
	<-s.done
}
