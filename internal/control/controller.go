package control

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/tapstorm/internal/clicker"
	"github.com/dshills/tapstorm/internal/clock"
	"github.com/dshills/tapstorm/internal/inject"
	"github.com/dshills/tapstorm/internal/macro"
)

// Logger is the logging surface the controller needs. The app package's
// logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// nopLogger discards everything; used when no logger is configured.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// DefaultClickInterval is used until SetClickInterval is called.
const DefaultClickInterval = 100 * time.Millisecond

// session is one live playback or auto-click run. Cancellation is
// cooperative: the background goroutine observes ctx and exits at its
// next liveness check, waking any in-flight delay early.
type session struct {
	id     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc
}

// Controller owns the event log and the current mode, and arbitrates
// which of recorder, player and auto-clicker is active. Construct one
// per process with New and hand it to the input hook and the control
// surface; there is no hidden package-level instance.
type Controller struct {
	mode atomic.Int32

	// mu serializes mode transitions and guards session and settings.
	mu       sync.Mutex
	session  *session
	loop     bool
	interval time.Duration
	targets  []macro.Point

	log      *macro.Log
	recorder *macro.Recorder
	injector inject.Injector
	feedback Feedback
	logger   Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithFeedback sets the recording feedback sink.
func WithFeedback(fb Feedback) Option {
	return func(c *Controller) {
		if fb != nil {
			c.feedback = fb
		}
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock used for delay capture. Tests use a fake.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) {
		c.recorder = macro.NewRecorder(clk, c.log)
	}
}

// New creates an idle controller that injects through inj.
func New(inj inject.Injector, opts ...Option) *Controller {
	log := macro.NewLog()
	c := &Controller{
		log:      log,
		recorder: macro.NewRecorder(clock.System{}, log),
		injector: inj,
		feedback: NoFeedback{},
		logger:   nopLogger{},
		interval: DefaultClickInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the current mode. Safe from any goroutine.
func (c *Controller) Mode() Mode {
	return Mode(c.mode.Load())
}

// EventCount returns the number of events in the current macro.
func (c *Controller) EventCount() int {
	return c.log.Len()
}

// StartRecording clears the macro and begins capturing raw samples.
// A repeated call while already recording is a no-op so a toggled
// control cannot duplicate the reset. Any live playback or auto-click
// session is cancelled first.
func (c *Controller) StartRecording() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Mode() == ModeRecording {
		return
	}

	c.cancelSessionLocked()
	c.recorder.Reset()
	c.mode.Store(int32(ModeRecording))
	c.feedback.RecordingStarted()
	c.logger.Info("recording started")
}

// StopRecording ends capture. No-op unless recording.
func (c *Controller) StopRecording() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Mode() != ModeRecording {
		return
	}

	c.mode.Store(int32(ModeIdle))
	c.feedback.RecordingStopped()
	c.logger.Info("recording stopped: %d events", c.log.Len())
}

// RecordTouch captures one raw sample. Samples arriving outside
// recording mode are dropped, not buffered. This runs inline on the
// host's input-delivery path: one atomic read, no lock, no sleep.
func (c *Controller) RecordTouch(p macro.Point, down bool) {
	if c.Mode() != ModeRecording {
		return
	}
	c.recorder.Capture(p, down)
}

// PlayMacro replays the recorded macro on a background goroutine,
// looping if loop playback is set. No-op when the macro is empty. Any
// live session (including recording) is superseded.
func (c *Controller) PlayMacro() {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := c.log.Events()
	if len(events) == 0 {
		c.logger.Debug("play requested with empty macro, ignoring")
		return
	}

	c.cancelSessionLocked()
	s := c.newSessionLocked()
	loop := c.loop
	c.mode.Store(int32(ModePlaying))
	c.logger.Info("playback session %s started: %d events, loop=%v", s.id, len(events), loop)

	go func() {
		err := macro.Play(s.ctx, events, loop, c.injector.Touch)
		c.finishSession(s, err)
	}()
}

// StartAutoClicker begins fixed-interval clicking at the configured
// targets on a background goroutine. No-op when no targets are set.
func (c *Controller) StartAutoClicker() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.targets) == 0 {
		c.logger.Debug("auto-click requested with no targets, ignoring")
		return
	}

	c.cancelSessionLocked()
	s := c.newSessionLocked()
	targets := make([]macro.Point, len(c.targets))
	copy(targets, c.targets)
	interval := c.interval
	c.mode.Store(int32(ModeAutoClicking))
	c.logger.Info("auto-click session %s started: %d targets every %v", s.id, len(targets), interval)

	go func() {
		err := clicker.Run(s.ctx, targets, interval, c.injector.Touch)
		c.finishSession(s, err)
	}()
}

// StopAll cancels any live session and returns to idle.
func (c *Controller) StopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelSessionLocked()
	if c.Mode() != ModeIdle {
		c.mode.Store(int32(ModeIdle))
		c.logger.Info("stopped, idle")
	}
}

// SetLoopPlayback sets whether playback restarts after a full pass.
// The flag is copied into each session at start. Settable only while
// idle; otherwise a silent no-op.
func (c *Controller) SetLoopPlayback(loop bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Mode() != ModeIdle {
		c.logger.Debug("loop change ignored while %s", c.Mode())
		return
	}
	c.loop = loop
}

// LoopPlayback reports the configured loop flag.
func (c *Controller) LoopPlayback() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loop
}

// SetClickInterval sets the auto-click cycle length. Non-positive
// values and calls outside idle are ignored.
func (c *Controller) SetClickInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Mode() != ModeIdle {
		c.logger.Debug("interval change ignored while %s", c.Mode())
		return
	}
	if d <= 0 {
		c.logger.Warn("non-positive click interval %v ignored", d)
		return
	}
	c.interval = d
}

// ClickInterval reports the configured auto-click interval.
func (c *Controller) ClickInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// SetClickTargets replaces the auto-click target list. Settable only
// while idle; otherwise a silent no-op.
func (c *Controller) SetClickTargets(targets []macro.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Mode() != ModeIdle {
		c.logger.Debug("target change ignored while %s", c.Mode())
		return
	}
	c.targets = make([]macro.Point, len(targets))
	copy(c.targets, targets)
}

// newSessionLocked creates and installs a fresh session. Caller holds mu.
func (c *Controller) newSessionLocked() *session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{id: uuid.New(), ctx: ctx, cancel: cancel}
	c.session = s
	return s
}

// cancelSessionLocked cancels the live session, if any. Caller holds mu.
func (c *Controller) cancelSessionLocked() {
	if c.session != nil {
		c.session.cancel()
		c.session = nil
	}
}

// finishSession runs when a background session's goroutine returns. It
// resets mode to idle only if s is still the current session; a newer
// mode request has already moved the state machine on and wins.
func (c *Controller) finishSession(s *session, err error) {
	s.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != s {
		return
	}
	c.session = nil
	c.mode.Store(int32(ModeIdle))
	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Error("session %s ended: %v", s.id, err)
		return
	}
	c.logger.Debug("session %s finished", s.id)
}
