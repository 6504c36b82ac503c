// Package app wires the Tapstorm engine together and runs the terminal
// control surface.
//
// The engine core (control, macro, clicker) is UI-free; this package is
// the host-side collaborator that feeds it: a global mouse hook for raw
// samples, a robotgo-backed injector for synthetic events, and a tcell
// key loop exposing the control operations.
package app

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tapstorm/internal/config"
	"github.com/dshills/tapstorm/internal/control"
	"github.com/dshills/tapstorm/internal/hook"
	"github.com/dshills/tapstorm/internal/inject"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")
)

// redrawInterval paces status-line refreshes while idle at the event
// loop.
const redrawInterval = 150 * time.Millisecond

// intervalStep is how much +/- changes the auto-click interval.
const intervalStep = 25 * time.Millisecond

// Options configures an Application.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// LogPath receives log output. Empty discards logs (the TUI owns
	// the terminal, so stderr would tear the screen).
	LogPath string

	// DisableCapture skips the global mouse hook. Used by tests and on
	// hosts where hooking is unavailable.
	DisableCapture bool

	// Injector overrides the robotgo backend. Used by tests.
	Injector inject.Injector
}

// Application owns the wired engine and the control-surface loop.
type Application struct {
	opts    Options
	cfg     config.Config
	logger  *Logger
	ctrl    *control.Controller
	serial  *inject.Serial
	capture *hook.Capture
	screen  tcell.Screen

	mu      sync.Mutex
	running bool
	logFile *os.File
}

// logFeedback satisfies control.Feedback by logging the cues; a real
// host would route these to a haptic or audio API.
type logFeedback struct {
	logger *Logger
}

func (f logFeedback) RecordingStarted() { f.logger.Info("feedback cue: recording started") }
func (f logFeedback) RecordingStopped() { f.logger.Info("feedback cue: recording stopped") }

// New loads configuration and wires the engine. The config file is
// created with defaults on first run.
func New(opts Options) (*Application, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if saveErr := config.Save(path, cfg); saveErr != nil {
			// First-run convenience only; the engine runs fine without
			// a file on disk.
			fmt.Fprintf(os.Stderr, "warning: could not write default config: %v\n", saveErr)
		}
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	a := &Application{opts: opts, cfg: cfg}

	if opts.LogPath != "" {
		f, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		a.logger = NewLogger(ParseLogLevel(level), f)
	} else {
		a.logger = NullLogger
	}

	backend := opts.Injector
	if backend == nil {
		backend = inject.Robot{}
	}
	a.serial = inject.NewSerial(backend)

	a.ctrl = control.New(a.serial,
		control.WithLogger(a.logger.WithComponent("control")),
		control.WithFeedback(logFeedback{logger: a.logger.WithComponent("feedback")}),
	)
	a.ctrl.SetLoopPlayback(cfg.LoopPlayback)
	a.ctrl.SetClickInterval(cfg.ClickInterval)
	a.ctrl.SetClickTargets(cfg.ClickTargets)

	if !opts.DisableCapture {
		a.capture = hook.NewCapture(a.ctrl)
	}

	return a, nil
}

// Controller exposes the engine for the hook and for tests.
func (a *Application) Controller() *control.Controller {
	return a.ctrl
}

// SetScreen injects a screen (tests use tcell's simulation screen).
// Must be called before Run.
func (a *Application) SetScreen(s tcell.Screen) {
	a.screen = s
}

// Run starts the capture hook and the control-surface event loop.
// It blocks until the user quits; a normal quit returns ErrQuit.
func (a *Application) Run() error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.running = true
	a.mu.Unlock()

	if a.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		a.screen = s
	}
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer a.screen.Fini()
	a.screen.HideCursor()

	if a.capture != nil {
		go a.capture.Run()
	}

	// Periodic interrupts keep the status line tracking mode changes
	// that happen off the key path (a playback pass finishing, say).
	stopTick := make(chan struct{})
	go func() {
		ticker := time.NewTicker(redrawInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopTick:
				return
			case <-ticker.C:
				_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()
	defer close(stopTick)

	a.logger.Info("tapstorm running")

	for {
		a.draw()

		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			// redraw only
		case *tcell.EventKey:
			if done := a.handleKey(ev); done {
				return ErrQuit
			}
		case nil:
			// Screen finalized out from under us.
			return ErrQuit
		}
	}
}

// handleKey maps control-surface keys onto engine operations. Returns
// true when the user asked to quit.
func (a *Application) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case 'r', 'R':
		if a.ctrl.Mode() == control.ModeRecording {
			a.ctrl.StopRecording()
		} else {
			a.ctrl.StartRecording()
		}
	case 'p', 'P':
		a.ctrl.PlayMacro()
	case 'a', 'A':
		a.ctrl.StartAutoClicker()
	case 'l', 'L':
		a.ctrl.SetLoopPlayback(!a.ctrl.LoopPlayback())
	case '+', '=':
		a.ctrl.SetClickInterval(a.ctrl.ClickInterval() + intervalStep)
	case '-', '_':
		if d := a.ctrl.ClickInterval() - intervalStep; d > 0 {
			a.ctrl.SetClickInterval(d)
		}
	case 's', 'S':
		a.ctrl.StopAll()
	}
	return false
}

// draw renders the status and key help.
func (a *Application) draw() {
	a.screen.Clear()

	style := tcell.StyleDefault
	bold := style.Bold(true)

	a.drawText(0, 0, bold, "tapstorm")
	a.drawText(0, 1, style, fmt.Sprintf("mode: %-13s events: %d", a.ctrl.Mode(), a.ctrl.EventCount()))

	loop := "off"
	if a.ctrl.LoopPlayback() {
		loop = "on"
	}
	a.drawText(0, 2, style, fmt.Sprintf("loop: %-3s  interval: %v  targets: %d",
		loop, a.ctrl.ClickInterval(), len(a.cfg.ClickTargets)))

	a.drawText(0, 4, style, "[r] record  [p] play  [a] auto-click  [l] loop")
	a.drawText(0, 5, style, "[+/-] interval  [s] stop  [q] quit")

	a.screen.Show()
}

func (a *Application) drawText(x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		a.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// Shutdown stops the engine and releases resources. Safe to call more
// than once.
func (a *Application) Shutdown() {
	a.ctrl.StopAll()
	if a.capture != nil {
		a.capture.Stop()
	}
	a.serial.Close()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
	a.running = false
}
