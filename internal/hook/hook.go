// Package hook feeds raw mouse samples from the OS into the controller.
//
// It adapts the gohook global input hook to the engine's inbound contract:
// one call per contact phase (down, up) with screen-space coordinates.
// Samples delivered while the controller is not recording are dropped by
// its mode guard, so the hook can stay registered for the whole process
// lifetime.
package hook

import (
	hook "github.com/robotn/gohook"

	"github.com/dshills/tapstorm/internal/control"
	"github.com/dshills/tapstorm/internal/macro"
)

// Capture routes global mouse events to a controller.
type Capture struct {
	ctrl *control.Controller
}

// NewCapture creates a capture adapter for ctrl.
func NewCapture(ctrl *control.Controller) *Capture {
	return &Capture{ctrl: ctrl}
}

// Run registers the mouse callbacks and blocks processing hook events
// until Stop is called. It must run on its own goroutine.
func (c *Capture) Run() {
	hook.Register(hook.MouseDown, []string{}, func(e hook.Event) {
		c.ctrl.RecordTouch(macro.Point{X: float64(e.X), Y: float64(e.Y)}, true)
	})
	hook.Register(hook.MouseUp, []string{}, func(e hook.Event) {
		c.ctrl.RecordTouch(macro.Point{X: float64(e.X), Y: float64(e.Y)}, false)
	})

	evChan := hook.Start()
	<-hook.Process(evChan)
}

// Stop ends hook processing, unblocking Run.
func (c *Capture) Stop() {
	hook.End()
}
