package inject

import (
	"github.com/go-vgo/robotgo"

	"github.com/dshills/tapstorm/internal/macro"
)

// Robot injects events through robotgo: move the OS cursor to the
// target, then toggle the left button. Wrap it in a Serial so delivery
// stays on one timeline.
type Robot struct{}

// Touch moves to p and presses or releases the left button.
func (Robot) Touch(p macro.Point, down bool) {
	robotgo.Move(int(p.X), int(p.Y))
	dir := "up"
	if down {
		dir = "down"
	}
	// Injection is fire-and-forget; a failed toggle has no recovery
	// path in the replay loop.
	robotgo.Toggle("left", dir)
}
