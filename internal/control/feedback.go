package control

// Feedback receives cues when recording starts and stops, for acoustic
// or haptic confirmation by the host. Implementations must not block.
type Feedback interface {
	RecordingStarted()
	RecordingStopped()
}

// NoFeedback ignores all cues.
type NoFeedback struct{}

// RecordingStarted does nothing.
func (NoFeedback) RecordingStarted() {}

// RecordingStopped does nothing.
func (NoFeedback) RecordingStopped() {}
