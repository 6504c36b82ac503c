package control

// Mode is the controller's single active operating state.
type Mode int32

const (
	// ModeIdle means no session is active.
	ModeIdle Mode = iota
	// ModeRecording means raw touch samples are being captured.
	ModeRecording
	// ModePlaying means a recorded macro is being replayed.
	ModePlaying
	// ModeAutoClicking means fixed-interval synthetic clicking is active.
	ModeAutoClicking
)

// String returns the mode name for logs and UI reflection.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRecording:
		return "recording"
	case ModePlaying:
		return "playing"
	case ModeAutoClicking:
		return "auto-clicking"
	default:
		return "unknown"
	}
}
