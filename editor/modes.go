package editor

// Mode represents the current interaction state.
type Mode int

const (
	ModeIdle          Mode = iota // nothing pending
	ModeConnectSource             // connect mode, waiting for the source shape
	ModeConnectTarget             // connect mode, source chosen, waiting for the target
	ModeEditing                   // renaming a shape through the text overlay
	ModeDragging                  // shape follows the pointer, commit on release
)

// String returns the mode name for display.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "IDLE"
	case ModeConnectSource:
		return "CONNECT: pick source"
	case ModeConnectTarget:
		return "CONNECT: pick target"
	case ModeEditing:
		return "RENAME"
	case ModeDragging:
		return "DRAG"
	default:
		return "UNKNOWN"
	}
}
