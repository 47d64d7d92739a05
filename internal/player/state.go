package player

// State represents the audio subsystem state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}
