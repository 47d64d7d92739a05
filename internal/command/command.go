// Package command turns the raw input line into discrete user commands.
// A command is a pattern of one to four presses ended by a quiet period;
// holding the final press past the command timeout makes it a long press.
package command

// Code identifies a completed click pattern.
type Code int

const (
	None   Code = iota
	Short1      // next track / resume
	Short2      // previous track
	Short3      // change volume
	Short4      // reset settings
	Long1       // stop with fade
	Long2       // change mode
	Long3       // change interval
	Long4       // change repeat cap
)

// String returns the string representation of the code.
func (c Code) String() string {
	switch c {
	case Short1:
		return "next"
	case Short2:
		return "previous"
	case Short3:
		return "volume"
	case Short4:
		return "reset"
	case Long1:
		return "stop"
	case Long2:
		return "mode"
	case Long3:
		return "interval"
	case Long4:
		return "repeat"
	default:
		return "none"
	}
}

// shortCode maps a press count to its short-pattern code.
func shortCode(presses int) Code {
	return Short1 + Code(presses-1)
}

// longCode maps a press count to its long-pattern code.
func longCode(presses int) Code {
	return Long1 + Code(presses-1)
}
