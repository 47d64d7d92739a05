// Package settings holds the user-configurable options of the player module
// and their persistence. Every option is a small ordinal advanced cyclically
// by repeated commands; values loaded from storage are reduced modulo the
// option count so corrupted or erased storage can never select an
// out-of-range entry.
package settings

import "time"

// Mode selects how playback behaves.
type Mode byte

const (
	ModeFull  Mode = iota // play whole tracks, wait out the configured interval
	ModeShort             // time-boxed playback with a fade-out at the limit
	ModeBook              // sequential audiobook playback, no autoplay
	ModeAuto              // chain tracks as soon as the player goes idle
	modeCount
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeShort:
		return "short"
	case ModeBook:
		return "book"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Next advances to the following mode, wrapping after the last one.
func (m Mode) Next() Mode { return Mode(advance(byte(m), byte(modeCount))) }

// Volume is the configured output level.
type Volume byte

const (
	VolumeLow Volume = iota
	VolumeMed
	VolumeHigh
	volumeCount
)

// volumeLevels maps each Volume to a player level (0..30).
var volumeLevels = [volumeCount]int{12, 20, 28}

// Level returns the player volume level for this setting.
func (v Volume) Level() int { return volumeLevels[v] }

// String returns the string representation of the volume setting.
func (v Volume) String() string {
	switch v {
	case VolumeLow:
		return "low"
	case VolumeMed:
		return "med"
	case VolumeHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Next advances to the following volume level, wrapping after the last one.
func (v Volume) Next() Volume { return Volume(advance(byte(v), byte(volumeCount))) }

// Interval is the pause between automatic plays. IntervalOff disables
// autoplay entirely.
type Interval byte

const (
	IntervalOff Interval = iota
	IntervalShort
	IntervalMedium
	IntervalLong
	intervalCount
)

var intervalDurations = [intervalCount]time.Duration{
	0,
	10 * time.Second,
	30 * time.Second,
	60 * time.Second,
}

// Duration returns the autoplay pause for this setting (0 for IntervalOff).
func (i Interval) Duration() time.Duration { return intervalDurations[i] }

// String returns the string representation of the interval setting.
func (i Interval) String() string {
	switch i {
	case IntervalOff:
		return "off"
	case IntervalShort:
		return "10s"
	case IntervalMedium:
		return "30s"
	case IntervalLong:
		return "60s"
	default:
		return "unknown"
	}
}

// Next advances to the following interval, wrapping after the last one.
func (i Interval) Next() Interval { return Interval(advance(byte(i), byte(intervalCount))) }

// Repeat caps how many tracks autoplay may start before going quiet until
// the next manual command.
type Repeat byte

const (
	RepeatOnce Repeat = iota
	RepeatTwice
	RepeatThrice
	RepeatUnlimited
	repeatCountN
)

// Cap returns the autoplay track cap, or 0 for no cap.
func (r Repeat) Cap() int {
	switch r {
	case RepeatOnce:
		return 1
	case RepeatTwice:
		return 2
	case RepeatThrice:
		return 3
	default:
		return 0
	}
}

// String returns the string representation of the repeat setting.
func (r Repeat) String() string {
	switch r {
	case RepeatOnce:
		return "1"
	case RepeatTwice:
		return "2"
	case RepeatThrice:
		return "3"
	case RepeatUnlimited:
		return "unlimited"
	default:
		return "unknown"
	}
}

// Next advances to the following repeat cap, wrapping after the last one.
func (r Repeat) Next() Repeat { return Repeat(advance(byte(r), byte(repeatCountN))) }

// advance is the single cyclic-advance used by all ordinal settings.
func advance(v, count byte) byte { return (v + 1) % count }

// sanitize reduces a stored byte modulo the option count, so any byte value
// maps onto a valid option.
func sanitize(v, count byte) byte { return v % count }

// Settings is the full persisted configuration of the module.
type Settings struct {
	Mode        Mode
	Volume      Volume
	Interval    Interval
	Repeat      Repeat
	CurrentFile int // 1..fileCount
}

// Defaults returns the factory configuration.
func Defaults() Settings {
	return Settings{
		Mode:        ModeFull,
		Volume:      VolumeMed,
		Interval:    IntervalOff,
		Repeat:      RepeatUnlimited,
		CurrentFile: 1,
	}
}
