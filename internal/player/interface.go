// Package player is the audio-decoding subsystem boundary. Files are
// addressed by their number, 1..FileCount; there is no other metadata.
package player

// MaxVolume is the top of the subsystem's volume range.
const MaxVolume = 30

// Interface defines the audio subsystem contract for dependency injection
// and testing. Commands are fire-and-forget; the caller allows a short
// settle delay before trusting Busy again.
type Interface interface {
	// Play starts the numbered file. A rejected index leaves the
	// subsystem idle; the caller detects that through Busy and retries.
	Play(index int) error
	Stop()
	Pause()
	Resume()
	SetVolume(level int) // 0..MaxVolume

	FileCount() int
	// CurrentIndex returns the number of the loaded file, 0 when none.
	CurrentIndex() int
	// SupportsEvenIndices reports whether even-numbered files are
	// addressable. Some cards only expose odd numbers reliably.
	SupportsEvenIndices() bool
	// Busy reports whether audio is actively playing. Polled, not
	// event-driven.
	Busy() bool

	Close() error
}
