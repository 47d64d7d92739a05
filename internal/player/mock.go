package player

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// Mock is a test double for the audio subsystem.
type Mock struct {
	state       State
	fileCount   int
	evenOK      bool
	rejectPlays int

	current     int
	playCalls   []int
	volumeCalls []int
	stopCalls   int
	pauseCalls  int
	resumeCalls int
}

// NewMock creates a mock reporting the given file count, with even indices
// addressable.
func NewMock(fileCount int) *Mock {
	return &Mock{state: Stopped, fileCount: fileCount, evenOK: true}
}

func (m *Mock) Play(index int) error {
	m.playCalls = append(m.playCalls, index)
	if m.rejectPlays > 0 {
		// Subsystem silently ignores the command: stays idle.
		m.rejectPlays--
		return nil
	}
	m.state = Playing
	m.current = index
	return nil
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.state = Stopped
	m.current = 0
}

func (m *Mock) Pause() {
	m.pauseCalls++
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	m.resumeCalls++
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) SetVolume(level int) { m.volumeCalls = append(m.volumeCalls, level) }

func (m *Mock) FileCount() int            { return m.fileCount }
func (m *Mock) CurrentIndex() int         { return m.current }
func (m *Mock) SupportsEvenIndices() bool { return m.evenOK }
func (m *Mock) Busy() bool                { return m.state == Playing }
func (m *Mock) Close() error              { return nil }

// FinishTrack simulates the current track reaching its end.
func (m *Mock) FinishTrack() {
	if m.state == Playing {
		m.state = Stopped
	}
}

// RejectNextPlays makes the next n Play commands be silently ignored.
func (m *Mock) RejectNextPlays(n int) { m.rejectPlays = n }

// SetSupportsEvenIndices overrides the even-index capability.
func (m *Mock) SetSupportsEvenIndices(ok bool) { m.evenOK = ok }

// State returns the mock's playback state.
func (m *Mock) State() State { return m.state }

// PlayCalls returns every index passed to Play, in order.
func (m *Mock) PlayCalls() []int { return m.playCalls }

// VolumeCalls returns every level passed to SetVolume, in order.
func (m *Mock) VolumeCalls() []int { return m.volumeCalls }

// LastVolume returns the most recent volume level, or -1 if none was set.
func (m *Mock) LastVolume() int {
	if len(m.volumeCalls) == 0 {
		return -1
	}
	return m.volumeCalls[len(m.volumeCalls)-1]
}

// StopCalls returns how many times Stop was issued.
func (m *Mock) StopCalls() int { return m.stopCalls }

// PauseCalls returns how many times Pause was issued.
func (m *Mock) PauseCalls() int { return m.pauseCalls }

// ResumeCalls returns how many times Resume was issued.
func (m *Mock) ResumeCalls() int { return m.resumeCalls }
