package player

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// Verify Beep implements Interface at compile time.
var _ Interface = (*Beep)(nil)

// Beep plays numbered audio files ("1.mp3", "042.flac", ...) from a media
// directory through the host's speaker. It stands in for the serial audio
// decoder of the real hardware.
type Beep struct {
	mu sync.Mutex

	files   map[int]string // file number -> path
	count   int
	evenOK  bool
	current int

	level    int
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	streamer beep.StreamSeekCloser
	file     *os.File
	state    State
}

var speakerInitialized bool

// NewBeep scans dir for numbered audio files and prepares the player.
// It fails when the directory holds no playable files, which the caller
// surfaces as the initialization-failure LED pattern.
func NewBeep(dir string) (*Beep, error) {
	files, err := scanNumbered(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no numbered audio files in %s", dir)
	}

	count := 0
	evenOK := true
	for n := range files {
		if n > count {
			count = n
		}
	}
	// The odd-only quirk: a card where no even number resolves is
	// reported as odd-addressable only.
	if count >= 2 {
		evenOK = false
		for n := range files {
			if n%2 == 0 {
				evenOK = true
				break
			}
		}
	}

	return &Beep{
		files:  files,
		count:  count,
		evenOK: evenOK,
		level:  MaxVolume,
	}, nil
}

// scanNumbered collects files whose stem is a plain number, keeping one
// path per number (extension priority by sorted order: flac, mp3, wav).
func scanNumbered(dir string) (map[int]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make(map[int]string)
	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".flac" && ext != ".wav" {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		n, err := strconv.Atoi(stem)
		if err != nil || n < 1 {
			continue
		}
		if _, ok := files[n]; !ok {
			files[n] = filepath.Join(dir, name)
		}
	}
	return files, nil
}

func (b *Beep) Play(index int) error {
	b.Stop()

	b.mu.Lock()
	defer b.mu.Unlock()

	path, ok := b.files[index]
	if !ok {
		// Unaddressable number: like the hardware, stay idle and let the
		// caller retry or redraw.
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return err
	}

	if !speakerInitialized {
		err = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
		if err != nil {
			streamer.Close()
			f.Close()
			return err
		}
		speakerInitialized = true
	}

	b.file = f
	b.streamer = streamer
	b.ctrl = &beep.Ctrl{Streamer: streamer}
	b.volume = &effects.Volume{
		Streamer: b.ctrl,
		Base:     2,
		Volume:   levelToVolume(b.level),
		Silent:   b.level <= 0,
	}
	b.state = Playing
	b.current = index

	speaker.Play(beep.Seq(b.volume, beep.Callback(func() {
		b.mu.Lock()
		b.state = Stopped
		b.mu.Unlock()
	})))

	return nil
}

func (b *Beep) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == Stopped {
		return
	}

	speaker.Clear()

	if b.streamer != nil {
		b.streamer.Close()
		b.streamer = nil
	}
	if b.file != nil {
		b.file.Close()
		b.file = nil
	}
	b.ctrl = nil
	b.volume = nil
	b.state = Stopped
	b.current = 0
}

func (b *Beep) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Playing || b.ctrl == nil {
		return
	}
	speaker.Lock()
	b.ctrl.Paused = true
	speaker.Unlock()
	b.state = Paused
}

func (b *Beep) Resume() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Paused || b.ctrl == nil {
		return
	}
	speaker.Lock()
	b.ctrl.Paused = false
	speaker.Unlock()
	b.state = Playing
}

func (b *Beep) SetVolume(level int) {
	if level < 0 {
		level = 0
	}
	if level > MaxVolume {
		level = MaxVolume
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.level = level
	if b.volume != nil {
		speaker.Lock()
		b.volume.Volume = levelToVolume(level)
		b.volume.Silent = level <= 0
		speaker.Unlock()
	}
}

func (b *Beep) FileCount() int { return b.count }

func (b *Beep) CurrentIndex() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Beep) SupportsEvenIndices() bool { return b.evenOK }

func (b *Beep) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == Playing
}

func (b *Beep) Close() error {
	b.Stop()
	return nil
}

// levelToVolume converts a 0..MaxVolume level to beep's log2 volume scale:
// 0 means unchanged, -1 half, -2 quarter.
func levelToVolume(level int) float64 {
	if level <= 0 {
		return -10
	}
	if level >= MaxVolume {
		return 0
	}
	return math.Log2(float64(level) / float64(MaxVolume))
}
