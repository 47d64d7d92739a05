package settings

// Storage addresses. Fixed and small, like the EEPROM map of the original
// hardware. The current file needs two bytes: cards can hold a few hundred
// tracks.
const (
	AddrMode = iota
	AddrVolume
	AddrInterval
	AddrRepeat
	AddrFileLo
	AddrFileHi
)

// Store is a byte-addressed non-volatile store surviving power cycles.
type Store interface {
	ReadByte(addr int) (byte, error)
	WriteByte(addr int, value byte) error
	// WriteIfChanged writes only when the stored value differs, limiting
	// write wear on the underlying medium.
	WriteIfChanged(addr int, value byte) error
}

// Load reads the persisted settings, sanitizing every ordinal and clamping
// the current file to [1, fileCount]. Unwritten or corrupted storage
// therefore always yields a valid configuration, silently.
func Load(s Store, fileCount int) (Settings, error) {
	read := func(addr int) (byte, error) { return s.ReadByte(addr) }

	mode, err := read(AddrMode)
	if err != nil {
		return Settings{}, err
	}
	volume, err := read(AddrVolume)
	if err != nil {
		return Settings{}, err
	}
	interval, err := read(AddrInterval)
	if err != nil {
		return Settings{}, err
	}
	repeat, err := read(AddrRepeat)
	if err != nil {
		return Settings{}, err
	}
	lo, err := read(AddrFileLo)
	if err != nil {
		return Settings{}, err
	}
	hi, err := read(AddrFileHi)
	if err != nil {
		return Settings{}, err
	}

	file := int(hi)<<8 | int(lo)
	if fileCount > 0 {
		if file < 1 || file > fileCount {
			file = 1
		}
	} else {
		file = 1
	}

	return Settings{
		Mode:        Mode(sanitize(mode, byte(modeCount))),
		Volume:      Volume(sanitize(volume, byte(volumeCount))),
		Interval:    Interval(sanitize(interval, byte(intervalCount))),
		Repeat:      Repeat(sanitize(repeat, byte(repeatCountN))),
		CurrentFile: file,
	}, nil
}

// Save persists every field, writing only bytes that changed.
func Save(s Store, set Settings) error {
	writes := []struct {
		addr  int
		value byte
	}{
		{AddrMode, byte(set.Mode)},
		{AddrVolume, byte(set.Volume)},
		{AddrInterval, byte(set.Interval)},
		{AddrRepeat, byte(set.Repeat)},
		{AddrFileLo, byte(set.CurrentFile & 0xFF)},
		{AddrFileHi, byte(set.CurrentFile >> 8)},
	}
	for _, w := range writes {
		if err := s.WriteIfChanged(w.addr, w.value); err != nil {
			return err
		}
	}
	return nil
}

// SaveFile persists only the current file pointer.
func SaveFile(s Store, file int) error {
	if err := s.WriteIfChanged(AddrFileLo, byte(file&0xFF)); err != nil {
		return err
	}
	return s.WriteIfChanged(AddrFileHi, byte(file>>8))
}
