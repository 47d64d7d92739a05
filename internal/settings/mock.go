package settings

// Verify MemStore implements Store at compile time.
var _ Store = (*MemStore)(nil)

// MemStore is an in-memory Store for tests and the simulator.
// Unwritten addresses read as 0xFF, matching erased non-volatile storage.
type MemStore struct {
	bytes  map[int]byte
	writes int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{bytes: make(map[int]byte)}
}

func (m *MemStore) ReadByte(addr int) (byte, error) {
	v, ok := m.bytes[addr]
	if !ok {
		return 0xFF, nil
	}
	return v, nil
}

func (m *MemStore) WriteByte(addr int, value byte) error {
	m.bytes[addr] = value
	m.writes++
	return nil
}

func (m *MemStore) WriteIfChanged(addr int, value byte) error {
	if v, ok := m.bytes[addr]; ok && v == value {
		return nil
	}
	return m.WriteByte(addr, value)
}

// Writes returns the number of physical writes performed.
func (m *MemStore) Writes() int { return m.writes }
