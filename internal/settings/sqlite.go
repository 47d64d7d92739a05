package settings

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "sdplayer"
	dbFileName = "settings.db"

	schemaVersion = 1
)

// Verify SQLiteStore implements Store at compile time.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists settings bytes in a small SQLite database. It stands
// in for the byte-addressed EEPROM of the original hardware.
type SQLiteStore struct {
	db *sql.DB
}

// OpenDefault opens the store at its XDG data location.
func OpenDefault() (*SQLiteStore, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Open opens (creating if needed) the store at the given path.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS settings_bytes (
			addr INTEGER PRIMARY KEY CHECK (addr >= 0),
			value INTEGER NOT NULL CHECK (value BETWEEN 0 AND 255)
		);
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`,
		schemaVersion,
	)
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// ReadByte returns the byte at addr. Unwritten addresses read as 0xFF,
// matching erased non-volatile storage.
func (s *SQLiteStore) ReadByte(addr int) (byte, error) {
	var v int
	err := s.db.QueryRow(
		`SELECT value FROM settings_bytes WHERE addr = ?`, addr,
	).Scan(&v)
	if err == sql.ErrNoRows {
		return 0xFF, nil
	}
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func (s *SQLiteStore) WriteByte(addr int, value byte) error {
	_, err := s.db.Exec(`
		INSERT INTO settings_bytes (addr, value) VALUES (?, ?)
		ON CONFLICT(addr) DO UPDATE SET value = excluded.value
	`, addr, int(value))
	return err
}

func (s *SQLiteStore) WriteIfChanged(addr int, value byte) error {
	current, err := s.ReadByte(addr)
	if err != nil {
		return err
	}
	if current == value {
		return nil
	}
	return s.WriteByte(addr, value)
}
