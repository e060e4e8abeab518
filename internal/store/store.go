package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sadopc/hourtrack/internal/tracker"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Store persists the tracker state and the user settings in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

var _ tracker.StateStore = (*Store)(nil)

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, unavailable("create db directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, unavailable("open database", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, unavailable(fmt.Sprintf("exec pragma %q", p), err)
		}
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, unavailable("migrate", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file the store was opened on.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS tracker_state (
		id                  INTEGER PRIMARY KEY CHECK (id = 1),
		start_timestamp     INTEGER NOT NULL DEFAULT 0,
		current_day         INTEGER NOT NULL DEFAULT 0,
		current_week        INTEGER NOT NULL DEFAULT 0,
		today_seconds       INTEGER NOT NULL DEFAULT 0,
		week_working_days   INTEGER NOT NULL DEFAULT 0,
		week_seconds        INTEGER NOT NULL DEFAULT 0,
		extra_time_seconds  INTEGER NOT NULL DEFAULT 0,
		updated_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS week_history (
		position      INTEGER PRIMARY KEY,
		week          INTEGER NOT NULL,
		working_days  INTEGER NOT NULL,
		seconds       INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/hourtrack/hourtrack.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "hourtrack", "hourtrack.db"), nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", tracker.ErrStorageUnavailable, op, err)
}
