package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cookanything/pantry/internal/recipe"
)

// SQLiteStore keeps the slot as a row in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	policy Policy
	logger *slog.Logger
	now    func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at dbPath.
func OpenSQLite(dbPath string, opts Options) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			key       TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			data      TEXT NOT NULL
		);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		policy: opts.Policy,
		logger: opts.logger(),
		now:    opts.clock(),
	}, nil
}

func (s *SQLiteStore) Get() ([]recipe.Recipe, bool) {
	if !s.policy.ReadEnabled {
		return nil, false
	}

	var (
		timestamp int64
		data      string
	)
	err := s.db.QueryRow(`SELECT timestamp, data FROM slots WHERE key = ?`, SlotKey).Scan(&timestamp, &data)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("cache read failed", "error", err)
		}
		return nil, false
	}

	if !s.policy.Fresh(timestamp, s.now()) {
		s.logger.Debug("cache slot expired")
		if _, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, SlotKey); err != nil {
			s.logger.Warn("cache evict failed", "error", err)
		}
		return nil, false
	}

	var list []recipe.Recipe
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		s.logger.Warn("cache slot unreadable", "error", err)
		return nil, false
	}
	return list, true
}

func (s *SQLiteStore) Put(list []recipe.Recipe) {
	data, err := json.Marshal(list)
	if err != nil {
		s.logger.Warn("cache write failed", "error", err)
		return
	}
	_, err = s.db.Exec(`
		INSERT INTO slots (key, timestamp, data) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			timestamp = excluded.timestamp,
			data = excluded.data
	`, SlotKey, s.now().UnixMilli(), string(data))
	if err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
