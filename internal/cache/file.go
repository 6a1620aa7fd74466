package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cookanything/pantry/internal/recipe"
)

// FileStore keeps the slot as a JSON document on disk.
type FileStore struct {
	path   string
	policy Policy
	logger *slog.Logger
	now    func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string, opts Options) *FileStore {
	return &FileStore{
		path:   path,
		policy: opts.Policy,
		logger: opts.logger(),
		now:    opts.clock(),
	}
}

// Path returns the slot file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get() ([]recipe.Recipe, bool) {
	if !s.policy.ReadEnabled {
		return nil, false
	}

	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("cache read failed", "path", s.path, "error", err)
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(bytes, &entry); err != nil {
		s.logger.Warn("cache slot unreadable", "path", s.path, "error", err)
		return nil, false
	}
	if !s.policy.Fresh(entry.Timestamp, s.now()) {
		s.logger.Debug("cache slot expired", "path", s.path)
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("cache evict failed", "path", s.path, "error", err)
		}
		return nil, false
	}
	return entry.Data, true
}

func (s *FileStore) Put(list []recipe.Recipe) {
	if err := s.write(list); err != nil {
		s.logger.Warn("cache write failed", "path", s.path, "error", err)
	}
}

func (s *FileStore) write(list []recipe.Recipe) error {
	bytes, err := json.Marshal(Entry{Timestamp: s.now().UnixMilli(), Data: list})
	if err != nil {
		return fmt.Errorf("encode slot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace slot: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
