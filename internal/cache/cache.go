package cache

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cookanything/pantry/internal/recipe"
)

// SlotKey names the single cache slot.
const SlotKey = "cookanything_recipes"

// Store is a single-slot recipe cache. Implementations never report storage
// failures: a failed read is a miss and a failed write is dropped.
type Store interface {
	Get() ([]recipe.Recipe, bool)
	Put(list []recipe.Recipe)
	Close() error
}

// Entry is the persisted slot.
type Entry struct {
	Timestamp int64           `json:"timestamp"` // epoch milliseconds
	Data      []recipe.Recipe `json:"data"`
}

// Policy decides whether a stored entry may be served.
type Policy struct {
	// ReadEnabled off turns Get into a constant miss while Put keeps writing.
	ReadEnabled bool
	TTL         time.Duration
}

// Fresh reports whether an entry written at timestamp is still servable at now.
func (p Policy) Fresh(timestamp int64, now time.Time) bool {
	return now.Sub(time.UnixMilli(timestamp)) < p.TTL
}

// Options configure Open.
type Options struct {
	Backend string // "file" or "sqlite"; empty means file
	Dir     string
	Policy  Policy
	Logger  *slog.Logger
	Now     func() time.Time
}

// Open builds the store selected by opts.Backend.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case "", "file":
		return NewFileStore(filepath.Join(opts.Dir, SlotKey+".json"), opts), nil
	case "sqlite":
		return OpenSQLite(filepath.Join(opts.Dir, "pantry.db"), opts)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// Discard is a Store that keeps nothing.
type Discard struct{}

func (Discard) Get() ([]recipe.Recipe, bool) { return nil, false }
func (Discard) Put([]recipe.Recipe)          {}
func (Discard) Close() error                 { return nil }

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}
