package state

import (
	"sync"
	"time"

	"github.com/cookanything/pantry/internal/recipe"
)

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	Recipes  []recipe.Recipe
	Page     int
	Loaded   bool
	LoadedAt time.Time
}

// Session holds the full recipe list and the current page. Writes are
// serialized; readers get independent copies.
type Session struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewSession starts a session at page.
func NewSession(page int) *Session {
	return &Session{snapshot: Snapshot{Page: page}}
}

// SetRecipes replaces the full list. It is called once per load.
func (s *Session) SetRecipes(list []recipe.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Recipes = recipe.CloneAll(list)
	if s.snapshot.Recipes == nil {
		s.snapshot.Recipes = []recipe.Recipe{}
	}
	s.snapshot.Loaded = true
	s.snapshot.LoadedAt = time.Now()
}

// SetPage records the current page.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Page = page
}

// Page returns the current page.
func (s *Session) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Page
}

// Recipes returns the full list. The slice is shared and must be treated as
// read-only; use Snapshot for a private copy.
func (s *Session) Recipes() []recipe.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Recipes
}

// Snapshot returns a deep copy of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Recipes = recipe.CloneAll(s.snapshot.Recipes)
	return snap
}
