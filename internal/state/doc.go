// Package state holds the per-session recipe data shared between the
// controller and the goroutine that performs the fetch.
//
// # Overview
//
// A Session carries the two pieces of mutable browsing state: the full
// recipe list and the current page. Everything shown on screen (filtered
// matches, the visible page, the pager) is derived from these on demand by
// package catalog and is never stored here.
//
// # Architecture
//
// The fetch and the painters run on different goroutines:
//
//	Fetch (controller.Load):       Painters (controller.View):
//	┌──────────────────────┐      ┌───────────────────────────┐
//	│ fetcher.Fetch()      │      │                           │
//	│      ↓               │      │                           │
//	│ session.SetRecipes() │─────→│ session.Snapshot()        │
//	│                      │(lock)│      ↓                    │
//	│ session.SetPage(n)   │      │ catalog.Apply(list, page) │
//	└──────────────────────┘      └───────────────────────────┘
//
// # Core Types
//
// Session:
//   - Guarded by a sync.RWMutex
//   - Starts at the page parsed from the location, with no list loaded
//   - SetRecipes replaces the list wholesale and marks the session loaded
//
// Snapshot:
//   - Point-in-time copy of the list, page and load time
//   - Returned by value; the recipe slice and each recipe's tags are cloned
//
// # Concurrency Model
//
//   - SetRecipes, SetPage: write lock
//   - Page, Recipes, Snapshot: read lock
//
// The lock is held only while copying. Filtering, sorting and rendering run
// on the copy.
//
// Recipes returns the stored slice without copying. The list is never
// mutated after SetRecipes, so callers may read it freely but must not
// write to it. Snapshot is for callers that keep or modify the data.
//
// # Load Semantics
//
//	session.SetRecipes(nil)
//	→ snapshot.Recipes = []recipe.Recipe{}  (never nil)
//	→ snapshot.Loaded = true
//	→ snapshot.LoadedAt = now
//
// A failed fetch still produces an empty list, so Loaded distinguishes
// "nothing fetched yet" from "fetched, zero recipes".
//
// # Usage Example
//
//	s := state.NewSession(loc.Page())
//	s.SetRecipes(fetcher.Fetch(ctx, n))
//	snap := s.Snapshot()
//	res := catalog.Apply(snap.Recipes, query, catalog.PageSize, snap.Page)
//
// # Testing Considerations
//
// NewSession needs no other setup. Tests run concurrent SetPage and Page
// calls under the race detector and check that mutating a Snapshot leaves
// the session untouched.
package state
