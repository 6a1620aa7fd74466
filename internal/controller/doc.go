// Package controller wires the recipe pipeline to whatever paints it.
//
// # Overview
//
// A Controller owns one browsing session. Load fetches the list once. Every
// later interaction recomputes the visible page from memory and pushes a
// fresh View to the subscribed observers. Interactions are filter inputs,
// pagination buttons, keyboard shortcuts and scroll events. The terminal
// UI and the HTML server both drive a Controller; neither talks to
// catalog or source directly for page state.
//
// # Architecture
//
//	 Fetcher ──Fetch──→ state.Session ──Snapshot──→ catalog.Apply
//	    │                                              │
//	 Notifier (Loading/Failed)                   render.Cards/Paginate
//	    ↓                                              ↓
//	 Controller ───────────── View ──────────→ Observer.Render
//	    ↑
//	 SetCategory/SetSearch/SetSort (debounced)
//	 Prev/Next/First/Last/GoTo/HandleKey
//	 Scroll/ScrollToTop
//
// # Core Types
//
// Controller:
//   - Holds the query, category options, loading flag and failure message
//   - Implements source.Notifier so a fetch can report progress into it
//
// View:
//   - Everything a painter needs: cards or a notice, pager, select options,
//     the active query, loading and back-to-top flags
//   - ScrollTop asks the painter to scroll the card area back to the top
//
// Location:
//   - The session's address bar, parsed from a request URI or "/"
//   - Page changes are recorded as new history entries; the initial render
//     and Load are not
//
// # Paging
//
// The initial page is read from the location's page parameter. Missing or
// non-numeric values and pages below 1 become 1. Pages past the end are kept
// as requested and render an empty grid with "Page N of M"; Prev still
// steps back from them.
//
// Filter, search and sort inputs are debounced. A burst of changes collapses
// into one recompute that returns to page 1. Flush runs a pending recompute
// immediately, and Close cancels it.
//
// # Failure Handling
//
// When the fetch fails the Fetcher calls Failed with source.FailureMessage
// and returns an empty list. The notice replaces the grid for as long as the
// list stays empty, so later filter changes do not hide it. Reload clears the
// message and fetches again.
//
// # Concurrency Model
//
// All methods are safe for concurrent use. The controller's mutex guards the
// query and flags; the Session has its own lock. Observers are called
// without the controller's lock held and may call back into it. Debounced
// recomputes run on the debouncer's timer goroutine, so observers must not
// assume they are called from the goroutine that changed the input.
//
// # Usage Example
//
//	c := controller.New(controller.Options{
//		Fetcher:  fetcher,
//		Location: controller.ParseLocation("/?page=2"),
//	})
//	defer c.Close()
//	unsubscribe := c.Subscribe(controller.ObserverFunc(paint))
//	defer unsubscribe()
//	c.Load(ctx)
//	c.HandleKey(controller.KeyRight, false)
//
// # Testing Considerations
//
// Tests use a stub Fetcher and a recording Observer. A short Debounce in
// Options keeps debounced tests fast; Flush makes them deterministic.
package controller
