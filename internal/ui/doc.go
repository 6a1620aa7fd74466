// Package ui is the terminal recipe browser.
//
// # Architecture Overview
//
// The Model is a Bubble Tea program that paints views produced by a
// controller.Controller. The controller owns all browsing state; the Model
// owns only terminal concerns: window size, theme, the search input, the
// spinner, the scroll position of the card grid and the help overlay.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling, mailbox and commands, Run
//   - header.go: logo line, demo banner, filter bar and command bar
//   - cards.go: card grid laid out in as many columns as the width allows
//   - pager.go: prev/next buttons, numbered pages with ellipses, status
//   - help.go: full key reference overlay built from the key map
//   - keys.go: bubbles/key bindings with short and full help
//   - theme.go, style_helpers.go: lipgloss themes and background-aware
//     rendering helpers
//
// # Layout
//
// Top to bottom:
//
//   - header: logo, load spinner, match count, location
//   - demo banner (only in demo mode)
//   - filter bar: category, search input, sort
//   - card grid in a scrollable viewport
//   - pager: prev/next, numbered pages with ellipses, "Page X of Y"
//   - command bar with key hints and the active theme
//
// The viewport gets whatever height the other rows leave.
//
// # Event Flow
//
//  1. New subscribes to the controller once, before the program starts
//  2. Init starts the spinner, the mailbox listener and the initial Load
//  3. Each controller View is posted to the mailbox and arrives as a viewMsg
//  4. applyView stores the view, refreshes the grid and scrolls to the top
//     when the view asks for it; the listener is then re-armed
//  5. Keys are translated into controller calls; the controller answers
//     with a new View through the same path
//
// # Concurrency Model
//
// Controller observers may run on any goroutine, including the debouncer's
// timer. They must never block on the Bubble Tea event loop, so views pass
// through a one-slot mailbox:
//
//	observer ──post──→ [ mailbox (cap 1) ] ──listenCmd──→ viewMsg ──→ Update
//
// post replaces an unread view with the newer one and carries over its
// ScrollTop request, so the loop always paints the newest page and never
// loses a scroll reset. Load and Reload run as tea.Cmds off the event loop.
//
// # Key Handling
//
// While the search input is focused every key goes to it, except esc and
// enter which leave it; enter also flushes the pending debounced search.
// Otherwise:
//
//   - ←/→/home/end: page navigation through controller.HandleKey
//   - c/C: next/previous category, s: next sort, /: focus search
//   - j/k/pgup/pgdown: scroll the grid, t: back to top once shown
//   - r: reload, T: cycle theme, ?: help, q: quit
//
// Any key closes the help overlay.
//
// # Themes
//
// Dracula and Slate cycle with T. The chosen name is saved to the prefs
// file so the next start uses it.
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context:    ctx,
//		Controller: ctrl,
//		ThemeName:  prefs.Load(prefsPath).Theme,
//		PrefsPath:  prefsPath,
//		Logger:     logger,
//	})
package ui
