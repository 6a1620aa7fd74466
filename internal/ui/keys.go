package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the recipe browser.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Reload     key.Binding

	// Pagination
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding

	// Filters
	Search       key.Binding
	LeaveSearch  key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	CycleSort    key.Binding

	// Scrolling
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	BackToTop key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload recipes"),
		),

		PrevPage: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "First page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "Last page"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		LeaveSearch: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc/enter", "Leave search"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Previous category"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle sort"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "Page down"),
		),
		BackToTop: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Back to top"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Search, k.NextCategory, k.CycleSort, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.Search, k.LeaveSearch, k.NextCategory, k.PrevCategory, k.CycleSort},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.BackToTop},
		{k.Reload, k.CycleTheme, k.Help, k.Quit},
	}
}
