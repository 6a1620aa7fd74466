package ui

import (
	"fmt"
	"strings"

	"github.com/cookanything/pantry/internal/demo"
	"github.com/cookanything/pantry/internal/render"
)

// renderHeader renders the top bar: logo, load state, match count and the
// current location.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("pantry", styles.Logo)}

	switch {
	case m.view.Loading:
		parts = append(parts,
			bg.Render(m.spinner.View(), styles.AccentText)+bg.Space()+
				bg.Render("Loading recipes...", styles.WarningText))
	case m.view.Loaded:
		parts = append(parts, bg.Render(matchLabel(m.view.Matches), styles.Text))
	default:
		parts = append(parts, bg.Render("Connecting...", styles.MutedText))
	}

	if m.view.Location != "" {
		width := maxInt(10, m.width/3)
		parts = append(parts,
			bg.Render("at", styles.FaintText)+bg.Space()+
				bg.Render(truncateMiddle(m.view.Location, width), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderBanner renders the demo notice line.
func (m Model) renderBanner() string {
	styles := m.theme.Styles()
	text := fmt.Sprintf("%s %s %s", demo.LeadText, demo.LinkText, demo.LicenseURL)
	return styles.Banner.Width(m.width).Render(truncate(text, m.width-2))
}

// renderFilterBar renders the category, search and sort controls.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(3)

	category := optionLabel(m.view.Categories, m.view.Query.Category, render.AllCategoriesLabel)
	sortLabel := optionLabel(m.view.Sorts, string(m.view.Query.Sort), "")

	searchStyle := styles.MutedText
	if m.search.Focused() {
		searchStyle = styles.Text
	}
	search := m.search.Value()
	if search == "" && !m.search.Focused() {
		search = "/ to search"
	}
	searchPart := bg.Render("Search", styles.FaintText) + bg.Space() + bg.Render(search, searchStyle)
	if m.search.Focused() {
		searchPart = bg.Render("Search", styles.FaintText) + bg.Space() + m.search.View()
	}

	parts := []string{
		bg.Render("Category", styles.FaintText) + bg.Space() + bg.Render(category, styles.AccentText),
		searchPart,
		bg.Render("Sort", styles.FaintText) + bg.Space() + bg.Render(sortLabel, styles.AccentText),
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderCommandBar renders the key hints at the bottom of the screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	if m.search.Focused() {
		commands = []cmd{
			{"enter", "Apply"},
			{"esc", "Done"},
		}
	} else {
		commands = []cmd{
			{"←/→", "Page"},
			{"/", "Search"},
			{"c", "Category"},
			{"s", "Sort"},
			{"j/k", "Scroll"},
			{"r", "Reload"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

func matchLabel(n int) string {
	if n == 1 {
		return "1 recipe"
	}
	return fmt.Sprintf("%d recipes", n)
}

// optionLabel returns the label of the option whose value is current.
func optionLabel(options []render.Option, current, fallback string) string {
	for _, o := range options {
		if o.Value == current {
			return o.Label
		}
	}
	if fallback != "" {
		return fallback
	}
	return current
}
