package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cookanything/pantry/internal/render"
)

const (
	cardWidth    = 34 // including border
	cardGap      = 1
	maxCardTags  = 4
	cardTextRoom = cardWidth - 4 // border + padding
)

// renderGrid renders the visible cards in as many columns as fit, or the
// grid notice when there is nothing to show.
func (m Model) renderGrid() string {
	styles := m.theme.Styles()

	if !m.hasView || !m.view.Loaded {
		return ""
	}

	if m.view.Grid.Empty() {
		notice := styles.MutedText.Render(m.view.Grid.Notice)
		return lipgloss.Place(m.width, maxInt(3, m.grid.Height), lipgloss.Center, lipgloss.Center, notice)
	}

	cols := gridColumns(m.width)
	cards := make([]string, 0, len(m.view.Grid.Cards))
	for _, c := range m.view.Grid.Cards {
		cards = append(cards, m.renderCard(c, styles))
	}

	gap := strings.Repeat(" ", cardGap)
	rows := make([]string, 0, len(cards)/cols+1)
	for start := 0; start < len(cards); start += cols {
		end := minInt(start+cols, len(cards))
		row := make([]string, 0, 2*(end-start))
		for i, card := range cards[start:end] {
			if i > 0 {
				row = append(row, gap)
			}
			row = append(row, card)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard renders one recipe card: title, meta line, tags and link.
func (m Model) renderCard(c render.Card, styles Styles) string {
	lines := []string{
		styles.CardTitle.Render(truncate(c.Name, cardTextRoom)),
	}
	if c.Meta != "" {
		lines = append(lines, styles.MutedText.Render(truncate(c.Meta, cardTextRoom)))
	}
	if tags := formatTags(c.Tags, cardTextRoom); tags != "" {
		lines = append(lines, styles.AccentText.Render(tags))
	}
	lines = append(lines, styles.FaintText.Render(truncateMiddle(c.Link, cardTextRoom)))

	return styles.Card.
		Width(cardWidth - 2).
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Render(strings.Join(lines, "\n"))
}

// gridColumns returns how many cards fit side by side.
func gridColumns(width int) int {
	cols := (width + cardGap) / (cardWidth + cardGap)
	return maxInt(1, cols)
}

// formatTags renders up to maxCardTags tags as "#tag" chips within limit.
func formatTags(tags []string, limit int) string {
	if len(tags) == 0 {
		return ""
	}
	shown := tags
	if len(shown) > maxCardTags {
		shown = shown[:maxCardTags]
	}
	chips := make([]string, 0, len(shown)+1)
	for _, t := range shown {
		chips = append(chips, "#"+t)
	}
	if extra := len(tags) - len(shown); extra > 0 {
		chips = append(chips, "+"+itoa(extra))
	}
	return truncate(strings.Join(chips, " "), limit)
}
