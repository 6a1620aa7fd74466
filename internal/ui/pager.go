package ui

import (
	"strings"

	"github.com/cookanything/pantry/internal/render"
)

// renderPager renders the pagination controls, the page status and the
// back-to-top hint.
func (m Model) renderPager() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	p := m.view.Pagination

	var b strings.Builder

	prevStyle := styles.AccentText
	if p.PrevDisabled {
		prevStyle = styles.FaintText
	}
	b.WriteString(bg.Render("‹ Prev", prevStyle))

	for _, c := range p.Controls {
		b.WriteString(bg.Space())
		b.WriteString(m.renderControl(c, styles, bg))
	}

	nextStyle := styles.AccentText
	if p.NextDisabled {
		nextStyle = styles.FaintText
	}
	b.WriteString(bg.Space())
	b.WriteString(bg.Render("Next ›", nextStyle))

	if p.Status != "" {
		b.WriteString(bg.Spaces(3))
		b.WriteString(bg.Render(p.Status, styles.MutedText))
	}

	if m.view.ShowBackToTop {
		b.WriteString(bg.Spaces(3))
		b.WriteString(bg.Render("t", styles.AccentText) + bg.Sep(":") + bg.Render("↑ Top", styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(b.String())
}

func (m Model) renderControl(c render.Control, styles Styles, bg BgStyle) string {
	switch {
	case c.Ellipsis:
		return bg.Render(c.Text(), styles.FaintText)
	case c.Current:
		return m.theme.Styles().ActivePage.Render(c.Text())
	default:
		return bg.Render(c.Text(), styles.Page)
	}
}
