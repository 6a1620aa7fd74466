// Package render turns computed pages into presentation models that both the
// terminal and HTML painters draw.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cookanything/pantry/internal/catalog"
	"github.com/cookanything/pantry/internal/recipe"
)

const (
	// EmptyNotice replaces the grid when there is nothing to show.
	EmptyNotice = "No recipes found."
	// FallbackImage is used when a card image is missing or fails to load.
	FallbackImage = "images/placeholder.jpg"
	// AllCategoriesLabel labels the "no category filter" option.
	AllCategoriesLabel = "All Categories"
)

// Card is one recipe tile.
type Card struct {
	Name          string
	Category      string
	Cuisine       string
	Meta          string // "category | cuisine"
	Image         string
	FallbackImage string
	Link          string
	Tags          []string
}

// Grid is the card area. Notice is set instead of Cards when empty.
type Grid struct {
	Cards  []Card
	Notice string
}

// Empty reports whether the grid shows a notice instead of cards.
func (g Grid) Empty() bool { return g.Notice != "" }

// Cards builds the grid for one page of recipes.
func Cards(list []recipe.Recipe) Grid {
	if len(list) == 0 {
		return Grid{Notice: EmptyNotice}
	}
	cards := make([]Card, 0, len(list))
	for _, r := range list {
		cards = append(cards, Card{
			Name:          r.Name,
			Category:      r.Category,
			Cuisine:       r.Cuisine,
			Meta:          r.Category + " | " + r.Cuisine,
			Image:         r.Image,
			FallbackImage: FallbackImage,
			Link:          r.Link,
			Tags:          r.Tags,
		})
	}
	return Grid{Cards: cards}
}

// Notice builds a grid that only carries a message, used for fetch failures.
func Notice(message string) Grid {
	return Grid{Notice: message}
}

// Control is one entry of the page-number strip: a page button or an
// ellipsis marker.
type Control struct {
	Page     int
	Label    string // accessible label, "Page N"
	Current  bool
	Ellipsis bool
}

// Text returns what the control displays.
func (c Control) Text() string {
	if c.Ellipsis {
		return "…"
	}
	return fmt.Sprint(c.Page)
}

// AriaCurrent returns the aria-current attribute value.
func (c Control) AriaCurrent() string {
	if c.Current {
		return "page"
	}
	return "false"
}

// Pagination describes the pager for the current page.
type Pagination struct {
	Current      int
	Total        int
	PrevDisabled bool
	NextDisabled bool
	Controls     []Control
	Status       string
}

// windowSize is the number of middle pages shown around the current page.
const windowSize = 5

// Paginate builds pager metadata for totalItems records viewed at page
// current. Page 1 and the last page are always present when there is more
// than one page; the pages between them are a sliding window of up to five
// around current, with an ellipsis on each side that does not touch an end.
func Paginate(totalItems, current, pageSize int) Pagination {
	total := catalog.PageCount(totalItems, pageSize)
	p := Pagination{
		Current:      current,
		Total:        total,
		PrevDisabled: current <= 1,
		NextDisabled: current >= total,
		Status:       fmt.Sprintf("Page %d of %d", current, total),
	}
	if total <= 1 {
		return p
	}

	page := func(n int) Control {
		return Control{Page: n, Label: fmt.Sprintf("Page %d", n), Current: n == current}
	}

	// A page past either end anchors the window at that end.
	anchor := min(max(current, 1), total)
	start := max(2, anchor-2)
	end := min(total-1, start+windowSize-1)
	if end-start < windowSize-1 {
		start = max(2, end-(windowSize-1))
	}

	p.Controls = append(p.Controls, page(1))
	if start > 2 {
		p.Controls = append(p.Controls, Control{Ellipsis: true})
	}
	for n := start; n <= end; n++ {
		p.Controls = append(p.Controls, page(n))
	}
	if end < total-1 {
		p.Controls = append(p.Controls, Control{Ellipsis: true})
	}
	p.Controls = append(p.Controls, page(total))
	return p
}

// Option is one entry of a select control.
type Option struct {
	Value string
	Label string
}

// CategoryOptions prepends the "All Categories" option to categories and
// capitalizes their labels.
func CategoryOptions(categories []string) []Option {
	out := make([]Option, 0, len(categories)+1)
	out = append(out, Option{Value: "", Label: AllCategoriesLabel})
	for _, c := range categories {
		out = append(out, Option{Value: c, Label: capitalize(c)})
	}
	return out
}

// SortOptions lists the sort choices, default first.
func SortOptions() []Option {
	labels := map[catalog.SortKey]string{
		catalog.SortRecent:   "Most Recent",
		catalog.SortName:     "Name (A–Z)",
		catalog.SortCuisine:  "Cuisine",
		catalog.SortCategory: "Category",
	}
	out := make([]Option, 0, len(catalog.SortKeys))
	for _, key := range catalog.SortKeys {
		out = append(out, Option{Value: string(key), Label: labels[key]})
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}
