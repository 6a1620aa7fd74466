// Package catalog filters, sorts and pages recipe lists. Every function is
// pure: inputs are never mutated and results are fresh slices.
package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cookanything/pantry/internal/recipe"
)

// PageSize is the default number of cards per page.
const PageSize = 24

// SortKey selects an ordering.
type SortKey string

const (
	SortRecent   SortKey = "recent"
	SortName     SortKey = "name"
	SortCuisine  SortKey = "cuisine"
	SortCategory SortKey = "category"
)

// SortKeys lists the selectable orderings, default first.
var SortKeys = []SortKey{SortRecent, SortName, SortCuisine, SortCategory}

// Query is the user's current filter and sort selection.
type Query struct {
	Category string
	Search   string
	Sort     SortKey
}

// Result is one computed page.
type Result struct {
	Total int // records matching the filter
	Pages int
	Page  []recipe.Recipe
}

// Apply filters, sorts and slices list for the given 1-based page.
func Apply(list []recipe.Recipe, q Query, pageSize, page int) Result {
	sorted := Sort(Filter(list, q.Category, q.Search), q.Sort)
	return Result{
		Total: len(sorted),
		Pages: PageCount(len(sorted), pageSize),
		Page:  Paginate(sorted, pageSize, page),
	}
}

// Filter keeps recipes whose category equals category (ignoring case) and
// whose name, cuisine or any tag contains search (ignoring case). Empty
// selections match everything.
func Filter(list []recipe.Recipe, category, search string) []recipe.Recipe {
	category = strings.ToLower(category)
	search = strings.ToLower(search)

	out := make([]recipe.Recipe, 0, len(list))
	for _, r := range list {
		if category != "" && strings.ToLower(r.Category) != category {
			continue
		}
		if search != "" && !matches(r, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r recipe.Recipe, search string) bool {
	if strings.Contains(strings.ToLower(r.Name), search) ||
		strings.Contains(strings.ToLower(r.Cuisine), search) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// Sort returns a stably sorted copy of list. Text keys sort ascending with
// locale-aware collation; recent and unknown keys sort newest first.
//
// Dates that fail to parse compare equal to everything, so a list with
// unparsable dates is not totally ordered and keeps much of its input order.
func Sort(list []recipe.Recipe, key SortKey) []recipe.Recipe {
	out := slices.Clone(list)
	if out == nil {
		out = []recipe.Recipe{}
	}

	switch key {
	case SortName, SortCuisine, SortCategory:
		col := collate.New(language.English)
		field := textField(key)
		slices.SortStableFunc(out, func(a, b recipe.Recipe) int {
			return col.CompareString(field(a), field(b))
		})
	default:
		sortByDate(out)
	}
	return out
}

func textField(key SortKey) func(recipe.Recipe) string {
	switch key {
	case SortCuisine:
		return func(r recipe.Recipe) string { return r.Cuisine }
	case SortCategory:
		return func(r recipe.Recipe) string { return r.Category }
	default:
		return func(r recipe.Recipe) string { return r.Name }
	}
}

func sortByDate(list []recipe.Recipe) {
	type dated struct {
		r  recipe.Recipe
		t  time.Time
		ok bool
	}
	items := make([]dated, len(list))
	for i, r := range list {
		t, ok := ParseDate(r.Date)
		items[i] = dated{r: r, t: t, ok: ok}
	}
	slices.SortStableFunc(items, func(a, b dated) int {
		if !a.ok || !b.ok {
			return 0
		}
		return b.t.Compare(a.t)
	})
	for i := range items {
		list[i] = items[i].r
	}
}

// ParseDate parses free-form date text. ok is false for empty or
// unrecognized input.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Paginate returns the 1-based page of list. Out-of-range pages, including
// page < 1, are empty.
func Paginate(list []recipe.Recipe, pageSize, page int) []recipe.Recipe {
	if pageSize <= 0 || page < 1 || page > PageCount(len(list), pageSize) {
		return []recipe.Recipe{}
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return []recipe.Recipe{}
	}
	end := min(start+pageSize, len(list))
	return slices.Clone(list[start:end])
}

// PageCount returns ceil(total/pageSize), or 0 when there is nothing to page.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(list []recipe.Recipe) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range list {
		if r.Category == "" {
			continue
		}
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}
