package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cookanything/pantry/internal/controller"
	"github.com/cookanything/pantry/internal/prefs"
	"github.com/cookanything/pantry/internal/recipe"
	"github.com/cookanything/pantry/internal/render"
	"github.com/cookanything/pantry/internal/source"
)

type stubFetcher struct {
	list    []recipe.Recipe
	failure string
}

func (s stubFetcher) Fetch(_ context.Context, n source.Notifier) []recipe.Recipe {
	n.Loading(true)
	defer n.Loading(false)
	if s.failure != "" {
		n.Failed(s.failure)
		return []recipe.Recipe{}
	}
	return s.list
}

func recipes(n int) []recipe.Recipe {
	out := make([]recipe.Recipe, n)
	for i := range out {
		out[i] = recipe.Recipe{
			Name:     fmt.Sprintf("Recipe %02d", i+1),
			Category: []string{"dessert", "main"}[i%2],
			Cuisine:  "Italian",
			Tags:     []string{"quick"},
			Link:     fmt.Sprintf("https://example.com/r/%d", i+1),
			Date:     time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		}
	}
	return out
}

func newTestModel(t *testing.T, f stubFetcher, prefsPath string) (Model, *controller.Controller) {
	t.Helper()
	c := controller.New(controller.Options{
		Fetcher:  f,
		Location: controller.ParseLocation("/"),
		Debounce: 10 * time.Millisecond,
	})
	t.Cleanup(c.Close)
	c.Load(context.Background())

	m := New(Options{Controller: c, PrefsPath: prefsPath})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), c
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestArrowKeysChangePage(t *testing.T) {
	m, c := newTestModel(t, stubFetcher{list: recipes(30)}, "")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if c.Page() != 2 {
		t.Fatalf("Page after right = %d, want 2", c.Page())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if c.Page() != 2 {
		t.Fatalf("Page after right on last page = %d, want 2", c.Page())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyHome})
	if c.Page() != 1 {
		t.Fatalf("Page after home = %d, want 1", c.Page())
	}
	press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	if c.Page() != 2 {
		t.Fatalf("Page after end = %d, want 2", c.Page())
	}
}

func TestSearchInputCapturesKeys(t *testing.T) {
	m, c := newTestModel(t, stubFetcher{list: recipes(30)}, "")

	m = press(t, m, runes("/"))
	if !m.search.Focused() {
		t.Fatalf("search not focused after /")
	}

	// Arrow and filter keys belong to the input while it has focus.
	m = press(t, m, runes("c"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if c.Page() != 1 {
		t.Fatalf("Page = %d, want 1 while typing", c.Page())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.search.Focused() {
		t.Fatalf("search still focused after enter")
	}
	if got := c.View().Query.Search; got != "c" {
		t.Fatalf("Search = %q, want %q", got, "c")
	}
	if got := c.View().Query.Category; got != "" {
		t.Fatalf("Category = %q, want empty", got)
	}
}

func TestCategoryKeyCyclesOptions(t *testing.T) {
	m, c := newTestModel(t, stubFetcher{list: recipes(4)}, "")

	press(t, m, runes("c"))
	c.Flush()
	if got := c.View().Query.Category; got != "dessert" {
		t.Fatalf("Category = %q, want dessert", got)
	}
}

func TestThemeKeySavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m, _ := newTestModel(t, stubFetcher{list: recipes(1)}, path)

	m = press(t, m, runes("T"))
	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", m.theme.Name)
	}
	if got := prefs.Load(path).Theme; got != "Slate" {
		t.Fatalf("saved theme = %q, want Slate", got)
	}
}

func TestRenderPagerShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{list: recipes(30)}, "")

	out := m.renderPager()
	for _, want := range []string{"Prev", "Next", "Page 1 of 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("pager %q missing %q", out, want)
		}
	}
}

func TestRenderGridShowsFailureNotice(t *testing.T) {
	m, c := newTestModel(t, stubFetcher{failure: source.FailureMessage}, "")
	m.applyView(c.View())

	if out := m.renderGrid(); !strings.Contains(out, "Could not load recipes") {
		t.Fatalf("grid = %q, want failure notice", out)
	}
}

func TestRenderGridShowsCards(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{list: recipes(3)}, "")

	out := m.renderGrid()
	for _, want := range []string{"Recipe 01", "Recipe 03", "#quick"} {
		if !strings.Contains(out, want) {
			t.Fatalf("grid missing %q", want)
		}
	}
}

func TestHelpClosesOnAnyKey(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{list: recipes(1)}, "")

	m = press(t, m, runes("?"))
	if !m.showHelp {
		t.Fatalf("help not shown")
	}
	if out := m.View(); !strings.Contains(out, "Keyboard Shortcuts") {
		t.Fatalf("help view missing title")
	}
	m = press(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("help still shown")
	}
}

func TestMailboxKeepsLatestView(t *testing.T) {
	b := newMailbox()
	b.post(controller.View{Location: "/?page=2", ScrollTop: true})
	b.post(controller.View{Location: "/?page=3"})

	v := <-b.ch
	if v.Location != "/?page=3" {
		t.Fatalf("Location = %q, want latest", v.Location)
	}
	if !v.ScrollTop {
		t.Fatalf("ScrollTop lost when an older view was dropped")
	}
	select {
	case extra := <-b.ch:
		t.Fatalf("unexpected extra view %+v", extra)
	default:
	}
}

func TestCycleOptionWraps(t *testing.T) {
	opts := []render.Option{{Value: ""}, {Value: "a"}, {Value: "b"}}

	if got := cycleOption(opts, "b", 1); got != "" {
		t.Fatalf("next after last = %q, want first", got)
	}
	if got := cycleOption(opts, "", -1); got != "b" {
		t.Fatalf("prev before first = %q, want last", got)
	}
	if got := cycleOption(opts, "missing", 1); got != "a" {
		t.Fatalf("next from unknown = %q, want a", got)
	}
}

func TestNextThemeCycles(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := GetTheme("nope").Name; got != "Dracula" {
		t.Fatalf("GetTheme(nope) = %q, want Dracula", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("https://example.com/recipes/pasta", 12); len([]rune(got)) != 12 {
		t.Fatalf("truncateMiddle length = %d, want 12 (%q)", len([]rune(got)), got)
	}
	if got := truncate("abcdef", 5); got != "ab..." {
		t.Fatalf("truncate = %q, want ab...", got)
	}
}
