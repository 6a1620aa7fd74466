package controller

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cookanything/pantry/internal/catalog"
	"github.com/cookanything/pantry/internal/debounce"
	"github.com/cookanything/pantry/internal/recipe"
	"github.com/cookanything/pantry/internal/render"
	"github.com/cookanything/pantry/internal/source"
	"github.com/cookanything/pantry/internal/state"
)

// Fetcher loads the full recipe list. *source.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, n source.Notifier) []recipe.Recipe
}

var _ Fetcher = (*source.Fetcher)(nil)

// Key is a pagination shortcut.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

// View is everything a painter needs to draw the page.
type View struct {
	Grid       render.Grid
	Pagination render.Pagination
	Categories []render.Option
	Sorts      []render.Option
	Query      catalog.Query
	Matches    int // records passing the filter

	Loading       bool
	Loaded        bool
	ShowBackToTop bool
	// ScrollTop asks the painter to scroll the card area back to the top.
	ScrollTop bool

	Location string
	Demo     bool
}

// Observer is notified with a fresh View whenever the page changes.
type Observer interface {
	Render(View)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(View)

func (f ObserverFunc) Render(v View) { f(v) }

// Options configure New.
type Options struct {
	Fetcher         Fetcher
	Location        *Location
	PageSize        int
	Debounce        time.Duration
	ScrollThreshold int
	Demo            bool
	Query           catalog.Query
	Logger          *slog.Logger
}

// Controller owns one browsing session: the recipe list, the current page,
// the filter inputs and the observers painting them.
type Controller struct {
	fetcher         Fetcher
	session         *state.Session
	location        *Location
	debouncer       *debounce.Debouncer
	pageSize        int
	scrollThreshold int
	logger          *slog.Logger

	mu         sync.Mutex
	query      catalog.Query
	categories []render.Option
	loading    bool
	failure    string
	showTop    bool
	demo       bool
	observers  map[int]Observer
	nextID     int
}

// New builds a Controller. The initial page comes from the location.
func New(opts Options) *Controller {
	loc := opts.Location
	if loc == nil {
		loc = ParseLocation("/")
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = catalog.PageSize
	}
	delay := opts.Debounce
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	threshold := opts.ScrollThreshold
	if threshold <= 0 {
		threshold = 10
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	query := opts.Query
	if query.Sort == "" {
		query.Sort = catalog.SortRecent
	}

	return &Controller{
		fetcher:         opts.Fetcher,
		session:         state.NewSession(loc.Page()),
		location:        loc,
		debouncer:       debounce.New(delay),
		pageSize:        pageSize,
		scrollThreshold: threshold,
		logger:          logger,
		query:           query,
		categories:      render.CategoryOptions(nil),
		demo:            opts.Demo,
		observers:       make(map[int]Observer),
	}
}

// Subscribe registers o and returns a function that removes it.
func (c *Controller) Subscribe(o Observer) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = o
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Load fetches the recipe list, fills the category options and renders the
// first page. The location is left untouched.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.failure = ""
	c.mu.Unlock()

	var list []recipe.Recipe
	if c.fetcher != nil {
		list = c.fetcher.Fetch(ctx, c)
	}
	c.session.SetRecipes(list)

	c.mu.Lock()
	c.categories = render.CategoryOptions(catalog.Categories(list))
	c.mu.Unlock()

	c.logger.Debug("session loaded", "recipes", len(list), "page", c.session.Page())
	c.update(false)
}

// Reload re-reads the page from the location and loads again, like a full
// page refresh.
func (c *Controller) Reload(ctx context.Context) {
	c.debouncer.Cancel()
	c.session.SetPage(c.location.Page())
	c.Load(ctx)
}

// Loading implements source.Notifier.
func (c *Controller) Loading(active bool) {
	c.mu.Lock()
	c.loading = active
	c.mu.Unlock()
	c.notify(false)
}

// Failed implements source.Notifier.
func (c *Controller) Failed(message string) {
	c.mu.Lock()
	c.failure = message
	c.mu.Unlock()
}

// SetCategory updates the category filter and schedules a recompute.
func (c *Controller) SetCategory(category string) {
	c.mu.Lock()
	c.query.Category = category
	c.mu.Unlock()
	c.schedule()
}

// SetSearch updates the search text and schedules a recompute.
func (c *Controller) SetSearch(search string) {
	c.mu.Lock()
	c.query.Search = search
	c.mu.Unlock()
	c.schedule()
}

// SetSort updates the sort key and schedules a recompute.
func (c *Controller) SetSort(key catalog.SortKey) {
	c.mu.Lock()
	c.query.Sort = key
	c.mu.Unlock()
	c.schedule()
}

// ApplyQuery replaces the whole query without debouncing and without
// resetting the page. The HTML server uses it to render a requested URL.
func (c *Controller) ApplyQuery(q catalog.Query) {
	if q.Sort == "" {
		q.Sort = catalog.SortRecent
	}
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

// Flush runs a pending debounced recompute immediately.
func (c *Controller) Flush() {
	c.debouncer.Flush()
}

// Close cancels any pending recompute.
func (c *Controller) Close() {
	c.debouncer.Cancel()
}

func (c *Controller) schedule() {
	c.debouncer.Trigger(func() {
		c.session.SetPage(1)
		c.update(true)
	})
}

// Prev moves one page back when not on the first page.
func (c *Controller) Prev() bool {
	page := c.session.Page()
	if page <= 1 {
		return false
	}
	c.goTo(page - 1)
	return true
}

// Next moves one page forward when not on the last page.
func (c *Controller) Next() bool {
	page := c.session.Page()
	if page >= c.pageCount() {
		return false
	}
	c.goTo(page + 1)
	return true
}

// First jumps to page 1 unless already there.
func (c *Controller) First() bool {
	if c.session.Page() == 1 {
		return false
	}
	c.goTo(1)
	return true
}

// Last jumps to the last page unless already there or there are no pages.
func (c *Controller) Last() bool {
	total := c.pageCount()
	if total == 0 || c.session.Page() == total {
		return false
	}
	c.goTo(total)
	return true
}

// GoTo shows page n, as clicking a page number does.
func (c *Controller) GoTo(n int) {
	if n < 1 {
		return
	}
	c.goTo(n)
}

func (c *Controller) goTo(n int) {
	c.session.SetPage(n)
	c.update(true)
}

// HandleKey applies a pagination shortcut. Keys typed into a text input are
// ignored. It reports whether the page changed.
func (c *Controller) HandleKey(k Key, inTextInput bool) bool {
	if inTextInput {
		return false
	}
	switch k {
	case KeyLeft:
		return c.Prev()
	case KeyRight:
		return c.Next()
	case KeyHome:
		return c.First()
	case KeyEnd:
		return c.Last()
	default:
		return false
	}
}

// Scroll reports the card area's scroll offset and toggles the back-to-top
// affordance once it passes the threshold.
func (c *Controller) Scroll(offset int) {
	show := offset > c.scrollThreshold
	c.mu.Lock()
	changed := show != c.showTop
	c.showTop = show
	c.mu.Unlock()
	if changed {
		c.notify(false)
	}
}

// ScrollToTop asks painters to scroll back to the top.
func (c *Controller) ScrollToTop() {
	c.mu.Lock()
	c.showTop = false
	c.mu.Unlock()
	c.notify(true)
}

// Page returns the current page.
func (c *Controller) Page() int {
	return c.session.Page()
}

// Location returns the session's address bar.
func (c *Controller) Location() *Location {
	return c.location
}

// View computes the current page without notifying observers.
func (c *Controller) View() View {
	return c.view(false)
}

func (c *Controller) pageCount() int {
	c.mu.Lock()
	q := c.query
	c.mu.Unlock()
	filtered := catalog.Filter(c.session.Recipes(), q.Category, q.Search)
	return catalog.PageCount(len(filtered), c.pageSize)
}

// update recomputes and renders; push records the page in the location.
func (c *Controller) update(push bool) {
	if push {
		c.location.SetPage(c.session.Page())
	}
	c.notify(true)
}

func (c *Controller) view(scrollTop bool) View {
	c.mu.Lock()
	q := c.query
	categories := c.categories
	loading := c.loading
	failure := c.failure
	showTop := c.showTop
	demo := c.demo
	c.mu.Unlock()

	snap := c.session.Snapshot()
	res := catalog.Apply(snap.Recipes, q, c.pageSize, snap.Page)

	grid := render.Cards(res.Page)
	if failure != "" && len(snap.Recipes) == 0 {
		grid = render.Notice(failure)
	}

	return View{
		Grid:          grid,
		Pagination:    render.Paginate(res.Total, snap.Page, c.pageSize),
		Categories:    categories,
		Sorts:         render.SortOptions(),
		Query:         q,
		Matches:       res.Total,
		Loading:       loading,
		Loaded:        snap.Loaded,
		ShowBackToTop: showTop,
		ScrollTop:     scrollTop,
		Location:      c.location.String(),
		Demo:          demo,
	}
}

func (c *Controller) notify(scrollTop bool) {
	v := c.view(scrollTop)

	c.mu.Lock()
	observers := make([]Observer, 0, len(c.observers))
	for _, o := range c.observers {
		observers = append(observers, o)
	}
	c.mu.Unlock()

	for _, o := range observers {
		o.Render(v)
	}
}
