package ui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cookanything/pantry/internal/catalog"
	"github.com/cookanything/pantry/internal/controller"
	"github.com/cookanything/pantry/internal/prefs"
	"github.com/cookanything/pantry/internal/render"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *controller.Controller
	ThemeName  string
	PrefsPath  string
	Logger     *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	ctrl      *controller.Controller
	views     *mailbox
	prefsPath string
	logger    *slog.Logger
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Latest controller view
	view    controller.View
	hasView bool

	search  textinput.Model
	spinner spinner.Model
	grid    viewport.Model

	showHelp bool
}

// New creates a new Bubble Tea model and subscribes it to the controller.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ti := textinput.New()
	ti.Placeholder = "Search recipes, cuisines, tags"
	ti.Prompt = "/ "
	ti.CharLimit = 120
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		views:     newMailbox(),
		prefsPath: opts.PrefsPath,
		logger:    logger,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		search:    ti,
		spinner:   sp,
		grid:      viewport.New(0, 0),
	}
	if m.ctrl != nil {
		m.ctrl.Subscribe(controller.ObserverFunc(m.views.post))
		m.view = m.ctrl.View()
		m.hasView = true
		m.search.SetValue(m.view.Query.Search)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		listenCmd(m.ctx, m.views),
	}
	if m.ctrl != nil {
		cmds = append(cmds, loadCmd(m.ctx, m.ctrl))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case viewMsg:
		m.applyView(controller.View(msg))
		return m, listenCmd(m.ctx, m.views)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
			}
		}
		m.refreshGrid()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.ctrl == nil {
			return m, nil
		}
		return m, reloadCmd(m.ctx, m.ctrl)

	case key.Matches(msg, m.keys.Search):
		m.layout()
		return m, m.search.Focus()
	}

	if m.ctrl == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.PrevPage):
		m.ctrl.HandleKey(controller.KeyLeft, false)
	case key.Matches(msg, m.keys.NextPage):
		m.ctrl.HandleKey(controller.KeyRight, false)
	case key.Matches(msg, m.keys.FirstPage):
		m.ctrl.HandleKey(controller.KeyHome, false)
	case key.Matches(msg, m.keys.LastPage):
		m.ctrl.HandleKey(controller.KeyEnd, false)

	case key.Matches(msg, m.keys.NextCategory):
		m.ctrl.SetCategory(cycleOption(m.view.Categories, m.view.Query.Category, 1))
	case key.Matches(msg, m.keys.PrevCategory):
		m.ctrl.SetCategory(cycleOption(m.view.Categories, m.view.Query.Category, -1))
	case key.Matches(msg, m.keys.CycleSort):
		m.ctrl.SetSort(catalog.SortKey(cycleOption(m.view.Sorts, string(m.view.Query.Sort), 1)))

	case key.Matches(msg, m.keys.Up):
		m.grid.ScrollUp(1)
		m.ctrl.Scroll(m.grid.YOffset)
	case key.Matches(msg, m.keys.Down):
		m.grid.ScrollDown(1)
		m.ctrl.Scroll(m.grid.YOffset)
	case key.Matches(msg, m.keys.PageUp):
		m.grid.PageUp()
		m.ctrl.Scroll(m.grid.YOffset)
	case key.Matches(msg, m.keys.PageDown):
		m.grid.PageDown()
		m.ctrl.Scroll(m.grid.YOffset)
	case key.Matches(msg, m.keys.BackToTop):
		if m.view.ShowBackToTop {
			m.ctrl.ScrollToTop()
		}
	}

	return m, nil
}

// handleSearchKey routes keys to the focused search input. Every edit
// schedules a debounced recompute.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.LeaveSearch) {
		m.search.Blur()
		if msg.String() == "enter" && m.ctrl != nil {
			m.ctrl.Flush()
		}
		m.layout()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before && m.ctrl != nil {
		m.ctrl.SetSearch(value)
	}
	return m, cmd
}

// applyView stores a controller view and repaints the grid.
func (m *Model) applyView(v controller.View) {
	demoChanged := v.Demo != m.view.Demo
	m.view = v
	m.hasView = true
	if demoChanged {
		m.layout()
	}
	m.refreshGrid()
	if v.ScrollTop {
		m.grid.GotoTop()
	}
}

// layout sizes the grid viewport to whatever the chrome leaves over.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.search.Width = maxInt(10, minInt(40, m.width/3))
	m.grid.Width = m.width
	m.grid.Height = maxInt(1, m.height-m.chromeHeight())
	m.refreshGrid()
}

func (m Model) chromeHeight() int {
	// header, filter bar, pager, command bar
	h := 4
	if m.view.Demo {
		h++
	}
	return h
}

func (m *Model) refreshGrid() {
	if !m.ready {
		return
	}
	m.grid.SetContent(m.renderGrid())
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	parts := []string{m.renderHeader()}
	if m.view.Demo {
		parts = append(parts, m.renderBanner())
	}
	parts = append(parts,
		m.renderFilterBar(),
		m.grid.View(),
		m.renderPager(),
		m.renderCommandBar(),
	)
	return strings.Join(parts, "\n")
}

// cycleOption returns the value after (or before, for step -1) current in
// options, wrapping around.
func cycleOption(options []render.Option, current string, step int) string {
	if len(options) == 0 {
		return current
	}
	idx := 0
	for i, o := range options {
		if o.Value == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(options)) % len(options)
	return options[idx].Value
}

// mailbox hands controller views to the Bubble Tea loop. It keeps only the
// latest view so observers never block; a dropped view's scroll request is
// carried over.
type mailbox struct {
	mu sync.Mutex
	ch chan controller.View
}

func newMailbox() *mailbox {
	return &mailbox{ch: make(chan controller.View, 1)}
}

func (b *mailbox) post(v controller.View) {
	b.mu.Lock()
	defer b.mu.Unlock()
	select {
	case prev := <-b.ch:
		v.ScrollTop = v.ScrollTop || prev.ScrollTop
	default:
	}
	b.ch <- v
}

// Messages

type viewMsg controller.View

// Commands

func listenCmd(ctx context.Context, b *mailbox) tea.Cmd {
	return func() tea.Msg {
		select {
		case v := <-b.ch:
			return viewMsg(v)
		case <-ctx.Done():
			return nil
		}
	}
}

func loadCmd(ctx context.Context, c *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		c.Load(ctx)
		return nil
	}
}

func reloadCmd(ctx context.Context, c *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		c.Reload(ctx)
		return nil
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if m.ctrl != nil {
		m.ctrl.Close()
	}
	return err
}

var _ tea.Model = Model{}
