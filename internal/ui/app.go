package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmoretti/marquee/internal/dispatch"
	"github.com/kmoretti/marquee/internal/prefs"
	"github.com/kmoretti/marquee/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewBrowse View = iota
	ViewDetail
	ViewSignIn
)

// Filter selects which catalog slice the browse view shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterGenre
	FilterFormat
	FilterLanguage
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Dispatcher *dispatch.Dispatcher
	Store      *state.Store
	BaseURL    string
	ThemeName  string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	dispatcher *dispatch.Dispatcher
	store      *state.Store
	baseURL    string
	prefsPath  string

	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	snapshot state.Snapshot

	// Browse state
	selectedRow int
	filterMode  Filter
	filterIdx   int

	// Detail state
	detailViewport viewport.Model
	detailID       int64

	// Sign-in state; heap-allocated so the embedded form's value bindings
	// stay valid across model copies.
	signIn *signInState

	loading spinner.Model

	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	load := spinner.New()
	load.Spinner = spinner.Dot

	m := Model{
		ctx:        ctx,
		dispatcher: opts.Dispatcher,
		store:      opts.Store,
		baseURL:    opts.BaseURL,
		prefsPath:  prefsPath,
		theme:      GetTheme(opts.ThemeName),
		loading:    load,
	}
	if opts.Store != nil {
		m.snapshot = opts.Store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.loading.Tick,
		m.dispatchCmd(func(d *dispatch.Dispatcher) {
			d.GetAllMovies(m.ctx)
			d.GetTaxonomy(m.ctx)
		}),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
		}
		m.ready = true
		m.resizeDetailViewport()
		m.updateDetailViewport()
		return m, nil

	case refreshMsg:
		m.snapshot = m.readSnapshot()
		m.clampSelection()
		m.updateDetailViewport()
		if m.currentView == ViewSignIn && m.snapshot.Session.Authenticated {
			// The form completed and the login stuck; drop back to browsing.
			m.currentView = ViewBrowse
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd

	case signInDoneMsg:
		return m.handleSignInDone(msg)
	}

	if m.currentView == ViewSignIn {
		return m.updateSignIn(msg)
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

	var body string
	switch m.currentView {
	case ViewBrowse:
		body = m.renderBrowse()
	case ViewDetail:
		body = m.renderDetail()
	case ViewSignIn:
		body = m.renderSignIn()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCommandBar(),
		body,
	)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// The sign-in form owns the keyboard except for hard exits.
	if m.currentView == ViewSignIn {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.currentView = ViewBrowse
			return m, nil
		}
		return m.updateSignIn(msg)
	}

	switch msg.String() {
	case "ctrl+c", "e":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "s":
		if !m.snapshot.Session.Authenticated {
			return m.openSignIn()
		}
		return m, nil

	case "o":
		if m.snapshot.Session.Authenticated {
			return m, m.dispatchCmd(func(d *dispatch.Dispatcher) { d.Logout() })
		}
		return m, nil

	case "x":
		return m, m.dispatchCmd(func(d *dispatch.Dispatcher) {
			d.ClearAuthError()
			d.ClearMovieErrors()
		})

	case "r":
		return m, m.refreshCatalog()

	case "esc", "q":
		m.currentView = ViewBrowse
		return m, nil
	}

	switch m.currentView {
	case ViewBrowse:
		return m.handleBrowseKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	}

	return m, nil
}

// Messages

// refreshMsg signals that a dispatcher operation finished and the store
// snapshot should be re-read.
type refreshMsg struct{}

// Commands

// dispatchCmd runs fn off the UI goroutine and triggers a snapshot refresh
// when it returns.
func (m Model) dispatchCmd(fn func(d *dispatch.Dispatcher)) tea.Cmd {
	d := m.dispatcher
	if d == nil {
		return nil
	}
	return func() tea.Msg {
		fn(d)
		return refreshMsg{}
	}
}

func (m Model) readSnapshot() state.Snapshot {
	if m.store == nil {
		return state.Snapshot{}
	}
	return m.store.Snapshot()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
