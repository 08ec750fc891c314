package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/medilearn/internal/nav"
	"github.com/jask/medilearn/internal/taxonomy"
)

type focusPane int

const (
	focusLibrary focusPane = iota
	focusTopics
)

// Options holds presentation settings for App.
type Options struct {
	Title                 string
	SidebarWidth          int
	SidebarCollapsedWidth int
	PanelWidth            int
	// Keys overrides default key bindings by action name.
	Keys map[string][]string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "MediLearn"
	}
	if o.SidebarWidth <= 0 {
		o.SidebarWidth = 24
	}
	if o.SidebarCollapsedWidth <= 0 {
		o.SidebarCollapsedWidth = 5
	}
	if o.PanelWidth <= 0 {
		o.PanelWidth = 28
	}
	return o
}

// App renders a nav.Machine and forwards key presses to it. It owns only
// presentation state: cursors, focus and terminal size.
type App struct {
	machine *nav.Machine
	tax     taxonomy.Provider
	keys    *KeyRegistry
	log     *zap.Logger
	opts    Options

	focus       focusPane
	libCursor   int
	topicCursor int
	width       int
	height      int
	status      string
	statusErr   bool
}

func New(machine *nav.Machine, opts Options, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.withDefaults()
	return &App{
		machine: machine,
		tax:     machine.Provider(),
		keys:    NewKeyRegistry(ApplyActionKeybindings(DefaultKeyBindings(), opts.Keys)),
		log:     log,
		opts:    opts,
		width:   100,
		height:  30,
	}
}

// LogTransitions returns a nav observer that records every transition.
func LogTransitions(log *zap.Logger) func(nav.Transition) {
	return func(t nav.Transition) {
		log.Debug("transition",
			zap.String("op", string(t.Op)),
			zap.String("name", t.Name),
			zap.Bool("changed", t.Changed()),
			zap.String("path", t.To.Path()),
			zap.Bool("sidebar", t.To.SidebarOpen),
		)
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) scope() string {
	if a.focus == focusTopics {
		return scopeTopics
	}
	return scopeLibrary
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		switch a.keys.Action(m, a.scope()) {
		case actionQuit:
			return a, tea.Quit
		case actionToggleSidebar:
			a.machine.ToggleSidebar()
		case actionFocusNext:
			a.cycleFocus()
		case actionUp:
			a.moveCursor(-1)
		case actionDown:
			a.moveCursor(1)
		case actionActivate:
			a.activate()
		}
	}
	return a, nil
}

func (a *App) cycleFocus() {
	if a.focus == focusLibrary && a.machine.State().TopicPanelVisible() {
		a.focus = focusTopics
		return
	}
	a.focus = focusLibrary
}

func (a *App) moveCursor(delta int) {
	if a.focus == focusTopics {
		n := len(a.topics())
		a.topicCursor = clamp(a.topicCursor+delta, n)
		return
	}
	n := len(libraryRows(a.tax, a.machine.State()))
	a.libCursor = clamp(a.libCursor+delta, n)
}

func clamp(i, n int) int {
	if n <= 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}

func (a *App) activate() {
	if a.focus == focusTopics {
		topics := a.topics()
		if len(topics) == 0 {
			return
		}
		a.report(a.machine.SelectTopic(topics[clamp(a.topicCursor, len(topics))]))
		return
	}

	rows := libraryRows(a.tax, a.machine.State())
	if len(rows) == 0 {
		return
	}
	row := rows[clamp(a.libCursor, len(rows))]
	before := a.machine.State()
	var err error
	switch row.kind {
	case rowSection:
		err = a.machine.SelectSection(row.name)
	case rowSubsection:
		err = a.machine.SelectSubsection(row.name)
	}
	a.report(err)

	// keep the cursor on the row that was activated even though rows above
	// or below it may have appeared or vanished
	after := a.machine.State()
	if idx := indexOfRow(libraryRows(a.tax, after), row); idx >= 0 {
		a.libCursor = idx
	}
	if after.Subsection != before.Subsection {
		a.topicCursor = 0
	}
	if !after.TopicPanelVisible() {
		a.focus = focusLibrary
	}
}

func (a *App) report(err error) {
	if err == nil {
		a.statusErr = false
		a.status = a.machine.State().Path()
		return
	}
	a.statusErr = true
	a.status = "error: " + err.Error()
	switch {
	case errors.Is(err, nav.ErrInvariant):
		a.log.Error("selection invariant violated", zap.Error(err))
	default:
		a.log.Warn("navigation rejected", zap.Error(err), zap.String("path", a.machine.State().Path()))
	}
}

// topics lists the open subsection's topics, or nil when none is open.
func (a *App) topics() []string {
	s := a.machine.State()
	if !s.TopicPanelVisible() {
		return nil
	}
	topics, err := a.tax.Topics(s.Section, s.Subsection)
	if err != nil {
		return nil
	}
	return topics
}
