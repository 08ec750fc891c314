package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jask/medilearn/internal/nav"
	"github.com/jask/medilearn/internal/taxonomy"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlB = tea.KeyMsg{Type: tea.KeyCtrlB}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

func newLibraryApp(t *testing.T, opts Options) (*App, *nav.Machine) {
	t.Helper()
	m := nav.New(taxonomy.Library(), nav.WithStrict(true))
	return New(m, opts, nil), m
}

func press(a *App, msgs ...tea.Msg) {
	for _, msg := range msgs {
		a.Update(msg)
	}
}

func wantNav(t *testing.T, m *nav.Machine, want nav.State) {
	t.Helper()
	if diff := cmp.Diff(want, m.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestDrillDownWithKeys(t *testing.T) {
	a, m := newLibraryApp(t, Options{})

	press(a, keyEnter)
	wantNav(t, m, nav.State{SidebarOpen: true, Section: "Basic Sciences"})
	if a.libCursor != 0 {
		t.Fatalf("cursor should stay on the section row, got %d", a.libCursor)
	}

	press(a, runes("j"), keyEnter)
	wantNav(t, m, nav.State{SidebarOpen: true, Section: "Basic Sciences", Subsection: "Anatomy"})

	press(a, keyTab, runes("j"), keyEnter)
	if a.focus != focusTopics {
		t.Fatalf("expected topic panel focus")
	}
	wantNav(t, m, nav.State{SidebarOpen: true, Section: "Basic Sciences", Subsection: "Anatomy", Topic: "Lower Limb"})
	if a.status != "Basic Sciences / Anatomy / Lower Limb" || a.statusErr {
		t.Fatalf("status = %q (err=%v)", a.status, a.statusErr)
	}

	press(a, tea.WindowSizeMsg{Width: 160, Height: 30})
	view := a.View()
	for _, want := range []string{"Lower Limb", "15 min read", "Anatomy", "Select a topic to start learning."} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	// back to the library and over to Clinical Medicine (row 4 while
	// Basic Sciences is expanded)
	press(a, keyTab, runes("j"), runes("j"), runes("j"), keyEnter)
	wantNav(t, m, nav.State{SidebarOpen: true, Section: "Clinical Medicine"})
	if a.libCursor != 1 {
		t.Fatalf("cursor should follow Clinical Medicine to row 1, got %d", a.libCursor)
	}
}

func TestReactivatingSectionCollapses(t *testing.T) {
	a, m := newLibraryApp(t, Options{})
	press(a, keySpace, runes("j"), keyEnter, keyTab, keyEnter)
	wantNav(t, m, nav.State{SidebarOpen: true, Section: "Basic Sciences", Subsection: "Anatomy", Topic: "Upper Limb"})

	press(a, keyTab, runes("k"), keyEnter)
	wantNav(t, m, nav.State{SidebarOpen: true})
	if a.focus != focusLibrary {
		t.Fatalf("focus should return to library when topics hide")
	}
}

func TestCollapsingSubsectionMovesFocusBack(t *testing.T) {
	a, m := newLibraryApp(t, Options{})
	press(a, keyEnter, runes("j"), keyEnter, keyTab)
	if a.focus != focusTopics {
		t.Fatalf("expected topic focus")
	}
	press(a, keyTab, keyEnter)
	wantNav(t, m, nav.State{SidebarOpen: true, Section: "Basic Sciences"})
	if a.focus != focusLibrary {
		t.Fatalf("expected library focus")
	}
	press(a, keyTab)
	if a.focus != focusLibrary {
		t.Fatalf("tab must not focus a hidden topic panel")
	}
}

func TestTopicPanelVisibility(t *testing.T) {
	a, _ := newLibraryApp(t, Options{})
	view := a.View()
	if strings.Contains(view, "Upper Limb") || strings.Contains(view, "Anatomy") {
		t.Fatalf("subsections and topics should be hidden initially:\n%s", view)
	}
	if !strings.Contains(view, "Select a topic to start learning") {
		t.Fatalf("missing empty state:\n%s", view)
	}

	press(a, keyEnter)
	view = a.View()
	if !strings.Contains(view, "Anatomy") || strings.Contains(view, "Upper Limb") {
		t.Fatalf("expected subsections without topics:\n%s", view)
	}

	press(a, runes("j"), keyEnter)
	if view = a.View(); !strings.Contains(view, "Upper Limb") {
		t.Fatalf("expected topic panel:\n%s", view)
	}
}

func TestToggleSidebar(t *testing.T) {
	a, m := newLibraryApp(t, Options{Title: "Ward Notes"})
	view := a.View()
	if !strings.Contains(view, "Ward Notes") || !strings.Contains(view, "Dashboard") {
		t.Fatalf("open sidebar should show title and labels:\n%s", view)
	}

	press(a, keyEnter, keyCtrlB)
	wantNav(t, m, nav.State{Section: "Basic Sciences"})
	view = a.View()
	if strings.Contains(view, "Ward Notes") || strings.Contains(view, "Dashboard") {
		t.Fatalf("collapsed sidebar should hide title and labels:\n%s", view)
	}

	press(a, keyCtrlB)
	wantNav(t, m, nav.State{SidebarOpen: true, Section: "Basic Sciences"})
}

func TestCustomKeys(t *testing.T) {
	a, m := newLibraryApp(t, Options{Keys: map[string][]string{"toggle-sidebar": {"s"}}})
	press(a, keyCtrlB)
	wantNav(t, m, nav.Initial())
	press(a, runes("s"))
	wantNav(t, m, nav.State{})
}

func TestQuit(t *testing.T) {
	a, _ := newLibraryApp(t, Options{})
	_, cmd := a.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestCursorClamps(t *testing.T) {
	a, _ := newLibraryApp(t, Options{})
	if view := a.View(); !strings.Contains(view, "› ▸ Basic Sciences") {
		t.Fatalf("cursor row not marked:\n%s", view)
	}
	press(a, runes("k"), runes("k"))
	if a.libCursor != 0 {
		t.Fatalf("cursor underflow: %d", a.libCursor)
	}
	for range 10 {
		press(a, runes("j"))
	}
	if a.libCursor != 2 {
		t.Fatalf("cursor should stop at last section, got %d", a.libCursor)
	}
}

func TestWindowResize(t *testing.T) {
	a, _ := newLibraryApp(t, Options{})
	press(a, tea.WindowSizeMsg{Width: 140, Height: 40})
	lines := strings.Split(a.View(), "\n")
	if len(lines) != 40 {
		t.Fatalf("view height = %d, want 40", len(lines))
	}
}

// brokenProvider lists a subsection whose topics it cannot serve.
type brokenProvider struct{ *taxonomy.Taxonomy }

func (p brokenProvider) Topics(section, subsection string) ([]string, error) {
	return nil, &taxonomy.NotFoundError{Level: taxonomy.LevelSubsection, Name: subsection, Parent: section}
}

func TestRejectedSelectionIsLoggedAndShown(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	m := nav.New(brokenProvider{taxonomy.Library()}, nav.WithObserver(LogTransitions(log)))
	a := New(m, Options{}, log)

	press(a, keyEnter, runes("j"), keyEnter)
	wantNav(t, m, nav.State{SidebarOpen: true, Section: "Basic Sciences"})
	if !a.statusErr || !strings.Contains(a.status, `subsection "Anatomy" not found`) {
		t.Fatalf("status = %q (err=%v)", a.status, a.statusErr)
	}

	if n := logs.FilterMessage("navigation rejected").Len(); n != 1 {
		t.Fatalf("rejections logged = %d, want 1", n)
	}
	transitions := logs.FilterMessage("transition").All()
	if len(transitions) != 1 {
		t.Fatalf("transitions logged = %d, want 1", len(transitions))
	}
	if got := transitions[0].ContextMap()["path"]; got != "Basic Sciences" {
		t.Fatalf("logged path = %v", got)
	}
}
