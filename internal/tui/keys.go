package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Actions understood by App.
const (
	actionQuit          = "quit"
	actionToggleSidebar = "toggle-sidebar"
	actionUp            = "cursor-up"
	actionDown          = "cursor-down"
	actionActivate      = "activate"
	actionFocusNext     = "focus-next"
)

// Key scopes. A binding with no scopes applies everywhere.
const (
	scopeLibrary = "pane:library"
	scopeTopics  = "pane:topics"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	entries []registryEntry
}

type registryEntry struct {
	action  string
	scopes  []string
	binding key.Binding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	r := &KeyRegistry{entries: make([]registryEntry, 0, len(bindings))}
	for _, b := range bindings {
		r.entries = append(r.entries, registryEntry{
			action: b.Action,
			scopes: slices.Clone(b.Scopes),
			binding: key.NewBinding(
				key.WithKeys(matchKeys(b.Keys)...),
				key.WithHelp(strings.Join(b.Keys, "/"), b.Description),
			),
		})
	}
	return r
}

// HelpBindings returns the enabled bindings visible in scope, in
// registration order.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	out := make([]key.Binding, 0, len(r.entries))
	for _, e := range r.entries {
		if e.binding.Enabled() && scopeMatch(scope, e.scopes) {
			out = append(out, e.binding)
		}
	}
	return out
}

// Action returns the action bound to msg in scope, or "".
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	for _, e := range r.entries {
		if scopeMatch(scope, e.scopes) && key.Matches(msg, e.binding) {
			return e.action
		}
	}
	return ""
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	return r.Action(msg, scope) == action
}

// matchKeys turns configured key names into the strings tea.KeyMsg reports.
// Blank entries are dropped so a binding with no usable keys is disabled.
func matchKeys(keys []string) []string {
	out := make([]string, 0, len(keys)+1)
	for _, raw := range keys {
		k := strings.TrimSpace(raw)
		switch {
		case raw == " " || k == "space":
			out = append(out, " ", "space")
		case k == "":
			continue
		case strings.Contains(k, "+"):
			out = append(out, strings.ToLower(k))
		default:
			out = append(out, k)
		}
	}
	return out
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"k", "up"}, Action: actionUp, Description: "up", Scopes: []string{scopeLibrary, scopeTopics}},
		{Keys: []string{"j", "down"}, Action: actionDown, Description: "down", Scopes: []string{scopeLibrary, scopeTopics}},
		{Keys: []string{"enter", "space"}, Action: actionActivate, Description: "open", Scopes: []string{scopeLibrary}},
		{Keys: []string{"enter", "space"}, Action: actionActivate, Description: "read", Scopes: []string{scopeTopics}},
		{Keys: []string{"tab"}, Action: actionFocusNext, Description: "switch pane", Scopes: []string{"*"}},
		{Keys: []string{"ctrl+b"}, Action: actionToggleSidebar, Description: "sidebar", Scopes: []string{"*"}},
		{Keys: []string{"q", "ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{"*"}},
	}
}

// ApplyActionKeybindings replaces the keys of every binding whose action
// appears in actionKeys.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}
