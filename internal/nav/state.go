package nav

import "strings"

// State is the UI-facing selection. Empty strings mean nothing is selected
// at that level.
type State struct {
	SidebarOpen bool
	Section     string
	Subsection  string
	Topic       string
}

// Initial is the state a Machine starts in.
func Initial() State {
	return State{SidebarOpen: true}
}

// SubsectionPanelVisible reports whether the selected section's subsections
// should be drawn.
func (s State) SubsectionPanelVisible() bool {
	return s.Section != ""
}

// TopicPanelVisible reports whether the topic list should be drawn.
func (s State) TopicPanelVisible() bool {
	return s.Section != "" && s.Subsection != ""
}

// Path joins the selected names, outermost first.
func (s State) Path() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Section, s.Subsection, s.Topic} {
		if p == "" {
			break
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " / ")
}
