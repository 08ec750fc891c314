package nav

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jask/medilearn/internal/taxonomy"
)

var (
	// ErrNoSection is returned by SelectSubsection when no section is open.
	ErrNoSection = errors.New("no section selected")
	// ErrNoSubsection is returned by SelectTopic when no subsection is open.
	ErrNoSubsection = errors.New("no subsection selected")
	// ErrInvariant marks a state that breaks the nesting rule. It indicates a
	// defect in the machine or an inconsistent Provider, never bad input.
	ErrInvariant = errors.New("selection invariant violated")
)

// Op identifies a transition.
type Op string

const (
	OpToggleSidebar    Op = "toggle-sidebar"
	OpSelectSection    Op = "select-section"
	OpSelectSubsection Op = "select-subsection"
	OpSelectTopic      Op = "select-topic"
)

// Transition describes one applied operation. Observers receive it after the
// new state is in place.
type Transition struct {
	Op   Op
	Name string
	From State
	To   State
}

// Changed reports whether the transition altered the state.
func (t Transition) Changed() bool {
	return t.From != t.To
}

type Option func(*Machine)

// WithStrict makes an invariant violation panic instead of being returned.
func WithStrict(strict bool) Option {
	return func(m *Machine) { m.strict = strict }
}

// WithObserver registers fn to be called after every successful transition.
func WithObserver(fn func(Transition)) Option {
	return func(m *Machine) {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
	}
}

// Machine owns a State and applies the navigation transitions to it.
type Machine struct {
	provider  taxonomy.Provider
	state     State
	strict    bool
	observers []func(Transition)
}

// New returns a machine in the Initial state over provider.
func New(provider taxonomy.Provider, opts ...Option) *Machine {
	if provider == nil {
		provider = (*taxonomy.Taxonomy)(nil)
	}
	m := &Machine{provider: provider, state: Initial()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a copy of the current selection.
func (m *Machine) State() State {
	return m.state
}

// Provider returns the taxonomy the machine validates against.
func (m *Machine) Provider() taxonomy.Provider {
	return m.provider
}

// ToggleSidebar flips the sidebar flag. Selections are untouched.
func (m *Machine) ToggleSidebar() {
	next := m.state
	next.SidebarOpen = !next.SidebarOpen
	m.commit(OpToggleSidebar, "", next)
}

// SelectSection opens name, or collapses it when it is already open. Either
// way the subsection and topic are cleared. Unknown names leave the state
// unchanged and return a *taxonomy.NotFoundError.
func (m *Machine) SelectSection(name string) error {
	if _, err := m.provider.Subsections(name); err != nil {
		return err
	}
	next := m.state
	if next.Section == name {
		next.Section = ""
	} else {
		next.Section = name
	}
	next.Subsection, next.Topic = "", ""
	return m.apply(OpSelectSection, name, next)
}

// SelectSubsection opens name under the current section, or collapses it
// when it is already open. The topic is cleared in both cases. It requires
// an open section.
func (m *Machine) SelectSubsection(name string) error {
	if m.state.Section == "" {
		return ErrNoSection
	}
	if _, err := m.provider.Topics(m.state.Section, name); err != nil {
		return err
	}
	next := m.state
	if next.Subsection == name {
		next.Subsection = ""
	} else {
		next.Subsection = name
	}
	next.Topic = ""
	return m.apply(OpSelectSubsection, name, next)
}

// SelectTopic selects name within the open subsection. Selecting the current
// topic again is a no-op; topics never collapse.
func (m *Machine) SelectTopic(name string) error {
	if m.state.Section == "" || m.state.Subsection == "" {
		return ErrNoSubsection
	}
	topics, err := m.provider.Topics(m.state.Section, m.state.Subsection)
	if err != nil {
		return err
	}
	if !slices.Contains(topics, name) {
		return taxonomy.TopicNotFound(m.state.Section, m.state.Subsection, name, topics)
	}
	next := m.state
	next.Topic = name
	return m.apply(OpSelectTopic, name, next)
}

// Check validates the current state against the provider.
func (m *Machine) Check() error {
	return checkState(m.provider, m.state)
}

func (m *Machine) apply(op Op, name string, next State) error {
	if err := checkState(m.provider, next); err != nil {
		err = fmt.Errorf("%s %q: %w", op, name, err)
		if m.strict {
			panic(err)
		}
		return err
	}
	m.commit(op, name, next)
	return nil
}

func (m *Machine) commit(op Op, name string, next State) {
	t := Transition{Op: op, Name: name, From: m.state, To: next}
	m.state = next
	for _, fn := range m.observers {
		fn(t)
	}
}

func checkState(p taxonomy.Provider, s State) error {
	if s.Subsection != "" && s.Section == "" {
		return fmt.Errorf("%w: subsection %q without section", ErrInvariant, s.Subsection)
	}
	if s.Topic != "" && s.Subsection == "" {
		return fmt.Errorf("%w: topic %q without subsection", ErrInvariant, s.Topic)
	}
	if s.Section == "" {
		return nil
	}
	if !slices.Contains(p.Sections(), s.Section) {
		return fmt.Errorf("%w: section %q not in taxonomy", ErrInvariant, s.Section)
	}
	if s.Subsection == "" {
		return nil
	}
	subs, err := p.Subsections(s.Section)
	if err != nil || !slices.Contains(subs, s.Subsection) {
		return fmt.Errorf("%w: subsection %q not under %q", ErrInvariant, s.Subsection, s.Section)
	}
	if s.Topic == "" {
		return nil
	}
	topics, err := p.Topics(s.Section, s.Subsection)
	if err != nil || !slices.Contains(topics, s.Topic) {
		return fmt.Errorf("%w: topic %q not under %q / %q", ErrInvariant, s.Topic, s.Section, s.Subsection)
	}
	return nil
}
