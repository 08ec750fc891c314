package taxonomy

import (
	"fmt"
	"slices"
	"strings"
)

// Provider is the read interface the navigator needs from a taxonomy.
// Returned slices are owned by the caller.
type Provider interface {
	Sections() []string
	Subsections(section string) ([]string, error)
	Topics(section, subsection string) ([]string, error)
}

// SectionSpec is the nested, ordered description a Taxonomy is built from.
type SectionSpec struct {
	Name        string           `yaml:"name"`
	Subsections []SubsectionSpec `yaml:"subsections,omitempty"`
}

type SubsectionSpec struct {
	Name   string   `yaml:"name"`
	Topics []string `yaml:"topics,omitempty"`
}

// Taxonomy is an immutable ordered tree of sections, subsections and topics.
// The zero value is an empty taxonomy; use New to build a populated one.
type Taxonomy struct {
	sections []section
	index    map[string]int
}

type section struct {
	name  string
	subs  []subsection
	index map[string]int
}

type subsection struct {
	name   string
	topics []string
	index  map[string]struct{}
}

var _ Provider = (*Taxonomy)(nil)

// New validates specs and freezes them into a Taxonomy. Names must be
// non-blank and unique among their siblings.
func New(specs []SectionSpec) (*Taxonomy, error) {
	if len(specs) == 0 {
		return nil, ErrEmpty
	}
	t := &Taxonomy{
		sections: make([]section, 0, len(specs)),
		index:    make(map[string]int, len(specs)),
	}
	for _, ss := range specs {
		if strings.TrimSpace(ss.Name) == "" {
			return nil, fmt.Errorf("%w: section #%d", ErrEmptyName, len(t.sections)+1)
		}
		if _, dup := t.index[ss.Name]; dup {
			return nil, fmt.Errorf("%w: section %q", ErrDuplicate, ss.Name)
		}
		sec := section{
			name:  ss.Name,
			subs:  make([]subsection, 0, len(ss.Subsections)),
			index: make(map[string]int, len(ss.Subsections)),
		}
		for _, sub := range ss.Subsections {
			if strings.TrimSpace(sub.Name) == "" {
				return nil, fmt.Errorf("%w: subsection #%d of %q", ErrEmptyName, len(sec.subs)+1, ss.Name)
			}
			if _, dup := sec.index[sub.Name]; dup {
				return nil, fmt.Errorf("%w: subsection %q in %q", ErrDuplicate, sub.Name, ss.Name)
			}
			ns := subsection{
				name:   sub.Name,
				topics: make([]string, 0, len(sub.Topics)),
				index:  make(map[string]struct{}, len(sub.Topics)),
			}
			for _, topic := range sub.Topics {
				if strings.TrimSpace(topic) == "" {
					return nil, fmt.Errorf("%w: topic #%d of %q / %q", ErrEmptyName, len(ns.topics)+1, ss.Name, sub.Name)
				}
				if _, dup := ns.index[topic]; dup {
					return nil, fmt.Errorf("%w: topic %q in %q / %q", ErrDuplicate, topic, ss.Name, sub.Name)
				}
				ns.index[topic] = struct{}{}
				ns.topics = append(ns.topics, topic)
			}
			sec.index[sub.Name] = len(sec.subs)
			sec.subs = append(sec.subs, ns)
		}
		t.index[ss.Name] = len(t.sections)
		t.sections = append(t.sections, sec)
	}
	return t, nil
}

// MustNew is New for static data known to be valid.
func MustNew(specs []SectionSpec) *Taxonomy {
	t, err := New(specs)
	if err != nil {
		panic(fmt.Sprintf("taxonomy: %v", err))
	}
	return t
}

func (t *Taxonomy) Sections() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.sections))
	for _, s := range t.sections {
		out = append(out, s.name)
	}
	return out
}

func (t *Taxonomy) Subsections(sectionName string) ([]string, error) {
	sec, err := t.section(sectionName)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(sec.subs))
	for _, s := range sec.subs {
		out = append(out, s.name)
	}
	return out, nil
}

func (t *Taxonomy) Topics(sectionName, subsectionName string) ([]string, error) {
	sub, err := t.subsection(sectionName, subsectionName)
	if err != nil {
		return nil, err
	}
	return slices.Clone(sub.topics), nil
}

// Len reports the number of sections, subsections and topics.
func (t *Taxonomy) Len() (sections, subsections, topics int) {
	if t == nil {
		return 0, 0, 0
	}
	for _, s := range t.sections {
		subsections += len(s.subs)
		for _, sub := range s.subs {
			topics += len(sub.topics)
		}
	}
	return len(t.sections), subsections, topics
}

// Specs returns a deep copy of the tree in its construction form.
func (t *Taxonomy) Specs() []SectionSpec {
	if t == nil {
		return nil
	}
	out := make([]SectionSpec, 0, len(t.sections))
	for _, s := range t.sections {
		ss := SectionSpec{Name: s.name, Subsections: make([]SubsectionSpec, 0, len(s.subs))}
		for _, sub := range s.subs {
			ss.Subsections = append(ss.Subsections, SubsectionSpec{Name: sub.name, Topics: slices.Clone(sub.topics)})
		}
		out = append(out, ss)
	}
	return out
}

func (t *Taxonomy) section(name string) (*section, error) {
	if t == nil {
		return nil, notFound(LevelSection, name, "", nil)
	}
	idx, ok := t.index[name]
	if !ok {
		return nil, notFound(LevelSection, name, "", t.Sections())
	}
	return &t.sections[idx], nil
}

func (t *Taxonomy) subsection(sectionName, name string) (*subsection, error) {
	sec, err := t.section(sectionName)
	if err != nil {
		return nil, err
	}
	idx, ok := sec.index[name]
	if !ok {
		names := make([]string, 0, len(sec.subs))
		for _, s := range sec.subs {
			names = append(names, s.name)
		}
		return nil, notFound(LevelSubsection, name, sectionName, names)
	}
	return &sec.subs[idx], nil
}

// TopicNotFound builds the error reported when name is not a topic of
// section / subsection. Callers that already hold the topic list use it to
// avoid a second lookup.
func TopicNotFound(sectionName, subsectionName, name string, topics []string) error {
	return notFound(LevelTopic, name, sectionName+" / "+subsectionName, topics)
}
