package taxonomy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate name")
	ErrEmptyName = errors.New("empty name")
	ErrEmpty     = errors.New("taxonomy has no sections")
)

// Level names a depth in the taxonomy.
type Level string

const (
	LevelSection    Level = "section"
	LevelSubsection Level = "subsection"
	LevelTopic      Level = "topic"
)

// NotFoundError reports a lookup with a key the taxonomy does not contain.
type NotFoundError struct {
	Level  Level
	Name   string
	Parent string
	// Suggestion is the closest existing sibling name, if any is close enough.
	Suggestion string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q not found", e.Level, e.Name)
	if e.Parent != "" {
		fmt.Fprintf(&b, " in %q", e.Parent)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	return b.String()
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func notFound(level Level, name, parent string, candidates []string) *NotFoundError {
	return &NotFoundError{Level: level, Name: name, Parent: parent, Suggestion: suggest(name, candidates)}
}

// suggest picks the candidate with the smallest case-insensitive edit
// distance to name. Candidates further than a third of the name length
// (minimum 2) are not considered similar.
func suggest(name string, candidates []string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return ""
	}
	limit := max(2, len([]rune(needle))/3)
	best, bestDist := "", limit+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
