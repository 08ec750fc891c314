package tui

import (
	"github.com/jask/medilearn/internal/nav"
	"github.com/jask/medilearn/internal/taxonomy"
)

type rowKind int

const (
	rowSection rowKind = iota
	rowSubsection
)

// libraryRow is one line of the library panel.
type libraryRow struct {
	kind    rowKind
	section string
	name    string
}

// libraryRows flattens the visible part of the tree: every section, plus the
// subsections of the open one.
func libraryRows(p taxonomy.Provider, s nav.State) []libraryRow {
	sections := p.Sections()
	rows := make([]libraryRow, 0, len(sections))
	for _, sec := range sections {
		rows = append(rows, libraryRow{kind: rowSection, section: sec, name: sec})
		if sec != s.Section || !s.SubsectionPanelVisible() {
			continue
		}
		subs, err := p.Subsections(sec)
		if err != nil {
			continue
		}
		for _, sub := range subs {
			rows = append(rows, libraryRow{kind: rowSubsection, section: sec, name: sub})
		}
	}
	return rows
}

func indexOfRow(rows []libraryRow, want libraryRow) int {
	for i, r := range rows {
		if r == want {
			return i
		}
	}
	return -1
}

// window returns the [start, end) slice of n items that keeps cursor visible
// in height lines.
func window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := min(max(0, cursor-height+1), n-height)
	if cursor < start {
		start = cursor
	}
	return start, start + height
}
