package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/medilearn/internal/nav"
)

const headerHeight = 3

type menuItem struct {
	glyph string
	label string
}

// The library is the only destination wired up; the rest are placeholders.
var menuItems = []menuItem{
	{"⌂", "Dashboard"},
	{"▤", "Library"},
	{"♪", "Audio Lectures"},
	{"?", "MCQs"},
	{"✉", "Discussions"},
	{"▦", "Calendar"},
	{"☺", "Study Groups"},
	{"⚙", "Settings"},
}

func (a *App) View() string {
	s := a.machine.State()
	width := max(a.width, 40)
	bodyHeight := max(a.height-2, headerHeight+3)

	sidebarWidth := a.opts.SidebarCollapsedWidth
	if s.SidebarOpen {
		sidebarWidth = a.opts.SidebarWidth
	}
	mainWidth := max(width-sidebarWidth, 20)
	panelHeight := bodyHeight - headerHeight

	panels := []string{a.renderLibrary(s, a.opts.PanelWidth, panelHeight)}
	used := a.opts.PanelWidth
	if s.TopicPanelVisible() {
		panels = append(panels, a.renderTopics(s, a.opts.PanelWidth, panelHeight))
		used += a.opts.PanelWidth
	}
	panels = append(panels, renderContent(s, max(mainWidth-used, 10), panelHeight))

	main := lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(mainWidth),
		lipgloss.JoinHorizontal(lipgloss.Top, panels...),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(s, sidebarWidth, bodyHeight), main)
	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		renderFooter(a.keys, a.scope(), width),
		renderStatusBar(a.status, a.statusErr, width),
	)
}

func (a *App) renderSidebar(s nav.State, width, height int) string {
	lines := make([]string, 0, len(menuItems)+2)
	if s.SidebarOpen {
		lines = append(lines, titleStyle.Render(a.opts.Title), "")
	} else {
		lines = append(lines, titleStyle.Render("≡"), "")
	}
	for _, item := range menuItems {
		line := item.glyph
		if s.SidebarOpen {
			line += " " + item.label
		}
		if item.label == "Library" {
			line = activeStyle.Render(line)
		} else {
			line = mutedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return Pane{Content: strings.Join(lines, "\n")}.Render(width, height)
}

func renderHeader(width int) string {
	inner := max(width-4, 1)
	left := searchStyle.Render("⌕ Search library...")
	right := newNoteStyle.Render("+ New Note")
	gap := inner - ansi.StringWidth(left) - ansi.StringWidth(right)
	line := left
	if gap >= 1 {
		line = left + strings.Repeat(" ", gap) + right
	}
	return Pane{Content: line}.Render(width, headerHeight)
}

func (a *App) renderLibrary(s nav.State, width, height int) string {
	rows := libraryRows(a.tax, s)
	focused := a.focus == focusLibrary
	start, end := window(len(rows), a.libCursor, height-2)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := rows[i]
		var line string
		switch row.kind {
		case rowSection:
			active := row.name == s.Section
			line = chevron(active) + " " + row.name
			if active {
				line = activeStyle.Render(line)
			}
		case rowSubsection:
			active := row.name == s.Subsection
			line = "  " + chevron(active) + " " + row.name
			if active {
				line = activeStyle.Render(line)
			}
		}
		lines = append(lines, cursorLine(focused && i == a.libCursor, line))
	}
	return Pane{Title: "Library", Content: strings.Join(lines, "\n"), Focused: focused}.Render(width, height)
}

func (a *App) renderTopics(s nav.State, width, height int) string {
	topics := a.topics()
	focused := a.focus == focusTopics
	start, end := window(len(topics), a.topicCursor, height-2)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		topic := topics[i]
		line := "○ " + topic
		if topic == s.Topic {
			line = activeStyle.Render("● " + topic)
		}
		lines = append(lines, cursorLine(focused && i == a.topicCursor, line))
	}
	return Pane{Title: s.Subsection, Content: strings.Join(lines, "\n"), Focused: focused}.Render(width, height)
}

func renderContent(s nav.State, width, height int) string {
	inner := max(width-4, 1)
	if s.Topic == "" {
		msg := lipgloss.JoinVertical(lipgloss.Center,
			mutedStyle.Render("!"),
			"",
			mutedStyle.Render("Select a topic to start learning"),
		)
		placed := lipgloss.Place(inner, max(height-2, 1), lipgloss.Center, lipgloss.Center, msg)
		return Pane{Content: placed}.Render(width, height)
	}
	lines := []string{
		topicHeading.Render(s.Topic),
		mutedStyle.Render(s.Section + " / " + s.Subsection),
		"",
		mutedStyle.Render("◷ 15 min read") + "   " + mutedStyle.Render("☆ Save for later"),
		"",
		mutedStyle.Render("Select a topic to start learning."),
	}
	return Pane{Content: strings.Join(lines, "\n")}.Render(width, height)
}

func chevron(open bool) string {
	if open {
		return "▾"
	}
	return "▸"
}

func cursorLine(on bool, line string) string {
	if on {
		return cursorStyle.Render("› " + line)
	}
	return "  " + line
}
