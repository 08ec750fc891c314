package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Pane draws a rounded box with the title set into the top border.
type Pane struct {
	Title   string
	Content string
	Focused bool
}

func (p Pane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	width = max(width, 4)
	h := max(height, 3)

	border := colorBorder
	if p.Focused {
		border = colorFocus
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	paneTitle := lipgloss.NewStyle().Foreground(colorText).Bold(true)

	innerWidth := width - 2
	contentWidth := max(innerWidth-2, 1)

	titleText := ""
	if t := strings.TrimSpace(p.Title); t != "" {
		if p.Focused {
			t = "● " + t
		}
		titleText = " " + t + " "
		if ansi.StringWidth(titleText) > innerWidth-1 {
			titleText = " " + ansi.Truncate(t, max(1, innerWidth-3), "") + " "
		}
	}
	dashes := max(innerWidth-ansi.StringWidth(titleText), 0)
	leftDash := min(1, dashes)
	rightDash := dashes - leftDash

	v := borderStyle.Render("│")
	top := borderStyle.Render("╭") +
		borderStyle.Render(strings.Repeat("─", leftDash)) +
		paneTitle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", rightDash)) +
		borderStyle.Render("╮")

	innerHeight := h - 2
	lines := splitLines(p.Content)
	rows := make([]string, 0, h)
	rows = append(rows, top)
	for i := 0; i < innerHeight; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		line = ansi.Truncate(line, contentWidth, "")
		rows = append(rows, v+" "+padRight(line, contentWidth)+" "+v)
	}
	rows = append(rows, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
