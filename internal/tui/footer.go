package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func renderFooter(keys *KeyRegistry, scope string, width int) string {
	space := footerStyle.Render(" ")
	sep := footerStyle.Render("  ")

	bindings := keys.HelpBindings(scope)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+space+helpDescStyle.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = helpDescStyle.Render("No shortcuts")
	}
	return renderBar(footerStyle, width, line)
}

func renderStatusBar(msg string, isErr bool, width int) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "Ready"
	}
	if isErr {
		return renderBar(statusErrBarStyle, width, msg)
	}
	return renderBar(statusBarStyle, width, msg)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	width = max(1, width)
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	return style.Width(width).MaxWidth(width).Render(padRight(line, width))
}
