// Package tui renders the library navigator with bubbletea.
//
// Allowed here:
// - layout of the sidebar, library, topic and content panes
// - key handling that turns presses into nav.Machine calls
//
// Not allowed here:
// - selection rules (internal/nav) or taxonomy data (internal/taxonomy)
package tui
