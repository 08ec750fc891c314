// Package nav implements the library's hierarchical selection state machine.
//
// Three levels are tracked: section, subsection and topic. The two
// expandable levels toggle on repeat and reset every deeper selection when
// they change; the topic level is a plain single-select. A sidebar-open flag
// lives alongside and never interacts with the selections.
//
// A Machine is driven from a single UI event loop and is not safe for
// concurrent use.
package nav
