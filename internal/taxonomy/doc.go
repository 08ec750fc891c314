// Package taxonomy holds the static section → subsection → topic tree the
// library navigator browses.
//
// Allowed here:
// - the immutable Taxonomy value and the read-only Provider contract
// - construction/validation, the built-in library and YAML documents
//
// Not allowed here:
// - selection state (see internal/nav) or any rendering concerns
package taxonomy
