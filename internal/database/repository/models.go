package repository

// Node levels as stored in taxonomy_nodes.level.
const (
	LevelSection    = "section"
	LevelSubsection = "subsection"
	LevelTopic      = "topic"
)

// Node represents a taxonomy_nodes row.
type Node struct {
	ID        string
	ParentID  *string
	Level     string
	Name      string
	SortOrder int
}
