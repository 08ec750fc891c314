package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/medilearn/internal/taxonomy"
)

// TaxonomyRepo stores the library tree as parent-linked rows.
type TaxonomyRepo struct {
	db *sql.DB
}

func NewTaxonomyRepo(db *sql.DB) *TaxonomyRepo {
	return &TaxonomyRepo{db: db}
}

// NodeID derives a stable id from the node's path, so re-importing the same
// tree yields the same ids.
func NodeID(path ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("taxonomy:"+strings.Join(path, "\x1f"))).String()
}

func (r *TaxonomyRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM taxonomy_nodes`).Scan(&n)
	return n, err
}

func (r *TaxonomyRepo) List(ctx context.Context) ([]Node, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, parent_id, level, name, sort_order FROM taxonomy_nodes ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Node
	for rows.Next() {
		var n Node
		if err := rows.Scan(&n.ID, &n.ParentID, &n.Level, &n.Name, &n.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Replace swaps the stored tree for t in a single transaction.
func (r *TaxonomyRepo) Replace(ctx context.Context, t *taxonomy.Taxonomy) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := replaceTx(ctx, tx, t); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func replaceTx(ctx context.Context, tx *sql.Tx, t *taxonomy.Taxonomy) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM taxonomy_nodes`); err != nil {
		return fmt.Errorf("clear taxonomy: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO taxonomy_nodes(id, parent_id, level, name, sort_order) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	insert := func(n Node) error {
		if _, err := stmt.ExecContext(ctx, n.ID, n.ParentID, n.Level, n.Name, n.SortOrder); err != nil {
			return fmt.Errorf("insert %s %q: %w", n.Level, n.Name, err)
		}
		return nil
	}
	for i, sec := range t.Specs() {
		secID := NodeID(sec.Name)
		if err := insert(Node{ID: secID, Level: LevelSection, Name: sec.Name, SortOrder: i}); err != nil {
			return err
		}
		for j, sub := range sec.Subsections {
			subID := NodeID(sec.Name, sub.Name)
			if err := insert(Node{ID: subID, ParentID: &secID, Level: LevelSubsection, Name: sub.Name, SortOrder: j}); err != nil {
				return err
			}
			for k, topic := range sub.Topics {
				if err := insert(Node{ID: NodeID(sec.Name, sub.Name, topic), ParentID: &subID, Level: LevelTopic, Name: topic, SortOrder: k}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Load rebuilds the stored tree. Rows whose level does not fit under their
// parent are reported as errors rather than skipped.
func (r *TaxonomyRepo) Load(ctx context.Context) (*taxonomy.Taxonomy, error) {
	nodes, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	children := make(map[string][]Node, len(nodes))
	var roots []Node
	for _, n := range nodes {
		if n.ParentID == nil {
			if n.Level != LevelSection {
				return nil, fmt.Errorf("load taxonomy: root node %q has level %q", n.Name, n.Level)
			}
			roots = append(roots, n)
			continue
		}
		children[*n.ParentID] = append(children[*n.ParentID], n)
	}
	byOrder := func(ns []Node) {
		sort.SliceStable(ns, func(i, j int) bool { return ns[i].SortOrder < ns[j].SortOrder })
	}
	byOrder(roots)

	specs := make([]taxonomy.SectionSpec, 0, len(roots))
	for _, root := range roots {
		sec := taxonomy.SectionSpec{Name: root.Name}
		subs := children[root.ID]
		byOrder(subs)
		for _, sub := range subs {
			if sub.Level != LevelSubsection {
				return nil, fmt.Errorf("load taxonomy: %q under section %q has level %q", sub.Name, root.Name, sub.Level)
			}
			spec := taxonomy.SubsectionSpec{Name: sub.Name}
			topics := children[sub.ID]
			byOrder(topics)
			for _, topic := range topics {
				if topic.Level != LevelTopic {
					return nil, fmt.Errorf("load taxonomy: %q under %q / %q has level %q", topic.Name, root.Name, sub.Name, topic.Level)
				}
				if len(children[topic.ID]) > 0 {
					return nil, fmt.Errorf("load taxonomy: topic %q has children", topic.Name)
				}
				spec.Topics = append(spec.Topics, topic.Name)
			}
			sec.Subsections = append(sec.Subsections, spec)
		}
		specs = append(specs, sec)
	}
	t, err := taxonomy.New(specs)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	return t, nil
}
