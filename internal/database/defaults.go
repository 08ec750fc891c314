package database

import (
	"context"
	"database/sql"

	"github.com/jask/medilearn/internal/database/repository"
	"github.com/jask/medilearn/internal/taxonomy"
)

// SeedDefaults stores tax when the store holds no taxonomy yet.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, tax *taxonomy.Taxonomy) (bool, error) {
	repo := repository.NewTaxonomyRepo(db)
	n, err := repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := repo.Replace(ctx, tax); err != nil {
		return false, err
	}
	return true, nil
}
