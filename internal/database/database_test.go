package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jask/medilearn/internal/database/repository"
	"github.com/jask/medilearn/internal/taxonomy"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "medilearn.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	v, dirty, err := Version(db)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != 1 || dirty {
		t.Fatalf("version = %d dirty=%v, want 1 clean", v, dirty)
	}
}

func TestSeedDefaultsOnce(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	seeded, err := SeedDefaults(ctx, db, taxonomy.Library())
	if err != nil || !seeded {
		t.Fatalf("first seed = %v, %v; want true, nil", seeded, err)
	}
	other := taxonomy.MustNew([]taxonomy.SectionSpec{{Name: "Other"}})
	seeded, err = SeedDefaults(ctx, db, other)
	if err != nil || seeded {
		t.Fatalf("second seed = %v, %v; want false, nil", seeded, err)
	}

	got, err := repository.NewTaxonomyRepo(db).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(taxonomy.Library().Specs(), got.Specs()); diff != "" {
		t.Fatalf("stored taxonomy mismatch (-want +got):\n%s", diff)
	}
}
