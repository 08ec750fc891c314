package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jask/medilearn/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir, source string) string {
	t.Helper()
	t.Setenv("HOME", dir)
	t.Setenv("MEDILEARN_CONFIG", "")
	path := filepath.Join(dir, "config.toml")
	body := "[taxonomy]\nsource = \"" + source + "\"\n\n" +
		"[database]\npath = \"" + filepath.Join(dir, "medilearn.db") + "\"\n\n" +
		"[log]\nlevel = \"none\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const smallTaxonomy = `sections:
  - name: Pharmacology
    subsections:
      - name: Antibiotics
        topics:
          - Penicillins
          - Macrolides
`

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "medilearn dev\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestTaxonomyShowBuiltin(t *testing.T) {
	cfg := writeConfig(t, t.TempDir(), "builtin")
	out, err := run(t, "--config", cfg, "taxonomy", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Basic Sciences\n", "  Anatomy\n", "    - Upper Limb\n", "Clinical Medicine\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTaxonomyCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte(smallTaxonomy), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "taxonomy", "check", good)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "ok (1 sections, 1 subsections, 2 topics)") {
		t.Fatalf("output = %q", out)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("sections:\n  - name: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "taxonomy", "check", bad); err == nil {
		t.Fatalf("expected error for blank section name")
	}
}

func TestTaxonomyImportThenShowFromDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "database")
	file := filepath.Join(dir, "pharm.yaml")
	if err := os.WriteFile(file, []byte(smallTaxonomy), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--config", cfg, "taxonomy", "import", file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "imported 2 topics") || !strings.Contains(out, "(schema v1)") {
		t.Fatalf("import output = %q", out)
	}

	out, err = run(t, "--config", cfg, "taxonomy", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	want := "Pharmacology\n  Antibiotics\n    - Penicillins\n    - Macrolides\n"
	if out != want {
		t.Fatalf("show output:\n%s\nwant:\n%s", out, want)
	}
}

func TestTaxonomyExportSeedsDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "database")
	file := filepath.Join(dir, "export.yaml")
	if _, err := run(t, "--config", cfg, "taxonomy", "export", file); err != nil {
		t.Fatalf("export: %v", err)
	}
	out, err := run(t, "taxonomy", "check", file)
	if err != nil {
		t.Fatalf("check exported file: %v", err)
	}
	if !strings.Contains(out, "3 sections") {
		t.Fatalf("check output = %q", out)
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("MEDILEARN_CONFIG", "")
	t.Setenv("MEDILEARN_UI_TITLE", "Ward Notes")

	out, err := run(t, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	path := filepath.Join(dir, ".config", "medilearn", "config.toml")
	if out != "wrote "+path+"\n" {
		t.Fatalf("output = %q", out)
	}

	t.Setenv("MEDILEARN_UI_TITLE", "")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.UI.Title != "Ward Notes" || cfg.Taxonomy.Source != config.SourceDatabase {
		t.Fatalf("written config = %+v", cfg)
	}

	if _, err := run(t, "config", "init"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
	if _, err := run(t, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
}
