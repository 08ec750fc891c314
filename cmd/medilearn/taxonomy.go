package main

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jask/medilearn/internal/config"
	"github.com/jask/medilearn/internal/database"
	"github.com/jask/medilearn/internal/database/repository"
	"github.com/jask/medilearn/internal/taxonomy"
)

func newTaxonomyCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Inspect and manage the library taxonomy",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the configured library tree",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(root.configPath)
				if err != nil {
					return err
				}
				tax, err := loadTaxonomy(cmd.Context(), cfg, discardLogger())
				if err != nil {
					return err
				}
				printTree(cmd.OutOrStdout(), tax)
				return nil
			},
		},
		&cobra.Command{
			Use:   "check FILE",
			Short: "Validate a taxonomy YAML file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tax, err := taxonomy.LoadFile(args[0])
				if err != nil {
					return err
				}
				sections, subsections, topics := tax.Len()
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sections, %d subsections, %d topics)\n",
					args[0], sections, subsections, topics)
				return nil
			},
		},
		&cobra.Command{
			Use:   "export FILE",
			Short: "Write the configured library tree as YAML",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(root.configPath)
				if err != nil {
					return err
				}
				tax, err := loadTaxonomy(cmd.Context(), cfg, discardLogger())
				if err != nil {
					return err
				}
				if err := tax.WriteFile(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Replace the stored library tree with a YAML file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(root.configPath)
				if err != nil {
					return err
				}
				tax, err := taxonomy.LoadFile(args[0])
				if err != nil {
					return err
				}
				db, err := openDatabase(cfg)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := repository.NewTaxonomyRepo(db).Replace(cmd.Context(), tax); err != nil {
					return fmt.Errorf("import %s: %w", args[0], err)
				}
				version, _, err := database.Version(db)
				if err != nil {
					return fmt.Errorf("schema version: %w", err)
				}
				_, _, topics := tax.Len()
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d topics into %s (schema v%d)\n", topics, cfg.Database.Path, version)
				return nil
			},
		},
	)
	return cmd
}

func openDatabase(cfg config.Config) (*sql.DB, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func printTree(w io.Writer, tax *taxonomy.Taxonomy) {
	for _, sec := range tax.Specs() {
		fmt.Fprintln(w, sec.Name)
		for _, sub := range sec.Subsections {
			fmt.Fprintf(w, "  %s\n", sub.Name)
			for _, topic := range sub.Topics {
				fmt.Fprintf(w, "    - %s\n", topic)
			}
		}
	}
}
