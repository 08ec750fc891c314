package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/medilearn/internal/config"
	"github.com/jask/medilearn/internal/database"
	"github.com/jask/medilearn/internal/database/repository"
	"github.com/jask/medilearn/internal/nav"
	"github.com/jask/medilearn/internal/taxonomy"
	"github.com/jask/medilearn/internal/tui"
)

// Version is set via ldflags at build time.
var Version = "dev"

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "medilearn",
		Short:         "Browse the MediLearn study library in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path (default $MEDILEARN_CONFIG or ~/.config/medilearn/config.toml)")

	cmd.AddCommand(newTaxonomyCmd(opts), newConfigCmd(opts), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of medilearn",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "medilearn %s\n", Version)
		},
	}
}

func discardLogger() *zap.Logger { return zap.NewNop() }

func runTUI(ctx context.Context, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	log, closeLog, err := cfg.Log.Logger("medilearn")
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	tax, err := loadTaxonomy(ctx, cfg, log)
	if err != nil {
		log.Error("load taxonomy", zap.Error(err))
		return err
	}
	sections, subsections, topics := tax.Len()
	log.Info("taxonomy loaded",
		zap.String("source", cfg.Taxonomy.Source),
		zap.Int("sections", sections),
		zap.Int("subsections", subsections),
		zap.Int("topics", topics),
	)

	machine := nav.New(tax,
		nav.WithStrict(cfg.Debug.Strict),
		nav.WithObserver(tui.LogTransitions(log.Named("nav"))),
	)
	if cfg.UI.StartCollapsed {
		machine.ToggleSidebar()
	}

	app := tui.New(machine, tui.Options{
		Title:                 cfg.UI.Title,
		SidebarWidth:          cfg.UI.SidebarWidth,
		SidebarCollapsedWidth: cfg.UI.SidebarCollapsedWidth,
		PanelWidth:            cfg.UI.PanelWidth,
		Keys:                  cfg.UI.Keys,
	}, log.Named("tui"))

	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		log.Error("tui exited", zap.Error(err))
		return fmt.Errorf("run tui: %w", err)
	}
	log.Info("exit", zap.String("path", machine.State().Path()))
	return nil
}

// loadTaxonomy resolves the library tree from the configured source. The
// database source seeds the built-in library into an empty store.
func loadTaxonomy(ctx context.Context, cfg config.Config, log *zap.Logger) (*taxonomy.Taxonomy, error) {
	switch cfg.Taxonomy.Source {
	case config.SourceBuiltin:
		return taxonomy.Library(), nil
	case config.SourceFile:
		return taxonomy.LoadFile(cfg.Taxonomy.Path)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if version, _, err := database.Version(db); err == nil {
		log.Debug("database ready", zap.String("db", cfg.Database.Path), zap.Uint("schema", version))
	}

	seeded, err := database.SeedDefaults(ctx, db, taxonomy.Library())
	if err != nil {
		return nil, fmt.Errorf("seed taxonomy: %w", err)
	}
	if seeded {
		log.Info("seeded built-in library", zap.String("db", cfg.Database.Path))
	}
	return repository.NewTaxonomyRepo(db).Load(ctx)
}
