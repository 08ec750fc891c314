package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/medilearn/internal/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configTarget(root.configPath)
			load := config.Default
			switch _, err := os.Stat(path); {
			case err == nil && !force:
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			case err == nil:
				load = func() (config.Config, error) { return config.Load(path) }
			case !errors.Is(err, fs.ErrNotExist):
				return err
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	cmd.AddCommand(initCmd)
	return cmd
}

func configTarget(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("MEDILEARN_CONFIG"); env != "" {
		return env
	}
	return config.DefaultPath()
}
