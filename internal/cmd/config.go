package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/shelfpack/internal/dsl"
	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

// NewConfigCmd creates the config subcommand tree for reading and editing
// the defaults applied to item lists.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the default packing settings",
		Long: `Show or change the application config. Item lists that carry no
container or settings of their own are packed with these defaults.`,
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigSetSortCmd(),
		newConfigSetAlgorithmCmd(),
		newConfigSetContainerCmd(),
		newConfigBackupCmd(),
		newConfigRestoreCmd(),
	)
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current config as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigSetSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set-sort KEY",
		Short:     "Set the default sort key",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"height", "width", "area", "perimeter"},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.ParseSortKey(args[0])
			if err != nil {
				return err
			}
			return updateConfig(cmd, func(cfg *model.AppConfig) {
				cfg.DefaultSortKey = key
			})
		},
	}
}

func newConfigSetAlgorithmCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set-algorithm ALGORITHM",
		Short:     "Set the default packing algorithm",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.AlgorithmShelf), string(model.AlgorithmGenetic)},
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := model.ParseAlgorithm(args[0])
			if err != nil {
				return err
			}
			return updateConfig(cmd, func(cfg *model.AppConfig) {
				cfg.DefaultAlgorithm = algo
			})
		},
	}
}

func newConfigSetContainerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-container WIDTHxHEIGHT",
		Short: "Set the default container size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := dsl.ParseDimensions(args[0])
			if err != nil {
				return err
			}
			size := model.NewSize(w, h)
			if err := size.Validate(); err != nil {
				return err
			}
			return updateConfig(cmd, func(cfg *model.AppConfig) {
				cfg.DefaultContainer = size
			})
		},
	}
}

func newConfigBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup PATH",
		Short: "Write the config and saved templates to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgPath, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			templates, err := project.LoadTemplates(templatePathFor(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			if err := project.ExportAllData(args[0], cfg, templates); err != nil {
				return err
			}
			log.Printf("Backed up config and %d templates to %s", len(templates.Templates), args[0])
			return nil
		},
	}
}

func newConfigRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore PATH",
		Short: "Replace the config and saved templates from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfgPath, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(cfgPath, backup.Config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			if err := project.SaveTemplates(templatePathFor(cfgPath), backup.Templates); err != nil {
				return fmt.Errorf("failed to save templates: %w", err)
			}
			log.Printf("Restored backup created at %s", backup.CreatedAt)
			return nil
		},
	}
}

// updateConfig loads the config, applies fn and saves it back.
func updateConfig(cmd *cobra.Command, fn func(*model.AppConfig)) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fn(&cfg)
	if err := project.SaveAppConfig(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	log.Printf("Updated %s", path)
	return nil
}

// templatePathFor keeps the template store next to the config file.
func templatePathFor(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), filepath.Base(project.DefaultTemplatePath()))
}
