package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cperrin88/altvsync/internal/logger"
	"github.com/cperrin88/altvsync/pkg/config"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "View and create the altvsync configuration file",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigInitCmd(),
		newConfigPathCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func newConfigInitCmd() *cobra.Command {
	var (
		force    bool
		defaults bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long:  "Create a configuration file, asking for the builds to install unless --defaults is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force, defaults)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "Write the default configuration without prompting")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := filepath.Abs(getConfigPath())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := cfg.ToYAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, force, defaults bool) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", configPath)
	}

	cfg := config.DefaultConfig()
	if !defaults {
		var err error
		if cfg, err = PromptConfig(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if err := cfg.SaveConfig(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Success("Configuration file created", logger.Fields{"path": configPath})
	return nil
}
