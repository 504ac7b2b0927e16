package cli

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cperrin88/altvsync/internal/logger"
	"github.com/cperrin88/altvsync/pkg/config"
	"github.com/cperrin88/altvsync/pkg/download"
	"github.com/cperrin88/altvsync/pkg/errors"
	"github.com/cperrin88/altvsync/pkg/hooks"
	"github.com/cperrin88/altvsync/pkg/manifest"
	"github.com/cperrin88/altvsync/pkg/orchestrator"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	NoColor      *bool
	OutputFormat *string
	LogFormat    *string
)

// InitLogging configures the global logger from the global flags.
func InitLogging() {
	level := "info"
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	format := logger.FormatPretty
	if LogFormat != nil && *LogFormat != "" {
		format = logger.ParseFormat(*LogFormat)
	}
	logger.SetNoColor(NoColor != nil && *NoColor)
	logger.InitLogger(level, format)
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}
	return config.DefaultConfigPath
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(getConfigPath())
}

// loadOrPromptConfig loads the config file, asking for a new one when it does not exist yet.
func loadOrPromptConfig(cmd *cobra.Command, noPrompt bool) (*config.Config, error) {
	configPath := getConfigPath()

	cfg, err := config.LoadConfig(configPath)
	if err == nil {
		logger.Debug("Loaded configuration", logger.Fields{"path": configPath})
		return cfg, nil
	}
	if !stderrors.Is(err, errors.ErrConfigNotFound) || noPrompt {
		return nil, err
	}

	logger.Info("No configuration found, creating one", logger.Fields{"path": configPath})
	cfg, err = PromptConfig(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	if err := cfg.SaveConfig(configPath); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}
	logger.Success("Configuration saved", logger.Fields{"path": configPath})
	return cfg, nil
}

func outputFormat() (string, error) {
	format := FormatText
	if OutputFormat != nil && *OutputFormat != "" {
		format = strings.ToLower(*OutputFormat)
	}
	switch format {
	case FormatText, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q, must be one of: %s, %s", format, FormatText, FormatJSON)
	}
}

func userAgent() string {
	return "altvsync/" + Version
}

func loadManifestClient() *manifest.HTTPClient {
	return manifest.NewHTTPClient(ManifestTimeout, userAgent())
}

func loadDownloadManager() *download.ManagerImpl {
	return download.NewManager(download.DefaultTimeout, userAgent())
}

// loadHookRunner returns nil when no post-download hook is configured.
func loadHookRunner(cfg *config.Config) (orchestrator.HookRunner, error) {
	if cfg.Hooks.PostDownload == "" {
		return nil, nil
	}
	manager := hooks.NewHookManager()
	if err := hooks.LoadHookFile(manager, hooks.PostDownload, cfg.Hooks.PostDownload); err != nil {
		return nil, err
	}
	logger.Debug("Loaded post-download hook", logger.Fields{"path": cfg.Hooks.PostDownload})
	return manager, nil
}
