package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cperrin88/altvsync/internal/logger"
	"github.com/cperrin88/altvsync/pkg/artifact"
	"github.com/cperrin88/altvsync/pkg/config"
	"github.com/cperrin88/altvsync/pkg/errors"
	"github.com/cperrin88/altvsync/pkg/fsutil"
	"github.com/cperrin88/altvsync/pkg/orchestrator"
	"github.com/cperrin88/altvsync/pkg/platform"
)

// SyncOptions are the per-run overrides of the sync command.
type SyncOptions struct {
	Branch      string
	Platform    string
	OutputDir   string
	Concurrency int
	CDNURL      string
	NoPrompt    bool
}

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	opts := &SyncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize alt:V server files",
		Long: `Synchronize the configured alt:V server builds with the CDN.

Every artifact is checked against the SHA-1 digest published in the CDN
manifest and downloaded only when the local copy is missing or stale.
Without a configuration file you are asked for the builds to install.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunSync(cmd, opts)
		},
	}

	AddSyncFlags(cmd, opts)
	return cmd
}

// AddSyncFlags registers the sync flags on cmd. The root command uses it to sync by default.
func AddSyncFlags(cmd *cobra.Command, opts *SyncOptions) {
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "override the configured branch (release, rc, dev)")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "override the configured platform (windows, linux)")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "override the configured output path")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "number of artifacts processed in parallel")
	cmd.Flags().StringVar(&opts.CDNURL, "cdn-url", "", "override the CDN base URL, e.g. for a mirror")
	cmd.Flags().BoolVar(&opts.NoPrompt, "no-prompt", false, "fail instead of prompting when no configuration exists")
}

// RunSync runs one synchronization and prints its report.
func RunSync(cmd *cobra.Command, opts *SyncOptions) error {
	ctx := cmd.Context()

	format, err := outputFormat()
	if err != nil {
		return err
	}

	cfg, err := loadOrPromptConfig(cmd, opts.NoPrompt)
	if err != nil {
		return err
	}
	if err := applySyncOverrides(cfg, opts); err != nil {
		return err
	}

	target, err := cfg.Target()
	if err != nil {
		return err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	scripts, err := loadHookRunner(cfg)
	if err != nil {
		return err
	}

	lock, err := fsutil.LockDir(target.OutputPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("Failed to release output lock", logger.Fields{"error": err.Error()})
		}
	}()

	mc := loadManifestClient()
	version := mc.ResolveVersion(ctx, layout.ComponentManifestURL(target, artifact.ComponentServer))
	logger.Info("Synchronizing server files", logger.Fields{
		"branch":   string(target.Branch),
		"platform": target.Platform.String(),
		"version":  version,
		"output":   target.OutputPath,
	})

	orch := orchestrator.New(mc, loadDownloadManager(), scripts, orchestrator.Hooks{OnEvent: logEvent})
	results, err := orch.Sync(ctx, target, artifact.Catalog(), orchestrator.Options{
		Layout:      layout,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to sync: %w", err)
	}

	if err := writeReport(cmd.OutOrStdout(), results, version, format); err != nil {
		return err
	}
	return orchestrator.Failed(results)
}

func applySyncOverrides(cfg *config.Config, opts *SyncOptions) error {
	if opts.Branch != "" {
		branch, ok := artifact.ParseBranch(opts.Branch)
		if !ok {
			return errors.ErrInvalidBranchWithDetails(opts.Branch, artifact.ValidBranchNames())
		}
		cfg.Branch = string(branch)
	}
	if opts.Platform != "" {
		p, ok := platform.Parse(opts.Platform)
		if !ok {
			return errors.Wrapf(errors.ErrConfigInvalid, "unsupported platform %q", opts.Platform)
		}
		cfg.Windows = p.IsWindows()
	}
	if opts.OutputDir != "" {
		cfg.OutputPath = opts.OutputDir
	}
	if opts.Concurrency != 0 {
		cfg.Concurrency = opts.Concurrency
	}
	if opts.CDNURL != "" {
		cfg.CDNURL = opts.CDNURL
	}
	return cfg.Validate()
}

func logEvent(e orchestrator.Event) {
	switch e.Phase {
	case orchestrator.PhaseGroup:
		logger.Debug("Checking group", logger.Fields{"group": e.ID})
	case orchestrator.PhaseChecking:
		logger.Debug("Checking artifact", logger.Fields{"artifact": e.ID, "path": e.Msg})
	case orchestrator.PhaseDownloading:
		logger.Info("Downloading", logger.Fields{"artifact": e.ID, "url": e.Msg})
	case orchestrator.PhaseSkipped:
		logger.Info("Up to date", logger.Fields{"artifact": e.ID})
	case orchestrator.PhaseDownloaded:
		logger.Success("Downloaded", logger.Fields{"artifact": e.ID})
	case orchestrator.PhaseFailed:
		logger.Error("Failed", logger.Fields{"artifact": e.ID, "error": e.Msg})
	case orchestrator.PhaseDone:
		logger.Info("Sync finished", logger.Fields{"summary": e.Msg})
	}
}
