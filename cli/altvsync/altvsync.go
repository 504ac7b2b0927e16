package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cperrin88/altvsync/internal/cli"
)

var (
	configPath   string
	verbose      bool
	noColor      bool
	outputFormat string
	logFormat    string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	syncOpts := &cli.SyncOptions{}

	cmd := &cobra.Command{
		Use:   "altvsync",
		Short: "Keep alt:V server files up to date",
		Long: `altvsync keeps an alt:V server directory in sync with the alt:V CDN.

Running it without a subcommand synchronizes the builds selected in the
configuration file. Files whose SHA-1 digest already matches the CDN
manifest are left untouched.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			cli.InitLogging()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.RunSync(cmd, syncOpts)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ./config.json)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (text, json)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format on stderr (pretty, text, json)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor
	cli.OutputFormat = &outputFormat
	cli.LogFormat = &logFormat

	cli.AddSyncFlags(cmd, syncOpts)

	// Add subcommands
	cmd.AddCommand(
		cli.NewSyncCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionsCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
