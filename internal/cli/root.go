package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cratemap/cratemap/pkg/buildinfo"
)

// Execute runs the cratemap CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (build, watch,
// serve), configures logging based on the --verbose flag, and executes the
// command tree with ctx, so cancellation (e.g. SIGINT) propagates into the
// long-running commands.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "cratemap",
		Short:        "Cratemap maps the module structure of a Rust workspace",
		Long:         `Cratemap scans a Rust workspace, derives its logical module graph from mod declarations, and keeps that graph fresh as files change, publishing debounced snapshots instead of raw filesystem events.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to cratemap.toml (default: ./cratemap.toml if present)")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newWatchCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))

	return root.ExecuteContext(ctx)
}
