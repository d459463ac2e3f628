package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cratemap/cratemap/pkg/watch"
)

// watchOpts holds the command-line flags for the watch command. Zero
// durations mean "not set", letting config file values apply.
type watchOpts struct {
	poll     time.Duration
	debounce time.Duration
}

// newWatchCmd creates the watch command, which keeps rebuilding the graph
// until interrupted.
func newWatchCmd(configPath *string) *cobra.Command {
	var opts watchOpts

	cmd := &cobra.Command{
		Use:   "watch <root>",
		Short: "Watch a workspace and log refreshed graph snapshots",
		Long: `Watch polls the workspace at <root> for source changes, coalesces bursts
of activity into single rebuilds, and logs each published snapshot.

Examples:
  cratemap watch .                    # Defaults: 400ms poll, 500ms debounce
  cratemap watch . --poll 1s          # Slower polling for large trees`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runWatch(c, &opts, *configPath, args[0])
		},
	}

	cmd.Flags().DurationVar(&opts.poll, "poll", 0, "fingerprint poll interval (default 400ms)")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "debounce quiet period (default 500ms)")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOpts, configPath, root string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	fileCfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	handle, updates := watch.Spawn(ctx, root, fileCfg.watchConfig(opts.poll, opts.debounce, logger))
	defer handle.Shutdown()
	logger.Info("Watching workspace", "root", root, "watcher", handle.ID)

	for update := range updates {
		logger.Info("Graph refreshed",
			"trigger", update.Trigger.String(),
			"revision", update.Graph.Revision,
			"nodes", update.Graph.NodeCount(),
			"edges", update.Graph.EdgeCount())
	}

	return ctx.Err()
}
