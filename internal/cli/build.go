package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cratemap/cratemap/pkg/graph"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	revision uint64 // revision stamped onto the snapshot
	output   string // output file path (stdout if empty)
}

// newBuildCmd creates the build command, producing a single graph snapshot.
func newBuildCmd() *cobra.Command {
	opts := buildOpts{revision: 1}

	cmd := &cobra.Command{
		Use:   "build <root>",
		Short: "Build a workspace module graph once and write it as JSON",
		Long: `Build scans the workspace at <root>, parses module declarations, and
writes the resulting graph as JSON to stdout or a file.

Examples:
  cratemap build .                   # Graph of the current directory to stdout
  cratemap build ~/ws -o graph.json  # Graph written to a file`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c, &opts, args[0])
		},
	}

	cmd.Flags().Uint64Var(&opts.revision, "revision", opts.revision, "revision stamped onto the snapshot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runBuild(cmd *cobra.Command, opts *buildOpts, root string) error {
	logger := loggerFromContext(cmd.Context())
	logger.Infof("Building graph for %s", root)

	prog := newProgress(logger)
	g, err := graph.Build(root, opts.revision)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built graph with %d nodes and %d edges", g.NodeCount(), g.EdgeCount()))

	if opts.output == "" {
		return graph.WriteGraph(g, os.Stdout)
	}
	if err := graph.WriteGraphFile(g, opts.output); err != nil {
		return err
	}
	logger.Infof("Wrote graph to %s", opts.output)
	return nil
}
