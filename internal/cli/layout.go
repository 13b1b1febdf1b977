package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitlanes/gitlanes/pkg/graph"
	"github.com/gitlanes/gitlanes/pkg/pipeline"
)

// layoutCommand creates the layout command for computing commit-graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "layout [repo]",
		Short: "Compute a commit-graph layout and write it as JSON",
		Long: `Compute a commit-graph layout and write it as JSON.

The layout command reads the commit history, assigns lanes and colors,
and writes the result as a layout.json document. The same format is served
by the HTTP API and consumed by 'render', so layouts can be computed once
and rendered many times.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.RepoPath = args[0]
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.Ref, "ref", "r", opts.Ref, "branch, tag, or revision to start from (default: HEAD)")
	cmd.Flags().BoolVar(&opts.All, "all", opts.All, "walk all refs instead of a single head")
	cmd.Flags().IntVarP(&opts.MaxCommits, "max-commits", "n", opts.MaxCommits, "maximum number of commits")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache")

	return cmd
}

// runLayout loads the history, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		_, err := os.Stdout.Write(result.Artifacts[pipeline.FormatJSON])
		return err
	}

	if err := graph.WriteLayoutFile(result.Layout, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(result.Stats.CommitCount, result.Stats.MergeCount, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" render --layout "+output)

	return nil
}
