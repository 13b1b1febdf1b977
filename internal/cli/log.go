package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitlanes/gitlanes/pkg/pipeline"
)

// logCommand creates the log command for printing the commit graph.
func (c *CLI) logCommand() *cobra.Command {
	var (
		noCache bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "log [repo]",
		Short: "Show the commit graph in the terminal",
		Long: `Show the commit graph in the terminal.

Reads the commit history of a repository and prints one line per commit
with lane glyphs on the left, similar to 'git log --graph --oneline' but
constrained to two columns so the output stays narrow.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.RepoPath = args[0]
			}
			return c.runLog(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Ref, "ref", "r", opts.Ref, "branch, tag, or revision to start from (default: HEAD)")
	cmd.Flags().BoolVar(&opts.All, "all", opts.All, "walk all refs instead of a single head")
	cmd.Flags().IntVarP(&opts.MaxCommits, "max-commits", "n", opts.MaxCommits, "maximum number of commits")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", opts.NoColor, "disable colored output")
	cmd.Flags().BoolVar(&opts.ShowAuthor, "authors", opts.ShowAuthor, "show author names")
	cmd.Flags().BoolVar(&opts.ShowTime, "dates", opts.ShowTime, "show commit dates")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLog executes the pipeline and writes the terminal graph to stdout.
func (c *CLI) runLog(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatTerm}

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	_, err = os.Stdout.Write(result.Artifacts[pipeline.FormatTerm])
	return err
}
