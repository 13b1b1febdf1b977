package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitlanes/gitlanes/pkg/graph"
	"github.com/gitlanes/gitlanes/pkg/pipeline"
)

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		layoutFile string
		formats    string
		output     string
		noCache    bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "render [repo]",
		Short: "Render the commit graph as DOT, SVG, or JSON",
		Long: `Render the commit graph as DOT, SVG, or JSON.

By default the command reads a repository, computes the layout, and
renders it. With --layout it renders a previously computed layout.json
instead, skipping the repository entirely.

Formats are comma-separated: -f svg,dot writes both files.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.RepoPath = args[0]
			}
			opts.Formats = parseFormats(formats)
			return c.runRender(cmd.Context(), opts, layoutFile, output, noCache)
		},
	}

	cmd.Flags().StringVar(&layoutFile, "layout", "", "render an existing layout.json instead of a repository")
	cmd.Flags().StringVarP(&formats, "formats", "f", "svg", "comma-separated output formats: svg, dot, json")
	cmd.Flags().StringVarP(&output, "output", "o", "graph", "output base path (extension is appended per format)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.Ref, "ref", "r", opts.Ref, "branch, tag, or revision to start from (default: HEAD)")
	cmd.Flags().BoolVar(&opts.All, "all", opts.All, "walk all refs instead of a single head")
	cmd.Flags().IntVarP(&opts.MaxCommits, "max-commits", "n", opts.MaxCommits, "maximum number of commits")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache")

	return cmd
}

// runRender produces artifacts either from a layout file or a repository.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, layoutFile, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	var artifacts map[string][]byte
	var stats pipeline.Stats
	cached := false

	renderMsg := fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", "))
	spinner := newSpinnerWithContext(ctx, renderMsg)
	spinner.Start()

	if layoutFile != "" {
		spinner.SetMessage("Loading layout...")
		layout, err := graph.ReadLayoutFile(layoutFile)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("load layout %s: %w", layoutFile, err)
		}
		spinner.SetMessage(renderMsg)
		artifacts, cached, err = runner.RenderWithCacheInfo(ctx, layout, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		stats.CommitCount = len(layout.Rows)
	} else {
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		artifacts = result.Artifacts
		stats = result.Stats
		cached = result.CacheInfo.RenderHit
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := outputPath(output, format)
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(stats.CommitCount, stats.MergeCount, cached)

	return nil
}

// outputPath appends the format extension unless base already carries it.
func outputPath(base, format string) string {
	ext := "." + format
	if filepath.Ext(base) == ext {
		return base
	}
	return base + ext
}
