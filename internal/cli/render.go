package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/annotext/spanviz/pkg/pipeline"
)

// renderCommand creates the render command for the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	c.setDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [document.json]",
		Short: "Render an annotated document to SVG, PNG, PDF, or data formats",
		Long: `Render an annotated document in one step.

The render command runs the full pipeline: it loads the document, computes
the span layout (or builds the node-link graph with -t nodelink), and
writes the requested output formats. Pass "-" to read the document from
stdin, or an http(s) URL to fetch it remotely.

The span view supports svg, png, pdf, and json (the computed layout); the
node-link view supports svg, png, pdf, and dot (the raw graph).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateViz(opts.Viz); err != nil {
				return err
			}
			if err := pipeline.ValidateTheme(opts.Theme); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.Viz, "type", "t", opts.Viz, "visualization type: span (default), nodelink")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "color theme: color (default), grayscale")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "drawing width in pixels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG supersampling factor")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", opts.Interactive, "embed hover highlighting (SVG)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", opts.Detailed, "show span offsets and relation IDs (nodelink)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "re-render even if cached")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Path = input
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s view...", opts.Viz))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, p := range result.Problems {
		printWarning("Skipped %s %s: %s", p.Kind, p.ID, p.Reason)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
		entities:  result.Stats.EntityCount,
		relations: result.Stats.RelationCount,
	})
}
