package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/layout"
	"github.com/annotext/spanviz/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering saved layouts.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		docPath    string
		noCache    bool
	)
	opts := pipeline.Options{}
	c.setDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout to SVG, PNG, or PDF",
		Long: `Render a computed layout to SVG, PNG, or PDF.

The visualize command takes a layout.json file (produced by 'layout') and
renders it. The layout carries all geometry, so this step is purely about
drawing. Passing the original document with --document restores type-based
box colors and hover highlighting.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from a document to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateTheme(opts.Theme); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, docPath, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&docPath, "document", "d", "", "original document file (restores colors and interactivity)")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "color theme: color (default), grayscale")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG supersampling factor")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", opts.Interactive, "embed hover highlighting (SVG)")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, docPath, output string, noCache bool) error {
	res, err := layout.ReadResultFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	var doc annotation.Document
	if docPath != "" {
		doc, err = annotation.ReadDocumentFile(docPath)
		if err != nil {
			return fmt.Errorf("load document %s: %w", docPath, err)
		}
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Viz = pipeline.VizSpan
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, res, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
		entities:  res.EntityCount(),
		relations: res.RelationCount(),
	})
}
