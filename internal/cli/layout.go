package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/annotext/spanviz/pkg/errors"
	"github.com/annotext/spanviz/pkg/httputil"
	"github.com/annotext/spanviz/pkg/layout"
	"github.com/annotext/spanviz/pkg/pipeline"
)

// layoutCommand creates the layout command for computing span layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	c.setDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [document.json]",
		Short: "Compute the span layout for an annotated document",
		Long: `Compute the span layout for an annotated document.

The layout command reads a document (JSON or YAML, from a file, stdin with
"-", or an HTTP URL) and computes line, box, and connector geometry for
the span view. The output is a layout.json file (same format as
'render -f json') that can be turned into SVG, PNG, or PDF with the
'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "drawing width in pixels")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "recompute even if cached")

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if output != "" {
		if err := errors.ValidateOutputPath(output); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Path = input
	opts.Logger = c.Logger

	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	res, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultLayoutPath(input)
	}

	if err := layout.WriteResultFile(outputPath, res); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.EntityCount(), res.RelationCount(), cacheHit)
	printNewline()
	printNextStep("Render", "spanviz visualize "+outputPath)

	return nil
}

// defaultLayoutPath derives the layout output path from the input.
// Stdin and URL inputs have no usable base name, so they land in the
// working directory.
func defaultLayoutPath(input string) string {
	if input == "-" || httputil.IsURL(input) {
		return "layout.json"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
