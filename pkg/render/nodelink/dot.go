package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes entity IDs and span offsets in node labels.
	// When false, only the covered text and type are shown.
	Detailed bool
}

// ToDOT converts a document's annotation graph to Graphviz DOT format.
// Entities become boxes, relations become labeled arrows, and text
// positions are ignored entirely. The resulting DOT string can be
// rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Annotations that would be excluded from layout (malformed spans,
// dangling relations) are excluded here too, so both views always agree
// on which annotations exist.
func ToDOT(doc annotation.Document, opts Options) string {
	entities, relations, _ := doc.Sanitized()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	for _, e := range entities {
		label := fmtLabel(doc, e, opts.Detailed)
		attrs := fmtAttrs(e, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", e.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range relations {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", r.Source, r.Target, r.Type)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(doc annotation.Document, e annotation.Entity, detailed bool) string {
	label := doc.EntityText(e) + "\n" + e.Type
	if !detailed {
		return label
	}

	parts := []string{
		fmt.Sprintf("id: %s", e.ID),
		fmt.Sprintf("span: [%d, %d)", e.Start, e.End),
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(e annotation.Entity, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if e.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", e.Color))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
