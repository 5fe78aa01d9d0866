package pipeline

import (
	"fmt"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/errors"
	"github.com/annotext/spanviz/pkg/layout"
	"github.com/annotext/spanviz/pkg/render"
	"github.com/annotext/spanviz/pkg/render/nodelink"
	"github.com/annotext/spanviz/pkg/render/svg"
)

// Render generates output artifacts in the requested formats.
// Options must have render defaults applied; callers outside the Runner
// should go through [Options.ValidateForRender] first.
func Render(res *layout.Result, doc annotation.Document, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(doc, opts)
	}
	return renderSpan(res, doc, opts)
}

// renderSpan generates span view outputs from a computed layout.
func renderSpan(res *layout.Result, doc annotation.Document, opts Options) (map[string][]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("span render requires a layout")
	}

	svgOpts := buildSVGOptions(doc, opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg.Render(res, svgOpts...)
		case FormatPNG:
			data, err = render.ToPNG(svg.Render(res, svgOpts...), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(svg.Render(res, svgOpts...))
		case FormatJSON:
			data, err = res.Marshal()
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported span format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates node-link outputs. The DOT graph is built on
// demand from the document; there is no separate layout stage.
func renderNodelink(doc annotation.Document, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(doc annotation.Document, opts Options) []svg.Option {
	svgOpts := []svg.Option{svg.WithDocument(&doc)}

	if opts.Theme == ThemeGrayscale {
		svgOpts = append(svgOpts, svg.WithTheme(svg.GrayscaleTheme()))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, svg.WithInteraction())
	}

	return svgOpts
}

// RenderFromData renders span outputs from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g. saved by
// the layout command). The document is optional; without it, box colors
// hash display labels instead of entity types.
func RenderFromData(layoutData []byte, doc annotation.Document, opts Options) (map[string][]byte, error) {
	parsed, err := layout.UnmarshalResult(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return renderSpan(parsed, doc, opts)
}
