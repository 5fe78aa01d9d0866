// Package render turns computed layouts into visual outputs.
//
// # Overview
//
// This package contains the rendering pipeline that transforms annotated
// documents and their layouts into images. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Span visualization (in [svg] subpackage)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They are shared by the
// span and node-link renderers.
//
//	out := svg.Render(result, opts...)
//	pdf, err := render.ToPDF(out)
//	png, err := render.ToPNG(out, 2.0)  // 2x scale
//
// # Span Visualization
//
// The [svg] subpackage draws the document text with entity boxes under
// their spans and routed relation paths between them. This is the primary
// visualization: everything it draws comes from a [layout.Result], so a
// saved layout file renders identically later.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the entity/relation structure as a
// traditional directed graph using Graphviz, ignoring text positions.
// Useful for inspecting dense relation webs that are hard to follow in
// span view.
//
// [svg]: github.com/annotext/spanviz/pkg/render/svg
// [nodelink]: github.com/annotext/spanviz/pkg/render/nodelink
// [layout.Result]: github.com/annotext/spanviz/pkg/layout
package render
