// Package svg renders span-annotated layouts as SVG.
//
// # Overview
//
// [Render] transforms a computed [layout.Result] into a standalone SVG
// document:
//
//   - Text chunks drawn in a fixed-width font, pinned to their computed
//     widths so glyphs line up with the geometry
//   - Entity boxes under their spans, colored per type with stable
//     palette hashing
//   - Relation polylines with arrowheads, edge continuation markers for
//     cross-line routes, and rotated channel labels
//   - Optional hover highlighting of entities and their relations
//
// Basic usage:
//
//	out := svg.Render(result,
//	    svg.WithDocument(&doc),
//	    svg.WithInteraction(),
//	)
//
// # Options
//
//   - [WithDocument]: Use entity types (not display labels) for coloring
//   - [WithTheme]: Override colors and font ([DefaultTheme], [GrayscaleTheme])
//   - [WithInteraction]: Embed hover highlight CSS/JS
//
// # PDF and PNG
//
// For other formats, convert the SVG output with [render.ToPDF] and
// [render.ToPNG], which require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.ToPDF]: github.com/annotext/spanviz/pkg/render.ToPDF
// [render.ToPNG]: github.com/annotext/spanviz/pkg/render.ToPNG
// [layout.Result]: github.com/annotext/spanviz/pkg/layout.Result
package svg
