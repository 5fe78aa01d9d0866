// Package layout computes visual geometry for annotated documents:
// wrapped text lines, entity boxes stacked into non-overlapping layers,
// and routed relation paths, all in a fixed-width character model.
//
// # Overview
//
// [Build] is the single entry point. It takes an [annotation.Document],
// a canvas width, and optional geometry [Constants], and produces a
// [Result] holding every coordinate a renderer needs. The stages are
// exposed individually ([Segment], [PackLines], [AssignLayers],
// [TruncateLabel]) for callers that want to drive part of the pipeline
// themselves.
//
// # Basic Usage
//
//	doc, err := annotation.ReadDocumentFile("report.json")
//	if err != nil {
//		return err
//	}
//	res, err := layout.Build(doc, 800)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%d lines, %.0fx%.0f\n", len(res.Lines), res.Width, res.Height)
//
// # Coordinate Model
//
// All text is measured as rune count times CharWidth; no font metrics
// are consulted. X grows right and Y grows down, with the configured
// margin on every side. Each line owns a vertical budget that expands
// with the boxes and relation lanes it carries, so crowded lines push
// later lines further down instead of overlapping them.
//
// # Determinism
//
// Every stage iterates in declaration or document order and breaks ties
// by first fit, so a given document and width always produce an
// identical Result. Maps appear only as lookup indexes, never as
// iteration sources.
//
// # Degradation
//
// Build does not fail on document anomalies. Spans that fall outside
// the text, relations naming unknown entities, and spans covering only
// whitespace are dropped and reported in [Result.Skipped]; the rest of
// the document lays out normally. A canvas too narrow for its widest
// chunk degrades to one oversized chunk per line. The only build errors
// are non-positive widths and invalid constants.
package layout
