// Package annotation provides the span-annotated document model that feeds
// the layout engine.
//
// # Overview
//
// A [Document] is a plain text string together with two annotation layers:
// entities, which label contiguous character ranges of the text, and
// relations, which connect two entities with a typed directed edge. The model
// is the input contract for [layout.Build] and the canonical serialization
// format for files, the HTTP API, and the document store.
//
// # Offsets
//
// Entity offsets are expressed in Unicode code points (runes), not bytes.
// An entity covers the half-open range [Start, End) of [Document.Runes].
// The fixed-width character model used by the layout engine measures text by
// counting runes, so rune offsets keep annotation and geometry consistent.
//
// # Basic Usage
//
// Build a document directly or decode one with [ReadDocumentFile]:
//
//	doc := annotation.Document{
//	    Text: "The dump truck was inspected",
//	    Entities: []annotation.Entity{
//	        {ID: "T1", Type: "Object", Start: 4, End: 14},
//	        {ID: "T2", Type: "Activity", Start: 19, End: 28},
//	    },
//	    Relations: []annotation.Relation{
//	        {ID: "R1", Type: "hasTarget", Source: "T2", Target: "T1"},
//	    },
//	}
//
// # Validation
//
// Annotation data produced by taggers and human annotators is routinely
// imperfect. [Document.Sanitized] partitions the document into the items
// eligible for layout and a [Problem] report describing everything excluded:
// malformed spans, duplicate IDs, and relations whose endpoints do not
// resolve. Downstream consumers never fail on malformed annotations; they
// lay out what is usable and report the rest.
//
// # Concurrency
//
// Document values are plain data. Concurrent reads are safe; callers must
// synchronize writes.
//
// [layout.Build]: github.com/annotext/spanviz/pkg/layout
package annotation
