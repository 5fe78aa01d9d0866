// Package pkg provides the core libraries for spanviz.
//
// # Overview
//
// Spanviz renders span-annotated text: entities marked on character
// ranges of a document, connected by typed relations, drawn as wrapped
// text lines with entity boxes below the spans and routed connectors
// between them. The pkg directory is organized around that flow:
//
//	Annotation Document (JSON/YAML)
//	         ↓
//	    [annotation] parse + validate
//	         ↓
//	    [layout] chunks → lines → layers → routes
//	         ↓
//	    [render] SVG / PNG / PDF / DOT output
//
// # Main Packages
//
// [annotation] - The document model: text plus entity and relation
// annotations, with span validation and sanitization. JSON and YAML IO.
//
// [layout] - The layout engine. Splits text into chunks at annotation
// boundaries, wraps them into lines, stacks entity boxes into
// non-overlapping layers, and routes relation connectors through
// horizontal slots. Pure geometry, no drawing.
//
// [render] - Output sinks. [render/svg] draws the span view;
// [render/nodelink] exports the entity-relation graph as DOT and
// renders it through Graphviz.
//
// [pipeline] - Orchestration (load → layout → render) used by the CLI
// and the HTTP server, with caching between stages.
//
// # Infrastructure
//
// [cache] - Layout and artifact caching with file, Redis, and null
// backends, keyed on content hashes.
//
// [store] - Document persistence for the server (in-memory and MongoDB).
//
// [httputil] - Fetching remote documents with retry.
//
// [observability] - Hook points for pipeline, cache, and HTTP events.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [annotation]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/annotation
// [layout]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/layout
// [render]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/cache
// [store]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/store
// [httputil]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/observability
// [errors]: https://pkg.go.dev/github.com/annotext/spanviz/pkg/errors
package pkg
