package pipeline

import (
	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/layout"
)

// ComputeLayout runs the layout engine over a document.
//
// Only the span view has a layout stage. The node-link view hands the
// document to Graphviz at render time, so there is nothing to compute
// here for it.
func ComputeLayout(doc annotation.Document, opts Options) (*layout.Result, error) {
	var layoutOpts []layout.Option
	if opts.Constants != nil {
		layoutOpts = append(layoutOpts, layout.WithConstants(*opts.Constants))
	}
	return layout.Build(doc, opts.Width, layoutOpts...)
}
