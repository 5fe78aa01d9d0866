package layout

import (
	"fmt"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/errors"
)

// ===== Options =====

type config struct {
	constants Constants
}

// Option configures a layout computation.
type Option func(*config)

// WithConstants overrides the geometry constants used for the
// computation.
func WithConstants(c Constants) Option {
	return func(cfg *config) {
		cfg.constants = c
	}
}

// ===== Build =====

// Build computes the full layout for a document at the given canvas
// width.
//
// The stages run in a fixed order: sanitize the document, segment the
// text into chunks, pack chunks into lines, stack each line's entity
// boxes into layers, resolve box positions, budget vertical space,
// route relations, and fit box labels. Every stage iterates in
// declaration or document order, so the same input always produces the
// same result.
//
// Document anomalies never fail the build. Malformed spans, dangling
// relations, and spans without visible text are dropped and reported in
// [Result.Skipped] while everything else lays out normally. The only
// errors are structural: a non-positive maxWidth or invalid constants.
func Build(doc annotation.Document, maxWidth float64, opts ...Option) (*Result, error) {
	cfg := config{constants: DefaultConstants()}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := cfg.constants
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if maxWidth <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "max width must be positive, got %v", maxWidth)
	}

	entities, relations, skipped := doc.Sanitized()

	chunks := Segment(doc.Text, entities)
	lines := PackLines(chunks, maxWidth-2*c.Margin, c)

	assigns := make([]LayerAssignment, len(lines))
	for i := range lines {
		assigns[i] = AssignLayers(lines[i])
		lines[i].LayerCount = len(assigns[i].Layers)
	}

	positions, unplaced := resolvePositions(entities, lines, assigns, c)
	skipped = append(skipped, unplaced...)

	// Relations can only be routed between placed boxes. An endpoint
	// may have lost its box when its span covered no visible text.
	routable := make([]annotation.Relation, 0, len(relations))
	for _, rel := range relations {
		if _, ok := positions[rel.Source]; !ok {
			skipped = append(skipped, annotation.Problem{
				Kind:   annotation.ProblemRelation,
				ID:     rel.ID,
				Reason: fmt.Sprintf("source entity %q has no layout position", rel.Source),
			})
			continue
		}
		if _, ok := positions[rel.Target]; !ok {
			skipped = append(skipped, annotation.Problem{
				Kind:   annotation.ProblemRelation,
				ID:     rel.ID,
				Reason: fmt.Sprintf("target entity %q has no layout position", rel.Target),
			})
			continue
		}
		routable = append(routable, rel)
	}

	// Each endpoint line reserves one slot per incident relation; a
	// cross-line relation claims a slot on both of its lines.
	for _, rel := range routable {
		sl := positions[rel.Source].Line
		tl := positions[rel.Target].Line
		lines[sl].RelationCount++
		if tl != sl {
			lines[tl].RelationCount++
		}
	}

	contentHeight := applyMetrics(lines, c)
	height := 2*c.Margin + contentHeight

	for id, pos := range positions {
		pos.Y = c.Margin + lines[pos.Line].Y
		positions[id] = pos
	}

	rt := &router{
		c:     c,
		lines: lines,
		index: indexConnections(routable),
		width: maxWidth,
	}
	paths := make([]RelationPath, 0, len(routable))
	for i, rel := range routable {
		paths = append(paths, rt.route(rel, i, positions[rel.Source], positions[rel.Target]))
	}

	labels := make(map[string]Label, len(positions))
	for _, ent := range entities {
		pos, ok := positions[ent.ID]
		if !ok {
			continue
		}
		text := ent.Type
		if ent.DisplayText != "" {
			text = ent.DisplayText
		}
		lbl := TruncateLabel(text, pos.Width, c)
		lbl.Color = ent.Color
		labels[ent.ID] = lbl
	}

	return &Result{
		Width:     maxWidth,
		Height:    height,
		Constants: c,
		Lines:     lines,
		Positions: positions,
		Paths:     paths,
		Labels:    labels,
		Skipped:   skipped,
	}, nil
}
