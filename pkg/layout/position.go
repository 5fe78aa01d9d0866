package layout

import (
	"github.com/annotext/spanviz/pkg/annotation"
)

// EntityPosition is the resolved canvas placement of one entity's box.
// X and Y are absolute document coordinates; Y is the top of the line's
// text row, from which the box geometry hangs.
type EntityPosition struct {
	EntityID string  `json:"entity_id" bson:"entity_id"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Width    float64 `json:"width" bson:"width"`
	Line     int     `json:"line" bson:"line"`
	Layer    int     `json:"layer" bson:"layer"`
}

// CenterX returns the horizontal center of the box.
func (p EntityPosition) CenterX() float64 {
	return p.X + p.Width/2
}

// Right returns the right edge of the box.
func (p EntityPosition) Right() float64 {
	return p.X + p.Width
}

// BoxTop returns the absolute Y of the box's top edge. Boxes hang below
// the text row, offset by their layer.
func (p EntityPosition) BoxTop(c Constants) float64 {
	return p.Y + c.LineHeight + boxMargin + float64(p.Layer)*c.EntityLayerSpacing
}

// BoxBottom returns the absolute Y of the box's bottom edge.
func (p EntityPosition) BoxBottom(c Constants) float64 {
	return p.BoxTop(c) + c.EntityBoxHeight
}

// BoxMidY returns the vertical center of the box, where side exits leave.
func (p EntityPosition) BoxMidY(c Constants) float64 {
	return p.BoxTop(c) + c.EntityBoxHeight/2
}

// resolvePositions places each entity on the first line where any of its
// chunks appear. X and Width come from the entity's extent on that line;
// Y stays zero until line offsets are known (see applyMetrics) and is
// filled in by the caller. Entities with no visible chunk on any line,
// such as spans covering only whitespace, are reported as skipped.
func resolvePositions(entities []annotation.Entity, lines []Line, assigns []LayerAssignment, c Constants) (map[string]EntityPosition, []annotation.Problem) {
	positions := make(map[string]EntityPosition, len(entities))
	var skipped []annotation.Problem

	for _, ent := range entities {
		placed := false
		for li := range lines {
			ext, ok := assigns[li].Extent(ent.ID)
			if !ok {
				continue
			}
			positions[ent.ID] = EntityPosition{
				EntityID: ent.ID,
				X:        c.Margin + ext.Left,
				Width:    ext.Right - ext.Left,
				Line:     li,
				Layer:    assigns[li].Layer[ent.ID],
			}
			placed = true
			break
		}
		if !placed {
			skipped = append(skipped, annotation.Problem{
				Kind:   annotation.ProblemEntity,
				ID:     ent.ID,
				Reason: "span has no visible text",
			})
		}
	}
	return positions, skipped
}
