package layout

import (
	"math"

	"github.com/annotext/spanviz/pkg/annotation"
)

// Regime names the routing strategy chosen for a relation, determined by
// where its endpoint boxes sit relative to each other.
type Regime string

const (
	// RegimeArc connects boxes on the same line and layer with an arc
	// below the line's box stack.
	RegimeArc Regime = "arc"
	// RegimeChannel connects boxes on the same line but different layers
	// through a vertical channel beside the spans.
	RegimeChannel Regime = "channel"
	// RegimeCrossDown connects a box to a target on a later line via the
	// canvas edges.
	RegimeCrossDown Regime = "cross_down"
	// RegimeCrossUp connects a box to a target on an earlier line via the
	// canvas edges.
	RegimeCrossUp Regime = "cross_up"
)

// Marker identifies the canvas edge at which a cross-line segment breaks
// off or resumes, so renderers can draw continuation hints.
type Marker string

const (
	MarkerNone  Marker = ""
	MarkerLeft  Marker = "left"
	MarkerRight Marker = "right"
)

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// PathSegment is one polyline of a routed relation. Same-line regimes
// produce a single segment; cross-line regimes produce two, one leaving
// the source line and one entering the target line.
type PathSegment struct {
	Points []Point `json:"points" bson:"points"`
	Marker Marker  `json:"marker,omitempty" bson:"marker,omitempty"`
}

// RelationPath is the routed geometry for one relation, including where
// its type label sits. LabelRotation is in degrees; channel labels run
// vertically along their channel.
type RelationPath struct {
	RelationID    string        `json:"relation_id" bson:"relation_id"`
	Source        string        `json:"source" bson:"source"`
	Target        string        `json:"target" bson:"target"`
	Label         string        `json:"label,omitempty" bson:"label,omitempty"`
	Color         string        `json:"color,omitempty" bson:"color,omitempty"`
	Regime        Regime        `json:"regime" bson:"regime"`
	Segments      []PathSegment `json:"segments" bson:"segments"`
	LabelX        float64       `json:"label_x" bson:"label_x"`
	LabelY        float64       `json:"label_y" bson:"label_y"`
	LabelRotation float64       `json:"label_rotation,omitempty" bson:"label_rotation,omitempty"`
}

func classifyRegime(src, dst EntityPosition) Regime {
	switch {
	case src.Line == dst.Line && src.Layer == dst.Layer:
		return RegimeArc
	case src.Line == dst.Line:
		return RegimeChannel
	case src.Line < dst.Line:
		return RegimeCrossDown
	default:
		return RegimeCrossUp
	}
}

// router carries the shared context for routing one document's relations.
type router struct {
	c     Constants
	lines []Line
	index connectionIndex
	width float64
}

// route produces the path for one relation. relIndex is the relation's
// document-wide declaration index, used to fan out parallel lanes so
// relations routed through the same region do not coincide.
func (rt *router) route(rel annotation.Relation, relIndex int, src, dst EntityPosition) RelationPath {
	path := RelationPath{
		RelationID: rel.ID,
		Source:     rel.Source,
		Target:     rel.Target,
		Label:      rel.Type,
		Color:      rel.Color,
		Regime:     classifyRegime(src, dst),
	}
	switch path.Regime {
	case RegimeArc:
		rt.routeArc(&path, rel, relIndex, src, dst)
	case RegimeChannel:
		rt.routeChannel(&path, rel, relIndex, src, dst)
	case RegimeCrossDown:
		rt.routeCross(&path, rel, relIndex, src, dst, false)
	case RegimeCrossUp:
		rt.routeCross(&path, rel, relIndex, src, dst, true)
	}
	return path
}

// stackBottom returns the absolute Y just below the given number of box
// layers on a line.
func (rt *router) stackBottom(lineIdx, layerCount int) float64 {
	ln := rt.lines[lineIdx]
	return rt.c.Margin + ln.Y + rt.c.LineHeight + boxMargin + float64(layerCount)*rt.c.EntityLayerSpacing
}

// textTop returns the absolute Y of a line's text row.
func (rt *router) textTop(lineIdx int) float64 {
	return rt.c.Margin + rt.lines[lineIdx].Y
}

// routeArc drops from both box bottoms to a shared horizontal run below
// the line's whole box stack. Deeper relation indexes take lower lanes.
// A self-relation degenerates to a zero-width arc at its single anchor.
func (rt *router) routeArc(path *RelationPath, rel annotation.Relation, relIndex int, src, dst EntityPosition) {
	sx := src.CenterX() + rt.index.anchorOffset(rel.Source, rel.ID, src.Width)
	ex := dst.CenterX() + rt.index.anchorOffset(rel.Target, rel.ID, dst.Width)
	arcY := rt.stackBottom(src.Line, rt.lines[src.Line].LayerCount) + float64(relIndex+1)*rt.c.RelationSlot

	path.Segments = []PathSegment{{
		Points: []Point{
			{X: sx, Y: src.BoxBottom(rt.c)},
			{X: sx, Y: arcY},
			{X: ex, Y: arcY},
			{X: ex, Y: dst.BoxBottom(rt.c)},
		},
	}}
	path.LabelX = (sx + ex) / 2
	path.LabelY = arcY - labelGap
}

// routeChannel leaves both boxes sideways at mid-height and joins them
// through a vertical channel beside the combined extent. The channel
// sits on the side nearer the source; wider layer gaps and deeper
// relation indexes push it further out, clamped to the canvas.
func (rt *router) routeChannel(path *RelationPath, rel annotation.Relation, relIndex int, src, dst EntityPosition) {
	left := math.Min(src.X, dst.X)
	right := math.Max(src.Right(), dst.Right())
	onLeft := src.CenterX() <= dst.CenterX()

	depth := src.Layer - dst.Layer
	if depth < 0 {
		depth = -depth
	}
	offset := channelGap + float64(depth-1+relIndex)*channelStep

	var chX, sxEdge, dxEdge float64
	if onLeft {
		chX = left - offset
		if chX < edgeInset {
			chX = edgeInset
		}
		sxEdge, dxEdge = src.X, dst.X
	} else {
		chX = right + offset
		if chX > rt.width-edgeInset {
			chX = rt.width - edgeInset
		}
		sxEdge, dxEdge = src.Right(), dst.Right()
	}

	sy := src.BoxMidY(rt.c)
	dy := dst.BoxMidY(rt.c)
	path.Segments = []PathSegment{{
		Points: []Point{
			{X: sxEdge, Y: sy},
			{X: chX, Y: sy},
			{X: chX, Y: dy},
			{X: dxEdge, Y: dy},
		},
	}}
	path.LabelY = (sy + dy) / 2
	if onLeft {
		path.LabelX = chX - labelGap
		path.LabelRotation = -90
	} else {
		path.LabelX = chX + labelGap
		path.LabelRotation = 90
	}
}

// routeCross splits the path at the canvas edge: one segment leaves the
// source line below its box stack and runs to the edge, the other enters
// above the target line from the opposite edge and turns down into the
// box top. Downward relations exit right and re-enter left; upward
// relations mirror that. The exit lane clears the taller of the two
// lines' stacks so the horizontal run cannot cut through boxes.
func (rt *router) routeCross(path *RelationPath, rel annotation.Relation, relIndex int, src, dst EntityPosition, up bool) {
	sx := src.CenterX() + rt.index.anchorOffset(rel.Source, rel.ID, src.Width)
	dx := dst.CenterX() + rt.index.anchorOffset(rel.Target, rel.ID, dst.Width)

	stack := rt.lines[src.Line].LayerCount
	if dl := rt.lines[dst.Line].LayerCount; dl > stack {
		stack = dl
	}
	exitY := rt.stackBottom(src.Line, stack) + float64(relIndex+1)*rt.c.RelationSlot
	entryY := rt.textTop(dst.Line) - entryClearance - float64(relIndex)*rt.c.RelationSlot
	if entryY < edgeInset {
		entryY = edgeInset
	}

	exitEdge, entryEdge := rt.width-edgeInset, edgeInset
	exitMarker, entryMarker := MarkerRight, MarkerLeft
	if up {
		exitEdge, entryEdge = edgeInset, rt.width-edgeInset
		exitMarker, entryMarker = MarkerLeft, MarkerRight
	}

	path.Segments = []PathSegment{
		{
			Points: []Point{
				{X: sx, Y: src.BoxBottom(rt.c)},
				{X: sx, Y: exitY},
				{X: exitEdge, Y: exitY},
			},
			Marker: exitMarker,
		},
		{
			Points: []Point{
				{X: entryEdge, Y: entryY},
				{X: dx, Y: entryY},
				{X: dx, Y: dst.BoxTop(rt.c)},
			},
			Marker: entryMarker,
		},
	}
	path.LabelX = (sx + exitEdge) / 2
	path.LabelY = exitY - labelGap
}
