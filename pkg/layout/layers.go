package layout

// SpanExtent is the horizontal extent of one entity's chunks on a line,
// in line-local coordinates.
type SpanExtent struct {
	EntityID string  `json:"entity_id" bson:"entity_id"`
	Left     float64 `json:"left" bson:"left"`
	Right    float64 `json:"right" bson:"right"`
}

func (s SpanExtent) overlaps(o SpanExtent) bool {
	return s.Left < o.Right && o.Left < s.Right
}

// LayerAssignment records which vertical layer each entity's box occupies
// on a single line. Layer 0 sits closest to the text; higher layers stack
// below it.
type LayerAssignment struct {
	// Layers holds the extents placed on each layer, in placement order.
	Layers [][]SpanExtent
	// Layer maps entity ID to its layer index.
	Layer map[string]int
}

// Extent returns the recorded extent for an entity, if it appears on the
// line.
func (a LayerAssignment) Extent(id string) (SpanExtent, bool) {
	li, ok := a.Layer[id]
	if !ok {
		return SpanExtent{}, false
	}
	for _, ext := range a.Layers[li] {
		if ext.EntityID == id {
			return ext, true
		}
	}
	return SpanExtent{}, false
}

// AssignLayers stacks the entities appearing on a line into layers so
// that no two boxes on the same layer overlap horizontally.
//
// Entities are considered in first-appearance order along the line. Each
// takes the lowest layer where its extent touches no extent already
// placed there, opening a new layer when none fits. Extents touching only
// at an edge do not count as overlapping, so adjacent spans share a
// layer. The first-fit scan is deterministic for a given chunk order.
func AssignLayers(ln Line) LayerAssignment {
	a := LayerAssignment{Layer: make(map[string]int)}

	extents := make(map[string]SpanExtent)
	for _, pc := range ln.Chunks {
		for _, id := range pc.EntityIDs {
			ext, ok := extents[id]
			if !ok {
				extents[id] = SpanExtent{EntityID: id, Left: pc.X, Right: pc.X + pc.Width}
				continue
			}
			if pc.X < ext.Left {
				ext.Left = pc.X
			}
			if pc.X+pc.Width > ext.Right {
				ext.Right = pc.X + pc.Width
			}
			extents[id] = ext
		}
	}

	for _, id := range ln.EntityIDs() {
		ext := extents[id]
		placed := false
		for li := range a.Layers {
			if !overlapsAny(a.Layers[li], ext) {
				a.Layers[li] = append(a.Layers[li], ext)
				a.Layer[id] = li
				placed = true
				break
			}
		}
		if !placed {
			a.Layers = append(a.Layers, []SpanExtent{ext})
			a.Layer[id] = len(a.Layers) - 1
		}
	}
	return a
}

func overlapsAny(layer []SpanExtent, ext SpanExtent) bool {
	for _, placed := range layer {
		if placed.overlaps(ext) {
			return true
		}
	}
	return false
}
