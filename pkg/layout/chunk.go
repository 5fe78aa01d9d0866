package layout

// =============================================================================
// Chunks and Lines
// =============================================================================

// ChunkKind distinguishes plain words from entity-covered text.
type ChunkKind string

const (
	// ChunkWord is a plain word outside every entity span.
	ChunkWord ChunkKind = "word"
	// ChunkEntitySpan is a piece of text covered by one or more entities.
	ChunkEntitySpan ChunkKind = "entity_span"
)

// Chunk is an atomic unit of text for line packing. Chunks never straddle an
// entity boundary, so wrapping between chunks never splits a span edge.
// Start and End are rune offsets into the document text.
type Chunk struct {
	Kind  ChunkKind `json:"kind" bson:"kind"`
	Text  string    `json:"text" bson:"text"`
	Start int       `json:"start" bson:"start"`
	End   int       `json:"end" bson:"end"`

	// EntityIDs lists the entities that fully contain [Start, End), in
	// entity declaration order. Empty for plain word chunks.
	EntityIDs []string `json:"entity_ids,omitempty" bson:"entity_ids,omitempty"`
}

// References reports whether the chunk belongs to the given entity.
func (c Chunk) References(entityID string) bool {
	for _, id := range c.EntityIDs {
		if id == entityID {
			return true
		}
	}
	return false
}

// PlacedChunk is a chunk with geometry local to its line. X is the offset
// from the line's left content edge; Width follows the fixed-width model.
type PlacedChunk struct {
	Chunk `bson:",inline"`

	X     float64 `json:"x" bson:"x"`
	Width float64 `json:"width" bson:"width"`
}

// Line is one wrapped row of placed chunks.
type Line struct {
	// Index is the zero-based line number.
	Index int `json:"index" bson:"index"`

	// Chunks are the placed chunks in left-to-right order.
	Chunks []PlacedChunk `json:"chunks" bson:"chunks"`

	// Y is the top of the line's text row, relative to the top content
	// edge (the outer margin is not included).
	Y float64 `json:"y" bson:"y"`

	// Spacing is the vertical budget consumed by this line: text, entity
	// layers, and relation lanes. The next line starts at Y + Spacing.
	Spacing float64 `json:"spacing" bson:"spacing"`

	// LayerCount is the number of entity box layers under this line.
	LayerCount int `json:"layer_count" bson:"layer_count"`

	// RelationCount is the number of relations with at least one endpoint
	// entity anchored to this line.
	RelationCount int `json:"relation_count" bson:"relation_count"`
}

// EntityIDs returns the distinct entity IDs referenced by the line's chunks,
// ordered by first appearance.
func (ln Line) EntityIDs() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, pc := range ln.Chunks {
		for _, id := range pc.EntityIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Width returns the occupied width of the line: the right edge of its last
// chunk. Returns 0 for an empty line.
func (ln Line) Width() float64 {
	if len(ln.Chunks) == 0 {
		return 0
	}
	last := ln.Chunks[len(ln.Chunks)-1]
	return last.X + last.Width
}
