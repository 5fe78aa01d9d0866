package layout

import (
	"slices"
	"unicode"

	"github.com/annotext/spanviz/pkg/annotation"
)

// Segment splits the document text into atomic chunks for line packing.
//
// Entity boundaries partition the text: every entity Start and End is a
// breakpoint, plus 0 and the text length. Each breakpoint interval is
// emitted as follows:
//   - whitespace-only intervals produce no chunks
//   - an interval matched exactly by one or more entity spans becomes a
//     single entity chunk, tagged with every entity that fully contains it
//   - an interval strictly inside an entity (but matching none exactly)
//     is split on whitespace into per-word entity chunks so long spans can
//     wrap between words
//   - an interval outside every entity is split on whitespace into plain
//     word chunks
//
// Because no chunk crosses a breakpoint, wrapping between chunks can never
// split an entity span edge. Word offsets are found by walking the interval
// runes directly, so repeated substrings cannot be confused with each other.
//
// Entities must already be sanitized ([annotation.Document.Sanitized]);
// spans outside the text are not tolerated here. Chunk EntityIDs follow
// entity declaration order.
func Segment(text string, entities []annotation.Entity) []Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	points := breakpoints(len(runes), entities)

	var chunks []Chunk
	for i := 0; i+1 < len(points); i++ {
		s, e := points[i], points[i+1]
		if allSpace(runes[s:e]) {
			continue
		}

		containing := containingIDs(entities, s, e)
		if exactMatch(entities, s, e) {
			chunks = append(chunks, Chunk{
				Kind:      ChunkEntitySpan,
				Text:      string(runes[s:e]),
				Start:     s,
				End:       e,
				EntityIDs: containing,
			})
			continue
		}

		kind := ChunkWord
		if len(containing) > 0 {
			kind = ChunkEntitySpan
		} else {
			containing = nil
		}
		for _, w := range splitWords(runes, s, e) {
			chunks = append(chunks, Chunk{
				Kind:      kind,
				Text:      w.text,
				Start:     w.start,
				End:       w.end,
				EntityIDs: containing,
			})
		}
	}
	return chunks
}

// breakpoints returns the sorted distinct interval boundaries: 0, textLen,
// and every entity span edge.
func breakpoints(textLen int, entities []annotation.Entity) []int {
	points := make([]int, 0, 2+2*len(entities))
	points = append(points, 0, textLen)
	for _, e := range entities {
		points = append(points, e.Start, e.End)
	}
	slices.Sort(points)
	return slices.Compact(points)
}

// containingIDs returns the IDs of entities that fully contain [s, e),
// in declaration order.
func containingIDs(entities []annotation.Entity, s, e int) []string {
	var ids []string
	for _, ent := range entities {
		if ent.Start <= s && e <= ent.End {
			ids = append(ids, ent.ID)
		}
	}
	return ids
}

// exactMatch reports whether any entity span is exactly [s, e).
func exactMatch(entities []annotation.Entity, s, e int) bool {
	for _, ent := range entities {
		if ent.Start == s && ent.End == e {
			return true
		}
	}
	return false
}

type word struct {
	text       string
	start, end int
}

// splitWords walks runes[s:e] and returns the non-whitespace runs with
// their absolute rune offsets.
func splitWords(runes []rune, s, e int) []word {
	var words []word
	i := s
	for i < e {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}
		start := i
		for i < e && !unicode.IsSpace(runes[i]) {
			i++
		}
		words = append(words, word{text: string(runes[start:i]), start: start, end: i})
	}
	return words
}

func allSpace(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
