package annotation

import (
	"fmt"
	"unicode/utf8"
)

// =============================================================================
// Document - Span-Annotated Text
// =============================================================================

// Document is a text with entity and relation annotations.
// This is the canonical serialization format used for files, API requests,
// storage, and cache keys.
type Document struct {
	Text      string     `json:"text" bson:"text" yaml:"text"`
	Entities  []Entity   `json:"entities,omitempty" bson:"entities,omitempty" yaml:"entities,omitempty"`
	Relations []Relation `json:"relations,omitempty" bson:"relations,omitempty" yaml:"relations,omitempty"`
}

// Entity labels a contiguous range of the document text.
// Offsets are rune offsets into the half-open range [Start, End).
type Entity struct {
	ID          string `json:"id" bson:"id" yaml:"id"`
	Type        string `json:"type" bson:"type" yaml:"type"`
	Start       int    `json:"start" bson:"start" yaml:"start"`
	End         int    `json:"end" bson:"end" yaml:"end"`
	DisplayText string `json:"display_text,omitempty" bson:"display_text,omitempty" yaml:"display_text,omitempty"`
	Color       string `json:"color,omitempty" bson:"color,omitempty" yaml:"color,omitempty"`
}

// Relation is a typed directed connection between two entities.
// Source and Target reference entity IDs.
type Relation struct {
	ID     string `json:"id" bson:"id" yaml:"id"`
	Type   string `json:"type" bson:"type" yaml:"type"`
	Source string `json:"source" bson:"source" yaml:"source"`
	Target string `json:"target" bson:"target" yaml:"target"`
	Color  string `json:"color,omitempty" bson:"color,omitempty" yaml:"color,omitempty"`
}

// ValidSpan reports whether the entity's range fits a text of textLen runes.
func (e Entity) ValidSpan(textLen int) bool {
	return e.Start >= 0 && e.Start < e.End && e.End <= textLen
}

// IsSelf reports whether the relation connects an entity to itself.
func (r Relation) IsSelf() bool { return r.Source == r.Target }

// =============================================================================
// Accessors
// =============================================================================

// Runes returns the document text as a rune slice. Entity offsets index
// into this slice.
func (d *Document) Runes() []rune { return []rune(d.Text) }

// TextLen returns the length of the document text in runes.
func (d *Document) TextLen() int { return utf8.RuneCountInString(d.Text) }

// EntityCount returns the number of entity annotations.
func (d *Document) EntityCount() int { return len(d.Entities) }

// RelationCount returns the number of relation annotations.
func (d *Document) RelationCount() int { return len(d.Relations) }

// Entity returns the first entity with the given ID.
func (d *Document) Entity(id string) (Entity, bool) {
	for _, e := range d.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Relation returns the first relation with the given ID.
func (d *Document) Relation(id string) (Relation, bool) {
	for _, r := range d.Relations {
		if r.ID == id {
			return r, true
		}
	}
	return Relation{}, false
}

// SpanText returns the text covered by the entity's range.
// Returns "" for spans that do not fit the document text.
func (d *Document) SpanText(e Entity) string {
	runes := d.Runes()
	if !e.ValidSpan(len(runes)) {
		return ""
	}
	return string(runes[e.Start:e.End])
}

// EntityText returns the entity's display text, falling back to the covered
// substring when no override is set.
func (d *Document) EntityText(e Entity) string {
	if e.DisplayText != "" {
		return e.DisplayText
	}
	return d.SpanText(e)
}

// =============================================================================
// Validation
// =============================================================================

// ProblemKind distinguishes which annotation layer a problem belongs to.
type ProblemKind string

const (
	// ProblemEntity marks an excluded entity annotation.
	ProblemEntity ProblemKind = "entity"
	// ProblemRelation marks an excluded relation annotation.
	ProblemRelation ProblemKind = "relation"
)

// Problem describes an annotation excluded from layout and why.
type Problem struct {
	Kind   ProblemKind `json:"kind" bson:"kind"`
	ID     string      `json:"id" bson:"id"`
	Reason string      `json:"reason" bson:"reason"`
}

// Validate checks the document's annotations and returns a problem report.
// A nil result means every entity and relation is eligible for layout.
// Malformed data never produces an error; it is reported and excluded.
func (d *Document) Validate() []Problem {
	_, _, problems := d.Sanitized()
	return problems
}

// Sanitized partitions the document into the entities and relations eligible
// for layout, plus a report of everything excluded.
//
// Exclusion rules:
//   - entity with an empty ID, Start >= End, or offsets outside the text
//   - entity whose ID duplicates an earlier entity (first declaration wins)
//   - relation with an empty ID or a duplicate ID
//   - relation whose source or target does not resolve to a kept entity
//
// Self-relations (source == target) are valid and kept. Declaration order is
// preserved in both returned slices.
func (d *Document) Sanitized() ([]Entity, []Relation, []Problem) {
	textLen := d.TextLen()

	var problems []Problem
	entities := make([]Entity, 0, len(d.Entities))
	kept := make(map[string]bool, len(d.Entities))

	for i, e := range d.Entities {
		switch {
		case e.ID == "":
			problems = append(problems, Problem{
				Kind:   ProblemEntity,
				ID:     fmt.Sprintf("#%d", i),
				Reason: "empty entity ID",
			})
		case kept[e.ID]:
			problems = append(problems, Problem{
				Kind:   ProblemEntity,
				ID:     e.ID,
				Reason: "duplicate entity ID",
			})
		case !e.ValidSpan(textLen):
			problems = append(problems, Problem{
				Kind:   ProblemEntity,
				ID:     e.ID,
				Reason: fmt.Sprintf("span [%d, %d) outside text of length %d", e.Start, e.End, textLen),
			})
		default:
			entities = append(entities, e)
			kept[e.ID] = true
		}
	}

	relations := make([]Relation, 0, len(d.Relations))
	seenRel := make(map[string]bool, len(d.Relations))

	for i, r := range d.Relations {
		switch {
		case r.ID == "":
			problems = append(problems, Problem{
				Kind:   ProblemRelation,
				ID:     fmt.Sprintf("#%d", i),
				Reason: "empty relation ID",
			})
		case seenRel[r.ID]:
			problems = append(problems, Problem{
				Kind:   ProblemRelation,
				ID:     r.ID,
				Reason: "duplicate relation ID",
			})
		case !kept[r.Source]:
			problems = append(problems, Problem{
				Kind:   ProblemRelation,
				ID:     r.ID,
				Reason: fmt.Sprintf("unknown source entity %q", r.Source),
			})
		case !kept[r.Target]:
			problems = append(problems, Problem{
				Kind:   ProblemRelation,
				ID:     r.ID,
				Reason: fmt.Sprintf("unknown target entity %q", r.Target),
			})
		default:
			relations = append(relations, r)
			seenRel[r.ID] = true
		}
	}

	return entities, relations, problems
}
