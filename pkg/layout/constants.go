package layout

import (
	"github.com/annotext/spanviz/pkg/errors"
)

// =============================================================================
// Constants - Fixed-Width Layout Geometry
// =============================================================================

// Constants holds the geometry knobs for a layout pass. All distances are in
// user units (typically pixels in SVG). Text is measured with a fixed-width
// character model: every rune occupies exactly CharWidth units.
type Constants struct {
	// CharWidth is the width of a single character.
	CharWidth float64 `json:"char_width" toml:"char_width"`

	// LineHeight is the height of a text row.
	LineHeight float64 `json:"line_height" toml:"line_height"`

	// Margin is the symmetric outer margin around the content on all sides.
	Margin float64 `json:"margin" toml:"margin"`

	// BaseLineSpacing is the minimum vertical budget below every line.
	BaseLineSpacing float64 `json:"base_line_spacing" toml:"base_line_spacing"`

	// EntityLayerSpacing is the vertical distance between stacked entity
	// box layers under a line.
	EntityLayerSpacing float64 `json:"entity_layer_spacing" toml:"entity_layer_spacing"`

	// RelationSlot is the vertical budget reserved per relation incident
	// to a line, used to stack connector lanes.
	RelationSlot float64 `json:"relation_slot" toml:"relation_slot"`

	// EntityBoxHeight is the height of an entity box.
	EntityBoxHeight float64 `json:"entity_box_height" toml:"entity_box_height"`

	// LabelFontSize is the font size for entity and relation labels.
	LabelFontSize float64 `json:"label_font_size" toml:"label_font_size"`
}

// Default geometry. Tuned for a 13px monospace text face.
const (
	DefaultCharWidth          = 8.0
	DefaultLineHeight         = 18.0
	DefaultMargin             = 20.0
	DefaultBaseLineSpacing    = 28.0
	DefaultEntityLayerSpacing = 22.0
	DefaultRelationSlot       = 14.0
	DefaultEntityBoxHeight    = 16.0
	DefaultLabelFontSize      = 10.0
)

// Internal geometry shared by metrics, routing, and rendering. These are not
// part of the configurable surface.
const (
	// boxMargin separates a line's text from its first entity box layer.
	boxMargin = 6.0

	// labelInset is subtracted from the box width before label truncation.
	labelInset = 4.0

	// labelGap separates a relation label from its connector segment.
	labelGap = 3.0

	// spreadFactor scales how far multiple connector endpoints fan out
	// across an entity box, as a fraction of the box width.
	spreadFactor = 0.6

	// channelGap is the horizontal clearance between an entity extent and
	// the vertical side channel routed around it.
	channelGap = 10.0

	// channelStep spaces parallel side channels apart.
	channelStep = 6.0

	// edgeInset keeps cross-line connector endpoints inside the frame.
	edgeInset = 2.0

	// entryClearance lifts a cross-line entry lane above the target line.
	entryClearance = 4.0
)

// DefaultConstants returns the default layout geometry.
func DefaultConstants() Constants {
	return Constants{
		CharWidth:          DefaultCharWidth,
		LineHeight:         DefaultLineHeight,
		Margin:             DefaultMargin,
		BaseLineSpacing:    DefaultBaseLineSpacing,
		EntityLayerSpacing: DefaultEntityLayerSpacing,
		RelationSlot:       DefaultRelationSlot,
		EntityBoxHeight:    DefaultEntityBoxHeight,
		LabelFontSize:      DefaultLabelFontSize,
	}
}

// Validate checks that every constant is positive.
func (c Constants) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"char_width", c.CharWidth},
		{"line_height", c.LineHeight},
		{"margin", c.Margin},
		{"base_line_spacing", c.BaseLineSpacing},
		{"entity_layer_spacing", c.EntityLayerSpacing},
		{"relation_slot", c.RelationSlot},
		{"entity_box_height", c.EntityBoxHeight},
		{"label_font_size", c.LabelFontSize},
	}
	for _, ck := range checks {
		if ck.value <= 0 {
			return errors.New(errors.ErrCodeInvalidConstants, "%s must be positive, got %v", ck.name, ck.value)
		}
	}
	return nil
}

// TextWidth returns the rendered width of s under the fixed-width model.
func (c Constants) TextWidth(s string) float64 {
	return float64(len([]rune(s))) * c.CharWidth
}
