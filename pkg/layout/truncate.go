package layout

import "math"

// ellipsis marks shortened labels. A single rune so it fits the
// fixed-width character model.
const ellipsis = "…"

// Label is the display label of an entity box: the visible text, which
// may have been shortened to fit the box, plus the full text so callers
// can surface it in tooltips or metadata.
type Label struct {
	Text      string `json:"text" bson:"text"`
	Full      string `json:"full" bson:"full"`
	Truncated bool   `json:"truncated,omitempty" bson:"truncated,omitempty"`
	Color     string `json:"color,omitempty" bson:"color,omitempty"`
}

// TruncateLabel fits a type label into a box of the given width. Labels
// that fit pass through unchanged. Otherwise the label is cut to the
// character budget of the box interior with a trailing ellipsis; boxes
// too small for even a short prefix show the ellipsis alone. Counting is
// by rune, consistent with the fixed-width model used everywhere else.
func TruncateLabel(label string, boxWidth float64, c Constants) Label {
	avail := boxWidth - labelInset
	if c.TextWidth(label) <= avail {
		return Label{Text: label, Full: label}
	}

	maxChars := int(math.Floor(avail/c.CharWidth)) - 1
	if maxChars <= 3 {
		return Label{Text: ellipsis, Full: label, Truncated: true}
	}
	runes := []rune(label)
	return Label{Text: string(runes[:maxChars-3]) + ellipsis, Full: label, Truncated: true}
}
