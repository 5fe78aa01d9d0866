package svg

import (
	"fmt"
	"hash/fnv"
)

// Grey fills stay inside this band so text printed over them remains
// legible in both directions.
const (
	greyMin = 0x6e
	greyMax = 0xc8
)

// Theme holds the colors and font used for span rendering. An empty
// Palette switches type fills to deterministic greys.
type Theme struct {
	Background    string
	TextColor     string
	BoxStroke     string
	RelationColor string
	LabelColor    string
	FontFamily    string
	Palette       []string
}

// DefaultTheme returns the standard light theme with a pastel type
// palette.
func DefaultTheme() Theme {
	return Theme{
		Background:    "#ffffff",
		TextColor:     "#1c2833",
		BoxStroke:     "#34495e",
		RelationColor: "#5d6d7e",
		LabelColor:    "#2e4053",
		FontFamily:    "ui-monospace, 'SF Mono', Menlo, Consolas, monospace",
		Palette: []string{
			"#aed6f1", "#a9dfbf", "#f9e79f", "#f5b7b1",
			"#d7bde2", "#f5cba7", "#a3e4d7", "#d5dbdb",
		},
	}
}

// GrayscaleTheme returns a print-friendly theme without a palette; type
// fills fall back to hashed greys.
func GrayscaleTheme() Theme {
	return Theme{
		Background:    "#ffffff",
		TextColor:     "#111111",
		BoxStroke:     "#333333",
		RelationColor: "#555555",
		LabelColor:    "#222222",
		FontFamily:    "ui-monospace, 'SF Mono', Menlo, Consolas, monospace",
	}
}

// TypeColor picks the box fill for a type label. The label hashes to a
// stable palette slot, so the same type always gets the same color
// within a theme and across runs.
func (t Theme) TypeColor(label string) string {
	if len(t.Palette) == 0 {
		return greyFor(label)
	}
	return t.Palette[int(hashString(label)%uint32(len(t.Palette)))]
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func greyFor(label string) string {
	v := greyMin + int(hashString(label))%(greyMax-greyMin+1)
	return fmt.Sprintf("#%02x%02x%02x", v, v, v)
}
