package pipeline

import (
	"testing"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateTheme(t *testing.T) {
	tests := []struct {
		theme   string
		wantErr bool
	}{
		{"color", false},
		{"grayscale", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateTheme(tt.theme)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTheme(%q) error = %v, wantErr %v", tt.theme, err, tt.wantErr)
		}
	}
}

func TestValidateViz(t *testing.T) {
	tests := []struct {
		viz     string
		wantErr bool
	}{
		{"span", false},
		{"nodelink", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateViz(tt.viz)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateViz(%q) error = %v, wantErr %v", tt.viz, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	// Missing path and document
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing path/document should fail")
	}

	// Valid with path
	opts = Options{Path: "doc.json"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Valid path options should pass: %v", err)
	}

	// Valid with inline document
	opts = Options{Document: &annotation.Document{Text: "hi"}}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Valid document options should pass: %v", err)
	}
}

func TestOptionsIsSpan(t *testing.T) {
	opts := Options{}
	if !opts.IsSpan() {
		t.Error("Empty Viz should be span")
	}

	opts.Viz = "span"
	if !opts.IsSpan() {
		t.Error("span Viz should be span")
	}

	opts.Viz = "nodelink"
	if opts.IsSpan() {
		t.Error("nodelink Viz should not be span")
	}
}

func TestOptionsIsNodelink(t *testing.T) {
	opts := Options{}
	if opts.IsNodelink() {
		t.Error("Empty Viz should not be nodelink")
	}

	opts.Viz = "nodelink"
	if !opts.IsNodelink() {
		t.Error("nodelink Viz should be nodelink")
	}
}

func TestOptionsSource(t *testing.T) {
	opts := Options{Path: "report.json"}
	if got := opts.Source(); got != "report.json" {
		t.Errorf("Source() = %q, want %q", got, "report.json")
	}

	opts = Options{Path: "-"}
	if got := opts.Source(); got != "stdin" {
		t.Errorf("Source() = %q, want %q", got, "stdin")
	}

	opts = Options{Document: &annotation.Document{Text: "hi"}}
	if got := opts.Source(); got != "inline" {
		t.Errorf("Source() = %q, want %q", got, "inline")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Path: "doc.json"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalWidth := opts.Width
	originalViz := opts.Viz
	originalTheme := opts.Theme

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
	if opts.Viz != originalViz {
		t.Error("Viz changed on second call")
	}
	if opts.Theme != originalTheme {
		t.Error("Theme changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Viz != DefaultViz {
		t.Errorf("Viz should be %s, got %s", DefaultViz, opts.Viz)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Constants != nil {
		t.Error("Constants should stay nil so the engine uses its defaults")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Theme != DefaultTheme {
		t.Errorf("Theme should be %s, got %s", DefaultTheme, opts.Theme)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %f, got %f", DefaultScale, opts.Scale)
	}
}

func TestOptionsLayoutKeyOpts(t *testing.T) {
	opts := Options{Width: 640}
	keyOpts := opts.LayoutKeyOpts()

	if keyOpts.Width != 640 {
		t.Errorf("Width = %v, want 640", keyOpts.Width)
	}
	if keyOpts.Constants != "" {
		t.Errorf("Default constants should key on the empty string, got %q", keyOpts.Constants)
	}

	c := layout.DefaultConstants()
	c.CharWidth = 10
	opts.Constants = &c
	if opts.LayoutKeyOpts().Constants == "" {
		t.Error("Constants override should appear in the cache key options")
	}
}
