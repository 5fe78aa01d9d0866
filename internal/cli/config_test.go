package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/annotext/spanviz/pkg/layout"
	"github.com/annotext/spanviz/pkg/pipeline"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spanviz.toml")
	content := `
theme = "grayscale"
width = 1000.0

[constants]
char_width = 10.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() error = %v", err)
	}
	if cfg.Theme != "grayscale" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "grayscale")
	}
	if cfg.Width != 1000 {
		t.Errorf("Width = %v, want 1000", cfg.Width)
	}
	if cfg.Constants == nil {
		t.Fatal("Constants section not loaded")
	}
	if cfg.Constants.CharWidth != 10 {
		t.Errorf("Constants.CharWidth = %v, want 10", cfg.Constants.CharWidth)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("loadConfigFile() error = %v", err)
	}
	if cfg.Theme != "" || cfg.Width != 0 || cfg.Constants != nil {
		t.Errorf("missing file should yield a zero config, got %+v", cfg)
	}
}

func TestLoadConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spanviz.toml")
	if err := os.WriteFile(path, []byte("theme = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadConfigFile(path); err == nil {
		t.Error("loadConfigFile() should fail on invalid TOML")
	}
}

func TestConfigApply(t *testing.T) {
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cfg := Config{
		Theme:     pipeline.ThemeGrayscale,
		Width:     600,
		Constants: &layout.Constants{CharWidth: 12},
	}
	cfg.apply(&opts)

	if opts.Theme != pipeline.ThemeGrayscale {
		t.Errorf("Theme = %q, want %q", opts.Theme, pipeline.ThemeGrayscale)
	}
	if opts.Width != 600 {
		t.Errorf("Width = %v, want 600", opts.Width)
	}
	if opts.Constants == nil {
		t.Fatal("Constants not applied")
	}
	if opts.Constants.CharWidth != 12 {
		t.Errorf("Constants.CharWidth = %v, want 12", opts.Constants.CharWidth)
	}

	// Fields the config leaves at zero keep their defaults.
	defaults := layout.DefaultConstants()
	if opts.Constants.LineHeight != defaults.LineHeight {
		t.Errorf("Constants.LineHeight = %v, want default %v", opts.Constants.LineHeight, defaults.LineHeight)
	}
}

func TestConfigApplyEmpty(t *testing.T) {
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	Config{}.apply(&opts)

	if opts.Theme != pipeline.ThemeColor {
		t.Errorf("Theme = %q, want default %q", opts.Theme, pipeline.ThemeColor)
	}
	if opts.Width != pipeline.DefaultWidth {
		t.Errorf("Width = %v, want default %v", opts.Width, pipeline.DefaultWidth)
	}
	if opts.Constants != nil {
		t.Error("empty config should leave Constants nil")
	}
}
