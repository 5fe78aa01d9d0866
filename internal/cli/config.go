package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/annotext/spanviz/pkg/layout"
	"github.com/annotext/spanviz/pkg/pipeline"
)

// Config is the optional user configuration loaded from spanviz.toml.
// Every field is optional; unset fields keep the built-in defaults.
//
// Example:
//
//	theme = "grayscale"
//	width = 1000
//
//	[constants]
//	char_width = 9.0
//	line_height = 20.0
type Config struct {
	Theme     string            `toml:"theme"`
	Width     float64           `toml:"width"`
	Scale     float64           `toml:"scale"`
	Constants *layout.Constants `toml:"constants"`
}

// apply copies the configured values onto the options.
func (cfg Config) apply(opts *pipeline.Options) {
	if cfg.Theme != "" {
		opts.Theme = cfg.Theme
	}
	if cfg.Width > 0 {
		opts.Width = cfg.Width
	}
	if cfg.Scale > 0 {
		opts.Scale = cfg.Scale
	}
	if merged := cfg.mergedConstants(); merged != nil {
		opts.Constants = merged
	}
}

// mergedConstants fills unset constant fields with the defaults, so a
// config file only has to name the values it changes.
func (cfg Config) mergedConstants() *layout.Constants {
	if cfg.Constants == nil {
		return nil
	}

	merged := layout.DefaultConstants()
	override := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	override(&merged.CharWidth, cfg.Constants.CharWidth)
	override(&merged.LineHeight, cfg.Constants.LineHeight)
	override(&merged.Margin, cfg.Constants.Margin)
	override(&merged.BaseLineSpacing, cfg.Constants.BaseLineSpacing)
	override(&merged.EntityLayerSpacing, cfg.Constants.EntityLayerSpacing)
	override(&merged.RelationSlot, cfg.Constants.RelationSlot)
	override(&merged.EntityBoxHeight, cfg.Constants.EntityBoxHeight)
	override(&merged.LabelFontSize, cfg.Constants.LabelFontSize)
	return &merged
}

// configPath returns the config file location using XDG standard
// (~/.config/spanviz/spanviz.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, appName+".toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, appName+".toml"), nil
}

// loadConfig reads the user's config file. A missing file is not an
// error; commands run with built-in defaults.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
