// Package pipeline provides the core visualization pipeline for spanviz.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a document from a file, stdin, a URL, or an inline value
//  2. Layout: Compute line, box, and connector geometry for the document
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
// The layout stage only runs for the span view; the node-link view draws
// straight from the document.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "report.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	doc, err := runner.Load(ctx, opts)
//
//	// Layout with an existing document
//	res, err := runner.ComputeLayout(ctx, doc, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, res, doc, opts)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/cache"
	"github.com/annotext/spanviz/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultScale is the default PNG supersampling factor.
	// A scale of 2.0 produces a 2x resolution image for high-DPI displays.
	DefaultScale = 2.0
)

// DefaultViz is the default visualization type.
const DefaultViz = VizSpan

// DefaultTheme is the default color theme.
const DefaultTheme = ThemeColor

// Viz type constants for the two document views.
const (
	VizSpan     = "span"
	VizNodelink = "nodelink"
)

// Theme constants for SVG output.
const (
	ThemeColor     = "color"
	ThemeGrayscale = "grayscale"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats. JSON is only
// produced by the span view and DOT only by the node-link view; the
// render stage rejects the other combination.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidThemes is the set of supported color themes.
var ValidThemes = map[string]bool{
	ThemeColor:     true,
	ThemeGrayscale: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizSpan:     true,
	VizNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Path     string               `json:"path,omitempty"`
	Document *annotation.Document `json:"document,omitempty"`

	// Layout options
	Width     float64           `json:"width,omitempty"`
	Constants *layout.Constants `json:"constants,omitempty"`

	// Render options
	Viz         string   `json:"viz,omitempty"`
	Formats     []string `json:"formats,omitempty"`
	Theme       string   `json:"theme,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`
	Scale       float64  `json:"scale,omitempty"`

	// Cache options
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded document.
	Document annotation.Document

	// DocHash is the content hash of the document.
	DocHash string

	// Problems lists annotations that validation excluded from layout.
	Problems []annotation.Problem

	// Layout contains the computed span layout. Nil for node-link runs.
	Layout *layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntityCount   int
	RelationCount int
	LineCount     int
	LoadTime      time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage. Loading is never
// cached; documents come from local files, URLs, or the request itself.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a theme is valid.
func ValidateTheme(theme string) error {
	if !ValidThemes[theme] {
		return fmt.Errorf("invalid theme: %q (must be one of: color, grayscale)", theme)
	}
	return nil
}

// ValidateViz checks that a visualization type is valid.
func ValidateViz(viz string) error {
	if !ValidVizTypes[viz] {
		return fmt.Errorf("invalid viz: %q (must be one of: span, nodelink)", viz)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a document.
func (o *Options) ValidateForLoad() error {
	if o.Path == "" && o.Document == nil {
		return fmt.Errorf("path or document is required")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation.
// A nil Constants stays nil; the layout engine falls back to
// [layout.DefaultConstants] on its own.
func (o *Options) SetLayoutDefaults() {
	if o.Viz == "" {
		o.Viz = DefaultViz
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateViz(o.Viz)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateViz(o.Viz); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateTheme(o.Theme)
}

// IsSpan returns true if this run draws the text-anchored span view.
func (o *Options) IsSpan() bool {
	return o.Viz == "" || o.Viz == VizSpan
}

// IsNodelink returns true if this run draws the node-link graph view.
func (o *Options) IsNodelink() bool {
	return o.Viz == VizNodelink
}

// Source describes where the document comes from, for logs and hooks.
func (o *Options) Source() string {
	switch {
	case o.Document != nil:
		return "inline"
	case o.Path == "-":
		return "stdin"
	default:
		return o.Path
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:     o.Width,
		Constants: constantsJSON(o.Constants),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Viz:         o.Viz,
		Theme:       o.Theme,
		Interactive: o.Interactive,
		Detailed:    o.Detailed,
		Scale:       o.Scale,
	}
}

// constantsJSON serializes a constants override for cache keys. Default
// runs key on the empty string, so overridden and default layouts never
// collide.
func constantsJSON(c *layout.Constants) string {
	if c == nil {
		return ""
	}
	data, _ := json.Marshal(c)
	return string(data)
}
