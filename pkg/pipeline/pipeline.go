// Package pipeline provides the core maze pipeline for perfectmaze.
//
// This package implements the complete generate → render pipeline used by the
// CLI and the HTTP API. By centralizing this logic, both entry points apply
// the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: build the grid, reserve the pattern, carve the maze
//  2. Render: produce artifacts (text, hex, json, dot, svg, png, pdf)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	seed := uint64(42)
//	opts := pipeline.Options{
//	    Width:   20,
//	    Height:  10,
//	    Seed:    &seed,
//	    Formats: []string{"text", "hex"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["text"]))
//
// Run individual stages:
//
//	gen, hit, err := runner.GenerateWithCacheInfo(ctx, opts)
//	artifacts, err := runner.Render(ctx, gen.Maze, opts)
//
// # Caching
//
// A maze is cached only when the caller supplies a seed: the cache key covers
// every option that influences the carved grid. Rendered Graphviz artifacts
// (svg, png, pdf) are cached by the content hash of the maze.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/perfectmaze/pkg/cache"
	"github.com/matzehuels/perfectmaze/pkg/core/backtrack"
	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/core/pattern"
	"github.com/matzehuels/perfectmaze/pkg/core/render"
	"github.com/matzehuels/perfectmaze/pkg/core/topology"
	"github.com/matzehuels/perfectmaze/pkg/errors"
	"github.com/matzehuels/perfectmaze/pkg/maze"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default maze width in cells.
	DefaultWidth = 20

	// DefaultHeight is the default maze height in cells.
	DefaultHeight = 10

	// DefaultPattern is the pattern reserved when none is named.
	DefaultPattern = maze.Pattern42

	// DefaultGlyphs is the default text glyph set.
	DefaultGlyphs = "ascii"

	// DefaultPNGScale is the resolution multiplier for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatHex  = "hex"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatHex:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// FormatExtensions maps formats to output file extensions.
var FormatExtensions = map[string]string{
	FormatText: ".txt",
	FormatHex:  ".hex",
	FormatJSON: ".json",
	FormatDOT:  ".dot",
	FormatSVG:  ".svg",
	FormatPNG:  ".png",
	FormatPDF:  ".pdf",
}

// cacheableFormats are rendered through Graphviz and worth caching.
var cacheableFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the maze pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Width             int     `json:"width,omitempty"`
	Height            int     `json:"height,omitempty"`
	Seed              *uint64 `json:"seed,omitempty"` // nil draws a fresh seed
	Strategy          string  `json:"strategy,omitempty"`
	MaxRecursionDepth int     `json:"max_recursion_depth,omitempty"`

	// Pattern options
	Pattern          string   `json:"pattern,omitempty"`      // "42", "none" or "custom"
	PatternRows      []string `json:"pattern_rows,omitempty"` // rows of a custom pattern
	PatternFit       string   `json:"pattern_fit,omitempty"`  // "scale" or "exact"
	MinPatternWidth  int      `json:"min_pattern_width,omitempty"`
	MinPatternHeight int      `json:"min_pattern_height,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Glyphs       string   `json:"glyphs,omitempty"`
	ShowReserved bool     `json:"show_reserved,omitempty"` // draw the pattern in dot/svg output

	Refresh bool `json:"refresh,omitempty"` // bypass cached results

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Resolved by ValidateAndSetDefaults.
	strategy  backtrack.Strategy
	bitmap    pattern.Bitmap
	glyphs    render.Glyphs
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Maze is the serializable document.
	Maze *maze.Maze

	// Grid is the carved grid with reserved cells sealed.
	Grid *grid.Grid

	// Reserved is the set of pattern cells.
	Reserved pattern.Reserved

	// Report is the structural check of the carved grid.
	Report topology.Report

	// PatternSkipped is set when the grid was too small for the pattern.
	PatternSkipped bool

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cells        int
	Reserved     int
	Visited      int
	Carved       int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	MazeHit   bool // Whether the maze came from cache
	RenderHit bool // Whether all cacheable artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
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

// FormatNames returns the supported formats in display order.
func FormatNames() []string {
	return []string{FormatText, FormatHex, FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatPDF}
}

// ValidateSeed checks that an explicit seed is storable.
func ValidateSeed(seed uint64) error {
	if seed > backtrack.MaxSeed {
		return errors.New(errors.ErrCodeInvalidInput, "seed %d exceeds the maximum %d", seed, uint64(backtrack.MaxSeed))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate validates and sets defaults for maze generation.
func (o *Options) ValidateForGenerate() error {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Seed != nil {
		if err := ValidateSeed(*o.Seed); err != nil {
			return err
		}
	}

	s, err := backtrack.ParseStrategy(o.Strategy)
	if err != nil {
		return err
	}
	o.strategy, o.Strategy = s, s.String()
	if o.MaxRecursionDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_recursion_depth must not be negative")
	}

	if err := o.resolvePattern(); err != nil {
		return err
	}

	o.setLogger()
	return nil
}

func (o *Options) resolvePattern() error {
	if o.Pattern == "" {
		o.Pattern = DefaultPattern
		if len(o.PatternRows) > 0 {
			o.Pattern = maze.PatternCustom
		}
	}

	switch o.Pattern {
	case maze.PatternNone:
		o.bitmap = nil
		return nil
	case maze.Pattern42:
		o.bitmap = pattern.Glyph42()
	case maze.PatternCustom:
		bm, err := pattern.ParseBitmap(o.PatternRows)
		if err != nil {
			return err
		}
		o.bitmap = bm
	default:
		return errors.New(errors.ErrCodeInvalidPattern,
			"invalid pattern: %q (must be one of: 42, none, custom)", o.Pattern)
	}

	fit, err := pattern.ParseFit(o.PatternFit)
	if err != nil {
		return err
	}
	o.PatternFit = string(fit)

	minW, minH := fit.Thresholds(o.bitmap)
	if o.MinPatternWidth == 0 {
		o.MinPatternWidth = minW
	}
	if o.MinPatternHeight == 0 {
		o.MinPatternHeight = minH
	}
	if o.MinPatternWidth < 0 || o.MinPatternHeight < 0 {
		return errors.New(errors.ErrCodeInvalidPattern, "pattern minimum size must not be negative")
	}
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = uniqueFormats(o.Formats)

	if o.Glyphs == "" {
		o.Glyphs = DefaultGlyphs
	}
	gl, err := render.GlyphsByName(o.Glyphs)
	if err != nil {
		return err
	}
	o.glyphs, o.Glyphs = gl, gl.Name

	o.setLogger()
	return nil
}

func uniqueFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// HasPattern reports whether a pattern was requested.
func (o *Options) HasPattern() bool {
	return len(o.bitmap) > 0
}

// Bitmap returns the resolved pattern bitmap, nil for "none".
func (o *Options) Bitmap() pattern.Bitmap {
	return o.bitmap
}

// Cacheable reports whether the generated maze may be cached.
func (o *Options) Cacheable() bool {
	return o.Seed != nil && !o.Refresh
}

// MazeKeyOpts returns cache key options for maze generation.
func (o *Options) MazeKeyOpts() cache.MazeKeyOpts {
	k := cache.MazeKeyOpts{
		Width:            o.Width,
		Height:           o.Height,
		Strategy:         o.Strategy,
		Pattern:          o.Pattern,
		MinPatternWidth:  o.MinPatternWidth,
		MinPatternHeight: o.MinPatternHeight,
	}
	if o.Seed != nil {
		k.Seed = *o.Seed
	}
	if o.Pattern == maze.PatternCustom {
		k.PatternRows = o.bitmap.Rows()
	}
	if o.strategy == backtrack.Recursive {
		k.MaxRecursionDepth = o.MaxRecursionDepth
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, ShowReserved: o.ShowReserved}
	if format == FormatText {
		k.Glyphs = o.Glyphs
	}
	return k
}
