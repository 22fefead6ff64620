// Package pipeline provides the core spatialization pipeline for Postscape.
//
// This package implements the complete prepare → position → field pipeline
// that can be used by CLI and server components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Prepare: Normalize anchor node coordinates into the target cube
//  2. Position: Assign characters to nodes and scatter posts around them
//  3. Field: Generate a density field over the normalized node positions
//
// Position and field results are cached by content hash of their inputs, so
// re-running over an unchanged dataset is nearly free.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    SpaceScale: 100,
//	    UseColors:  true,
//	}
//	result, err := runner.Execute(ctx, nodes, posts, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	placed := result.Posts
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/postscape/postscape/pkg/cache"
	"github.com/postscape/postscape/pkg/field"
	"github.com/postscape/postscape/pkg/position"
	"github.com/postscape/postscape/pkg/space"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultSpaceScale is the edge length of the cube that anchor nodes
	// are normalized into.
	DefaultSpaceScale = 100.0

	// DefaultPerlinScale is the default spatial frequency of the noise
	// applied to post positions.
	DefaultPerlinScale = 0.05

	// DefaultPerlinAmplitude is the default strength of the noise applied
	// to post positions.
	DefaultPerlinAmplitude = 15.0

	// DefaultFalloff is the default density falloff exponent. Higher
	// values concentrate density closer to the anchor nodes.
	DefaultFalloff = 2.0

	// DefaultResolution is the default density field resolution per axis.
	DefaultResolution = field.DefaultResolution

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// DefaultNoiseMode is the default noise texture.
const DefaultNoiseMode = position.NoisePhase

// ValidNoiseModes is the set of supported noise textures.
var ValidNoiseModes = map[string]bool{
	position.NoisePhase:   true,
	position.NoiseSimplex: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the spatialization pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Position options
	SpaceScale      float64 `json:"space_scale,omitempty"`
	PerlinScale     float64 `json:"perlin_scale,omitempty"`
	PerlinAmplitude float64 `json:"perlin_amplitude,omitempty"`
	UseColors       bool    `json:"use_colors,omitempty"`
	Seed            uint64  `json:"seed,omitempty"`
	NoiseMode       string  `json:"noise_mode,omitempty"`

	// MaxPerCharacter caps how many posts each character contributes.
	// Zero means unlimited. Posts beyond the cap are dropped in input order.
	MaxPerCharacter int `json:"max_per_character,omitempty"`

	// Field options
	Falloff    float64 `json:"falloff,omitempty"`
	Resolution int     `json:"resolution,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution.
	RunID string

	// Posts are the spatialized posts.
	Posts []space.Post

	// NodePositions are the normalized anchor positions.
	NodePositions []space.Vec3

	// Assignment maps character names to node indices.
	Assignment map[string]int

	// InputHash is the content hash of the inputs.
	InputHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	PostCount      int
	CharacterCount int
	PrepareTime    time.Duration
	PositionTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PositionHit bool // Whether positioned posts came from cache
	FieldHit    bool // Whether the density field came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as
// calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if o.SpaceScale <= 0 {
		return fmt.Errorf("space_scale must be positive, got %v", o.SpaceScale)
	}
	if o.PerlinAmplitude < 0 {
		return fmt.Errorf("perlin_amplitude must be non-negative, got %v", o.PerlinAmplitude)
	}
	if o.MaxPerCharacter < 0 {
		return fmt.Errorf("max_per_character must be non-negative, got %d", o.MaxPerCharacter)
	}
	if o.Resolution < 2 {
		return fmt.Errorf("resolution must be at least 2, got %d", o.Resolution)
	}
	if !ValidNoiseModes[o.NoiseMode] {
		return fmt.Errorf("invalid noise_mode: %q (must be one of: phase, simplex)", o.NoiseMode)
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued fields with pipeline defaults.
func (o *Options) SetDefaults() {
	if o.SpaceScale == 0 {
		o.SpaceScale = DefaultSpaceScale
	}
	if o.PerlinScale == 0 {
		o.PerlinScale = DefaultPerlinScale
	}
	if o.PerlinAmplitude == 0 {
		o.PerlinAmplitude = DefaultPerlinAmplitude
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.NoiseMode == "" {
		o.NoiseMode = DefaultNoiseMode
	}
	if o.Falloff == 0 {
		o.Falloff = DefaultFalloff
	}
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PositionConfig converts options into the position package configuration.
func (o *Options) PositionConfig() position.Config {
	return position.Config{
		SpaceScale:      o.SpaceScale,
		PerlinScale:     o.PerlinScale,
		PerlinAmplitude: o.PerlinAmplitude,
		UseColors:       o.UseColors,
		Seed:            o.Seed,
		NoiseMode:       o.NoiseMode,
	}
}

// PlacementKeyOpts returns cache key options for the position stage.
func (o *Options) PlacementKeyOpts() cache.PlacementKeyOpts {
	return cache.PlacementKeyOpts{
		SpaceScale:      o.SpaceScale,
		PerlinScale:     o.PerlinScale,
		PerlinAmplitude: o.PerlinAmplitude,
		UseColors:       o.UseColors,
		Seed:            o.Seed,
		NoiseMode:       o.NoiseMode,
	}
}

// FieldKeyOpts returns cache key options for the field stage.
func (o *Options) FieldKeyOpts() cache.FieldKeyOpts {
	return cache.FieldKeyOpts{
		SpaceScale: o.SpaceScale,
		Falloff:    o.Falloff,
		Resolution: o.Resolution,
	}
}
