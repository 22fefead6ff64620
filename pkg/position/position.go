// Package position places posts in 3D space around the anchor node
// assigned to their character.
//
// Placement works per character group: sample one point per post
// uniformly by volume inside the character's influence sphere, perturb
// the whole batch with organic noise, then stamp each post with its
// position and (optionally) the character's color. Every group draws
// from its own child generator derived from the master seed and the
// character's index in sorted order, so results are reproducible and
// independent of iteration order.
package position

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/postscape/postscape/pkg/errors"
	"github.com/postscape/postscape/pkg/noise"
	"github.com/postscape/postscape/pkg/space"
)

// Noise modes.
const (
	// NoisePhase is the default per-point phase-redraw perturbation.
	NoisePhase = "phase"
	// NoiseSimplex swaps in spatially coherent simplex noise.
	NoiseSimplex = "simplex"
)

// Config holds the placement parameters.
type Config struct {
	SpaceScale      float64 // edge length of the normalized cube
	PerlinScale     float64 // base spatial frequency of the noise
	PerlinAmplitude float64 // noise displacement magnitude
	UseColors       bool    // stamp per-character hex colors
	Seed            uint64  // master seed for all randomness
	NoiseMode       string  // NoisePhase (default) or NoiseSimplex
}

// Validate checks config invariants.
func (c Config) Validate() error {
	if c.SpaceScale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "space scale must be positive, got %g", c.SpaceScale)
	}
	switch c.NoiseMode {
	case "", NoisePhase, NoiseSimplex:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown noise mode %q (must be %s or %s)", c.NoiseMode, NoisePhase, NoiseSimplex)
	}
	return nil
}

// Position places every post and returns a new collection. Input posts
// are not modified; each output record is a copy of the original plus
// coordinates and optional color.
//
// Output is grouped by character (characters in sorted order, posts in
// insertion order within each group), not by input order. Callers that
// need the original order must re-sort by a stable key of their own.
func Position(posts []space.Post, nodePositions []space.Vec3, cfg Config) ([]space.Post, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("position posts: %w", err)
	}
	if len(nodePositions) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyNodes, "position posts: no node positions")
	}

	assignment, err := space.AssignCharacters(posts, len(nodePositions))
	if err != nil {
		return nil, fmt.Errorf("position posts: %w", err)
	}

	characters := space.Characters(posts)

	groups := make(map[string][]space.Post, len(characters))
	for _, p := range posts {
		c := p.Character()
		groups[c] = append(groups[c], p)
	}

	var colors map[string]string
	if cfg.UseColors {
		colors = space.ColorMap(characters)
	}

	// Influence radius for each character's cluster.
	radius := cfg.SpaceScale / 4

	out := make([]space.Post, 0, len(posts))
	for i, character := range characters {
		group := groups[character]
		node := nodePositions[assignment[character]]

		// One child generator per character, derived from the master
		// seed and the character's sorted index. Reseeding or sharing a
		// generator across groups would tie results to iteration order.
		rng := rand.New(rand.NewPCG(cfg.Seed, uint64(i)))

		sampled := make([]space.Vec3, len(group))
		for j := range sampled {
			sampled[j] = sampleSphere(node, radius, rng)
		}

		// Noise runs at half the configured amplitude.
		switch cfg.NoiseMode {
		case NoiseSimplex:
			sampled = noise.PerturbCoherent(sampled, cfg.PerlinScale, cfg.PerlinAmplitude*0.5, rng)
		default:
			sampled = noise.Perturb(sampled, cfg.PerlinScale, cfg.PerlinAmplitude*0.5, rng)
		}

		for j, p := range group {
			out = append(out, p.Placed(sampled[j%len(sampled)], colors[character]))
		}
	}

	return out, nil
}

// sampleSphere draws a point uniformly by volume inside the sphere of
// the given radius around center. The cube root on the radial draw is
// what makes the distribution volumetric; a linear draw would pile
// samples toward the center.
func sampleSphere(center space.Vec3, radius float64, rng *rand.Rand) space.Vec3 {
	theta := rng.Float64() * 2 * math.Pi
	phi := rng.Float64() * math.Pi
	r := radius * math.Cbrt(0.1+rng.Float64()*0.9)

	return space.Vec3{
		X: center.X + r*math.Sin(phi)*math.Cos(theta),
		Y: center.Y + r*math.Sin(phi)*math.Sin(theta),
		Z: center.Z + r*math.Cos(phi),
	}
}
