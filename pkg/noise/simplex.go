package noise

import (
	"math/rand/v2"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/postscape/postscape/pkg/space"
)

// PerturbCoherent offsets positions with layered opensimplex noise, one
// independent generator per axis. Unlike Perturb, nearby points receive
// nearby offsets, so the displacement reads as a smooth warp of space
// rather than per-point jitter.
//
// The seed is drawn from rng so coherent and phase-redraw modes consume
// the generator the same way and stay interchangeable under one master
// seed.
func PerturbCoherent(points []space.Vec3, scale, amplitude float64, rng *rand.Rand) []space.Vec3 {
	seed := int64(rng.Uint64())
	nx := opensimplex.NewNormalized(seed)
	ny := opensimplex.NewNormalized(seed + 1)
	nz := opensimplex.NewNormalized(seed + 2)

	out := make([]space.Vec3, len(points))
	for i, p := range points {
		// Normalized noise is in [0,1]; recenter to [-1,1].
		out[i] = space.Vec3{
			X: p.X + (octave(nx, p, scale)*2-1)*amplitude,
			Y: p.Y + (octave(ny, p, scale)*2-1)*amplitude,
			Z: p.Z + (octave(nz, p, scale)*2-1)*amplitude,
		}
	}
	return out
}

// octave layers three frequencies of simplex noise, halving amplitude
// per octave, and renormalizes to [0,1].
func octave(n opensimplex.Noise, p space.Vec3, freq float64) float64 {
	total := 0.0
	amp := 1.0
	maxVal := 0.0
	for range 3 {
		total += n.Eval3(p.X*freq, p.Y*freq, p.Z*freq) * amp
		maxVal += amp
		amp *= 0.5
		freq *= 2
	}
	return total / maxVal
}
