// Package noise perturbs batches of positions so that sampled clusters
// lose the visible sphere and grid artifacts of analytic sampling.
//
// The default perturbation (Perturb) layers three sinusoidal octaves
// with fresh random phases per point. Redrawing phases per point means
// adjacent points see unrelated offsets — the texture is intentionally
// not a continuous noise field. That grain is what the downstream
// visualization is calibrated against; PerturbCoherent exists for the
// cases where spatial continuity is actually wanted.
package noise

import (
	"math"
	"math/rand/v2"

	"github.com/postscape/postscape/pkg/space"
)

// Octave frequency multipliers and amplitude weights, coarse to fine.
var (
	freqMul = [3]float64{1, 2, 4}
	ampMul  = [3]float64{1.0, 0.5, 0.25}
)

// Perturb returns a new slice of positions offset by multi-octave
// sinusoidal noise. For each point and each octave, three phases are
// drawn uniformly from [0, 2π) and the offset couples axes pairwise:
// x is driven by sin(x)·cos(y), y by sin(y)·cos(z), z by sin(z)·cos(x).
// The raw offset is normalized by the square root of the summed octave
// frequencies and then scaled by amplitude.
//
// The input slice is never modified. All randomness comes from rng, so
// a seeded generator makes the perturbation fully reproducible.
//
// Zero amplitude or zero scale means noise is off: the points come back
// unchanged. The scale guard matters because the normalization divides
// by sqrt of the summed frequencies, which is zero at scale zero.
func Perturb(points []space.Vec3, scale, amplitude float64, rng *rand.Rand) []space.Vec3 {
	out := make([]space.Vec3, len(points))
	if amplitude == 0 || scale <= 0 {
		copy(out, points)
		return out
	}

	var freqSum float64
	for _, m := range freqMul {
		freqSum += scale * m
	}
	norm := math.Sqrt(freqSum)

	for i, p := range points {
		var off space.Vec3
		for o := range freqMul {
			freq := scale * freqMul[o]
			amp := ampMul[o]

			phase1 := rng.Float64() * 2 * math.Pi
			phase2 := rng.Float64() * 2 * math.Pi
			phase3 := rng.Float64() * 2 * math.Pi

			off.X += amp * math.Sin(p.X*freq+phase1) * math.Cos(p.Y*freq+phase2)
			off.Y += amp * math.Sin(p.Y*freq+phase2) * math.Cos(p.Z*freq+phase3)
			off.Z += amp * math.Sin(p.Z*freq+phase3) * math.Cos(p.X*freq+phase1)
		}

		out[i] = space.Vec3{
			X: p.X + off.X/norm*amplitude,
			Y: p.Y + off.Y/norm*amplitude,
			Z: p.Z + off.Z/norm*amplitude,
		}
	}
	return out
}
