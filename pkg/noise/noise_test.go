package noise

import (
	"math/rand/v2"
	"testing"

	"github.com/postscape/postscape/pkg/space"
)

func testPoints() []space.Vec3 {
	return []space.Vec3{
		{X: 1, Y: 2, Z: 3},
		{X: -10, Y: 0, Z: 25},
		{X: 0.5, Y: -0.5, Z: 0},
	}
}

func TestPerturbDeterministic(t *testing.T) {
	points := testPoints()

	a := Perturb(points, 0.05, 15, rand.New(rand.NewPCG(1, 2)))
	b := Perturb(points, 0.05, 15, rand.New(rand.NewPCG(1, 2)))

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("point %d differs between seeded runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPerturbDoesNotMutateInput(t *testing.T) {
	points := testPoints()
	saved := make([]space.Vec3, len(points))
	copy(saved, points)

	_ = Perturb(points, 0.05, 15, rand.New(rand.NewPCG(3, 4)))

	for i := range points {
		if points[i] != saved[i] {
			t.Errorf("input point %d was mutated: %+v vs %+v", i, points[i], saved[i])
		}
	}
}

func TestPerturbZeroAmplitudeIsIdentity(t *testing.T) {
	points := testPoints()

	out := Perturb(points, 0.05, 0, rand.New(rand.NewPCG(5, 6)))

	for i := range points {
		if out[i] != points[i] {
			t.Errorf("point %d moved with zero amplitude: %+v vs %+v", i, out[i], points[i])
		}
	}
}

func TestPerturbZeroScaleIsIdentity(t *testing.T) {
	// The frequency normalization divides by sqrt(scale * 7); at scale
	// zero the offsets must not turn into NaN, the points just stay put.
	points := testPoints()

	out := Perturb(points, 0, 15, rand.New(rand.NewPCG(5, 6)))

	for i := range points {
		if out[i] != points[i] {
			t.Errorf("point %d moved with zero scale: %+v vs %+v", i, out[i], points[i])
		}
		if !out[i].IsFinite() {
			t.Errorf("point %d not finite with zero scale: %+v", i, out[i])
		}
	}
}

func TestPerturbDisplacementBounded(t *testing.T) {
	points := testPoints()
	amplitude := 15.0

	out := Perturb(points, 0.05, amplitude, rand.New(rand.NewPCG(7, 8)))

	// Per-axis offset is a sum of three sin·cos terms with weights
	// 1 + 0.5 + 0.25, normalized by sqrt of the summed frequencies.
	maxOffset := amplitude * 1.75 / 0.5916 // sqrt(0.05 * 7) ≈ 0.5916
	for i := range points {
		d := out[i].Dist(points[i])
		if d > maxOffset*2 {
			t.Errorf("point %d displaced by %v, beyond plausible bound %v", i, d, maxOffset*2)
		}
		if !out[i].IsFinite() {
			t.Errorf("point %d not finite: %+v", i, out[i])
		}
	}
}

func TestPerturbActuallyMoves(t *testing.T) {
	points := testPoints()

	out := Perturb(points, 0.05, 15, rand.New(rand.NewPCG(9, 10)))

	moved := false
	for i := range points {
		if out[i] != points[i] {
			moved = true
		}
	}
	if !moved {
		t.Error("no point moved at amplitude 15")
	}
}

func TestPerturbCoherentDeterministic(t *testing.T) {
	points := testPoints()

	a := PerturbCoherent(points, 0.05, 15, rand.New(rand.NewPCG(1, 2)))
	b := PerturbCoherent(points, 0.05, 15, rand.New(rand.NewPCG(1, 2)))

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("point %d differs between seeded runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPerturbCoherentBounded(t *testing.T) {
	points := testPoints()
	amplitude := 10.0

	out := PerturbCoherent(points, 0.05, amplitude, rand.New(rand.NewPCG(11, 12)))

	for i := range points {
		d := out[i].Dist(points[i])
		// Offsets are within [-amplitude, amplitude] per axis
		if d > amplitude*1.7330809 { // sqrt(3) with slack
			t.Errorf("point %d displaced by %v, beyond %v", i, d, amplitude*1.7330809)
		}
	}
}

func TestPerturbCoherentNearbyPointsMoveTogether(t *testing.T) {
	// Two points a hair apart must receive nearly identical offsets
	points := []space.Vec3{
		{X: 5, Y: 5, Z: 5},
		{X: 5.01, Y: 5, Z: 5},
	}

	out := PerturbCoherent(points, 0.05, 15, rand.New(rand.NewPCG(13, 14)))

	offA := space.Vec3{X: out[0].X - points[0].X, Y: out[0].Y - points[0].Y, Z: out[0].Z - points[0].Z}
	offB := space.Vec3{X: out[1].X - points[1].X, Y: out[1].Y - points[1].Y, Z: out[1].Z - points[1].Z}

	if offA.Dist(offB) > 1 {
		t.Errorf("coherent offsets diverge for nearby points: %+v vs %+v", offA, offB)
	}
}
