package space

import (
	"math"
	"testing"
)

func TestPrepareNodesBounds(t *testing.T) {
	nodes := []Node{
		{Name: "a", X: -300, Y: 12, Z: 0.001},
		{Name: "b", X: 450, Y: -90, Z: 2.5},
		{Name: "c", X: 10, Y: 3, Z: -1},
	}

	positions, index, err := PrepareNodes(nodes, 100)
	if err != nil {
		t.Fatalf("PrepareNodes() error: %v", err)
	}
	if len(positions) != len(nodes) {
		t.Fatalf("got %d positions, want %d", len(positions), len(nodes))
	}

	for i, p := range positions {
		for _, c := range []float64{p.X, p.Y, p.Z} {
			if c < -50 || c > 50 {
				t.Errorf("position %d component %v outside [-50, 50]", i, c)
			}
		}
	}

	// Extremes must land exactly on the cube faces
	if positions[index["a"]].X != -50 {
		t.Errorf("min X = %v, want -50", positions[index["a"]].X)
	}
	if positions[index["b"]].X != 50 {
		t.Errorf("max X = %v, want 50", positions[index["b"]].X)
	}
}

func TestPrepareNodesIndex(t *testing.T) {
	nodes := []Node{
		{Name: "alice", X: 1},
		{Name: "bob", X: 2},
	}

	_, index, err := PrepareNodes(nodes, 10)
	if err != nil {
		t.Fatalf("PrepareNodes() error: %v", err)
	}

	if index["alice"] != 0 || index["bob"] != 1 {
		t.Errorf("index = %v, want alice:0 bob:1", index)
	}
}

func TestPrepareNodesDegenerateAxis(t *testing.T) {
	// All nodes share Y and Z; those axes must collapse to the midpoint
	nodes := []Node{
		{Name: "a", X: 0, Y: 7, Z: 7},
		{Name: "b", X: 10, Y: 7, Z: 7},
	}

	positions, _, err := PrepareNodes(nodes, 100)
	if err != nil {
		t.Fatalf("PrepareNodes() error: %v", err)
	}

	for i, p := range positions {
		if p.Y != 0 || p.Z != 0 {
			t.Errorf("position %d = %+v, degenerate axes should be 0", i, p)
		}
		if !p.IsFinite() {
			t.Errorf("position %d is not finite: %+v", i, p)
		}
	}
}

func TestPrepareNodesSingleNode(t *testing.T) {
	positions, _, err := PrepareNodes([]Node{{Name: "only", X: 42, Y: -1, Z: 3}}, 100)
	if err != nil {
		t.Fatalf("PrepareNodes() error: %v", err)
	}
	// Every axis is degenerate: the node sits at the origin
	if positions[0] != (Vec3{}) {
		t.Errorf("single node position = %+v, want origin", positions[0])
	}
}

func TestPrepareNodesErrors(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		scale float64
	}{
		{name: "empty nodes", nodes: nil, scale: 100},
		{name: "zero scale", nodes: []Node{{Name: "a"}}, scale: 0},
		{name: "negative scale", nodes: []Node{{Name: "a"}}, scale: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := PrepareNodes(tt.nodes, tt.scale); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPrepareNodesDeterministic(t *testing.T) {
	nodes := []Node{
		{Name: "a", X: 1, Y: 2, Z: 3},
		{Name: "b", X: -4, Y: 5, Z: -6},
		{Name: "c", X: 7, Y: -8, Z: 9},
	}

	first, _, err := PrepareNodes(nodes, 80)
	if err != nil {
		t.Fatalf("PrepareNodes() error: %v", err)
	}
	second, _, err := PrepareNodes(nodes, 80)
	if err != nil {
		t.Fatalf("PrepareNodes() error: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestVec3Dist(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 6, Z: 3}
	if d := a.Dist(b); d != 5 {
		t.Errorf("Dist() = %v, want 5", d)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{X: 1, Y: 2, Z: 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{X: math.NaN()}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec3{Z: math.Inf(1)}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}
