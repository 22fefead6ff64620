package space

import "github.com/postscape/postscape/pkg/errors"

// PrepareNodes normalizes raw anchor coordinates into the cube
// [-spaceScale/2, spaceScale/2] on every axis, using independent
// per-axis min-max scaling. The returned positions are aligned by index
// with the input node list; the name map is a back-reference from node
// name to index for callers that still hold names.
//
// If every node shares the same value on an axis, that axis collapses
// to the midpoint of the target range rather than dividing by zero.
func PrepareNodes(nodes []Node, spaceScale float64) ([]Vec3, map[string]int, error) {
	if len(nodes) == 0 {
		return nil, nil, errors.New(errors.ErrCodeEmptyNodes, "prepare nodes: node list is empty")
	}
	if spaceScale <= 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidConfig, "prepare nodes: space scale must be positive, got %g", spaceScale)
	}

	lo, hi := -spaceScale/2, spaceScale/2

	var minAxis, maxAxis [3]float64
	for axis := range 3 {
		minAxis[axis] = coord(nodes[0], axis)
		maxAxis[axis] = minAxis[axis]
	}
	for _, n := range nodes[1:] {
		for axis := range 3 {
			c := coord(n, axis)
			if c < minAxis[axis] {
				minAxis[axis] = c
			}
			if c > maxAxis[axis] {
				maxAxis[axis] = c
			}
		}
	}

	positions := make([]Vec3, len(nodes))
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		var scaled [3]float64
		for axis := range 3 {
			span := maxAxis[axis] - minAxis[axis]
			if span == 0 {
				// Degenerate axis: every node sits at the midpoint.
				scaled[axis] = (lo + hi) / 2
				continue
			}
			scaled[axis] = lo + (coord(n, axis)-minAxis[axis])/span*(hi-lo)
		}
		positions[i] = Vec3{X: scaled[0], Y: scaled[1], Z: scaled[2]}
		index[n.Name] = i
	}

	return positions, index, nil
}

func coord(n Node, axis int) float64 {
	switch axis {
	case 0:
		return n.X
	case 1:
		return n.Y
	default:
		return n.Z
	}
}
