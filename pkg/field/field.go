// Package field builds discretized density fields over the normalized
// space and draws importance samples from them.
//
// The field is a regular resolution³ lattice spanning the bounding
// cube. Cell mass is an inverse-power function of the distance to the
// nearest anchor node, normalized so the whole grid forms a discrete
// probability distribution. The per-character placement path samples
// spheres directly and does not consume the field; it exists for global
// statistics and for importance-sampled point clouds.
package field

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/postscape/postscape/pkg/errors"
	"github.com/postscape/postscape/pkg/space"
)

// DefaultResolution is the default lattice size per axis. The generator
// is O(resolution³ × numNodes), which stays cheap only while the
// resolution is small.
const DefaultResolution = 20

// Field is a normalized density grid over the bounding cube.
type Field struct {
	Resolution int          `json:"resolution" bson:"resolution"`
	Scale      float64      `json:"scale" bson:"scale"`
	Falloff    float64      `json:"falloff" bson:"falloff"`
	Values     []float64    `json:"values" bson:"values"` // flattened, len = Resolution³
	Axes       [3][]float64 `json:"axes" bson:"axes"`

	// cumulative mass, built lazily for sampling
	cdf []float64
}

// Generate builds a density field from normalized node positions. Cell
// value is 1/(1+d^falloff) for d the Euclidean distance to the nearest
// node, then the grid is normalized to sum to 1.
//
// The nearest-node scan is deliberately naive; with resolution ≤ 20 and
// modest node counts it is far from the bottleneck. A spatial index
// over nodes is the first thing to reach for if either grows.
func Generate(nodes []space.Vec3, scale, falloff float64, resolution int) (*Field, error) {
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyNodes, "generate field: node list is empty")
	}
	if resolution < 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "generate field: resolution must be at least 2, got %d", resolution)
	}

	f := &Field{
		Resolution: resolution,
		Scale:      scale,
		Falloff:    falloff,
		Values:     make([]float64, resolution*resolution*resolution),
	}
	for axis := range 3 {
		f.Axes[axis] = linspace(-scale/2, scale/2, resolution)
	}

	sum := 0.0
	idx := 0
	for _, x := range f.Axes[0] {
		for _, y := range f.Axes[1] {
			for _, z := range f.Axes[2] {
				d := nearestDist(space.Vec3{X: x, Y: y, Z: z}, nodes)
				v := 1.0 / (1.0 + math.Pow(d, falloff))
				f.Values[idx] = v
				sum += v
				idx++
			}
		}
	}

	for i := range f.Values {
		f.Values[i] /= sum
	}
	return f, nil
}

// Sample draws n positions with probability proportional to cell mass
// (categorical sampling with replacement), converts the chosen cells to
// continuous coordinates, and jitters each axis uniformly by up to half
// a cell width to avoid visible grid banding.
func (f *Field) Sample(n int, rng *rand.Rand) []space.Vec3 {
	if f.cdf == nil {
		f.cdf = make([]float64, len(f.Values))
		acc := 0.0
		for i, v := range f.Values {
			acc += v
			f.cdf[i] = acc
		}
	}

	res := f.Resolution
	halfCell := 0.5 * f.Scale / float64(res)

	out := make([]space.Vec3, n)
	for s := range out {
		idx := sort.SearchFloat64s(f.cdf, rng.Float64())
		if idx >= len(f.Values) {
			idx = len(f.Values) - 1
		}
		i := idx / (res * res)
		j := (idx / res) % res
		k := idx % res
		out[s] = space.Vec3{
			X: f.Axes[0][i] + (rng.Float64()*2-1)*halfCell,
			Y: f.Axes[1][j] + (rng.Float64()*2-1)*halfCell,
			Z: f.Axes[2][k] + (rng.Float64()*2-1)*halfCell,
		}
	}
	return out
}

// At returns the cell value at lattice coordinates (i, j, k).
func (f *Field) At(i, j, k int) float64 {
	res := f.Resolution
	return f.Values[i*res*res+j*res+k]
}

func nearestDist(p space.Vec3, nodes []space.Vec3) float64 {
	best := p.Dist(nodes[0])
	for _, n := range nodes[1:] {
		if d := p.Dist(n); d < best {
			best = d
		}
	}
	return best
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
