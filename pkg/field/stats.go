package field

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds global statistics over a density field. The field is a
// probability distribution, so Entropy is the Shannon entropy in nats
// and Concentration the fraction of total mass held by the densest 1%
// of cells — a quick read on how tightly posts would importance-sample
// around the anchors.
type Summary struct {
	Cells         int     `json:"cells"`
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"std_dev"`
	Max           float64 `json:"max"`
	Entropy       float64 `json:"entropy"`
	MaxEntropy    float64 `json:"max_entropy"`
	Concentration float64 `json:"concentration"`
}

// Summarize computes global statistics for the field.
func Summarize(f *Field) Summary {
	s := Summary{
		Cells:      len(f.Values),
		Mean:       stat.Mean(f.Values, nil),
		StdDev:     math.Sqrt(stat.Variance(f.Values, nil)),
		Entropy:    stat.Entropy(f.Values),
		MaxEntropy: math.Log(float64(len(f.Values))),
	}

	for _, v := range f.Values {
		if v > s.Max {
			s.Max = v
		}
	}

	s.Concentration = topShare(f.Values, 0.01)
	return s
}

// topShare returns the summed mass of the top frac of cells.
func topShare(values []float64, frac float64) float64 {
	n := int(math.Ceil(frac * float64(len(values))))
	if n < 1 {
		n = 1
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted[len(sorted)-n:] {
		sum += v
	}
	return sum
}
