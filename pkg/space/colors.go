package space

import (
	"fmt"
	"math"
	"slices"
)

// ColorMap assigns every character an evenly spaced hue on the HSV
// circle (full saturation and value), converted to a hex RGB string.
// The hue circle is divided into len(characters)+1 steps over the
// sorted character set, so the map is deterministic for a given set and
// no character lands back on pure red at the wrap-around.
func ColorMap(characters []string) map[string]string {
	sorted := slices.Clone(characters)
	slices.Sort(sorted)

	step := 1.0 / float64(len(sorted)+1)
	colors := make(map[string]string, len(sorted))
	for i, c := range sorted {
		colors[c] = hueToHex(float64(i) * step)
	}
	return colors
}

// hueToHex converts a hue in [0,1) at full saturation and value to a
// hex RGB string using the six-sector HSV formula.
func hueToHex(hue float64) string {
	h := hue * 6
	x := 1 - math.Abs(math.Mod(h, 2)-1)

	var r, g, b float64
	switch {
	case h < 1:
		r, g, b = 1, x, 0
	case h < 2:
		r, g, b = x, 1, 0
	case h < 3:
		r, g, b = 0, 1, x
	case h < 4:
		r, g, b = 0, x, 1
	case h < 5:
		r, g, b = x, 0, 1
	default:
		r, g, b = 1, 0, x
	}

	return fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
}
