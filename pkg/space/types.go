// Package space defines the spatial data model for postscape: anchor
// nodes, normalized positions, and post records.
//
// A Node is a fixed 3D reference point associated with a character or
// category. Posts cluster around the node their character is assigned
// to. Raw node coordinates arrive at arbitrary scale and are normalized
// into a bounded cube by PrepareNodes before any placement happens.
package space

import "math"

// =============================================================================
// Vectors
// =============================================================================

// Vec3 is a point or offset in 3D space.
type Vec3 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Dist returns the Euclidean distance between v and w.
func (v Vec3) Dist(w Vec3) float64 {
	dx, dy, dz := v.X-w.X, v.Y-w.Y, v.Z-w.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IsFinite reports whether all components are finite numbers.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// =============================================================================
// Nodes
// =============================================================================

// Node is a raw anchor point as loaded from the node list. Coordinates
// are at arbitrary scale; missing coordinates decode to 0.
type Node struct {
	Name string  `json:"name" bson:"name"`
	X    float64 `json:"x" bson:"x"`
	Y    float64 `json:"y" bson:"y"`
	Z    float64 `json:"z" bson:"z"`
}

// =============================================================================
// Posts
// =============================================================================

// DefaultCharacter is the category substituted for posts that carry no
// character field. The substitution is silent: an absent character is
// data, not an error.
const DefaultCharacter = "unknown"

// Field names read or written on post records.
const (
	FieldCharacter   = "character"
	FieldCoordinates = "coordinates"
	FieldColor       = "color"
)

// Post is a post record with arbitrary metadata. All fields are passed
// through positioning unchanged; only the placement fields are added.
type Post map[string]any

// Character returns the post's character, or DefaultCharacter when the
// field is absent or not a string. An explicit empty string is kept as
// its own category; only a missing value falls back.
func (p Post) Character() string {
	if c, ok := p[FieldCharacter].(string); ok {
		return c
	}
	return DefaultCharacter
}

// Placed returns a new post carrying all of p's fields plus the given
// coordinates. A non-empty color is stamped as well. The receiver is
// never modified: positioning builds fresh records so callers keep
// undisturbed ownership of their input collection.
func (p Post) Placed(at Vec3, color string) Post {
	out := make(Post, len(p)+2)
	for k, v := range p {
		out[k] = v
	}
	out[FieldCoordinates] = Coordinates{X: at.X, Y: at.Y, Z: at.Z}
	if color != "" {
		out[FieldColor] = color
	}
	return out
}

// Coordinates is the placement attached to an output post.
type Coordinates struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}
