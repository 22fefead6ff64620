package cache

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// PlacementKey keys a positioned post collection by the content
	// hash of its inputs (nodes + posts) and the placement options.
	PlacementKey(inputHash string, opts PlacementKeyOpts) string

	// FieldKey keys a density field by the content hash of the
	// normalized node positions and the field options.
	FieldKey(positionsHash string, opts FieldKeyOpts) string
}

// PlacementKeyOpts are the options that change placement output.
type PlacementKeyOpts struct {
	SpaceScale      float64
	PerlinScale     float64
	PerlinAmplitude float64
	UseColors       bool
	Seed            uint64
	NoiseMode       string
}

// FieldKeyOpts are the options that change field output.
type FieldKeyOpts struct {
	SpaceScale float64
	Falloff    float64
	Resolution int
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlacementKey generates a key for placement caching.
func (k *DefaultKeyer) PlacementKey(inputHash string, opts PlacementKeyOpts) string {
	return hashKey("placement", inputHash, opts)
}

// FieldKey generates a key for field caching.
func (k *DefaultKeyer) FieldKey(positionsHash string, opts FieldKeyOpts) string {
	return hashKey("field", positionsHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so multiple datasets can
// share one backend without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlacementKey generates a prefixed key for placement caching.
func (k *ScopedKeyer) PlacementKey(inputHash string, opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(inputHash, opts)
}

// FieldKey generates a prefixed key for field caching.
func (k *ScopedKeyer) FieldKey(positionsHash string, opts FieldKeyOpts) string {
	return k.prefix + k.inner.FieldKey(positionsHash, opts)
}
