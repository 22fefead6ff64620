package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/postscape/postscape/pkg/cache"
	"github.com/postscape/postscape/pkg/field"
	"github.com/postscape/postscape/pkg/observability"
	"github.com/postscape/postscape/pkg/position"
	"github.com/postscape/postscape/pkg/space"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete prepare → position pipeline with caching.
func (r *Runner) Execute(ctx context.Context, nodes []space.Node, posts []space.Post, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID: uuid.NewString(),
	}

	if opts.MaxPerCharacter > 0 {
		posts = capPerCharacter(posts, opts.MaxPerCharacter)
	}

	// Stage 1: Prepare
	prepareStart := time.Now()
	observability.Pipeline().OnPrepareStart(ctx, len(nodes))
	positions, assignment, err := r.Prepare(nodes, posts, opts)
	observability.Pipeline().OnPrepareComplete(ctx, len(nodes), time.Since(prepareStart), err)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	result.NodePositions = positions
	result.Assignment = assignment
	result.Stats.PrepareTime = time.Since(prepareStart)
	result.Stats.NodeCount = len(nodes)
	result.Stats.PostCount = len(posts)
	result.Stats.CharacterCount = len(space.Characters(posts))
	result.InputHash = inputHash(nodes, posts)

	r.Logger.Info("prepared anchor nodes",
		"nodes", len(nodes),
		"characters", result.Stats.CharacterCount,
		"duration", result.Stats.PrepareTime)

	// Stage 2: Position
	positionStart := time.Now()
	placed, positionHit, err := r.PositionWithCacheInfo(ctx, positions, posts, result.InputHash, opts)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	result.Posts = placed
	result.Stats.PositionTime = time.Since(positionStart)
	result.CacheInfo.PositionHit = positionHit

	r.Logger.Info("positioned posts",
		"posts", len(placed),
		"cached", positionHit,
		"duration", result.Stats.PositionTime)

	return result, nil
}

// Prepare normalizes anchor nodes and computes the character assignment.
// Results are cheap to compute so this stage is never cached.
func (r *Runner) Prepare(nodes []space.Node, posts []space.Post, opts Options) ([]space.Vec3, map[string]int, error) {
	opts.SetDefaults()

	positions, _, err := space.PrepareNodes(nodes, opts.SpaceScale)
	if err != nil {
		return nil, nil, err
	}
	assignment, err := space.AssignCharacters(posts, len(positions))
	if err != nil {
		return nil, nil, err
	}
	return positions, assignment, nil
}

// PositionWithCacheInfo places posts with caching and returns cache hit info.
func (r *Runner) PositionWithCacheInfo(ctx context.Context, positions []space.Vec3, posts []space.Post, inputHash string, opts Options) ([]space.Post, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.PlacementKey(inputHash, opts.PlacementKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached []space.Post
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "placement")
				return cached, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "placement")
	}

	// Position
	start := time.Now()
	observability.Pipeline().OnPositionStart(ctx, len(posts), len(space.Characters(posts)))
	placed, err := position.Position(posts, positions, opts.PositionConfig())
	observability.Pipeline().OnPositionComplete(ctx, len(posts), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(placed); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPlacement)
		observability.Cache().OnCacheSet(ctx, "placement", len(data))
	}

	return placed, false, nil // Cache miss
}

// Position is a convenience wrapper that calls PositionWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Position(ctx context.Context, positions []space.Vec3, posts []space.Post, inputHash string, opts Options) ([]space.Post, error) {
	placed, _, err := r.PositionWithCacheInfo(ctx, positions, posts, inputHash, opts)
	return placed, err
}

// FieldWithCacheInfo generates a density field with caching and returns
// cache hit info.
func (r *Runner) FieldWithCacheInfo(ctx context.Context, positions []space.Vec3, opts Options) (*field.Field, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	posData, _ := json.Marshal(positions)
	cacheKey := r.Keyer.FieldKey(cache.Hash(posData), opts.FieldKeyOpts())

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached field.Field
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "field")
				return &cached, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "field")
	}

	// Generate field
	start := time.Now()
	observability.Pipeline().OnFieldStart(ctx, opts.Resolution)
	f, err := field.Generate(positions, opts.SpaceScale, opts.Falloff, opts.Resolution)
	observability.Pipeline().OnFieldComplete(ctx, opts.Resolution, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(f); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLField)
		observability.Cache().OnCacheSet(ctx, "field", len(data))
	}

	return f, false, nil // Cache miss
}

// Field is a convenience wrapper that calls FieldWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Field(ctx context.Context, positions []space.Vec3, opts Options) (*field.Field, error) {
	f, _, err := r.FieldWithCacheInfo(ctx, positions, opts)
	return f, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// inputHash computes the content hash of the pipeline inputs.
func inputHash(nodes []space.Node, posts []space.Post) string {
	data, _ := json.Marshal(struct {
		Nodes []space.Node `json:"nodes"`
		Posts []space.Post `json:"posts"`
	}{nodes, posts})
	return cache.Hash(data)
}

// capPerCharacter keeps at most limit posts per character, preserving
// input order.
func capPerCharacter(posts []space.Post, limit int) []space.Post {
	seen := make(map[string]int)
	out := make([]space.Post, 0, len(posts))
	for _, p := range posts {
		c := p.Character()
		if seen[c] >= limit {
			continue
		}
		seen[c]++
		out = append(out, p)
	}
	return out
}
