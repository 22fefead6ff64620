// Package pkg provides the core libraries for Postscape post spatialization.
//
// # Overview
//
// Postscape arranges social media posts in 3D space: every post is
// scattered around the anchor node of its character, producing a point
// cloud a front-end can fly through. The pkg directory is organized
// into three main areas:
//
//  1. Domain logic - spatial model, density fields, noise, placement
//  2. Infrastructure - caching, structured errors, observability hooks
//  3. Orchestration - the prepare → position → field pipeline
//
// # Architecture
//
// The typical data flow through Postscape:
//
//	nodes.json + posts.json
//	         ↓
//	    [space] package (normalize nodes, assign characters)
//	         ↓
//	    [position] package (sphere sampling + [noise] perturbation)
//	         ↓
//	    [postio] package (positioned posts as JSON)
//
// # Quick Start
//
// Spatialize a post collection:
//
//	import (
//	    "github.com/postscape/postscape/pkg/position"
//	    "github.com/postscape/postscape/pkg/postio"
//	    "github.com/postscape/postscape/pkg/space"
//	)
//
//	// 1. Load inputs
//	nodes, _ := postio.ImportNodes("nodes.json")
//	posts, _ := postio.ImportPosts("posts.json")
//
//	// 2. Normalize anchors into the target cube
//	positions, _, _ := space.PrepareNodes(nodes, 100)
//
//	// 3. Place posts around their character anchors
//	placed, _ := position.Position(posts, positions, position.Config{
//	    SpaceScale:      100,
//	    PerlinScale:     0.05,
//	    PerlinAmplitude: 15,
//	    Seed:            42,
//	})
//
//	// 4. Write the point cloud
//	_ = postio.ExportPosts(placed, "posts.spatial.json")
//
// # Main Packages
//
// [space] - Spatial model: anchor nodes, normalized positions, post
// records, round-robin character assignment, and per-character colors.
//
// [field] - Discretized density fields over the normalized cube, with
// importance sampling and global statistics.
//
// [noise] - Batch position perturbation: multi-octave phase-redraw
// sinusoids (the default texture) and coherent simplex noise.
//
// [position] - Placement: volumetric sphere sampling per character
// group, seeded child generators, and noise perturbation.
//
// [pipeline] - Complete spatialization pipeline (prepare → position →
// field) used by CLI and server. Ensures consistent behavior across
// entry points, with content-hash caching per stage.
//
// [cache] - Cache backends (file, Redis, null) and content-hash key
// generation for pipeline results.
//
// [postio] - JSON import/export of node lists and post collections.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hook interfaces with no-op defaults for metrics.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/position/... # Specific package
//
// [space]: https://pkg.go.dev/github.com/postscape/postscape/pkg/space
// [field]: https://pkg.go.dev/github.com/postscape/postscape/pkg/field
// [noise]: https://pkg.go.dev/github.com/postscape/postscape/pkg/noise
// [position]: https://pkg.go.dev/github.com/postscape/postscape/pkg/position
// [pipeline]: https://pkg.go.dev/github.com/postscape/postscape/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/postscape/postscape/pkg/cache
// [postio]: https://pkg.go.dev/github.com/postscape/postscape/pkg/postio
// [errors]: https://pkg.go.dev/github.com/postscape/postscape/pkg/errors
// [observability]: https://pkg.go.dev/github.com/postscape/postscape/pkg/observability
package pkg
