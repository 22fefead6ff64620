package postio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/postscape/postscape/pkg/space"
)

// WritePosts encodes a positioned post collection as a JSON array to w.
// Map keys are emitted in sorted order by encoding/json, so two runs
// with identical placements produce byte-identical output.
func WritePosts(posts []space.Post, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	return nil
}

// ExportPosts writes a positioned post collection to a JSON file at
// path. This is the artifact the front-end visualization loads.
func ExportPosts(posts []space.Post, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePosts(posts, f)
}
