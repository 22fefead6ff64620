// Package postio reads and writes the JSON collections the pipeline
// exchanges with the outside world: node lists in, positioned post
// lists out. Both formats are plain JSON arrays; unknown post fields
// are preserved untouched through the whole pipeline.
package postio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/postscape/postscape/pkg/errors"
	"github.com/postscape/postscape/pkg/space"
)

// ReadNodes decodes a JSON node array from r.
//
// The input must be an array of objects with a "name" string and "x",
// "y", "z" numbers. Missing coordinates decode to 0; that is data, not
// an error. Malformed JSON is fatal — this is a one-shot batch job with
// no partial-read semantics.
func ReadNodes(r io.Reader) ([]space.Node, error) {
	var nodes []space.Node
	if err := json.NewDecoder(r).Decode(&nodes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode nodes")
	}
	return nodes, nil
}

// ImportNodes reads a node list from the JSON file at path.
func ImportNodes(path string) ([]space.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadNodes(f)
}

// ReadPosts decodes a JSON post array from r. Every field of every
// post is kept; a missing "character" field is substituted downstream,
// not here.
func ReadPosts(r io.Reader) ([]space.Post, error) {
	var posts []space.Post
	if err := json.NewDecoder(r).Decode(&posts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode posts")
	}
	return posts, nil
}

// ImportPosts reads a post list from the JSON file at path.
func ImportPosts(path string) ([]space.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadPosts(f)
}
