package space

import (
	"slices"

	"github.com/postscape/postscape/pkg/errors"
)

// Characters returns the sorted distinct characters appearing in the
// post collection, substituting DefaultCharacter for posts without one.
func Characters(posts []Post) []string {
	seen := make(map[string]struct{})
	for _, p := range posts {
		seen[p.Character()] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// AssignCharacters maps every distinct character in the post collection
// to a node index by round-robin over the lexicographically sorted
// character list: the i-th character gets index i mod numNodes. The
// assignment is fully deterministic and independent of post order, so
// identical inputs always produce identical clusterings. When there are
// more characters than nodes, characters share nodes.
func AssignCharacters(posts []Post, numNodes int) (map[string]int, error) {
	if numNodes < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "assign characters: need at least one node, got %d", numNodes)
	}
	characters := Characters(posts)
	if len(characters) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyPosts, "assign characters: post collection is empty")
	}

	assignment := make(map[string]int, len(characters))
	for i, c := range characters {
		assignment[c] = i % numNodes
	}
	return assignment, nil
}
