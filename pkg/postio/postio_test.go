package postio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/postscape/postscape/pkg/errors"
	"github.com/postscape/postscape/pkg/space"
)

func TestReadNodes(t *testing.T) {
	input := `[
		{"name": "alice", "x": 1.5, "y": -2, "z": 0},
		{"name": "bob", "x": 3}
	]`

	nodes, err := ReadNodes(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadNodes() error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].Name != "alice" || nodes[0].X != 1.5 || nodes[0].Y != -2 {
		t.Errorf("node 0 = %+v", nodes[0])
	}
	// Missing coordinates decode to zero
	if nodes[1].Y != 0 || nodes[1].Z != 0 {
		t.Errorf("node 1 = %+v, missing coords should be 0", nodes[1])
	}
}

func TestReadNodesMalformed(t *testing.T) {
	_, err := ReadNodes(strings.NewReader(`{"not": "an array"`))
	if err == nil {
		t.Fatal("malformed JSON should be an error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestReadPostsPreservesUnknownFields(t *testing.T) {
	input := `[{"character": "alice", "text": "hi", "likes": 3, "meta": {"lang": "en"}}]`

	posts, err := ReadPosts(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPosts() error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}

	p := posts[0]
	if p.Character() != "alice" {
		t.Errorf("Character() = %q", p.Character())
	}
	if p["text"] != "hi" || p["likes"] != 3.0 {
		t.Errorf("fields lost: %v", p)
	}
	if _, ok := p["meta"].(map[string]any); !ok {
		t.Errorf("nested field lost: %v", p["meta"])
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := ImportNodes(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("missing file should be an error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}

	if _, err := ImportPosts(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing file should be an error")
	}
}

func TestWritePostsByteIdentical(t *testing.T) {
	posts := []space.Post{
		{"character": "b", "text": "two"},
		{"character": "a", "text": "one", "coordinates": space.Coordinates{X: 1, Y: 2, Z: 3}},
	}

	var first, second bytes.Buffer
	if err := WritePosts(posts, &first); err != nil {
		t.Fatalf("WritePosts() error: %v", err)
	}
	if err := WritePosts(posts, &second); err != nil {
		t.Fatalf("WritePosts() error: %v", err)
	}

	if first.String() != second.String() {
		t.Error("two writes of the same posts differ")
	}
	if !strings.Contains(first.String(), "\"coordinates\"") {
		t.Error("coordinates missing from output")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	posts := []space.Post{
		{"character": "alice", "text": "hello", "likes": 5.0},
	}

	if err := ExportPosts(posts, path); err != nil {
		t.Fatalf("ExportPosts() error: %v", err)
	}

	loaded, err := ImportPosts(path)
	if err != nil {
		t.Fatalf("ImportPosts() error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("got %d posts, want 1", len(loaded))
	}
	if loaded[0]["text"] != "hello" || loaded[0]["likes"] != 5.0 {
		t.Errorf("round trip lost fields: %v", loaded[0])
	}
}

func TestExportPostsBadPath(t *testing.T) {
	err := ExportPosts([]space.Post{}, filepath.Join(t.TempDir(), "missing-dir", "out.json"))
	if err == nil {
		t.Error("unwritable path should be an error")
	}
}

func TestReadNodesEmptyArray(t *testing.T) {
	nodes, err := ReadNodes(strings.NewReader("[]"))
	if err != nil {
		t.Fatalf("ReadNodes() error: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("got %d nodes, want 0", len(nodes))
	}

	// os.WriteFile variant through the file API
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	nodes, err = ImportNodes(path)
	if err != nil {
		t.Fatalf("ImportNodes() error: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("got %d nodes, want 0", len(nodes))
	}
}
