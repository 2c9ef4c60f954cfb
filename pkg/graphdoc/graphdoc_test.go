package graphdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mindloom/mindloom/pkg/mindmap"
)

func sampleDoc() Document {
	return Document{
		Nodes: []mindmap.Node{
			{
				ID:       "root",
				Position: mindmap.Position{X: 0, Y: 0},
				Type:     mindmap.NodeGeneric,
				Data:     &mindmap.GenericData{Core: mindmap.Core{Label: "Root"}},
			},
			{
				ID:       "a",
				Position: mindmap.Position{X: 280, Y: -70},
				Type:     mindmap.NodeNote,
				Data:     &mindmap.NoteData{Core: mindmap.Core{Label: "A", Collapsed: true}, Text: "body"},
			},
		},
		Edges: []mindmap.Edge{
			{ID: "e1", Source: "root", Target: "a", Type: mindmap.EdgeSmoothstep, Label: "link"},
		},
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	doc := sampleDoc()

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}
	if got.Nodes[1].Type != mindmap.NodeNote {
		t.Errorf("node type = %q, want note", got.Nodes[1].Type)
	}
	if !got.Nodes[1].Collapsed() {
		t.Error("collapsed flag lost in round trip")
	}
	if note, ok := got.Nodes[1].Data.(*mindmap.NoteData); !ok || note.Text != "body" {
		t.Error("note payload lost in round trip")
	}
	if got.Edges[0].Label != "link" {
		t.Errorf("edge label = %q", got.Edges[0].Label)
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")

	if err := WriteFile(sampleDoc(), path); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(got.Nodes))
	}
}

func TestWriteFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")

	if err := WriteFile(sampleDoc(), path); err != nil {
		t.Fatalf("write: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	// Created with an explicit 0644 mode, so no bits beyond owner
	// read/write and world read survive, whatever the umask.
	if perm := info.Mode().Perm(); perm&^os.FileMode(0o644) != 0 {
		t.Errorf("perm = %v, want subset of 0644", perm)
	}
}

func TestLoadOrEmptyMissingFile(t *testing.T) {
	got := LoadOrEmpty(filepath.Join(t.TempDir(), "absent.json"), nil)

	if len(got.Nodes) != 0 || len(got.Edges) != 0 {
		t.Error("missing file did not produce an empty document")
	}
}

func TestLoadOrEmptyMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"nodes": [{`), 0o644); err != nil {
		t.Fatal(err)
	}

	got := LoadOrEmpty(path, nil)

	// A malformed blob is discarded wholesale, never partially applied.
	if len(got.Nodes) != 0 || len(got.Edges) != 0 {
		t.Error("malformed file did not fall back to empty")
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := sampleDoc()
	c := doc.Clone()

	c.Nodes[0].Data.Meta().Label = "mutated"
	c.Edges[0].Label = "mutated"

	if doc.Nodes[0].Label() != "Root" {
		t.Error("clone aliased node payloads")
	}
	if doc.Edges[0].Label != "link" {
		t.Error("clone aliased edges")
	}
}

func TestFromStore(t *testing.T) {
	s := mindmap.NewStore()
	n := s.AddNode(mindmap.NodeGeneric, mindmap.Position{}, nil)
	s.AddEdge(n.ID, n.ID, mindmap.EdgePlain)

	doc := FromStore(s)

	if len(doc.Nodes) != 1 || len(doc.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	}

	// The capture must not alias store state.
	doc.Nodes[0].Data.Meta().Label = "mutated"
	stored, _ := s.Node(n.ID)
	if stored.Label() == "mutated" {
		t.Error("FromStore aliased store state")
	}
}
