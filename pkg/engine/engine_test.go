package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mindloom/mindloom/pkg/errors"
	"github.com/mindloom/mindloom/pkg/graphdoc"
	"github.com/mindloom/mindloom/pkg/mindmap"
	"github.com/mindloom/mindloom/pkg/mindmap/layout"
	"github.com/mindloom/mindloom/pkg/persist"
)

// recordingStore counts saves and remembers the last document.
type recordingStore struct {
	mu    sync.Mutex
	saves int
	last  graphdoc.Document
}

func (r *recordingStore) Save(_ context.Context, _ string, doc graphdoc.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.last = doc
	return nil
}

func (r *recordingStore) Load(context.Context, string) (graphdoc.Document, bool, error) {
	return graphdoc.Document{}, false, nil
}
func (r *recordingStore) Delete(context.Context, string) error   { return nil }
func (r *recordingStore) List(context.Context) ([]string, error) { return nil, nil }

func (r *recordingStore) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

var _ persist.Store = (*recordingStore)(nil)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("test", graphdoc.Empty(), Options{
		Debounce: time.Hour, // keep the timer from firing mid-test
	})
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func dispatch(t *testing.T, s *Session, intent Intent) {
	t.Helper()
	if err := s.Dispatch(context.Background(), intent); err != nil {
		t.Fatalf("dispatch %s: %v", intent.Name(), err)
	}
}

func addRoot(t *testing.T, s *Session, label string) string {
	t.Helper()
	dispatch(t, s, AddNode{Type: mindmap.NodeGeneric, Label: label})
	doc := s.Document()
	return doc.Nodes[len(doc.Nodes)-1].ID
}

func TestSessionAddNode(t *testing.T) {
	s := newTestSession(t)

	dispatch(t, s, AddNode{Type: mindmap.NodeNote, Label: "hello", Position: mindmap.Position{X: 5, Y: 6}})

	doc := s.Document()
	if len(doc.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(doc.Nodes))
	}
	n := doc.Nodes[0]
	if n.Type != mindmap.NodeNote || n.Label() != "hello" {
		t.Errorf("node = %q/%q", n.Type, n.Label())
	}
	if n.Position != (mindmap.Position{X: 5, Y: 6}) {
		t.Errorf("position = %+v", n.Position)
	}
	if sel := s.Selection(); len(sel) != 1 || sel[0] != n.ID {
		t.Errorf("selection = %v, want sole new node", sel)
	}
}

func TestSessionAddChild(t *testing.T) {
	s := newTestSession(t)
	rootID := addRoot(t, s, "root")

	dispatch(t, s, AddChild{ParentID: rootID, Label: "child"})

	doc := s.Document()
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	}
	child := doc.Nodes[1]
	if doc.Edges[0].Source != rootID || doc.Edges[0].Target != child.ID {
		t.Error("edge does not connect parent to child")
	}
	want := mindmap.Position{X: childOffset.X, Y: childOffset.Y}
	if child.Position != want {
		t.Errorf("child position = %+v, want offset %+v from parent", child.Position, want)
	}
}

func TestSessionAddChildMissingParent(t *testing.T) {
	s := newTestSession(t)

	err := s.Dispatch(context.Background(), AddChild{ParentID: "ghost", Label: "x"})

	if !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("err = %v, want NODE_NOT_FOUND", err)
	}
	if len(s.Document().Nodes) != 0 {
		t.Error("failed intent still mutated the graph")
	}
}

func TestSessionAddSibling(t *testing.T) {
	s := newTestSession(t)
	rootID := addRoot(t, s, "root")
	dispatch(t, s, AddChild{ParentID: rootID, Label: "first"})
	firstID := s.Document().Nodes[1].ID

	dispatch(t, s, AddSibling{SiblingID: firstID, Label: "second"})

	doc := s.Document()
	if len(doc.Nodes) != 3 || len(doc.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	}
	secondID := doc.Nodes[2].ID
	var parented bool
	for _, e := range doc.Edges {
		if e.Source == rootID && e.Target == secondID {
			parented = true
		}
	}
	if !parented {
		t.Error("sibling not connected to the shared parent")
	}
}

func TestSessionAddSiblingOfRootIsFreeStanding(t *testing.T) {
	s := newTestSession(t)
	rootID := addRoot(t, s, "root")

	dispatch(t, s, AddSibling{SiblingID: rootID, Label: "peer"})

	doc := s.Document()
	if len(doc.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(doc.Nodes))
	}
	if len(doc.Edges) != 0 {
		t.Errorf("edges = %d, want 0 (no parent to attach to)", len(doc.Edges))
	}
}

func TestSessionDeleteSelectionCascades(t *testing.T) {
	s := newTestSession(t)
	rootID := addRoot(t, s, "root")
	dispatch(t, s, AddChild{ParentID: rootID, Label: "child"})
	childID := s.Document().Nodes[1].ID
	dispatch(t, s, AddChild{ParentID: childID, Label: "grandchild"})

	// The middle node: select it and delete.
	dispatch(t, s, SelectNode{NodeID: childID})
	dispatch(t, s, DeleteSelection{})

	doc := s.Document()
	if len(doc.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2 (only the selected node removed)", len(doc.Nodes))
	}
	for _, e := range doc.Edges {
		if e.Source == childID || e.Target == childID {
			t.Errorf("edge touching deleted node survived: %s", e.ID)
		}
	}
	if len(doc.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(doc.Edges))
	}
}

func TestSessionSelectNodeMissing(t *testing.T) {
	s := newTestSession(t)

	err := s.Dispatch(context.Background(), SelectNode{NodeID: "ghost"})

	if !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("err = %v, want NODE_NOT_FOUND", err)
	}
}

func TestSessionToggleCollapseMissingIsNoop(t *testing.T) {
	s := newTestSession(t)
	addRoot(t, s, "root")
	before := len(s.Document().Nodes)

	if err := s.Dispatch(context.Background(), ToggleCollapse{NodeID: "ghost"}); err != nil {
		t.Errorf("stale toggle returned error: %v", err)
	}
	if len(s.Document().Nodes) != before {
		t.Error("stale toggle mutated the graph")
	}
}

func TestSessionCollapseHidesSubtree(t *testing.T) {
	s := newTestSession(t)
	rootID := addRoot(t, s, "root")
	dispatch(t, s, AddChild{ParentID: rootID, Label: "child"})

	dispatch(t, s, ToggleCollapse{NodeID: rootID})

	v := s.View()
	if len(v.Nodes) != 1 || v.Nodes[0].ID != rootID {
		t.Errorf("visible = %v, want only the collapsed root", mindmap.NodeIDs(v.Nodes))
	}

	dispatch(t, s, ToggleCollapse{NodeID: rootID})
	if v := s.View(); len(v.Nodes) != 2 {
		t.Error("subtree not restored after expand")
	}
}

func TestSessionFocus(t *testing.T) {
	s := newTestSession(t)
	rootID := addRoot(t, s, "root")
	dispatch(t, s, AddChild{ParentID: rootID, Label: "child"})
	childID := s.Document().Nodes[1].ID

	historyBefore := s.CanUndo()

	dispatch(t, s, SetFocus{NodeID: childID})

	if s.FocusID() != childID {
		t.Errorf("FocusID = %q, want %q", s.FocusID(), childID)
	}
	v := s.View()
	if len(v.Nodes) != 1 || v.Nodes[0].ID != childID {
		t.Errorf("visible = %v, want only focus subtree", mindmap.NodeIDs(v.Nodes))
	}
	if s.CanUndo() != historyBefore {
		t.Error("focus change recorded a history snapshot")
	}

	dispatch(t, s, ClearFocus{})
	if s.FocusID() != "" {
		t.Error("focus not cleared")
	}
}

func TestSessionFocusMissingNode(t *testing.T) {
	s := newTestSession(t)

	err := s.Dispatch(context.Background(), SetFocus{NodeID: "ghost"})

	if !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("err = %v, want NODE_NOT_FOUND", err)
	}
}

func TestSessionFocusDroppedWhenNodeDeleted(t *testing.T) {
	s := newTestSession(t)
	rootID := addRoot(t, s, "root")
	dispatch(t, s, AddChild{ParentID: rootID, Label: "child"})
	childID := s.Document().Nodes[1].ID

	dispatch(t, s, SetFocus{NodeID: childID})
	dispatch(t, s, SelectNode{NodeID: childID})
	dispatch(t, s, DeleteSelection{})

	if s.FocusID() != "" {
		t.Errorf("FocusID = %q, want cleared after the node vanished", s.FocusID())
	}
}

func TestSessionApplyLayout(t *testing.T) {
	s := newTestSession(t)
	rootID := addRoot(t, s, "root")
	dispatch(t, s, AddChild{ParentID: rootID, Label: "a"})
	dispatch(t, s, AddChild{ParentID: rootID, Label: "b"})

	dispatch(t, s, ApplyLayout{Algorithm: AlgorithmTree, RootID: rootID})

	doc := s.Document()
	byLabel := make(map[string]mindmap.Position)
	for _, n := range doc.Nodes {
		byLabel[n.Label()] = n.Position
	}
	if byLabel["root"] != (mindmap.Position{}) {
		t.Errorf("root = %+v, want origin", byLabel["root"])
	}
	if byLabel["a"] != (mindmap.Position{X: layout.DefaultColumnSpacing, Y: -layout.DefaultRowSpacing / 2}) {
		t.Errorf("a = %+v", byLabel["a"])
	}
	if byLabel["b"] != (mindmap.Position{X: layout.DefaultColumnSpacing, Y: layout.DefaultRowSpacing / 2}) {
		t.Errorf("b = %+v", byLabel["b"])
	}
}

func TestSessionApplyLayoutInvalidAlgorithm(t *testing.T) {
	s := newTestSession(t)
	addRoot(t, s, "root")

	err := s.Dispatch(context.Background(), ApplyLayout{Algorithm: "spiral"})

	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("err = %v, want INVALID_LAYOUT", err)
	}
}

func TestSessionApplyTemplate(t *testing.T) {
	s := newTestSession(t)
	addRoot(t, s, "stale")

	dispatch(t, s, ApplyTemplate{Key: "brainstorm"})

	doc := s.Document()
	if len(doc.Nodes) < 4 {
		t.Fatalf("nodes = %d, want template skeleton", len(doc.Nodes))
	}
	for _, n := range doc.Nodes {
		if n.Label() == "stale" {
			t.Error("template did not replace the previous graph")
		}
	}
}

func TestSessionApplyTemplateUnknownKey(t *testing.T) {
	s := newTestSession(t)
	addRoot(t, s, "keep")

	if err := s.Dispatch(context.Background(), ApplyTemplate{Key: "nope"}); err != nil {
		t.Errorf("unknown template returned error: %v", err)
	}
	doc := s.Document()
	if len(doc.Nodes) != 1 || doc.Nodes[0].Label() != "keep" {
		t.Error("unknown template changed the graph")
	}
}

func TestSessionUndoRedo(t *testing.T) {
	s := newTestSession(t)
	rootID := addRoot(t, s, "root")
	dispatch(t, s, AddChild{ParentID: rootID, Label: "child"})

	dispatch(t, s, Undo{})
	if got := len(s.Document().Nodes); got != 1 {
		t.Errorf("after undo: %d nodes, want 1", got)
	}

	dispatch(t, s, Redo{})
	if got := len(s.Document().Nodes); got != 2 {
		t.Errorf("after redo: %d nodes, want 2", got)
	}
}

func TestSessionUndoBottomsOutAtSeed(t *testing.T) {
	seed := graphdoc.Document{
		Nodes: []mindmap.Node{{
			ID:   "seed",
			Type: mindmap.NodeGeneric,
			Data: &mindmap.GenericData{Core: mindmap.Core{Label: "Seed"}},
		}},
	}
	s := NewSession("test", seed, Options{Debounce: time.Hour})
	defer s.Close(context.Background())

	dispatch(t, s, AddNode{Label: "extra"})

	for i := 0; i < 10; i++ {
		dispatch(t, s, Undo{})
	}

	doc := s.Document()
	if len(doc.Nodes) != 1 || doc.Nodes[0].ID != "seed" {
		t.Errorf("deepest undo state = %v, want the seed document", mindmap.NodeIDs(doc.Nodes))
	}
}

func TestSessionRedoTruncatedByNewEdit(t *testing.T) {
	s := newTestSession(t)
	addRoot(t, s, "a")
	addRoot(t, s, "b")

	dispatch(t, s, Undo{})
	dispatch(t, s, AddNode{Label: "c"})

	if s.CanRedo() {
		t.Error("redo available after a branching edit")
	}
	labels := make(map[string]bool)
	for _, n := range s.Document().Nodes {
		labels[n.Label()] = true
	}
	if labels["b"] || !labels["a"] || !labels["c"] {
		t.Errorf("labels = %v, want {a, c}", labels)
	}
}

func TestSessionDebouncedPersistCoalesces(t *testing.T) {
	store := &recordingStore{}
	s := NewSession("test", graphdoc.Empty(), Options{
		Debounce: 30 * time.Millisecond,
		Store:    store,
	})
	defer s.Close(context.Background())

	for i := 0; i < 5; i++ {
		dispatch(t, s, AddNode{Label: "burst"})
	}

	if store.saveCount() != 0 {
		t.Errorf("saves = %d before debounce elapsed, want 0", store.saveCount())
	}

	time.Sleep(120 * time.Millisecond)

	if store.saveCount() != 1 {
		t.Errorf("saves = %d after burst, want 1 coalesced save", store.saveCount())
	}
}

func TestSessionFlushSavesImmediately(t *testing.T) {
	store := &recordingStore{}
	s := NewSession("test", graphdoc.Empty(), Options{
		Debounce: time.Hour,
		Store:    store,
	})
	defer s.Close(context.Background())

	dispatch(t, s, AddNode{Label: "x"})

	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if store.saveCount() != 1 {
		t.Errorf("saves = %d, want 1", store.saveCount())
	}
	if len(store.last.Nodes) != 1 {
		t.Errorf("persisted %d nodes, want 1", len(store.last.Nodes))
	}
}

func TestSessionTaskTitles(t *testing.T) {
	s := newTestSession(t)
	rootID := addRoot(t, s, "root")
	dispatch(t, s, AddChild{ParentID: rootID, Label: "alpha"})
	dispatch(t, s, AddChild{ParentID: rootID, Label: "beta"})

	got := s.TaskTitles(rootID)

	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("TaskTitles = %v, want [alpha beta]", got)
	}
}

func TestSessionUnsupportedIntent(t *testing.T) {
	s := newTestSession(t)

	err := s.Dispatch(context.Background(), bogusIntent{})

	if !errors.Is(err, errors.ErrCodeInvalidIntent) {
		t.Errorf("err = %v, want INVALID_INTENT", err)
	}
}

type bogusIntent struct{}

func (bogusIntent) Name() string { return "bogus" }
