package engine

import "github.com/mindloom/mindloom/pkg/mindmap"

// Algorithm selects a layout algorithm.
type Algorithm string

// Layout algorithms.
const (
	AlgorithmRadial Algorithm = "radial"
	AlgorithmTree   Algorithm = "tree"
)

// ValidAlgorithms is the set of supported layout algorithms.
var ValidAlgorithms = map[Algorithm]bool{
	AlgorithmRadial: true,
	AlgorithmTree:   true,
}

// Intent is a single user action for the dispatcher. Using explicit
// intent values instead of ad-hoc method calls keeps every mutation on
// one code path, where the history/persist tail is applied uniformly.
type Intent interface {
	// Name returns the intent's stable identifier, used for logging and
	// observability events.
	Name() string
}

// AddNode creates a free-standing node at a position.
type AddNode struct {
	Type     mindmap.NodeType
	Label    string
	Position mindmap.Position
}

func (AddNode) Name() string { return "add_node" }

// AddChild creates a node connected from an existing parent.
type AddChild struct {
	ParentID string
	Label    string
}

func (AddChild) Name() string { return "add_child" }

// AddSibling creates a node sharing the parent of an existing node. A
// node with no parent gets a free-standing sibling.
type AddSibling struct {
	SiblingID string
	Label     string
}

func (AddSibling) Name() string { return "add_sibling" }

// Connect adds a directed edge between two existing nodes.
type Connect struct {
	Source string
	Target string
	Type   mindmap.EdgeType
}

func (Connect) Name() string { return "connect" }

// SelectNode makes a node the sole selection. An empty NodeID clears
// the selection.
type SelectNode struct {
	NodeID string
}

func (SelectNode) Name() string { return "select_node" }

// DeleteSelection removes every selected node and edge atomically.
type DeleteSelection struct{}

func (DeleteSelection) Name() string { return "delete_selection" }

// ToggleCollapse flips a node's collapsed flag.
type ToggleCollapse struct {
	NodeID string
}

func (ToggleCollapse) Name() string { return "toggle_collapse" }

// SetFocus restricts the view to a node's subtree (hoisting).
type SetFocus struct {
	NodeID string
}

func (SetFocus) Name() string { return "set_focus" }

// ClearFocus removes the focus restriction.
type ClearFocus struct{}

func (ClearFocus) Name() string { return "clear_focus" }

// ApplyLayout recomputes node positions. An empty RootID lets the
// engine pick a deterministic root.
type ApplyLayout struct {
	Algorithm Algorithm
	RootID    string
}

func (ApplyLayout) Name() string { return "apply_layout" }

// ApplyTemplate replaces the document with an instantiated built-in
// template. Unknown keys are a logged no-op.
type ApplyTemplate struct {
	Key string
}

func (ApplyTemplate) Name() string { return "apply_template" }

// Undo steps the history cursor back and restores that snapshot.
type Undo struct{}

func (Undo) Name() string { return "undo" }

// Redo steps the history cursor forward and restores that snapshot.
type Redo struct{}

func (Redo) Name() string { return "redo" }
