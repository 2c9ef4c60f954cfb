package mindmap

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// NodeType identifies the payload variant a node carries.
type NodeType string

// Node types.
const (
	NodeGeneric   NodeType = "generic"
	NodeNote      NodeType = "note"
	NodeChecklist NodeType = "checklist"
	NodeKanban    NodeType = "kanban"
	NodeTimeline  NodeType = "timeline"
	NodeMatrix    NodeType = "matrix"
)

// EdgeType selects the visual connector style for an edge.
type EdgeType string

// Edge types.
const (
	EdgePlain      EdgeType = "plain"
	EdgeSmoothstep EdgeType = "smoothstep"
	EdgeLabeled    EdgeType = "labeled"
)

// ValidNodeTypes is the set of recognized node types.
var ValidNodeTypes = map[NodeType]bool{
	NodeGeneric:   true,
	NodeNote:      true,
	NodeChecklist: true,
	NodeKanban:    true,
	NodeTimeline:  true,
	NodeMatrix:    true,
}

// =============================================================================
// Position
// =============================================================================

// Position is a node's placement on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// =============================================================================
// Node - Unified Node Type
// =============================================================================

// Node is a single mind-map element. ID is unique and immutable once
// created; Position is rewritten by layout, dragging, or templates; Data
// carries the type-specific payload.
//
// Selection state deliberately does not live on the node - see [Selection].
type Node struct {
	ID       string
	Position Position
	Type     NodeType
	Data     Payload
}

// Label returns the node's display label.
func (n Node) Label() string {
	if n.Data == nil {
		return ""
	}
	return n.Data.Meta().Label
}

// Collapsed reports whether the node's descendant subtree is hidden.
func (n Node) Collapsed() bool {
	if n.Data == nil {
		return false
	}
	return n.Data.Meta().Collapsed
}

// Clone returns a deep copy of the node, including its payload.
func (n Node) Clone() Node {
	out := n
	if n.Data != nil {
		out.Data = n.Data.Clone()
	}
	return out
}

// nodeJSON is the wire envelope for Node. The payload is decoded in a
// second pass once the type discriminator is known.
type nodeJSON struct {
	ID       string          `json:"id"`
	Position Position        `json:"position"`
	Type     NodeType        `json:"type"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	env := nodeJSON{
		ID:       n.ID,
		Position: n.Position,
		Type:     n.Type,
	}
	if env.Type == "" {
		env.Type = NodeGeneric
	}
	if n.Data != nil {
		data, err := json.Marshal(n.Data)
		if err != nil {
			return nil, fmt.Errorf("marshal node %s data: %w", n.ID, err)
		}
		env.Data = data
	}
	return json.Marshal(env)
}

// UnmarshalJSON implements json.Unmarshaler. Unknown node types decode
// into a generic payload so a document written by a newer version still
// loads instead of failing wholesale.
func (n *Node) UnmarshalJSON(data []byte) error {
	var env nodeJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	n.ID = env.ID
	n.Position = env.Position
	n.Type = env.Type
	if n.Type == "" || !ValidNodeTypes[n.Type] {
		n.Type = NodeGeneric
	}

	payload := NewPayload(n.Type)
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, payload); err != nil {
			return fmt.Errorf("decode node %s data: %w", env.ID, err)
		}
	}
	n.Data = payload
	return nil
}

// =============================================================================
// Edge - Directed Connection
// =============================================================================

// Edge is a directed connection between two nodes. Source and Target are
// node ids; they are not validated on creation, and traversal code must
// skip edges whose endpoints are missing.
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type,omitempty"`
	Label  string   `json:"label,omitempty"`
}

// =============================================================================
// Copy Helpers
// =============================================================================

// CloneNodes returns a deep copy of a node slice.
func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// CloneEdges returns a copy of an edge slice. Edges are plain values, so
// a slice clone is a deep copy.
func CloneEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// NodeIDs extracts the id from each node in a slice, preserving order.
func NodeIDs(nodes []Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// IndexNodes builds an id -> index lookup for a node slice.
func IndexNodes(nodes []Node) map[string]int {
	m := make(map[string]int, len(nodes))
	for i, n := range nodes {
		m[n.ID] = i
	}
	return m
}
