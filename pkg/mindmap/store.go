package mindmap

import "slices"

// =============================================================================
// Selection - Explicit UI Selection State
// =============================================================================

// Selection tracks which nodes and edges are currently selected. It lives
// beside the graph rather than as flags on the records themselves, so
// snapshots and serialization never carry transient UI state.
type Selection struct {
	nodes map[string]struct{}
	edges map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{
		nodes: make(map[string]struct{}),
		edges: make(map[string]struct{}),
	}
}

// SelectNode adds a node id to the selection.
func (s *Selection) SelectNode(id string) { s.nodes[id] = struct{}{} }

// SelectEdge adds an edge id to the selection.
func (s *Selection) SelectEdge(id string) { s.edges[id] = struct{}{} }

// NodeSelected reports whether the node id is selected.
func (s *Selection) NodeSelected(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// EdgeSelected reports whether the edge id is selected.
func (s *Selection) EdgeSelected(id string) bool {
	_, ok := s.edges[id]
	return ok
}

// Clear empties the selection.
func (s *Selection) Clear() {
	clear(s.nodes)
	clear(s.edges)
}

// Only resets the selection to exactly one node.
func (s *Selection) Only(nodeID string) {
	s.Clear()
	s.nodes[nodeID] = struct{}{}
}

// NodeIDs returns the selected node ids. Order is not guaranteed.
func (s *Selection) NodeIDs() []string {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	return ids
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool { return len(s.nodes) == 0 && len(s.edges) == 0 }

// =============================================================================
// Store - Canonical Graph Owner
// =============================================================================

// Store owns the canonical node and edge sequences and the selection
// state, and exposes the mutation primitives the engine dispatches to.
// Node and edge order is insertion order and is preserved by every
// operation; layout tie-breaking depends on it.
//
// Store is not safe for concurrent use without external synchronization.
type Store struct {
	nodes []Node
	edges []Edge
	sel   *Selection
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sel: NewSelection()}
}

// Nodes returns a deep copy of the node sequence in insertion order.
func (s *Store) Nodes() []Node { return CloneNodes(s.nodes) }

// Edges returns a copy of the edge sequence in insertion order.
func (s *Store) Edges() []Edge { return CloneEdges(s.edges) }

// Selection returns the live selection state.
func (s *Store) Selection() *Selection { return s.sel }

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// Node returns a copy of the node with the given id.
func (s *Store) Node(id string) (Node, bool) {
	for _, n := range s.nodes {
		if n.ID == id {
			return n.Clone(), true
		}
	}
	return Node{}, false
}

// AddNode creates a node with a fresh unique id and appends it. The zero
// NodeType defaults to generic, and a matching zero payload is attached
// when data is nil. The new node becomes the sole selection.
func (s *Store) AddNode(t NodeType, pos Position, data Payload) Node {
	if t == "" {
		t = NodeGeneric
	}
	if data == nil {
		data = NewPayload(t)
	}
	n := Node{
		ID:       newID("node"),
		Position: pos,
		Type:     t,
		Data:     data,
	}
	s.nodes = append(s.nodes, n)
	s.sel.Only(n.ID)
	return n.Clone()
}

// AddEdge appends a directed edge with a fresh unique id. Endpoints are
// not validated; traversals tolerate dangling references.
func (s *Store) AddEdge(source, target string, t EdgeType) Edge {
	if t == "" {
		t = EdgePlain
	}
	e := Edge{
		ID:     newID("edge"),
		Source: source,
		Target: target,
		Type:   t,
	}
	s.edges = append(s.edges, e)
	return e
}

// UpdateNode applies fn to the node with the given id and reports whether
// the node was found. The node id itself must not be changed by fn.
func (s *Store) UpdateNode(id string, fn func(*Node)) bool {
	for i := range s.nodes {
		if s.nodes[i].ID == id {
			fn(&s.nodes[i])
			return true
		}
	}
	return false
}

// SetPositions overwrites positions from laid-out node copies, matching
// by id. Nodes absent from the input keep their positions.
func (s *Store) SetPositions(laidOut []Node) {
	pos := make(map[string]Position, len(laidOut))
	for _, n := range laidOut {
		pos[n.ID] = n.Position
	}
	for i := range s.nodes {
		if p, ok := pos[s.nodes[i].ID]; ok {
			s.nodes[i].Position = p
		}
	}
}

// ToggleCollapsed flips the collapsed flag on the node and reports
// whether the node was found.
func (s *Store) ToggleCollapsed(id string) bool {
	return s.UpdateNode(id, func(n *Node) {
		if n.Data == nil {
			n.Data = NewPayload(n.Type)
		}
		core := n.Data.Meta()
		core.Collapsed = !core.Collapsed
	})
}

// RemoveNode deletes the node and every edge touching it. Returns false
// if the node does not exist; the edge set is untouched in that case.
func (s *Store) RemoveNode(id string) bool {
	before := len(s.nodes)
	s.nodes = slices.DeleteFunc(s.nodes, func(n Node) bool { return n.ID == id })
	if len(s.nodes) == before {
		return false
	}
	s.edges = slices.DeleteFunc(s.edges, func(e Edge) bool {
		return e.Source == id || e.Target == id
	})
	delete(s.sel.nodes, id)
	return true
}

// RemoveEdge deletes the edge with the given id and reports whether it
// existed. Nodes are untouched.
func (s *Store) RemoveEdge(id string) bool {
	before := len(s.edges)
	s.edges = slices.DeleteFunc(s.edges, func(e Edge) bool { return e.ID == id })
	if len(s.edges) == before {
		return false
	}
	delete(s.sel.edges, id)
	return true
}

// DeleteSelected removes every selected node, every selected edge, and
// every edge touching a removed node, as one atomic operation. The
// resulting graph never contains an edge whose endpoint was removed.
func (s *Store) DeleteSelected() {
	if s.sel.Empty() {
		return
	}

	removed := make(map[string]struct{}, len(s.sel.nodes))
	for id := range s.sel.nodes {
		removed[id] = struct{}{}
	}

	s.nodes = slices.DeleteFunc(s.nodes, func(n Node) bool {
		_, gone := removed[n.ID]
		return gone
	})
	s.edges = slices.DeleteFunc(s.edges, func(e Edge) bool {
		if s.sel.EdgeSelected(e.ID) {
			return true
		}
		_, srcGone := removed[e.Source]
		_, dstGone := removed[e.Target]
		return srcGone || dstGone
	})

	s.sel.Clear()
}

// ReplaceAll swaps in an entirely new graph, deep-copying the input so
// the caller's slices never alias store state. Used by import, template
// instantiation, and history replay. The selection is cleared.
func (s *Store) ReplaceAll(nodes []Node, edges []Edge) {
	s.nodes = CloneNodes(nodes)
	s.edges = CloneEdges(edges)
	s.sel.Clear()
}
