package view

import "github.com/mindloom/mindloom/pkg/mindmap"

// View is the renderable subset of a graph. Node and edge order matches
// the input sequences.
type View struct {
	Nodes []mindmap.Node
	Edges []mindmap.Edge
}

// NodeIDSet returns the membership set of visible node ids.
func (v View) NodeIDSet() map[string]bool {
	return mindmap.KnownIDs(v.Nodes)
}

// Resolve computes which nodes and edges should be rendered.
//
// Three rules, applied in order:
//
//  1. For every node flagged collapsed, its entire descendant subtree is
//     hidden - the collapsed node itself stays visible.
//  2. If focusRootID names an existing node, visibility is intersected
//     with that node's subtree (the focus root included). A node hidden
//     by rule 1 stays hidden even inside the focus subtree. A focus id
//     absent from the graph is ignored.
//  3. An edge is rendered exactly when both endpoints are visible.
//
// All traversals are cycle-safe, and the returned slices are deep copies
// of the input nodes, so the caller can hand them to a renderer freely.
func Resolve(nodes []mindmap.Node, edges []mindmap.Edge, focusRootID string) View {
	known := mindmap.KnownIDs(nodes)

	hidden := make(map[string]bool)
	for _, n := range nodes {
		if !n.Collapsed() {
			continue
		}
		for id := range mindmap.Subtree(n.ID, edges) {
			if id != n.ID {
				hidden[id] = true
			}
		}
	}

	var focus map[string]bool
	if focusRootID != "" && known[focusRootID] {
		focus = mindmap.Subtree(focusRootID, edges)
	}

	var out View
	visible := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if hidden[n.ID] {
			continue
		}
		if focus != nil && !focus[n.ID] {
			continue
		}
		visible[n.ID] = true
		out.Nodes = append(out.Nodes, n.Clone())
	}

	for _, e := range edges {
		if visible[e.Source] && visible[e.Target] {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}
