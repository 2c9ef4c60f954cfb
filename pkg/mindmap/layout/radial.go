package layout

import (
	"math"

	"github.com/mindloom/mindloom/pkg/mindmap"
)

// Radial lays out the subtree under rootID with angular placement: the
// root sits at the origin and each node's children are distributed evenly
// around a circle centered on the node's own position. The circle radius
// grows by opts.Growth at every depth so deeper rings do not overlap
// shallower ones.
//
// Radial returns a deep copy of nodes with updated positions. Nodes
// unreachable from the root keep their existing positions, and an
// unknown rootID returns the input unchanged (copied). Children are
// placed in edge-sequence order; cycles terminate via a visited set.
func Radial(rootID string, nodes []mindmap.Node, edges []mindmap.Edge, opts Options) []mindmap.Node {
	out := mindmap.CloneNodes(nodes)
	if !hasNode(rootID, nodes) {
		return out
	}
	opts = opts.normalize()

	idx := mindmap.IndexNodes(out)
	adj := mindmap.Adjacency(edges, mindmap.KnownIDs(nodes))

	out[idx[rootID]].Position = mindmap.Position{}
	visited := map[string]bool{rootID: true}
	placeRing(rootID, opts.Radius, opts.Growth, out, idx, adj, visited)
	return out
}

// placeRing positions the children of parentID on a circle of the given
// radius around the parent, then recurses with a grown radius.
func placeRing(parentID string, radius, growth float64, nodes []mindmap.Node, idx map[string]int, adj map[string][]string, visited map[string]bool) {
	children := adj[parentID]
	if len(children) == 0 {
		return
	}

	center := nodes[idx[parentID]].Position
	step := 2 * math.Pi / math.Max(float64(len(children)), 1)

	for i, child := range children {
		if visited[child] {
			continue
		}
		visited[child] = true

		angle := float64(i) * step
		nodes[idx[child]].Position = mindmap.Position{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		placeRing(child, radius*growth, growth, nodes, idx, adj, visited)
	}
}
