package layout

import "github.com/mindloom/mindloom/pkg/mindmap"

// Tree lays out the subtree under rootID in layers: a breadth-first
// traversal assigns each reachable node an integer depth, x is
// depth*ColumnSpacing, and within a layer nodes are spread vertically in
// RowSpacing steps centered around y=0. The root lands at the origin; a
// layer of two nodes with the default spacing sits at y=-70 and y=70.
//
// Tree returns a deep copy of nodes with updated positions. Nodes
// unreachable from the root keep their existing positions, and an
// unknown rootID returns the input unchanged (copied). Layer membership
// follows BFS discovery order, which follows edge-sequence order.
func Tree(rootID string, nodes []mindmap.Node, edges []mindmap.Edge, opts Options) []mindmap.Node {
	out := mindmap.CloneNodes(nodes)
	if !hasNode(rootID, nodes) {
		return out
	}
	opts = opts.normalize()

	idx := mindmap.IndexNodes(out)
	adj := mindmap.Adjacency(edges, mindmap.KnownIDs(nodes))

	// BFS depth assignment; layers collect ids in discovery order.
	depth := map[string]int{rootID: 0}
	var layers [][]string
	queue := []string{rootID}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		d := depth[curr]
		for len(layers) <= d {
			layers = append(layers, nil)
		}
		layers[d] = append(layers[d], curr)

		for _, child := range adj[curr] {
			if _, seen := depth[child]; seen {
				continue
			}
			depth[child] = d + 1
			queue = append(queue, child)
		}
	}

	for d, layer := range layers {
		x := float64(d) * opts.ColumnSpacing
		offset := float64(len(layer)-1) / 2
		for i, id := range layer {
			out[idx[id]].Position = mindmap.Position{
				X: x,
				Y: (float64(i) - offset) * opts.RowSpacing,
			}
		}
	}
	return out
}
