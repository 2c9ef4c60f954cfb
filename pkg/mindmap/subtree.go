package mindmap

// Adjacency builds a source -> targets map from the edge sequence,
// preserving edge order within each source. Edges referencing ids absent
// from known are skipped; pass nil to skip endpoint filtering.
func Adjacency(edges []Edge, known map[string]bool) map[string][]string {
	adj := make(map[string][]string)
	for _, e := range edges {
		if known != nil && (!known[e.Source] || !known[e.Target]) {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

// KnownIDs builds the membership set of node ids.
func KnownIDs(nodes []Node) map[string]bool {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	return known
}

// Subtree returns the set of ids reachable from root by following
// outgoing edges, including root itself. Traversal is breadth-first with
// a visited set, so cyclic graphs terminate and each node appears once.
func Subtree(rootID string, edges []Edge) map[string]bool {
	adj := Adjacency(edges, nil)
	seen := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range adj[curr] {
			if !seen[child] {
				seen[child] = true
				queue = append(queue, child)
			}
		}
	}
	return seen
}

// SubtreeTitles walks the subtree under rootID in breadth-first order and
// returns one label per descendant (the root itself is excluded). This is
// the outbound shape task-list collaborators consume. Edges to missing
// nodes are skipped; nodes with an empty label fall back to their id.
func SubtreeTitles(rootID string, nodes []Node, edges []Edge) []string {
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	if _, ok := byID[rootID]; !ok {
		return nil
	}

	adj := Adjacency(edges, nil)
	var titles []string
	seen := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range adj[curr] {
			if seen[child] {
				continue
			}
			seen[child] = true
			n, ok := byID[child]
			if !ok {
				continue
			}
			title := n.Label()
			if title == "" {
				title = n.ID
			}
			titles = append(titles, title)
			queue = append(queue, child)
		}
	}
	return titles
}
