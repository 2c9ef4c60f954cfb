package layout

import "github.com/mindloom/mindloom/pkg/mindmap"

// =============================================================================
// Options
// =============================================================================

// Default spacing constants, matching the canvas defaults of the app.
const (
	DefaultRadius        = 200.0
	DefaultGrowth        = 1.2
	DefaultColumnSpacing = 280.0
	DefaultRowSpacing    = 140.0
)

// Options holds the geometric constants for both layout algorithms.
// The zero value is not usable - use DefaultOptions and override fields.
type Options struct {
	// Radius is the distance from a parent to its first ring of children
	// in the radial layout.
	Radius float64
	// Growth multiplies the radius at each depth level so deeper rings
	// clear shallower ones.
	Growth float64
	// ColumnSpacing is the horizontal distance between layers in the
	// tree layout.
	ColumnSpacing float64
	// RowSpacing is the vertical distance between rows within a layer.
	RowSpacing float64
}

// DefaultOptions returns the standard spacing constants.
func DefaultOptions() Options {
	return Options{
		Radius:        DefaultRadius,
		Growth:        DefaultGrowth,
		ColumnSpacing: DefaultColumnSpacing,
		RowSpacing:    DefaultRowSpacing,
	}
}

// normalize fills zero fields with defaults so partially-populated
// options from config files behave sensibly.
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.Radius <= 0 {
		o.Radius = d.Radius
	}
	if o.Growth <= 0 {
		o.Growth = d.Growth
	}
	if o.ColumnSpacing <= 0 {
		o.ColumnSpacing = d.ColumnSpacing
	}
	if o.RowSpacing <= 0 {
		o.RowSpacing = d.RowSpacing
	}
	return o
}

// =============================================================================
// Root Selection
// =============================================================================

// PickRoot chooses a layout root when the caller has no explicit one: the
// first node in sequence order with no incoming edge. If every node has
// an incoming edge (the graph is fully cyclic), it falls back to the
// first node in the sequence. This fallback is arbitrary for cyclic
// graphs but deterministic, which is what the layout contract requires.
// Returns false only for an empty graph.
func PickRoot(nodes []mindmap.Node, edges []mindmap.Edge) (string, bool) {
	if len(nodes) == 0 {
		return "", false
	}
	hasIncoming := make(map[string]bool, len(edges))
	for _, e := range edges {
		hasIncoming[e.Target] = true
	}
	for _, n := range nodes {
		if !hasIncoming[n.ID] {
			return n.ID, true
		}
	}
	return nodes[0].ID, true
}

// hasNode reports whether id names a node in the sequence.
func hasNode(id string, nodes []mindmap.Node) bool {
	for _, n := range nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
