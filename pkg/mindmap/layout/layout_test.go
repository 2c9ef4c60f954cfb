package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/mindloom/mindloom/pkg/mindmap"
)

func node(id string, x, y float64) mindmap.Node {
	return mindmap.Node{
		ID:       id,
		Position: mindmap.Position{X: x, Y: y},
		Type:     mindmap.NodeGeneric,
		Data:     &mindmap.GenericData{},
	}
}

func edge(source, target string) mindmap.Edge {
	return mindmap.Edge{ID: "e-" + source + "-" + target, Source: source, Target: target}
}

func positionOf(t *testing.T, nodes []mindmap.Node, id string) mindmap.Position {
	t.Helper()
	for _, n := range nodes {
		if n.ID == id {
			return n.Position
		}
	}
	t.Fatalf("node %q not in result", id)
	return mindmap.Position{}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTreeTwoChildren(t *testing.T) {
	nodes := []mindmap.Node{node("R", 99, 99), node("A", 0, 0), node("B", 0, 0)}
	edges := []mindmap.Edge{edge("R", "A"), edge("R", "B")}

	out := Tree("R", nodes, edges, DefaultOptions())

	tests := []struct {
		id   string
		want mindmap.Position
	}{
		{"R", mindmap.Position{X: 0, Y: 0}},
		{"A", mindmap.Position{X: 280, Y: -70}},
		{"B", mindmap.Position{X: 280, Y: 70}},
	}
	for _, tt := range tests {
		got := positionOf(t, out, tt.id)
		if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
			t.Errorf("%s = (%v, %v), want (%v, %v)", tt.id, got.X, got.Y, tt.want.X, tt.want.Y)
		}
	}
}

func TestTreeRowCentering(t *testing.T) {
	// Three nodes in one layer center around y=0: -140, 0, 140.
	nodes := []mindmap.Node{node("R", 0, 0), node("A", 0, 0), node("B", 0, 0), node("C", 0, 0)}
	edges := []mindmap.Edge{edge("R", "A"), edge("R", "B"), edge("R", "C")}

	out := Tree("R", nodes, edges, DefaultOptions())

	wantY := []float64{-140, 0, 140}
	for i, id := range []string{"A", "B", "C"} {
		got := positionOf(t, out, id)
		if !approx(got.Y, wantY[i]) {
			t.Errorf("%s.Y = %v, want %v", id, got.Y, wantY[i])
		}
		if !approx(got.X, 280) {
			t.Errorf("%s.X = %v, want 280", id, got.X)
		}
	}
}

func TestTreeLayerOrderFollowsEdgeOrder(t *testing.T) {
	nodes := []mindmap.Node{node("R", 0, 0), node("A", 0, 0), node("B", 0, 0)}

	forward := Tree("R", nodes, []mindmap.Edge{edge("R", "A"), edge("R", "B")}, DefaultOptions())
	reversed := Tree("R", nodes, []mindmap.Edge{edge("R", "B"), edge("R", "A")}, DefaultOptions())

	if y := positionOf(t, forward, "A").Y; !approx(y, -70) {
		t.Errorf("forward A.Y = %v, want -70", y)
	}
	if y := positionOf(t, reversed, "B").Y; !approx(y, -70) {
		t.Errorf("reversed B.Y = %v, want -70 (first edge wins the first slot)", y)
	}
}

func TestRadialSingleChild(t *testing.T) {
	nodes := []mindmap.Node{node("R", 50, 50), node("A", 0, 0)}
	edges := []mindmap.Edge{edge("R", "A")}

	out := Radial("R", nodes, edges, DefaultOptions())

	if got := positionOf(t, out, "R"); !approx(got.X, 0) || !approx(got.Y, 0) {
		t.Errorf("root = (%v, %v), want origin", got.X, got.Y)
	}
	// One child: step = 2π, angle 0 puts it at (radius, 0).
	if got := positionOf(t, out, "A"); !approx(got.X, 200) || !approx(got.Y, 0) {
		t.Errorf("A = (%v, %v), want (200, 0)", got.X, got.Y)
	}
}

func TestRadialFourChildrenQuarterTurns(t *testing.T) {
	nodes := []mindmap.Node{
		node("R", 0, 0), node("A", 0, 0), node("B", 0, 0), node("C", 0, 0), node("D", 0, 0),
	}
	edges := []mindmap.Edge{edge("R", "A"), edge("R", "B"), edge("R", "C"), edge("R", "D")}

	out := Radial("R", nodes, edges, DefaultOptions())

	want := []mindmap.Position{
		{X: 200, Y: 0},
		{X: 0, Y: 200},
		{X: -200, Y: 0},
		{X: 0, Y: -200},
	}
	for i, id := range []string{"A", "B", "C", "D"} {
		got := positionOf(t, out, id)
		if !approx(got.X, want[i].X) || !approx(got.Y, want[i].Y) {
			t.Errorf("%s = (%v, %v), want (%v, %v)", id, got.X, got.Y, want[i].X, want[i].Y)
		}
	}
}

func TestRadialRadiusGrowsWithDepth(t *testing.T) {
	nodes := []mindmap.Node{node("R", 0, 0), node("A", 0, 0), node("A1", 0, 0)}
	edges := []mindmap.Edge{edge("R", "A"), edge("A", "A1")}

	out := Radial("R", nodes, edges, DefaultOptions())

	a := positionOf(t, out, "A")
	a1 := positionOf(t, out, "A1")
	// Grandchild ring is centered on A with radius 200*1.2 = 240.
	dist := math.Hypot(a1.X-a.X, a1.Y-a.Y)
	if !approx(dist, 240) {
		t.Errorf("grandchild distance from parent = %v, want 240", dist)
	}
}

func TestLayoutsAreDeterministic(t *testing.T) {
	nodes := []mindmap.Node{node("R", 0, 0), node("A", 1, 1), node("B", 2, 2), node("C", 3, 3)}
	edges := []mindmap.Edge{edge("R", "A"), edge("R", "B"), edge("A", "C")}

	for name, fn := range map[string]func() []mindmap.Node{
		"radial": func() []mindmap.Node { return Radial("R", nodes, edges, DefaultOptions()) },
		"tree":   func() []mindmap.Node { return Tree("R", nodes, edges, DefaultOptions()) },
	} {
		t.Run(name, func(t *testing.T) {
			first := fn()
			second := fn()
			if !reflect.DeepEqual(first, second) {
				t.Error("two runs over identical input differ")
			}
		})
	}
}

func TestLayoutsLeaveUnreachableNodesAlone(t *testing.T) {
	nodes := []mindmap.Node{node("R", 0, 0), node("A", 0, 0), node("island", 500, 600)}
	edges := []mindmap.Edge{edge("R", "A")}

	for name, out := range map[string][]mindmap.Node{
		"radial": Radial("R", nodes, edges, DefaultOptions()),
		"tree":   Tree("R", nodes, edges, DefaultOptions()),
	} {
		t.Run(name, func(t *testing.T) {
			got := positionOf(t, out, "island")
			if got != (mindmap.Position{X: 500, Y: 600}) {
				t.Errorf("island moved to (%v, %v)", got.X, got.Y)
			}
		})
	}
}

func TestLayoutsUnknownRootUnchanged(t *testing.T) {
	nodes := []mindmap.Node{node("A", 7, 8)}

	for name, out := range map[string][]mindmap.Node{
		"radial": Radial("missing", nodes, nil, DefaultOptions()),
		"tree":   Tree("missing", nodes, nil, DefaultOptions()),
	} {
		t.Run(name, func(t *testing.T) {
			if got := positionOf(t, out, "A"); got != (mindmap.Position{X: 7, Y: 8}) {
				t.Errorf("position changed to (%v, %v)", got.X, got.Y)
			}
		})
	}
}

func TestLayoutsDoNotMutateInput(t *testing.T) {
	nodes := []mindmap.Node{node("R", 9, 9), node("A", 8, 8)}
	edges := []mindmap.Edge{edge("R", "A")}

	Radial("R", nodes, edges, DefaultOptions())
	Tree("R", nodes, edges, DefaultOptions())

	if nodes[0].Position != (mindmap.Position{X: 9, Y: 9}) || nodes[1].Position != (mindmap.Position{X: 8, Y: 8}) {
		t.Error("input slice was mutated")
	}
}

func TestLayoutsTerminateOnCycles(t *testing.T) {
	nodes := []mindmap.Node{node("A", 0, 0), node("B", 0, 0), node("C", 0, 0)}
	edges := []mindmap.Edge{edge("A", "B"), edge("B", "C"), edge("C", "A")}

	// Completion is the assertion: a missing visited set would recurse forever.
	Radial("A", nodes, edges, DefaultOptions())
	Tree("A", nodes, edges, DefaultOptions())
}

func TestPickRoot(t *testing.T) {
	tests := []struct {
		name   string
		nodes  []mindmap.Node
		edges  []mindmap.Edge
		want   string
		wantOK bool
	}{
		{
			name:   "first indegree zero",
			nodes:  []mindmap.Node{node("A", 0, 0), node("B", 0, 0)},
			edges:  []mindmap.Edge{edge("A", "B")},
			want:   "A",
			wantOK: true,
		},
		{
			name:   "skips nodes with incoming",
			nodes:  []mindmap.Node{node("B", 0, 0), node("A", 0, 0)},
			edges:  []mindmap.Edge{edge("A", "B")},
			want:   "A",
			wantOK: true,
		},
		{
			name:   "fully cyclic falls back to first",
			nodes:  []mindmap.Node{node("A", 0, 0), node("B", 0, 0)},
			edges:  []mindmap.Edge{edge("A", "B"), edge("B", "A")},
			want:   "A",
			wantOK: true,
		},
		{
			name:   "empty graph",
			nodes:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PickRoot(tt.nodes, tt.edges)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("root = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptionsNormalize(t *testing.T) {
	o := Options{Radius: 100}.normalize()

	if o.Radius != 100 {
		t.Errorf("Radius = %v, want 100 (explicit value kept)", o.Radius)
	}
	if o.Growth != DefaultGrowth || o.ColumnSpacing != DefaultColumnSpacing || o.RowSpacing != DefaultRowSpacing {
		t.Errorf("zero fields not defaulted: %+v", o)
	}
}
