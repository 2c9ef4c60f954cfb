package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mindloom/mindloom/pkg/mindmap"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes the node type and id in labels.
	// When false, only the display label is shown.
	Detailed bool
}

// shapeFor maps node types to Graphviz shapes.
func shapeFor(t mindmap.NodeType) string {
	switch t {
	case mindmap.NodeNote:
		return "note"
	case mindmap.NodeChecklist:
		return "rectangle"
	case mindmap.NodeKanban:
		return "tab"
	case mindmap.NodeTimeline:
		return "cds"
	case mindmap.NodeMatrix:
		return "component"
	default:
		return "box"
	}
}

// ToDOT converts nodes and edges to Graphviz DOT format. The resulting
// DOT string can be rendered with [RenderSVG].
//
// Collapsed nodes are rendered with dashed outlines so a reader can see
// where hidden subtrees hang off the visible graph.
func ToDOT(nodes []mindmap.Node, edges []mindmap.Edge, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Source, e.Target, e.Label)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n mindmap.Node, detailed bool) string {
	label := n.Label()
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\n%s · %s", label, n.Type, n.ID)
}

func fmtAttrs(n mindmap.Node, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("shape=%s", shapeFor(n.Type)),
	}
	if color := colorOf(n); color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", color))
	}
	if n.Collapsed() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

func colorOf(n mindmap.Node) string {
	if n.Data == nil {
		return ""
	}
	return n.Data.Meta().Color
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
