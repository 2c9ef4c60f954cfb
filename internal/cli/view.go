package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindloom/mindloom/pkg/graphdoc"
	"github.com/mindloom/mindloom/pkg/mindmap/view"
)

// viewCommand creates the view command for resolving visibility.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		focusID string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "view [map.json]",
		Short: "Show the visible subset of a map as an outline",
		Long: `Show the visible subset of a map as an outline.

Collapsed nodes keep their place in the outline but their descendants
are hidden. With --focus, only the subtree under the given node is
shown. The same resolution drives the canvas renderer, so this is an
exact preview of what would be drawn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(args[0], focusID, asJSON)
		},
	}

	cmd.Flags().StringVar(&focusID, "focus", "", "restrict the view to this node's subtree")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the visible subset as JSON")

	return cmd
}

func (c *CLI) runView(input, focusID string, asJSON bool) error {
	doc, err := graphdoc.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	v := view.Resolve(doc.Nodes, doc.Edges, focusID)

	if asJSON {
		out := graphdoc.Document{Nodes: v.Nodes, Edges: v.Edges}
		return graphdoc.Write(out, os.Stdout)
	}

	fmt.Print(renderOutline(v))
	printStats(len(v.Nodes), len(v.Edges))
	return nil
}

// renderOutline prints visible nodes as an indented tree, reusing the
// editor's outline flattening.
func renderOutline(v view.View) string {
	var b strings.Builder
	for _, row := range outlineFrom(v) {
		line := strings.Repeat("  ", row.depth) + "• " + row.label
		if row.collapsed {
			line += " " + StyleDim.Render("[+]")
		}
		if row.depth == 0 {
			line = StyleTitle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
