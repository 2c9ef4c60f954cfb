package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindloom/mindloom/pkg/graphdoc"
	"github.com/mindloom/mindloom/pkg/mindmap/layout"
)

// layoutCommand creates the layout command for recomputing positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		algorithm string
		rootID    string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "layout [map.json]",
		Short: "Recompute node positions with a layout algorithm",
		Long: `Recompute node positions with a layout algorithm.

Two algorithms are available:
  radial  children spread on circles around their parent, radius
          growing with depth
  tree    breadth-first layers, one column per depth

Without --root, the first node with no incoming edge is used; if every
node has an incoming edge, the first node in the document. Nodes not
reachable from the root keep their positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(args[0], algorithm, rootID, output)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algo", "a", "tree", "layout algorithm: tree (default), radial")
	cmd.Flags().StringVar(&rootID, "root", "", "layout root node id (default: auto-pick)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: rewrite input)")

	return cmd
}

func (c *CLI) runLayout(input, algorithm, rootID, output string) error {
	doc, err := graphdoc.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	if rootID == "" {
		picked, ok := layout.PickRoot(doc.Nodes, doc.Edges)
		if !ok {
			printInfo("empty document, nothing to lay out")
			return nil
		}
		rootID = picked
	}

	opts := c.Config.LayoutOptions()
	switch algorithm {
	case "radial":
		doc.Nodes = layout.Radial(rootID, doc.Nodes, doc.Edges, opts)
	case "tree":
		doc.Nodes = layout.Tree(rootID, doc.Nodes, doc.Edges, opts)
	default:
		return fmt.Errorf("invalid algorithm: %q (must be one of: tree, radial)", algorithm)
	}

	if output == "" {
		output = input
	}
	if err := graphdoc.WriteFile(doc, output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("%s layout from root %s", algorithm, StyleHighlight.Render(rootID))
	printFile(output)
	return nil
}
