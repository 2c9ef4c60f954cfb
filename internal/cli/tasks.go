package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindloom/mindloom/pkg/graphdoc"
	"github.com/mindloom/mindloom/pkg/mindmap"
	"github.com/mindloom/mindloom/pkg/mindmap/layout"
)

// tasksCommand creates the tasks command for listing subtree titles.
func (c *CLI) tasksCommand() *cobra.Command {
	var rootID string

	cmd := &cobra.Command{
		Use:   "tasks [map.json]",
		Short: "List the titles under a node as a flat task list",
		Long: `List the titles under a node as a flat task list.

Every descendant of the root is listed once, in breadth-first discovery
order, excluding the root itself. Collapse and focus state are ignored:
the list covers the full subtree regardless of what is currently
visible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTasks(args[0], rootID)
		},
	}

	cmd.Flags().StringVar(&rootID, "root", "", "subtree root node id (default: auto-pick)")

	return cmd
}

func (c *CLI) runTasks(input, rootID string) error {
	doc, err := graphdoc.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	if rootID == "" {
		picked, ok := layout.PickRoot(doc.Nodes, doc.Edges)
		if !ok {
			printInfo("empty document, no tasks")
			return nil
		}
		rootID = picked
	}

	titles := mindmap.SubtreeTitles(rootID, doc.Nodes, doc.Edges)
	if len(titles) == 0 {
		printInfo("no tasks under %s", StyleHighlight.Render(rootID))
		return nil
	}

	for _, t := range titles {
		fmt.Println("  " + StyleDim.Render("•") + " " + StyleValue.Render(t))
	}
	printInfo("%d tasks under %s", len(titles), StyleHighlight.Render(rootID))
	return nil
}
