package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindloom/mindloom/pkg/graphdoc"
	"github.com/mindloom/mindloom/pkg/mindmap/template"
)

// newCommand creates the new command for instantiating a template.
func (c *CLI) newCommand() *cobra.Command {
	var (
		templateKey string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a mind map from a built-in template",
		Long: fmt.Sprintf(`Create a mind map from a built-in template.

The template is expanded into a root node, one node per section, and one
node per child entry, then laid out with the tree layout.

Available templates: %s`, strings.Join(template.Keys(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := templateKey
			if key == "" {
				key = c.Config.Template
			}
			return c.runNew(key, output)
		},
	}

	cmd.Flags().StringVarP(&templateKey, "template", "t", "", "template key (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "map.json", "output file")

	return cmd
}

func (c *CLI) runNew(key, output string) error {
	nodes, edges, ok := template.InstantiateNamed(key, c.Config.LayoutOptions(), c.Logger)
	if !ok {
		printError("unknown template %q (available: %s)", key, strings.Join(template.Keys(), ", "))
		return nil // best-effort, matching the engine's template contract
	}

	doc := graphdoc.Document{Nodes: nodes, Edges: edges}
	if err := graphdoc.WriteFile(doc, output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("created %s from template %s", output, StyleHighlight.Render(key))
	printStats(len(nodes), len(edges))
	return nil
}
