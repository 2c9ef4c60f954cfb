package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindloom/mindloom/pkg/cache"
	"github.com/mindloom/mindloom/pkg/graphdoc"
	"github.com/mindloom/mindloom/pkg/mindmap/view"
	"github.com/mindloom/mindloom/pkg/observability"
	"github.com/mindloom/mindloom/pkg/render/dot"
)

// exportCacheTTL bounds how long rendered artifacts are kept around.
const exportCacheTTL = 7 * 24 * time.Hour

// exportCommand creates the export command for rendering diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format   string
		output   string
		focusID  string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "export [map.json]",
		Short: "Export a map as a DOT or SVG diagram",
		Long: `Export a map as a DOT or SVG diagram.

The exported graph is the visible subset: collapsed subtrees are
elided (the collapsed node itself is drawn dashed) and --focus
restricts the diagram to one subtree, exactly as in the editor.

DOT output writes the Graphviz source; SVG renders it through the
embedded Graphviz engine. SVG artifacts are cached by a hash of the
document and the render options, so re-exporting an unchanged map is
instant. Use --no-cache to force a fresh render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], format, output, focusID, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with new extension)")
	cmd.Flags().StringVar(&focusID, "focus", "", "restrict the diagram to this node's subtree")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include node type and id in labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, input, format, output, focusID string, detailed, noCache bool) error {
	switch format {
	case "svg", "dot":
	default:
		return fmt.Errorf("invalid format: %q (must be one of: svg, dot)", format)
	}

	full, err := graphdoc.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	v := view.Resolve(full.Nodes, full.Edges, focusID)
	doc := graphdoc.Document{Nodes: v.Nodes, Edges: v.Edges}

	if output == "" {
		output = strings.TrimSuffix(input, ".json") + "." + format
	}

	opts := dot.Options{Detailed: detailed}
	source := dot.ToDOT(doc.Nodes, doc.Edges, opts)

	var data []byte
	switch format {
	case "dot":
		data = []byte(source)
	case "svg":
		data, err = c.renderSVG(cmd, doc, source, opts, noCache)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("exported %s", StyleHighlight.Render(format))
	printFile(output)
	printStats(len(doc.Nodes), len(doc.Edges))
	return nil
}

// renderSVG renders through the artifact cache keyed on the document
// content and the render options.
func (c *CLI) renderSVG(cmd *cobra.Command, doc graphdoc.Document, source string, opts dot.Options, noCache bool) ([]byte, error) {
	ctx := cmd.Context()
	ca := newCache(noCache)
	defer ca.Close()

	docJSON, err := graphdoc.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	key := cache.ArtifactKey(docJSON, "svg", opts)

	if data, ok, err := ca.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "artifact")
		c.Logger.Debug("artifact cache hit", "key", key)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	data, err := dot.RenderSVG(source)
	if err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}

	if err := ca.Set(ctx, key, data, exportCacheTTL); err != nil {
		c.Logger.Debug("artifact cache store failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, nil
}
