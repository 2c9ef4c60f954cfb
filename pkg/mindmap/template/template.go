package template

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mindloom/mindloom/pkg/mindmap"
	"github.com/mindloom/mindloom/pkg/mindmap/layout"
)

// =============================================================================
// Blueprint
// =============================================================================

// Section is one titled group of a blueprint with its leaf children.
type Section struct {
	Title    string   `json:"title" toml:"title"`
	Children []string `json:"children,omitempty" toml:"children"`
}

// Blueprint is a declarative description of a mind-map skeleton:
// root -> sections -> children.
type Blueprint struct {
	Root     string    `json:"root" toml:"root"`
	Sections []Section `json:"sections" toml:"sections"`
}

// Grid constants for the provisional placement before the tree layout
// runs. Sections are arranged in rows of sectionsPerRow; children hang
// off their section with a fixed offset.
const (
	sectionsPerRow = 3
	gridCellWidth  = 260.0
	gridCellHeight = 180.0
	childOffsetX   = 60.0
	childOffsetY   = 50.0
)

// Instantiate expands a blueprint into nodes and edges. Ids are derived
// from the blueprint structure (root, s0, s1, s0c0, ...) so repeated
// instantiation of the same blueprint is bit-identical. The returned
// graph carries provisional grid positions; run [layout.Tree] on the
// result (or use [InstantiateLaidOut]) for final placement.
func Instantiate(bp Blueprint) ([]mindmap.Node, []mindmap.Edge) {
	var nodes []mindmap.Node
	var edges []mindmap.Edge

	rootID := "root"
	nodes = append(nodes, mindmap.Node{
		ID:   rootID,
		Type: mindmap.NodeGeneric,
		Data: &mindmap.GenericData{Core: mindmap.Core{Label: bp.Root}},
	})

	for si, sec := range bp.Sections {
		sectionID := fmt.Sprintf("s%d", si)
		row := si / sectionsPerRow
		col := si % sectionsPerRow
		sectionPos := mindmap.Position{
			X: float64(col) * gridCellWidth,
			Y: float64(row+1) * gridCellHeight,
		}
		nodes = append(nodes, mindmap.Node{
			ID:       sectionID,
			Position: sectionPos,
			Type:     mindmap.NodeGeneric,
			Data:     &mindmap.GenericData{Core: mindmap.Core{Label: sec.Title}},
		})
		edges = append(edges, mindmap.Edge{
			ID:     fmt.Sprintf("e-root-%s", sectionID),
			Source: rootID,
			Target: sectionID,
			Type:   mindmap.EdgeSmoothstep,
		})

		for ci, child := range sec.Children {
			childID := fmt.Sprintf("%sc%d", sectionID, ci)
			nodes = append(nodes, mindmap.Node{
				ID: childID,
				Position: mindmap.Position{
					X: sectionPos.X + childOffsetX,
					Y: sectionPos.Y + float64(ci+1)*childOffsetY,
				},
				Type: mindmap.NodeGeneric,
				Data: &mindmap.GenericData{Core: mindmap.Core{Label: child}},
			})
			edges = append(edges, mindmap.Edge{
				ID:     fmt.Sprintf("e-%s-%s", sectionID, childID),
				Source: sectionID,
				Target: childID,
				Type:   mindmap.EdgeSmoothstep,
			})
		}
	}

	return nodes, edges
}

// InstantiateLaidOut expands a blueprint and applies the tree layout for
// final placement.
func InstantiateLaidOut(bp Blueprint, opts layout.Options) ([]mindmap.Node, []mindmap.Edge) {
	nodes, edges := Instantiate(bp)
	return layout.Tree("root", nodes, edges, opts), edges
}

// InstantiateNamed looks up a built-in blueprint by key and expands it
// with final layout. An unknown key is logged and reported via ok=false;
// callers treat instantiation as best-effort and keep their current
// graph.
func InstantiateNamed(key string, opts layout.Options, logger *log.Logger) (nodes []mindmap.Node, edges []mindmap.Edge, ok bool) {
	bp, found := Builtins()[key]
	if !found {
		if logger != nil {
			logger.Warn("unknown template key, skipping", "key", key)
		}
		return nil, nil, false
	}
	nodes, edges = InstantiateLaidOut(bp, opts)
	return nodes, edges, true
}
