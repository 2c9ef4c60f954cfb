package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mindloom/mindloom/pkg/engine"
	"github.com/mindloom/mindloom/pkg/mindmap"
	"github.com/mindloom/mindloom/pkg/mindmap/view"
)

// Outline styles
var (
	outlineSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	outlineNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	outlineDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// outlineRow is one line of the editor's outline: a visible node at its
// tree depth.
type outlineRow struct {
	id        string
	depth     int
	label     string
	collapsed bool
}

// outlineFrom flattens the visible view into rows. Roots are the visible
// nodes with no visible incoming edge; children follow their parent in
// edge order. A visited set keeps cyclic graphs from looping.
func outlineFrom(v view.View) []outlineRow {
	visible := v.NodeIDSet()
	adj := mindmap.Adjacency(v.Edges, visible)

	hasParent := make(map[string]bool)
	for _, e := range v.Edges {
		hasParent[e.Target] = true
	}

	byID := make(map[string]mindmap.Node, len(v.Nodes))
	for _, n := range v.Nodes {
		byID[n.ID] = n
	}

	var rows []outlineRow
	seen := make(map[string]bool)

	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		if seen[id] {
			return
		}
		seen[id] = true

		n := byID[id]
		label := n.Label()
		if label == "" {
			label = n.ID
		}
		rows = append(rows, outlineRow{
			id:        n.ID,
			depth:     depth,
			label:     label,
			collapsed: n.Collapsed(),
		})

		for _, child := range adj[id] {
			walk(child, depth+1)
		}
	}

	for _, n := range v.Nodes {
		if !hasParent[n.ID] {
			walk(n.ID, 0)
		}
	}
	for _, n := range v.Nodes {
		walk(n.ID, 0)
	}
	return rows
}

// =============================================================================
// EditorModel - Interactive Outline Editor
// =============================================================================

// EditorModel is the bubbletea model for the interactive editor. Every
// edit becomes an intent dispatched to the session; the model itself
// holds only the cursor, viewport, and a status line.
type EditorModel struct {
	Session *engine.Session

	rows   []outlineRow
	cursor int
	status string

	Height int
	Offset int
}

// NewEditorModel creates an editor model over a session.
func NewEditorModel(sess *engine.Session) EditorModel {
	m := EditorModel{
		Session: sess,
		Height:  20,
	}
	m.rows = outlineFrom(sess.View())
	return m
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.Offset {
				m.Offset = m.cursor
			}
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			if m.cursor >= m.Offset+m.Height {
				m.Offset = m.cursor - m.Height + 1
			}
		}

	case "a":
		if len(m.rows) == 0 {
			m = m.dispatch(engine.AddNode{Label: "Central idea"})
			break
		}
		m = m.dispatch(engine.AddChild{
			ParentID: m.rows[m.cursor].id,
			Label:    fmt.Sprintf("Idea %d", len(m.Session.Document().Nodes)+1),
		})

	case "s":
		if len(m.rows) == 0 {
			break
		}
		m = m.dispatch(engine.AddSibling{
			SiblingID: m.rows[m.cursor].id,
			Label:     fmt.Sprintf("Idea %d", len(m.Session.Document().Nodes)+1),
		})

	case "d":
		if len(m.rows) == 0 {
			break
		}
		m = m.dispatch(engine.SelectNode{NodeID: m.rows[m.cursor].id})
		m = m.dispatch(engine.DeleteSelection{})
		m.status = "deleted"

	case " ", "tab":
		if len(m.rows) == 0 {
			break
		}
		m = m.dispatch(engine.ToggleCollapse{NodeID: m.rows[m.cursor].id})

	case "f":
		if len(m.rows) == 0 {
			break
		}
		m = m.dispatch(engine.SetFocus{NodeID: m.rows[m.cursor].id})

	case "F":
		m = m.dispatch(engine.ClearFocus{})

	case "l":
		m = m.dispatch(engine.ApplyLayout{Algorithm: engine.AlgorithmTree})
		m.status = "tree layout"

	case "L":
		m = m.dispatch(engine.ApplyLayout{Algorithm: engine.AlgorithmRadial})
		m.status = "radial layout"

	case "u":
		m = m.dispatch(engine.Undo{})
		m.status = "undo"

	case "r":
		m = m.dispatch(engine.Redo{})
		m.status = "redo"

	case "w":
		if err := m.Session.Flush(context.Background()); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = "saved"
		}
	}

	m = m.clampCursor()
	return m, nil
}

// dispatch routes one intent through the session and refreshes the
// outline from the resulting view.
func (m EditorModel) dispatch(intent engine.Intent) EditorModel {
	if err := m.Session.Dispatch(context.Background(), intent); err != nil {
		m.status = err.Error()
		return m
	}
	m.status = ""
	m.rows = outlineFrom(m.Session.View())
	return m
}

func (m EditorModel) clampCursor() EditorModel {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.Offset > m.cursor {
		m.Offset = m.cursor
	}
	return m
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := "Mindloom"
	if focus := m.Session.FocusID(); focus != "" {
		title += "  " + StyleWarning.Render("[focus: "+focus+"]")
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(outlineDimStyle.Render("j/k move  a child  s sibling  d delete  ⎵ collapse  f/F focus  l/L layout  u/r undo/redo  w save  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(outlineDimStyle.Render("  (empty map - press a to add the first node)"))
		b.WriteString("\n")
	}

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.rows[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := cursor + strings.Repeat("  ", row.depth) + "• " + row.label
		if row.collapsed {
			line += " [+]"
		}

		if i == m.cursor {
			b.WriteString(outlineSelectedStyle.Render(line))
		} else {
			b.WriteString(outlineNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")

	footer := fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))
	if m.Session.CanUndo() {
		footer += "  undo ✓"
	}
	if m.Session.CanRedo() {
		footer += "  redo ✓"
	}
	b.WriteString(outlineDimStyle.Render(footer))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("  " + m.status))
	}

	return b.String()
}
