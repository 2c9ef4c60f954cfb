package mindmap

import "slices"

// =============================================================================
// Payload - Tagged Union of Node Data
// =============================================================================

// Payload is the type-specific data a node carries. Each [NodeType] has
// exactly one payload variant; the variant embeds [Core] for the fields
// every node shares. The engine itself only reads Core - everything else
// is carried opaquely for the rendering and editing collaborators.
type Payload interface {
	// Kind returns the node type this payload belongs to.
	Kind() NodeType
	// Meta returns the shared fields. The pointer addresses the payload's
	// own storage, so mutations through it are visible on the node.
	Meta() *Core
	// Clone returns a deep copy of the payload.
	Clone() Payload
}

// Core holds the fields common to every payload variant.
type Core struct {
	Label     string `json:"label,omitempty"`
	Color     string `json:"color,omitempty"`
	Shape     string `json:"shape,omitempty"`
	Collapsed bool   `json:"collapsed,omitempty"`
}

// NewPayload returns the zero payload for a node type. Unknown types map
// to a generic payload.
func NewPayload(t NodeType) Payload {
	switch t {
	case NodeNote:
		return &NoteData{}
	case NodeChecklist:
		return &ChecklistData{}
	case NodeKanban:
		return &KanbanData{}
	case NodeTimeline:
		return &TimelineData{}
	case NodeMatrix:
		return &MatrixData{}
	default:
		return &GenericData{}
	}
}

// =============================================================================
// Variants
// =============================================================================

// GenericData is the payload for plain topic nodes.
type GenericData struct {
	Core
}

func (d *GenericData) Kind() NodeType { return NodeGeneric }
func (d *GenericData) Meta() *Core    { return &d.Core }
func (d *GenericData) Clone() Payload { c := *d; return &c }

// NoteData is the payload for free-text note nodes.
type NoteData struct {
	Core
	Text string `json:"text,omitempty"`
}

func (d *NoteData) Kind() NodeType { return NodeNote }
func (d *NoteData) Meta() *Core    { return &d.Core }
func (d *NoteData) Clone() Payload { c := *d; return &c }

// ChecklistItem is a single entry in a checklist node.
type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done,omitempty"`
}

// ChecklistData is the payload for checklist nodes.
type ChecklistData struct {
	Core
	Items []ChecklistItem `json:"items,omitempty"`
}

func (d *ChecklistData) Kind() NodeType { return NodeChecklist }
func (d *ChecklistData) Meta() *Core    { return &d.Core }
func (d *ChecklistData) Clone() Payload {
	c := *d
	c.Items = slices.Clone(d.Items)
	return &c
}

// KanbanColumn is one column of a kanban node.
type KanbanColumn struct {
	Title string   `json:"title"`
	Cards []string `json:"cards,omitempty"`
}

// KanbanData is the payload for embedded kanban-board nodes.
type KanbanData struct {
	Core
	Columns []KanbanColumn `json:"columns,omitempty"`
}

func (d *KanbanData) Kind() NodeType { return NodeKanban }
func (d *KanbanData) Meta() *Core    { return &d.Core }
func (d *KanbanData) Clone() Payload {
	c := *d
	c.Columns = make([]KanbanColumn, len(d.Columns))
	for i, col := range d.Columns {
		col.Cards = slices.Clone(col.Cards)
		c.Columns[i] = col
	}
	return &c
}

// TimelineEvent is one dated entry of a timeline node.
type TimelineEvent struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// TimelineData is the payload for timeline nodes.
type TimelineData struct {
	Core
	Events []TimelineEvent `json:"events,omitempty"`
}

func (d *TimelineData) Kind() NodeType { return NodeTimeline }
func (d *TimelineData) Meta() *Core    { return &d.Core }
func (d *TimelineData) Clone() Payload {
	c := *d
	c.Events = slices.Clone(d.Events)
	return &c
}

// MatrixQuadrant is one quadrant of a 2x2 matrix node.
type MatrixQuadrant struct {
	Title string   `json:"title"`
	Items []string `json:"items,omitempty"`
}

// MatrixData is the payload for priority-matrix nodes.
type MatrixData struct {
	Core
	Quadrants []MatrixQuadrant `json:"quadrants,omitempty"`
}

func (d *MatrixData) Kind() NodeType { return NodeMatrix }
func (d *MatrixData) Meta() *Core    { return &d.Core }
func (d *MatrixData) Clone() Payload {
	c := *d
	c.Quadrants = make([]MatrixQuadrant, len(d.Quadrants))
	for i, q := range d.Quadrants {
		q.Items = slices.Clone(q.Items)
		c.Quadrants[i] = q
	}
	return &c
}

// Ensure every variant implements Payload.
var (
	_ Payload = (*GenericData)(nil)
	_ Payload = (*NoteData)(nil)
	_ Payload = (*ChecklistData)(nil)
	_ Payload = (*KanbanData)(nil)
	_ Payload = (*TimelineData)(nil)
	_ Payload = (*MatrixData)(nil)
)
