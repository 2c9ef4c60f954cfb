package history

import "github.com/mindloom/mindloom/pkg/mindmap"

// Origin tags where a graph mutation came from.
type Origin int

const (
	// OriginUserEdit marks a mutation initiated by a user intent.
	// These are recorded.
	OriginUserEdit Origin = iota
	// OriginReplay marks a mutation caused by undo/redo writing a
	// snapshot back into the store. These are never recorded - recording
	// them would corrupt the log into an oscillation between the last
	// two states.
	OriginReplay
)

// Snapshot is an immutable deep copy of the graph at one point in time.
// A snapshot never aliases live store data in either direction.
type Snapshot struct {
	Nodes []mindmap.Node
	Edges []mindmap.Edge
}

// clone returns an independent copy of the snapshot.
func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Nodes: mindmap.CloneNodes(s.Nodes),
		Edges: mindmap.CloneEdges(s.Edges),
	}
}

// Log is the undo/redo stack. The cursor always points at the snapshot
// matching the current graph state; undo moves it back, redo forward.
//
// The zero value is not usable - use NewLog. Log is not safe for
// concurrent use without external synchronization.
type Log struct {
	snapshots []Snapshot
	cursor    int // index of the current snapshot; -1 when empty
}

// NewLog creates an empty history log.
func NewLog() *Log {
	return &Log{cursor: -1}
}

// Record pushes a deep-copied snapshot of the graph. Any redo tail
// beyond the cursor is discarded first, then the snapshot is appended
// and the cursor advances to it.
//
// Mutations with OriginReplay are ignored.
func (l *Log) Record(nodes []mindmap.Node, edges []mindmap.Edge, origin Origin) {
	if origin == OriginReplay {
		return
	}
	l.snapshots = append(l.snapshots[:l.cursor+1], Snapshot{
		Nodes: mindmap.CloneNodes(nodes),
		Edges: mindmap.CloneEdges(edges),
	})
	l.cursor = len(l.snapshots) - 1
}

// Undo moves the cursor back one snapshot and returns an independent
// copy of it. At the oldest snapshot (or on an empty log) it is a
// silent no-op returning ok=false.
func (l *Log) Undo() (Snapshot, bool) {
	if !l.CanUndo() {
		return Snapshot{}, false
	}
	l.cursor--
	return l.snapshots[l.cursor].clone(), true
}

// Redo moves the cursor forward one snapshot and returns an independent
// copy of it. At the newest snapshot it is a silent no-op returning
// ok=false.
func (l *Log) Redo() (Snapshot, bool) {
	if !l.CanRedo() {
		return Snapshot{}, false
	}
	l.cursor++
	return l.snapshots[l.cursor].clone(), true
}

// CanUndo reports whether an earlier snapshot exists.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether a later snapshot exists.
func (l *Log) CanRedo() bool { return l.cursor >= 0 && l.cursor < len(l.snapshots)-1 }

// Len returns the number of snapshots in the log.
func (l *Log) Len() int { return len(l.snapshots) }

// Cursor returns the current cursor index, or -1 for an empty log.
func (l *Log) Cursor() int { return l.cursor }
