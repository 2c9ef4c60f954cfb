package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mindloom/mindloom/pkg/errors"
	"github.com/mindloom/mindloom/pkg/graphdoc"
	"github.com/mindloom/mindloom/pkg/mindmap"
	"github.com/mindloom/mindloom/pkg/mindmap/history"
	"github.com/mindloom/mindloom/pkg/mindmap/layout"
	"github.com/mindloom/mindloom/pkg/mindmap/template"
	"github.com/mindloom/mindloom/pkg/mindmap/view"
	"github.com/mindloom/mindloom/pkg/observability"
	"github.com/mindloom/mindloom/pkg/persist"
)

// childOffset is where a new child lands relative to its parent before
// any layout pass runs.
var childOffset = mindmap.Position{X: 180, Y: 80}

// =============================================================================
// Options
// =============================================================================

// Options configures a session.
type Options struct {
	// Layout holds the geometric constants for layout intents.
	Layout layout.Options

	// Debounce is how long mutations are coalesced before persisting.
	// Zero means the 500ms default.
	Debounce time.Duration

	// Logger receives engine diagnostics. Nil means discard.
	Logger *log.Logger

	// Store receives debounced document saves. Nil means no persistence.
	Store persist.Store
}

// setDefaults fills zero fields.
func (o *Options) setDefaults() {
	if o.Layout == (layout.Options{}) {
		o.Layout = layout.DefaultOptions()
	}
	if o.Debounce <= 0 {
		o.Debounce = 500 * time.Millisecond
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Store == nil {
		o.Store = persist.NullStore{}
	}
}

// =============================================================================
// Session
// =============================================================================

// Session owns one mind-map document and serializes all access to it.
// Create it with [NewSession], feed it intents through [Dispatch], and
// read the renderable state back through [Session.View].
type Session struct {
	mu      sync.Mutex
	name    string
	store   *mindmap.Store
	log     *history.Log
	focusID string
	opts    Options
	timer   *time.Timer
	closed  bool
}

// NewSession creates a session for a named document, seeded with doc
// (use [graphdoc.Empty] for a fresh map). The seed state becomes the
// oldest history snapshot, so undo bottoms out at it.
func NewSession(name string, doc graphdoc.Document, opts Options) *Session {
	opts.setDefaults()
	s := &Session{
		name:  name,
		store: mindmap.NewStore(),
		log:   history.NewLog(),
		opts:  opts,
	}
	s.store.ReplaceAll(doc.Nodes, doc.Edges)
	s.log.Record(doc.Nodes, doc.Edges, history.OriginUserEdit)
	return s
}

// Name returns the document name this session persists under.
func (s *Session) Name() string { return s.name }

// Dispatch runs one intent through the engine. Every user-originating
// graph mutation records a history snapshot and schedules a debounced
// persist; undo/redo restore snapshots with the replay origin so they
// are not re-recorded.
func (s *Session) Dispatch(ctx context.Context, intent Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	observability.Engine().OnDispatch(ctx, intent.Name())

	switch in := intent.(type) {
	case AddNode:
		data := mindmap.NewPayload(in.Type)
		data.Meta().Label = in.Label
		s.store.AddNode(in.Type, in.Position, data)

	case AddChild:
		parent, ok := s.store.Node(in.ParentID)
		if !ok {
			return errors.New(errors.ErrCodeNodeNotFound, "parent node %s not found", in.ParentID)
		}
		data := mindmap.NewPayload(mindmap.NodeGeneric)
		data.Meta().Label = in.Label
		pos := mindmap.Position{X: parent.Position.X + childOffset.X, Y: parent.Position.Y + childOffset.Y}
		child := s.store.AddNode(mindmap.NodeGeneric, pos, data)
		s.store.AddEdge(in.ParentID, child.ID, mindmap.EdgeSmoothstep)

	case AddSibling:
		sibling, ok := s.store.Node(in.SiblingID)
		if !ok {
			return errors.New(errors.ErrCodeNodeNotFound, "sibling node %s not found", in.SiblingID)
		}
		data := mindmap.NewPayload(mindmap.NodeGeneric)
		data.Meta().Label = in.Label
		pos := mindmap.Position{X: sibling.Position.X, Y: sibling.Position.Y + childOffset.Y}
		node := s.store.AddNode(mindmap.NodeGeneric, pos, data)
		if parentID, ok := s.parentOf(in.SiblingID); ok {
			s.store.AddEdge(parentID, node.ID, mindmap.EdgeSmoothstep)
		}

	case Connect:
		s.store.AddEdge(in.Source, in.Target, in.Type)

	case SelectNode:
		if in.NodeID == "" {
			s.store.Selection().Clear()
			return nil
		}
		if _, ok := s.store.Node(in.NodeID); !ok {
			return errors.New(errors.ErrCodeNodeNotFound, "node %s not found", in.NodeID)
		}
		s.store.Selection().Only(in.NodeID)
		return nil // selection is view state, nothing to record or persist

	case DeleteSelection:
		s.store.DeleteSelected()
		s.dropStaleFocus()

	case ToggleCollapse:
		if !s.store.ToggleCollapsed(in.NodeID) {
			// Toggling a vanished node is a stale intent, not a failure.
			s.opts.Logger.Debug("toggle on missing node ignored", "id", in.NodeID)
			return nil
		}

	case SetFocus:
		if _, ok := s.store.Node(in.NodeID); !ok {
			return errors.New(errors.ErrCodeNodeNotFound, "focus node %s not found", in.NodeID)
		}
		s.focusID = in.NodeID
		return nil // view-only, nothing to record or persist

	case ClearFocus:
		s.focusID = ""
		return nil

	case ApplyLayout:
		if err := s.applyLayout(ctx, in); err != nil {
			return err
		}

	case ApplyTemplate:
		nodes, edges, ok := template.InstantiateNamed(in.Key, s.opts.Layout, s.opts.Logger)
		if !ok {
			return nil // best-effort: unknown key already logged
		}
		s.store.ReplaceAll(nodes, edges)
		s.focusID = ""

	case Undo:
		snap, ok := s.log.Undo()
		if !ok {
			return nil
		}
		s.replay(ctx, snap)
		return nil

	case Redo:
		snap, ok := s.log.Redo()
		if !ok {
			return nil
		}
		s.replay(ctx, snap)
		return nil

	default:
		return errors.New(errors.ErrCodeInvalidIntent, "unsupported intent %T", intent)
	}

	s.afterMutation(ctx, intent.Name())
	return nil
}

// applyLayout recomputes positions for the whole graph. A root id that
// names no node leaves every position unchanged, matching the layout
// functions' contract.
func (s *Session) applyLayout(ctx context.Context, in ApplyLayout) error {
	if !ValidAlgorithms[in.Algorithm] {
		return errors.New(errors.ErrCodeInvalidLayout, "unknown layout algorithm %q", in.Algorithm)
	}

	rootID := in.RootID
	if rootID == "" {
		picked, ok := layout.PickRoot(s.store.Nodes(), s.store.Edges())
		if !ok {
			return nil // empty graph
		}
		rootID = picked
	}

	observability.Engine().OnLayoutStart(ctx, string(in.Algorithm), s.store.NodeCount())
	start := time.Now()

	var laidOut []mindmap.Node
	switch in.Algorithm {
	case AlgorithmRadial:
		laidOut = layout.Radial(rootID, s.store.Nodes(), s.store.Edges(), s.opts.Layout)
	case AlgorithmTree:
		laidOut = layout.Tree(rootID, s.store.Nodes(), s.store.Edges(), s.opts.Layout)
	}
	s.store.SetPositions(laidOut)

	observability.Engine().OnLayoutComplete(ctx, string(in.Algorithm), time.Since(start))
	return nil
}

// replay writes a history snapshot back into the store. The mutation is
// tagged with the replay origin, so recording it is an explicit no-op
// rather than a suppressed side effect.
func (s *Session) replay(ctx context.Context, snap history.Snapshot) {
	s.store.ReplaceAll(snap.Nodes, snap.Edges)
	s.log.Record(snap.Nodes, snap.Edges, history.OriginReplay)
	s.dropStaleFocus()
	observability.Engine().OnMutation(ctx, "history_replay", s.store.NodeCount(), s.store.EdgeCount())
	s.schedulePersist()
}

// afterMutation is the shared tail of every user-originating mutation.
func (s *Session) afterMutation(ctx context.Context, op string) {
	s.log.Record(s.store.Nodes(), s.store.Edges(), history.OriginUserEdit)
	observability.Engine().OnMutation(ctx, op, s.store.NodeCount(), s.store.EdgeCount())
	observability.Engine().OnSnapshot(ctx, s.log.Len())
	s.schedulePersist()
}

// parentOf returns the source of the first edge targeting id.
func (s *Session) parentOf(id string) (string, bool) {
	for _, e := range s.store.Edges() {
		if e.Target == id {
			return e.Source, true
		}
	}
	return "", false
}

// dropStaleFocus clears the focus root if it no longer names a node.
func (s *Session) dropStaleFocus() {
	if s.focusID == "" {
		return
	}
	if _, ok := s.store.Node(s.focusID); !ok {
		s.focusID = ""
	}
}

// =============================================================================
// Reads
// =============================================================================

// View resolves the currently visible node/edge subset, honoring
// collapsed flags and the focus root.
func (s *Session) View() view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Resolve(s.store.Nodes(), s.store.Edges(), s.focusID)
}

// Document captures the full current graph for serialization.
func (s *Session) Document() graphdoc.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document()
}

func (s *Session) document() graphdoc.Document {
	return graphdoc.FromStore(s.store)
}

// TaskTitles walks the subtree under rootID in breadth-first order and
// returns one title per descendant, for task-list collaborators.
func (s *Session) TaskTitles(rootID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mindmap.SubtreeTitles(rootID, s.store.Nodes(), s.store.Edges())
}

// FocusID returns the current focus root, or "" when unfocused.
func (s *Session) FocusID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focusID
}

// Selection returns the ids of the currently selected nodes.
func (s *Session) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Selection().NodeIDs()
}

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.CanRedo()
}

// =============================================================================
// Persistence
// =============================================================================

// schedulePersist (re)arms the debounce timer. Bursts of mutations
// coalesce into a single save firing Debounce after the last one.
// Callers must hold s.mu.
func (s *Session) schedulePersist() {
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Reset(s.opts.Debounce)
		return
	}
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		if err := s.Flush(context.Background()); err != nil {
			s.opts.Logger.Warn("debounced persist failed", "doc", s.name, "err", err)
		}
	})
}

// Flush persists the current document immediately. A pending debounce
// is cancelled. Persistence failures are returned but never affect the
// in-memory state, which remains the source of truth.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	doc := s.document()
	name := s.name
	store := s.opts.Store
	s.mu.Unlock()

	start := time.Now()
	err := store.Save(ctx, name, doc)
	observability.Engine().OnPersist(ctx, name, time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "persist document %s", name)
	}
	return nil
}

// Close flushes any pending state and stops the debounce timer. The
// session must not be used afterwards.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	return s.Flush(ctx)
}
