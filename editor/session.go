// Package editor is the canvas editing engine: the component document, its
// snapshot undo history, the pointer/keyboard interaction state machine and
// the grouping and layer-order operations.
//
// A Session owns one document, one selection and one history. It is not safe
// for concurrent use; every call is expected to come from a single event loop.
package editor

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Session is one editing session over a single in-memory document.
type Session struct {
	history   *History
	selection Selection
	tool      Kind
	gesture   Gesture
	nudging   bool

	nudgeSmall float64
	nudgeBig   float64

	newID  func() string
	rand   *rand.Rand
	logger *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithIDGenerator replaces the uuid-based id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// WithRand sets the random source used for generated chart data.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rand = r }
}

// WithLogger makes the session log rejected operations and loads.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithNudge sets the arrow-key step and the step used with Shift.
func WithNudge(small, big float64) Option {
	return func(s *Session) { s.nudgeSmall, s.nudgeBig = small, big }
}

// NewSession starts an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		history:    NewHistory(Document{}),
		nudgeSmall: 1,
		nudgeBig:   10,
		newID:      uuid.NewString,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) note(err error) error {
	if err != nil {
		s.logger.Printf("editor: %v", err)
	}
	return err
}

// --- Query ---

// Document returns the current snapshot. Snapshots are never modified by the
// session, but callers must not modify them either.
func (s *Session) Document() Document { return s.history.Current() }

// ListRootNodes returns copies of the top-level nodes in paint order.
func (s *Session) ListRootNodes() []Node {
	return cloneNodes(s.Document().Roots())
}

// ListChildren returns copies of the direct children of groupID.
func (s *Session) ListChildren(groupID string) []Node {
	return cloneNodes(s.Document().Children(groupID))
}

// GetNode returns a copy of the node with the given id.
func (s *Session) GetNode(id string) (Node, bool) {
	n, ok := s.Document().Get(id)
	if !ok {
		return Node{}, false
	}
	return n.Clone(), true
}

// GetSelection returns the selected ids; the last one is primary.
func (s *Session) GetSelection() []string { return s.selection.IDs() }

// Primary returns the primary selected id, or "".
func (s *Session) Primary() string { return s.selection.Primary() }

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// History exposes the underlying history for inspection.
func (s *Session) History() *History { return s.history }

func cloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i := range nodes {
		out[i] = nodes[i].Clone()
	}
	return out
}

// --- Selection ---

// SetSelection replaces the selection with the ids that exist.
func (s *Session) SetSelection(ids ...string) {
	s.selection.Set(ids...)
	s.selection.retain(s.Document())
}

// ToggleMember adds or removes id from the selection.
func (s *Session) ToggleMember(id string) {
	if s.Document().Index(id) < 0 {
		return
	}
	s.selection.Toggle(id)
}

// --- Mutation ---

// CreateNode adds a node of kind k with default props and styles and selects
// it. Size is raised to the minimum floor.
func (s *Session) CreateNode(k Kind, pos Point, size Size) (string, error) {
	if !k.Valid() {
		return "", s.note(reject("create", "unknown kind %q", k))
	}
	doc := s.Document()
	n := Node{
		ID:         s.newID(),
		Name:       fmt.Sprintf("%s%d", k, doc.CountKind(k)+1),
		Kind:       k,
		Position:   pos,
		Size:       size.Clamp(),
		Properties: DefaultProperties(k),
		Style:      DefaultStyle(k),
	}
	if k.IsChart() {
		n.Properties["data"] = chartData(s.rand)
	}
	s.discrete(func(d Document) Document { return append(d[:len(d):len(d)], n) })
	s.selection.Set(n.ID)
	return n.ID, nil
}

// UpdateProperties merges partial into the node's props.
func (s *Session) UpdateProperties(id string, partial map[string]any) error {
	return s.edit("update properties", id, func(n Node) Node {
		n.Properties = mergeMap(n.Properties, partial)
		return n
	})
}

// UpdateStyle merges partial into the node's styles.
func (s *Session) UpdateStyle(id string, partial map[string]any) error {
	return s.edit("update style", id, func(n Node) Node {
		n.Style = mergeMap(n.Style, partial)
		return n
	})
}

// UpdatePosition moves the node. With coalesce the change joins the open
// continuous step; a later non-coalesced call closes that step.
func (s *Session) UpdatePosition(id string, pos Point, coalesce bool) error {
	if s.Document().Index(id) < 0 {
		return s.note(reject("update position", "no node %s", id))
	}
	s.history.Apply(setPosition(id, pos), coalesce)
	return nil
}

// UpdateSize resizes the node, clamped to the minimum floor. Coalescing works
// as for UpdatePosition.
func (s *Session) UpdateSize(id string, size Size, coalesce bool) error {
	if s.Document().Index(id) < 0 {
		return s.note(reject("update size", "no node %s", id))
	}
	s.history.Apply(setSize(id, size), coalesce)
	return nil
}

// Rename sets the node's display name.
func (s *Session) Rename(id, name string) error {
	return s.edit("rename", id, func(n Node) Node {
		n.Name = name
		return n
	})
}

// SetDescription sets the node's free-text annotation.
func (s *Session) SetDescription(id, text string) error {
	return s.edit("set description", id, func(n Node) Node {
		n.Description = text
		return n
	})
}

// ToggleLock flips the node's locked flag.
func (s *Session) ToggleLock(id string) error {
	return s.edit("toggle lock", id, func(n Node) Node {
		n.Locked = !n.Locked
		return n
	})
}

// ApplyPreset merges a preset's styles and props into the node.
func (s *Session) ApplyPreset(id string, p Preset) error {
	return s.edit("apply preset", id, func(n Node) Node { return applyPreset(n, p) })
}

// Undo steps back one history entry. A gesture in progress is abandoned.
func (s *Session) Undo() bool {
	s.resetGesture()
	ok := s.history.Undo()
	s.selection.retain(s.Document())
	return ok
}

// Redo re-applies one undone entry.
func (s *Session) Redo() bool {
	s.resetGesture()
	ok := s.history.Redo()
	s.selection.retain(s.Document())
	return ok
}

// LoadDocument replaces the whole document, clearing selection and history.
// Documents that fail Validate are refused and the session is left as is.
func (s *Session) LoadDocument(nodes []Node) error {
	doc := Document(nodes).Clone()
	if doc == nil {
		doc = Document{}
	}
	if problems := Validate(doc); len(problems) > 0 {
		return s.note(&InvalidDocumentError{Problems: problems})
	}
	s.resetGesture()
	s.tool = ""
	s.history.Reset(doc)
	s.selection.Clear()
	s.logger.Printf("editor: loaded %d nodes", len(doc))
	return nil
}

// discrete applies t as its own history step, closing any open coalesced run.
func (s *Session) discrete(t Transform) {
	s.nudging = false
	s.history.Seal()
	s.history.Apply(t, false)
}

func (s *Session) edit(op, id string, fn func(Node) Node) error {
	if s.Document().Index(id) < 0 {
		return s.note(reject(op, "no node %s", id))
	}
	s.discrete(func(d Document) Document { return d.update(id, fn) })
	return nil
}

func setPosition(id string, pos Point) Transform {
	return func(d Document) Document {
		return d.update(id, func(n Node) Node {
			n.Position = pos
			return n
		})
	}
}

func setSize(id string, size Size) Transform {
	return func(d Document) Document {
		return d.update(id, func(n Node) Node {
			n.Size = size.Clamp()
			return n
		})
	}
}
