package editor

const (
	// DrawThreshold is the extent a draw or marquee rectangle must exceed
	// before it counts.
	DrawThreshold = 5.0
	// HandleSize is the side of the square resize handle centered on a
	// selected node's bottom-right corner.
	HandleSize = 16.0
)

// Phase is the state of the pointer interaction machine.
type Phase int

const (
	Idle Phase = iota
	Drawing
	Dragging
	Resizing
	MarqueeSelecting
	EditingText
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case MarqueeSelecting:
		return "marquee"
	case EditingText:
		return "editing"
	}
	return "unknown"
}

// Gesture is the transient state of the current interaction. Which fields
// are meaningful depends on Phase.
type Gesture struct {
	Phase Phase
	Tool  Kind // Drawing

	Start, End Point // Drawing, MarqueeSelecting

	Target       string // Dragging, Resizing, EditingText
	Grab         Point  // Dragging: pointer minus target position
	StartSize    Size   // Resizing
	StartPointer Point  // Resizing
	Draft        string // EditingText

	moved bool
}

// Rect returns the normalized rectangle between Start and End.
func (g Gesture) Rect() Rect { return RectFromPoints(g.Start, g.End) }

// Pointer is a pointer-down event in canvas coordinates. Toggle is the
// multi-select modifier.
type Pointer struct {
	Pos    Point
	Toggle bool
}

// Gesture returns a copy of the interaction state.
func (s *Session) Gesture() Gesture { return s.gesture }

// Tool returns the active creation tool, or "".
func (s *Session) Tool() Kind { return s.tool }

// SetTool arms a creation tool; "" disarms it.
func (s *Session) SetTool(k Kind) error {
	switch {
	case k == "":
	case k == KindGroup:
		return s.note(reject("tool", "groups are made from a selection"))
	case !k.Valid():
		return s.note(reject("tool", "unknown kind %q", k))
	}
	s.tool = k
	return nil
}

// PaintOrder lists nodes bottom to top as they are drawn.
func (s *Session) PaintOrder() []Node { return s.Document().PaintOrder() }

// HitTest returns the topmost node whose box contains p.
func (s *Session) HitTest(p Point) (Node, bool) {
	doc := s.Document()
	order := doc.PaintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if doc.AbsoluteRect(order[i].ID).Contains(p) {
			return order[i], true
		}
	}
	return Node{}, false
}

// HandleRect returns the resize handle of a node, and false when the node
// has none: only selected, unlocked root nodes show one.
func (s *Session) HandleRect(id string) (Rect, bool) {
	n, ok := s.Document().Get(id)
	if !ok || !n.IsRoot() || n.Locked || !s.selection.Contains(id) {
		return Rect{}, false
	}
	const half = HandleSize / 2
	return Rect{
		X:      n.Position.X + n.Size.Width - half,
		Y:      n.Position.Y + n.Size.Height - half,
		Width:  HandleSize,
		Height: HandleSize,
	}, true
}

func (s *Session) handleAt(p Point) (Node, bool) {
	doc := s.Document()
	for i := len(doc) - 1; i >= 0; i-- {
		if r, ok := s.HandleRect(doc[i].ID); ok && r.Contains(p) {
			return doc[i], true
		}
	}
	return Node{}, false
}

// PointerDown starts a gesture: resize on a handle, drag on a node, draw on
// empty canvas with a tool armed, marquee otherwise.
func (s *Session) PointerDown(ev Pointer) {
	s.sealNudge()
	hit, onNode := s.HitTest(ev.Pos)

	switch s.gesture.Phase {
	case Idle:
	case EditingText:
		if onNode && hit.ID == s.gesture.Target {
			return
		}
		s.CommitText()
	default:
		s.PointerUp(ev.Pos)
	}

	if n, ok := s.handleAt(ev.Pos); ok {
		s.gesture = Gesture{
			Phase:        Resizing,
			Target:       n.ID,
			StartSize:    n.Size,
			StartPointer: ev.Pos,
		}
		return
	}

	if onNode && hit.BlocksPointer() {
		if s.tool == "" {
			return
		}
		onNode = false
	}

	switch {
	case onNode:
		root, _ := s.Document().RootAncestor(hit.ID)
		switch {
		case ev.Toggle:
			s.selection.Toggle(root.ID)
		case !s.selection.Contains(root.ID):
			s.selection.Set(root.ID)
		}
		s.gesture = Gesture{Phase: Dragging, Target: root.ID, Grab: ev.Pos.Sub(root.Position)}
	case s.tool != "":
		s.gesture = Gesture{Phase: Drawing, Tool: s.tool, Start: ev.Pos, End: ev.Pos}
	default:
		s.selection.Clear()
		s.gesture = Gesture{Phase: MarqueeSelecting, Start: ev.Pos, End: ev.Pos}
	}
}

// PointerMove updates the active gesture. Drags and resizes write through
// the history as one coalesced step.
func (s *Session) PointerMove(p Point) {
	g := &s.gesture
	if g.Phase == Dragging || g.Phase == Resizing {
		if s.Document().Index(g.Target) < 0 {
			s.gesture = Gesture{}
			return
		}
	}
	switch g.Phase {
	case Drawing, MarqueeSelecting:
		g.End = p
	case Dragging:
		s.history.Apply(setPosition(g.Target, p.Sub(g.Grab)), true)
		g.moved = true
	case Resizing:
		d := p.Sub(g.StartPointer)
		size := Size{g.StartSize.Width + d.X, g.StartSize.Height + d.Y}
		s.history.Apply(setSize(g.Target, size), true)
		g.moved = true
	}
}

// PointerUp finishes the active gesture and returns to Idle.
func (s *Session) PointerUp(p Point) {
	g := s.gesture
	switch g.Phase {
	case Drawing:
		g.End = p
		r := g.Rect()
		s.tool = ""
		s.gesture = Gesture{}
		if r.Width > DrawThreshold && r.Height > DrawThreshold {
			s.CreateNode(g.Tool, r.Min(), r.Size())
		}
	case Dragging, Resizing:
		s.finishMove()
	case MarqueeSelecting:
		g.End = p
		s.gesture = Gesture{}
		s.selectMarquee(g.Rect())
	}
}

// DoubleClick on a Text node starts editing its text.
func (s *Session) DoubleClick(p Point) {
	if s.gesture.Phase != Idle {
		return
	}
	hit, ok := s.HitTest(p)
	if !ok || hit.Kind != KindText {
		return
	}
	s.gesture = Gesture{Phase: EditingText, Target: hit.ID, Draft: hit.Text()}
}

// SetDraft replaces the text being edited.
func (s *Session) SetDraft(text string) {
	if s.gesture.Phase == EditingText {
		s.gesture.Draft = text
	}
}

// CommitText writes the draft into properties.text and leaves editing. An
// unchanged draft records nothing.
func (s *Session) CommitText() {
	g := s.gesture
	if g.Phase != EditingText {
		return
	}
	s.gesture = Gesture{}
	if n, ok := s.Document().Get(g.Target); ok && n.Text() != g.Draft {
		s.UpdateProperties(g.Target, map[string]any{"text": g.Draft})
	}
}

// CancelText leaves editing without writing the draft.
func (s *Session) CancelText() {
	if s.gesture.Phase == EditingText {
		s.gesture = Gesture{}
	}
}

func (s *Session) selectMarquee(r Rect) {
	if r.Width <= DrawThreshold && r.Height <= DrawThreshold {
		return
	}
	var ids []string
	for _, n := range s.Document().Roots() {
		box := Rect{X: n.Position.X, Y: n.Position.Y, Width: n.Size.Width, Height: n.Size.Height}
		if !n.Locked && box.Intersects(r) {
			ids = append(ids, n.ID)
		}
	}
	s.selection.Set(ids...)
}

// finishMove seals a drag or resize. A click that never moved leaves no
// history step.
func (s *Session) finishMove() {
	g := s.gesture
	s.gesture = Gesture{}
	if !g.moved {
		return
	}
	n, ok := s.Document().Get(g.Target)
	if !ok {
		s.history.Seal()
		return
	}
	if g.Phase == Resizing {
		s.history.Apply(setSize(g.Target, n.Size), false)
	} else {
		s.history.Apply(setPosition(g.Target, n.Position), false)
	}
}

// resetGesture abandons any gesture, keeping what a drag already wrote.
func (s *Session) resetGesture() {
	s.sealNudge()
	switch s.gesture.Phase {
	case Dragging, Resizing:
		s.finishMove()
	}
	s.gesture = Gesture{}
}

// CancelGesture abandons the active gesture. Pending draws and marquees are
// discarded and editing drops its draft.
func (s *Session) CancelGesture() {
	s.resetGesture()
}
