package editor

// Key is a logical keyboard key understood by the session.
type Key int

const (
	KeyNone Key = iota
	KeyDelete
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyD
	KeyG
	KeyZ
	KeyEscape
)

// Modifiers holds the modifier keys of a key event. Ctrl also stands for
// the platform command key.
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

func (k Key) arrow() bool {
	return k == KeyUp || k == KeyDown || k == KeyLeft || k == KeyRight
}

// sealNudge closes an open arrow-key step.
func (s *Session) sealNudge() {
	if s.nudging {
		s.nudging = false
		s.history.Seal()
	}
}

// KeyDown runs the keyboard command for k on the current selection. Keys
// are ignored while text is being edited.
func (s *Session) KeyDown(k Key, m Modifiers) error {
	if s.gesture.Phase == EditingText {
		return nil
	}
	if !k.arrow() {
		s.sealNudge()
	}

	switch {
	case k == KeyZ && m.Ctrl:
		if m.Shift {
			s.Redo()
		} else {
			s.Undo()
		}
		return nil
	case k == KeyEscape:
		if s.gesture.Phase != Idle {
			s.CancelGesture()
			return nil
		}
		s.tool = ""
		s.selection.Clear()
		return nil
	}

	primary := s.selection.Primary()
	if primary == "" {
		return nil
	}
	if !k.arrow() && (s.gesture.Phase == Dragging || s.gesture.Phase == Resizing) {
		s.finishMove()
	}
	switch {
	case k == KeyDelete || k == KeyBackspace:
		for _, id := range s.selection.IDs() {
			if s.Document().Index(id) < 0 {
				continue
			}
			if err := s.Delete(id); err != nil {
				return err
			}
		}
	case k == KeyD && m.Ctrl:
		_, err := s.Duplicate(primary)
		return err
	case k == KeyG && m.Ctrl && m.Shift:
		if s.selection.Len() != 1 {
			return s.note(reject("ungroup", "select exactly one group"))
		}
		_, err := s.Ungroup(primary)
		return err
	case k == KeyG && m.Ctrl:
		if s.selection.Len() > 1 {
			_, err := s.Group(s.selection.IDs())
			return err
		}
	case k.arrow():
		s.nudge(primary, k, m.Shift)
	}
	return nil
}

// KeyUp seals the step opened by arrow key-downs.
func (s *Session) KeyUp(k Key) {
	if k.arrow() {
		s.sealNudge()
	}
}

func (s *Session) nudge(id string, k Key, big bool) {
	if s.selection.Len() != 1 || s.gesture.Phase != Idle {
		return
	}
	n, ok := s.Document().Get(id)
	if !ok {
		return
	}
	step := s.nudgeSmall
	if big {
		step = s.nudgeBig
	}
	pos := n.Position
	switch k {
	case KeyUp:
		pos.Y -= step
	case KeyDown:
		pos.Y += step
	case KeyLeft:
		pos.X -= step
	case KeyRight:
		pos.X += step
	}
	if !s.nudging {
		s.history.Seal()
	}
	s.history.Apply(setPosition(id, pos), true)
	s.nudging = true
}
