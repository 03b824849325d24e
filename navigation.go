package main

import "uicanvas/editor"

var arrowKeys = map[string]editor.Key{
	"left": editor.KeyLeft, "shift+left": editor.KeyLeft,
	"right": editor.KeyRight, "shift+right": editor.KeyRight,
	"up": editor.KeyUp, "shift+up": editor.KeyUp,
	"down": editor.KeyDown, "shift+down": editor.KeyDown,
}

// handleNavigation nudges the selection with the arrow keys, or pans the
// view in pan mode and when nothing is selected.
func (m *model) handleNavigation(key string) {
	arrow, isArrow := arrowKeys[key]
	if m.zPanMode || !isArrow || m.session.Primary() == "" {
		m.handlePan(key, m.getMoveSpeed(key))
		return
	}
	m.lastArrow = arrow
	m.report(m.session.KeyDown(arrow, editor.Modifiers{Shift: m.getMoveSpeed(key) > 1}))
}

func (m *model) handlePan(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.view.PanX -= speed
	case "l", "right", "L", "shift+right":
		m.view.PanX += speed
	case "k", "up", "K", "shift+up":
		m.view.PanY -= speed
	case "j", "down", "J", "shift+down":
		m.view.PanY += speed
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return panSpeed
	default:
		return 1
	}
}

// sealNudge ends an arrow-key run. Terminals send no key-up events, so the
// next non-arrow input stands in for one.
func (m *model) sealNudge() {
	if m.lastArrow != editor.KeyNone {
		m.session.KeyUp(m.lastArrow)
		m.lastArrow = editor.KeyNone
	}
}
