package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var helpLines = []string{
	"uicanvas Help",
	"=============",
	"",
	"Mouse:",
	"------",
	"  Click            Select a component (Shift/Ctrl+click adds or removes)",
	"  Drag             Move the selection, or draw a marquee on empty canvas",
	"  Drag corner o    Resize the selected component",
	"  Double click     Edit the text of a Text component",
	"  Wheel            Scroll the canvas",
	"",
	"Tools:",
	"------",
	"  1-9              Pick a creation tool, then drag to draw:",
	"                   Button Text Input Checkbox Dropdown Container Image Slider BarChart",
	"  t                Cycle through every component kind",
	"  0                Drop the current tool",
	"",
	"Editing:",
	"--------",
	"  ←/↓/↑/→          Nudge the selected component",
	"  Shift+arrows     Nudge further",
	"  x/Delete         Delete the selection",
	"  Ctrl+D           Duplicate",
	"  g / Ctrl+G       Group the selection",
	"  G                Ungroup the selected group",
	"  [ ]              Move down / up one layer",
	"  { }              Send to back / bring to front",
	"  r                Rename",
	"  Ctrl+L           Lock or unlock a container",
	"  c / p            Copy / paste through the system clipboard",
	"",
	"Navigation:",
	"-----------",
	"  h/j/k/l          Pan the canvas",
	"  Shift+h/j/k/l    Pan faster",
	"  z                Toggle pan mode (arrows pan instead of nudging)",
	"  Tab              Show or hide the layers panel",
	"",
	"File Operations:",
	"----------------",
	"  s                Save document (.json)",
	"  S                Export as PNG image",
	"  T                Export as visual text",
	"  o                Open a saved document",
	"  n                Start a new canvas",
	"",
	"General:",
	"--------",
	"  u / Ctrl+Z       Undo",
	"  U / Ctrl+Y       Redo",
	"  Esc              Cancel the gesture, or clear tool and selection",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m *model) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)

	startLine := m.helpScroll
	if startLine >= len(helpLines) {
		startLine = max(len(helpLines)-visibleHeight, 0)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
