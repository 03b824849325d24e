package render

import (
	"math"

	"uicanvas/editor"
)

// View maps canvas units onto terminal cells.
type View struct {
	Width, Height int // cells
	PanX, PanY    int // cell offset of the top-left corner

	CellWidth, CellHeight float64 // canvas units per cell
}

// Overlay is the transient state drawn on top of the document.
type Overlay struct {
	Selected map[string]bool
	Handles  []editor.Rect

	// Preview outlines a marquee or a rectangle being drawn.
	Preview *editor.Rect

	Editing string // id of the node whose text is being edited
	Draft   string
}

// SessionOverlay collects the selection, resize handles and the active
// gesture of s.
func SessionOverlay(s *editor.Session) Overlay {
	o := Overlay{Selected: make(map[string]bool)}
	for _, id := range s.GetSelection() {
		o.Selected[id] = true
		if r, ok := s.HandleRect(id); ok {
			o.Handles = append(o.Handles, r)
		}
	}
	g := s.Gesture()
	switch g.Phase {
	case editor.Drawing, editor.MarqueeSelecting:
		r := g.Rect()
		o.Preview = &r
	case editor.EditingText:
		o.Editing, o.Draft = g.Target, g.Draft
	}
	return o
}

// Cell converts a canvas point to a grid cell.
func (v View) Cell(p editor.Point) (col, row int) {
	return int(math.Floor(p.X/v.CellWidth)) - v.PanX, int(math.Floor(p.Y/v.CellHeight)) - v.PanY
}

// Point returns the canvas point at the center of a grid cell.
func (v View) Point(col, row int) editor.Point {
	return editor.Point{
		X: (float64(col+v.PanX) + 0.5) * v.CellWidth,
		Y: (float64(row+v.PanY) + 0.5) * v.CellHeight,
	}
}

// cells returns the cell rectangle covering r: the top-left cell and the
// extent, at least 2x2 so a border always shows.
func (v View) cells(r editor.Rect) (x, y, w, h int) {
	x, y = v.Cell(r.Min())
	right := int(math.Ceil((r.X+r.Width)/v.CellWidth)) - v.PanX
	bottom := int(math.Ceil((r.Y+r.Height)/v.CellHeight)) - v.PanY
	return x, y, max(right-x, 2), max(bottom-y, 2)
}

type border struct {
	corner, horizontal, vertical rune
	fill                         bool
}

var (
	plainBorder    = border{'+', '-', '|', true}
	selectedBorder = border{'#', '#', '#', true}
	groupBorder    = border{'+', '.', ':', false}
	lockedBorder   = border{'+', '=', '|', true}
)

func borderFor(n editor.Node, selected bool) border {
	switch {
	case selected:
		b := selectedBorder
		b.fill = n.Kind != editor.KindGroup
		return b
	case n.Kind == editor.KindGroup:
		return groupBorder
	case n.BlocksPointer():
		return lockedBorder
	}
	return plainBorder
}

// Grid renders doc into rows of text, bottom to top in paint order.
func Grid(doc editor.Document, v View, o Overlay) []string {
	if v.Height < 1 {
		v.Height = 1
	}
	if v.Width < 1 {
		v.Width = 1
	}
	if v.CellWidth <= 0 || v.CellHeight <= 0 {
		v.CellWidth, v.CellHeight = 8, 16
	}

	canvas := make([][]rune, v.Height)
	for i := range canvas {
		canvas[i] = make([]rune, v.Width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, n := range doc.PaintOrder() {
		x, y, w, h := v.cells(doc.AbsoluteRect(n.ID))
		label := Label(n)
		if n.ID == o.Editing {
			label = o.Draft + "█"
		}
		drawBoxAt(canvas, x, y, w, h, borderFor(n, o.Selected[n.ID]), label)
	}

	if o.Preview != nil {
		x, y, w, h := v.cells(*o.Preview)
		drawBoxAt(canvas, x, y, w, h, border{'.', '.', '.', false}, "")
	}
	for _, r := range o.Handles {
		// Handles sit on a bottom-right corner; mark the box's last cell.
		col := int(math.Ceil((r.X+r.Width/2)/v.CellWidth)) - 1 - v.PanX
		row := int(math.Ceil((r.Y+r.Height/2)/v.CellHeight)) - 1 - v.PanY
		set(canvas, col, row, 'o')
	}

	lines := make([]string, len(canvas))
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func set(canvas [][]rune, x, y int, r rune) {
	if y >= 0 && y < len(canvas) && x >= 0 && x < len(canvas[y]) {
		canvas[y][x] = r
	}
}

func drawBoxAt(canvas [][]rune, boxX, boxY, width, height int, b border, label string) {
	for y := boxY; y < boxY+height; y++ {
		for x := boxX; x < boxX+width; x++ {
			switch {
			case (y == boxY || y == boxY+height-1) && (x == boxX || x == boxX+width-1):
				set(canvas, x, y, b.corner)
			case y == boxY || y == boxY+height-1:
				set(canvas, x, y, b.horizontal)
			case x == boxX || x == boxX+width-1:
				set(canvas, x, y, b.vertical)
			case b.fill:
				set(canvas, x, y, ' ')
			}
		}
	}

	// Label on the first interior row, or on the top border of a flat box.
	textY := boxY + 1
	if height <= 2 {
		textY = boxY
	}
	maxWidth := width - 2
	i := 0
	for _, char := range label {
		if i >= maxWidth {
			break
		}
		set(canvas, boxX+1+i, textY, char)
		i++
	}
}
