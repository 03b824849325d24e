package editor

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// MinNodeSize is the smallest width or height a node may have.
const MinNodeSize = 10.0

// Kind enumerates the component variants a node can be.
type Kind string

const (
	KindButton    Kind = "Button"
	KindInput     Kind = "Input"
	KindListbox   Kind = "Listbox"
	KindTabs      Kind = "Tabs"
	KindDropdown  Kind = "Dropdown"
	KindRadio     Kind = "Radio"
	KindCheckbox  Kind = "Checkbox"
	KindToggle    Kind = "Toggle"
	KindSlider    Kind = "Slider"
	KindAlert     Kind = "Alert"
	KindLoader    Kind = "Loader"
	KindProgress  Kind = "Progress"
	KindTooltip   Kind = "Tooltip"
	KindModal     Kind = "Modal"
	KindPopover   Kind = "Popover"
	KindIcon      Kind = "Icon"
	KindText      Kind = "Text"
	KindImage     Kind = "Image"
	KindContainer Kind = "Container"
	KindAccordion Kind = "Accordion"
	KindBarChart  Kind = "BarChart"
	KindLineChart Kind = "LineChart"
	KindPieChart  Kind = "PieChart"
	KindGroup     Kind = "Group"
	KindMisc      Kind = "Misc"
)

// Kinds lists every kind in toolbox order.
var Kinds = []Kind{
	KindButton, KindInput, KindListbox, KindTabs, KindDropdown, KindRadio,
	KindCheckbox, KindToggle, KindSlider, KindAlert, KindLoader, KindProgress,
	KindTooltip, KindModal, KindPopover, KindIcon, KindText, KindImage,
	KindContainer, KindAccordion, KindBarChart, KindLineChart, KindPieChart,
	KindGroup, KindMisc,
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return lo.Contains(Kinds, k)
}

// IsChart reports whether k is one of the chart variants.
func (k Kind) IsChart() bool {
	return k == KindBarChart || k == KindLineChart || k == KindPieChart
}

// ParseKind resolves a kind name, ignoring case.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Point is a position in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is a width/height pair in canvas units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Clamp raises both dimensions to at least MinNodeSize.
func (s Size) Clamp() Size {
	if s.Width < MinNodeSize {
		s.Width = MinNodeSize
	}
	if s.Height < MinNodeSize {
		s.Height = MinNodeSize
	}
	return s
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFromPoints returns the normalized rectangle spanned by a and b.
func RectFromPoints(a, b Point) Rect {
	r := Rect{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}
	if r.Width < 0 {
		r.X, r.Width = b.X, -r.Width
	}
	if r.Height < 0 {
		r.Y, r.Height = b.Y, -r.Height
	}
	return r
}

// Intersects reports half-open overlap of r and o on both axes.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// Node is one component in the design tree. Position is relative to the
// parent group's origin when ParentID is set, canvas coordinates otherwise.
type Node struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Kind        Kind           `json:"type"`
	Position    Point          `json:"position"`
	Size        Size           `json:"size"`
	Properties  map[string]any `json:"props"`
	Style       map[string]any `json:"styles"`
	Description string         `json:"description"`
	ParentID    string         `json:"parentId,omitempty"`
	Locked      bool           `json:"isLocked,omitempty"`
}

// IsRoot reports whether the node has no parent group.
func (n Node) IsRoot() bool { return n.ParentID == "" }

// BlocksPointer reports whether pointer gestures must leave the node alone.
func (n Node) BlocksPointer() bool { return n.Kind == KindContainer && n.Locked }

// Text returns properties.text, or "" when absent.
func (n Node) Text() string {
	s, _ := n.Properties["text"].(string)
	return s
}

// Clone returns a copy of n that shares no maps or slices with it.
func (n Node) Clone() Node {
	n.Properties = cloneMap(n.Properties)
	n.Style = cloneMap(n.Style)
	return n
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, e := range t {
			out[i] = cloneMap(e)
		}
		return out
	default:
		return v
	}
}

// mergeMap returns a new map holding base overlaid with partial.
func mergeMap(base, partial map[string]any) map[string]any {
	out := cloneMap(base)
	if out == nil {
		out = make(map[string]any, len(partial))
	}
	for k, v := range partial {
		out[k] = cloneValue(v)
	}
	return out
}
