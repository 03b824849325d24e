package editor

import "math/rand"

type kindDefaults struct {
	props  map[string]any
	styles map[string]any
}

var baseStyle = map[string]any{
	"backgroundColor": "#FFFFFF",
	"color":           "#111827",
	"fontSize":        14,
	"borderRadius":    4,
}

var defaults = map[Kind]kindDefaults{
	KindButton:    {props: map[string]any{"text": "Button"}, styles: map[string]any{"backgroundColor": "#3B82F6", "color": "#FFFFFF"}},
	KindInput:     {props: map[string]any{"placeholder": "Enter text..."}},
	KindListbox:   {props: map[string]any{"options": []any{"Option 1", "Option 2", "Option 3"}}},
	KindTabs:      {props: map[string]any{"tabs": []any{"Tab 1", "Tab 2", "Tab 3"}, "activeTab": 0}},
	KindDropdown:  {props: map[string]any{"options": []any{"Option 1", "Option 2", "Option 3"}, "placeholder": "Select..."}},
	KindRadio:     {props: map[string]any{"label": "Radio", "checked": false}},
	KindCheckbox:  {props: map[string]any{"label": "Checkbox", "checked": false}},
	KindToggle:    {props: map[string]any{"label": "Toggle", "checked": false}},
	KindSlider:    {props: map[string]any{"value": 50, "min": 0, "max": 100}},
	KindAlert:     {props: map[string]any{"text": "Alert message", "variant": "info"}},
	KindLoader:    {props: map[string]any{}},
	KindProgress:  {props: map[string]any{"value": 60}},
	KindTooltip:   {props: map[string]any{"text": "Tooltip"}},
	KindModal:     {props: map[string]any{"title": "Modal", "text": "Modal content"}},
	KindPopover:   {props: map[string]any{"text": "Popover"}},
	KindIcon:      {props: map[string]any{"icon": "star"}},
	KindText:      {props: map[string]any{"text": "Text"}, styles: map[string]any{"backgroundColor": "transparent"}},
	KindImage:     {props: map[string]any{"src": ""}},
	KindContainer: {props: map[string]any{}, styles: map[string]any{"backgroundColor": "#F3F4F6", "borderWidth": 1}},
	KindAccordion: {props: map[string]any{"items": []any{
		map[string]any{"title": "Section 1", "content": "Content 1"},
		map[string]any{"title": "Section 2", "content": "Content 2"},
	}}},
	KindBarChart:  {props: map[string]any{"title": "Bar chart"}},
	KindLineChart: {props: map[string]any{"title": "Line chart"}},
	KindPieChart:  {props: map[string]any{"title": "Pie chart"}},
	KindGroup:     {props: map[string]any{}, styles: map[string]any{"backgroundColor": "transparent"}},
	KindMisc:      {props: map[string]any{}},
}

// DefaultProperties returns a fresh copy of the default props for k.
func DefaultProperties(k Kind) map[string]any {
	props := cloneMap(defaults[k].props)
	if props == nil {
		props = make(map[string]any)
	}
	return props
}

// DefaultStyle returns a fresh copy of the default styles for k.
func DefaultStyle(k Kind) map[string]any {
	return mergeMap(baseStyle, defaults[k].styles)
}

var chartCategories = []string{"A", "B", "C", "D", "E", "F", "G"}

// chartData generates 4 to 7 points with two series.
func chartData(r *rand.Rand) []any {
	count := r.Intn(4) + 4
	data := make([]any, 0, count)
	for i := 0; i < count; i++ {
		data = append(data, map[string]any{
			"name":   chartCategories[i],
			"value1": r.Intn(80) + 20,
			"value2": r.Intn(60) + 15,
		})
	}
	return data
}

// PresetType distinguishes presets that change behavior from purely visual ones.
type PresetType string

const (
	PresetStyle      PresetType = "style"
	PresetFunctional PresetType = "functional"
)

// Preset is a named bundle of styles and props applied in one step.
type Preset struct {
	Name   string         `json:"name"`
	Styles map[string]any `json:"styles"`
	Props  map[string]any `json:"props,omitempty"`
	Type   PresetType     `json:"type,omitempty"`
}

func applyPreset(n Node, p Preset) Node {
	n.Style = mergeMap(n.Style, p.Styles)
	base := n.Properties
	if n.Kind == KindButton && p.Type == PresetFunctional {
		base = DefaultProperties(n.Kind)
	}
	n.Properties = mergeMap(base, p.Props)
	return n
}
