// Package render draws canvas documents: as a text grid for the terminal
// and plain-text export, and as PNG images.
package render

import (
	"fmt"
	"strings"

	"uicanvas/editor"
)

// Label is the one-line summary shown inside a node's box.
func Label(n editor.Node) string {
	p := n.Properties
	switch n.Kind {
	case editor.KindButton:
		return "[ " + str(p["text"], n.Name) + " ]"
	case editor.KindInput:
		return "> " + str(p["placeholder"], "")
	case editor.KindCheckbox:
		return check(p["checked"], "[x] ", "[ ] ") + str(p["label"], n.Name)
	case editor.KindRadio:
		return check(p["checked"], "(*) ", "( ) ") + str(p["label"], n.Name)
	case editor.KindToggle:
		return check(p["checked"], "[on] ", "[off] ") + str(p["label"], n.Name)
	case editor.KindSlider:
		return fmt.Sprintf("--o-- %v", p["value"])
	case editor.KindProgress:
		return fmt.Sprintf("[###   ] %v%%", p["value"])
	case editor.KindTabs:
		return strings.Join(strs(p["tabs"]), " | ")
	case editor.KindDropdown:
		return str(p["placeholder"], "Select...") + " v"
	case editor.KindListbox:
		return strings.Join(strs(p["options"]), ", ")
	case editor.KindAccordion:
		return "> " + strings.Join(strs(p["items"]), " > ")
	case editor.KindBarChart, editor.KindLineChart, editor.KindPieChart:
		data, _ := p["data"].([]any)
		return fmt.Sprintf("%s (%d points)", str(p["title"], n.Name), len(data))
	case editor.KindImage:
		return "[image]"
	case editor.KindIcon:
		return "* " + str(p["icon"], "")
	case editor.KindLoader:
		return "..."
	case editor.KindGroup:
		return n.Name
	}
	for _, key := range []string{"text", "title", "label"} {
		if s := str(p[key], ""); s != "" {
			return s
		}
	}
	return n.Name
}

func str(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func check(v any, on, off string) string {
	if b, _ := v.(bool); b {
		return on
	}
	return off
}

// strs flattens a list prop. Map entries contribute their title.
func strs(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			switch e := e.(type) {
			case string:
				out = append(out, e)
			case map[string]any:
				out = append(out, str(e["title"], ""))
			default:
				out = append(out, fmt.Sprint(e))
			}
		}
		return out
	}
	return nil
}
