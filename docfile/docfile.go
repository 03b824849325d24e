// Package docfile reads and writes canvas documents as JSON. Two shapes are
// understood: a bare array of components, and a design spec object that
// wraps the components with application and screen descriptions.
package docfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"uicanvas/editor"
)

// DefaultScreenName is written when a spec has no screen name.
const DefaultScreenName = "Main Screen"

var (
	// ErrNoComponents is returned when a file holds no component array.
	ErrNoComponents = errors.New("no component data found")
	// ErrSpecIncomplete is returned when saving a spec without an
	// application name and description.
	ErrSpecIncomplete = errors.New("application name and description are required")
)

// Info names and describes an application or a screen.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Spec is the design spec file layout.
type Spec struct {
	Application Info          `json:"application"`
	Screen      Info          `json:"screen"`
	Components  []editor.Node `json:"components"`

	// HasInfo is set by Decode when the file carried application or screen
	// sections.
	HasInfo bool `json:"-"`
}

// Encode writes nodes as an indented JSON array.
func Encode(w io.Writer, nodes []editor.Node) error {
	if nodes == nil {
		nodes = []editor.Node{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nodes)
}

// EncodeSpec writes a design spec object.
func EncodeSpec(w io.Writer, s Spec) error {
	if strings.TrimSpace(s.Application.Name) == "" || strings.TrimSpace(s.Application.Description) == "" {
		return ErrSpecIncomplete
	}
	if s.Screen.Name == "" {
		s.Screen.Name = DefaultScreenName
	}
	if s.Components == nil {
		s.Components = []editor.Node{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

type rawSpec struct {
	Application *Info           `json:"application"`
	Screen      *Info           `json:"screen"`
	Components  json.RawMessage `json:"components"`
}

// Decode reads either file shape. The returned nodes are not validated;
// hand them to Session.LoadDocument for that.
func Decode(r io.Reader) (Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Spec{}, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Spec{}, ErrNoComponents
	}

	var s Spec
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &s.Components); err != nil {
			return Spec{}, fmt.Errorf("decode components: %w", err)
		}
	case '{':
		var raw rawSpec
		if err := json.Unmarshal(data, &raw); err != nil {
			return Spec{}, fmt.Errorf("decode spec: %w", err)
		}
		if len(raw.Components) == 0 || raw.Components[0] != '[' {
			return Spec{}, ErrNoComponents
		}
		if err := json.Unmarshal(raw.Components, &s.Components); err != nil {
			return Spec{}, fmt.Errorf("decode components: %w", err)
		}
		if raw.Application != nil {
			s.Application = *raw.Application
			s.HasInfo = true
		}
		if raw.Screen != nil {
			s.Screen = *raw.Screen
			s.HasInfo = true
		}
	default:
		return Spec{}, ErrNoComponents
	}

	for i, n := range s.Components {
		if n.ID == "" || n.Kind == "" {
			return Spec{}, fmt.Errorf("component %d: %w", i, ErrNoComponents)
		}
	}
	return s, nil
}

// Save writes nodes to filename as a component array.
func Save(filename string, nodes []editor.Node) error {
	return writeFile(filename, func(w io.Writer) error { return Encode(w, nodes) })
}

// SaveSpec writes s to filename as a design spec.
func SaveSpec(filename string, s Spec) error {
	return writeFile(filename, func(w io.Writer) error { return EncodeSpec(w, s) })
}

// Load reads filename in either shape.
func Load(filename string) (Spec, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Spec{}, err
	}
	defer file.Close()

	s, err := Decode(file)
	if err != nil {
		return Spec{}, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

func writeFile(filename string, encode func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}
