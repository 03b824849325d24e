package editor

import (
	"errors"
	"strings"
	"testing"
)

func hasProblem(problems []ValidationError, id, fragment string) bool {
	for _, p := range problems {
		if p.NodeID == id && strings.Contains(p.Message, fragment) {
			return true
		}
	}
	return false
}

func TestValidateAcceptsNestedDocument(t *testing.T) {
	if problems := Validate(nestedDoc()); len(problems) != 0 {
		t.Errorf("unexpected problems: %v", problems)
	}
}

func TestValidateReportsProblems(t *testing.T) {
	tests := []struct {
		name     string
		doc      Document
		id       string
		fragment string
	}{
		{
			name:     "duplicate id",
			doc:      Document{node("a", KindButton, "", 0, 0, 10, 10), node("a", KindText, "", 0, 0, 10, 10)},
			id:       "a",
			fragment: "duplicate",
		},
		{
			name:     "dangling parent",
			doc:      Document{node("a", KindButton, "ghost", 0, 0, 10, 10)},
			id:       "a",
			fragment: "does not exist",
		},
		{
			name:     "non-group parent",
			doc:      Document{node("p", KindContainer, "", 0, 0, 50, 50), node("a", KindButton, "p", 0, 0, 10, 10)},
			id:       "a",
			fragment: "not a Group",
		},
		{
			name:     "self parent",
			doc:      Document{node("a", KindGroup, "a", 0, 0, 10, 10)},
			id:       "a",
			fragment: "own parent",
		},
		{
			name:     "cycle",
			doc:      Document{node("g1", KindGroup, "g2", 0, 0, 10, 10), node("g2", KindGroup, "g1", 0, 0, 10, 10)},
			id:       "g1",
			fragment: "cycle",
		},
		{
			name:     "too small",
			doc:      Document{node("a", KindButton, "", 0, 0, 4, 40)},
			id:       "a",
			fragment: "below minimum",
		},
		{
			name:     "unknown kind",
			doc:      Document{node("a", Kind("Widget"), "", 0, 0, 10, 10)},
			id:       "a",
			fragment: "unknown kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := Validate(tt.doc)
			if !hasProblem(problems, tt.id, tt.fragment) {
				t.Errorf("Validate = %v, want a problem on %s containing %q", problems, tt.id, tt.fragment)
			}
		})
	}
}

func TestLoadDocumentRejectsInvalid(t *testing.T) {
	s := newTestSession(t)
	mustCreate(t, s, KindButton, 0, 0, 50, 20)
	before := s.Document()

	err := s.LoadDocument([]Node{node("a", KindButton, "ghost", 0, 0, 10, 10)})
	var invalid *InvalidDocumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("LoadDocument error = %v, want *InvalidDocumentError", err)
	}
	if len(s.Document()) != len(before) || s.Document()[0].ID != before[0].ID {
		t.Error("a refused load must leave the document alone")
	}
}

func TestLoadDocumentClearsState(t *testing.T) {
	s := newTestSession(t)
	mustCreate(t, s, KindButton, 0, 0, 50, 20)

	if err := s.LoadDocument(nestedDoc()); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("load should clear history")
	}
	if len(s.GetSelection()) != 0 {
		t.Errorf("selection = %v, want empty", s.GetSelection())
	}
	if got := len(s.Document()); got != 5 {
		t.Errorf("document has %d nodes, want 5", got)
	}
}
