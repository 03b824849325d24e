package editor

import (
	"errors"
	"reflect"
	"testing"
)

func TestCreateNodeDefaults(t *testing.T) {
	s := newTestSession(t)
	id := mustCreate(t, s, KindButton, 10, 20, 80, 30)

	n := mustGet(t, s, id)
	if n.Name != "Button1" {
		t.Errorf("name = %q, want Button1", n.Name)
	}
	if n.Text() != "Button" {
		t.Errorf("text = %q, want Button", n.Text())
	}
	if n.Style["backgroundColor"] != "#3B82F6" {
		t.Errorf("backgroundColor = %v, want #3B82F6", n.Style["backgroundColor"])
	}
	if got := s.GetSelection(); !reflect.DeepEqual(got, []string{id}) {
		t.Errorf("selection = %v, want [%s]", got, id)
	}

	if c := mustGet(t, s, mustCreate(t, s, KindContainer, 0, 60, 80, 30)); c.Locked {
		t.Error("new container is locked")
	}
	second := mustCreate(t, s, KindButton, 0, 0, 80, 30)
	if got := mustGet(t, s, second).Name; got != "Button2" {
		t.Errorf("second name = %q, want Button2", got)
	}
}

func TestCreateNodeClampsSize(t *testing.T) {
	s := newTestSession(t)
	id := mustCreate(t, s, KindText, 0, 0, 3, 50)
	if got := mustGet(t, s, id).Size; got != (Size{MinNodeSize, 50}) {
		t.Errorf("size = %v, want {10 50}", got)
	}
}

func TestCreateChartGeneratesData(t *testing.T) {
	s := newTestSession(t)
	id := mustCreate(t, s, KindBarChart, 0, 0, 200, 100)
	data, ok := mustGet(t, s, id).Properties["data"].([]any)
	if !ok {
		t.Fatal("chart has no data")
	}
	if len(data) < 4 || len(data) > 7 {
		t.Errorf("chart has %d points, want 4 to 7", len(data))
	}
	for _, p := range data {
		v := p.(map[string]any)["value1"].(int)
		if v < 20 || v > 99 {
			t.Errorf("value1 = %d, want 20..99", v)
		}
	}
}

func TestCreateNodeRejectsUnknownKind(t *testing.T) {
	s := newTestSession(t)
	_, err := s.CreateNode(Kind("Widget"), Point{}, Size{20, 20})
	if !errors.Is(err, ErrRejected) {
		t.Errorf("error = %v, want ErrRejected", err)
	}
	if len(s.Document()) != 0 {
		t.Error("rejected create changed the document")
	}
}

func TestUpdatePropertiesMerges(t *testing.T) {
	s := newTestSession(t)
	id := mustCreate(t, s, KindSlider, 0, 0, 100, 20)
	if err := s.UpdateProperties(id, map[string]any{"value": 75}); err != nil {
		t.Fatal(err)
	}
	n := mustGet(t, s, id)
	if n.Properties["value"] != 75 || n.Properties["max"] != 100 {
		t.Errorf("props = %v, want value 75 and max 100", n.Properties)
	}

	n.Properties["value"] = 1
	if mustGet(t, s, id).Properties["value"] != 75 {
		t.Error("GetNode returned a node sharing maps with the document")
	}
}

func TestMutationsRejectMissingNode(t *testing.T) {
	s := newTestSession(t)
	errs := []error{
		s.UpdateProperties("nope", nil),
		s.UpdateStyle("nope", nil),
		s.UpdatePosition("nope", Point{}, false),
		s.UpdateSize("nope", Size{}, false),
		s.Rename("nope", "x"),
		s.SetDescription("nope", "x"),
		s.ToggleLock("nope"),
		s.Delete("nope"),
		s.Reorder("nope", Top),
	}
	for i, err := range errs {
		if !errors.Is(err, ErrRejected) {
			t.Errorf("call %d: error = %v, want ErrRejected", i, err)
		}
	}
	if s.CanUndo() {
		t.Error("rejected mutations recorded history")
	}
}

func TestUpdatePositionCoalesces(t *testing.T) {
	s := newTestSession(t)
	id := mustCreate(t, s, KindButton, 0, 0, 50, 20)
	for i := 1; i <= 5; i++ {
		s.UpdatePosition(id, Point{float64(i), 0}, true)
	}
	s.UpdatePosition(id, Point{5, 0}, false)

	if got := pastDepth(s); got != 2 {
		t.Fatalf("past depth = %d, want 2", got)
	}
	s.Undo()
	if got := mustGet(t, s, id).Position; got != (Point{0, 0}) {
		t.Errorf("position after undo = %v, want origin", got)
	}
}

func TestDiscreteEditSealsOpenRun(t *testing.T) {
	s := newTestSession(t)
	id := mustCreate(t, s, KindButton, 0, 0, 50, 20)
	s.UpdatePosition(id, Point{30, 30}, true)
	s.Rename(id, "Primary")

	if got := pastDepth(s); got != 3 {
		t.Fatalf("past depth = %d, want 3", got)
	}
	s.Undo()
	n := mustGet(t, s, id)
	if n.Name != "Button1" || n.Position != (Point{30, 30}) {
		t.Errorf("after undo got name %q at %v, want Button1 at {30 30}", n.Name, n.Position)
	}
}

func TestUndoPrunesSelection(t *testing.T) {
	s := newTestSession(t)
	mustCreate(t, s, KindButton, 0, 0, 50, 20)
	s.Undo()
	if got := s.GetSelection(); len(got) != 0 {
		t.Errorf("selection = %v, want empty", got)
	}
	s.Redo()
	if len(s.Document()) != 1 {
		t.Error("redo did not restore the node")
	}
}

func TestSetSelectionDropsMissing(t *testing.T) {
	s := newTestSession(t)
	a := mustCreate(t, s, KindButton, 0, 0, 50, 20)
	s.SetSelection(a, "ghost", a)
	if got := s.GetSelection(); !reflect.DeepEqual(got, []string{a}) {
		t.Errorf("selection = %v, want [%s]", got, a)
	}
	s.ToggleMember(a)
	if got := s.GetSelection(); len(got) != 0 {
		t.Errorf("selection after toggle = %v, want empty", got)
	}
}

func TestToggleLockAndDescription(t *testing.T) {
	s := newTestSession(t)
	id := mustCreate(t, s, KindContainer, 0, 0, 200, 200)
	s.ToggleLock(id)
	s.SetDescription(id, "sidebar")
	n := mustGet(t, s, id)
	if !n.Locked || n.Description != "sidebar" {
		t.Errorf("got locked=%v description=%q", n.Locked, n.Description)
	}
	if !n.BlocksPointer() {
		t.Error("locked container should block pointer input")
	}
}

func TestApplyFunctionalPresetResetsButtonProps(t *testing.T) {
	s := newTestSession(t)
	id := mustCreate(t, s, KindButton, 0, 0, 80, 30)
	s.UpdateProperties(id, map[string]any{"text": "Buy", "extra": true})

	p := Preset{
		Name:   "Submit",
		Type:   PresetFunctional,
		Styles: map[string]any{"backgroundColor": "#10B981"},
		Props:  map[string]any{"text": "Submit"},
	}
	if err := s.ApplyPreset(id, p); err != nil {
		t.Fatal(err)
	}
	n := mustGet(t, s, id)
	if n.Text() != "Submit" {
		t.Errorf("text = %q, want Submit", n.Text())
	}
	if _, ok := n.Properties["extra"]; ok {
		t.Error("functional preset kept a stale prop")
	}
	if n.Style["backgroundColor"] != "#10B981" || n.Style["color"] != "#FFFFFF" {
		t.Errorf("styles = %v", n.Style)
	}
}

func TestListRootNodesReturnsCopies(t *testing.T) {
	s := newTestSession(t)
	if err := s.LoadDocument(nestedDoc()); err != nil {
		t.Fatal(err)
	}
	roots := s.ListRootNodes()
	if got, want := ids(roots), []string{"g1", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("roots = %v, want %v", got, want)
	}
	roots[0].Name = "changed"
	if mustGet(t, s, "g1").Name != "g1" {
		t.Error("ListRootNodes leaked document nodes")
	}
	if got, want := ids(s.ListChildren("g2")), []string{"b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
}
