package editor

import (
	"errors"
	"reflect"
	"testing"
)

func TestDeleteGroupCascades(t *testing.T) {
	s := newTestSession(t)
	a := mustCreate(t, s, KindButton, 0, 0, 20, 20)
	b := mustCreate(t, s, KindText, 50, 0, 20, 20)
	inner, err := s.Group([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	c := mustCreate(t, s, KindInput, 0, 100, 40, 20)
	outer, err := s.Group([]string{inner, c})
	if err != nil {
		t.Fatal(err)
	}
	keep := mustCreate(t, s, KindIcon, 300, 300, 20, 20)

	if err := s.Delete(outer); err != nil {
		t.Fatal(err)
	}
	if got := ids(s.Document()); !reflect.DeepEqual(got, []string{keep}) {
		t.Errorf("document = %v, want [%s]", got, keep)
	}
	for _, n := range s.Document() {
		if n.ParentID != "" {
			t.Errorf("node %s still references %s", n.ID, n.ParentID)
		}
	}
	if got := pastDepth(s); got != 7 {
		t.Errorf("past depth = %d, want 7", got)
	}
}

func TestDeleteRemovesFromSelection(t *testing.T) {
	s := newTestSession(t)
	a := mustCreate(t, s, KindButton, 0, 0, 20, 20)
	b := mustCreate(t, s, KindButton, 50, 0, 20, 20)
	s.SetSelection(a, b)
	s.Delete(a)
	if got := s.GetSelection(); !reflect.DeepEqual(got, []string{b}) {
		t.Errorf("selection = %v, want [%s]", got, b)
	}
}

func TestDuplicateGroup(t *testing.T) {
	s := newTestSession(t)
	a := mustCreate(t, s, KindButton, 10, 10, 20, 20)
	b := mustCreate(t, s, KindText, 60, 40, 20, 20)
	g, _ := s.Group([]string{a, b})
	original := map[string]bool{a: true, b: true, g: true}

	clone, err := s.Duplicate(g)
	if err != nil {
		t.Fatal(err)
	}
	if original[clone] {
		t.Fatalf("clone reused id %s", clone)
	}
	if got := s.GetSelection(); !reflect.DeepEqual(got, []string{clone}) {
		t.Errorf("selection = %v, want [%s]", got, clone)
	}

	src, dup := mustGet(t, s, g), mustGet(t, s, clone)
	if want := src.Position.Add(Point{20, 20}); dup.Position != want {
		t.Errorf("clone position = %v, want %v", dup.Position, want)
	}
	if dup.Name != src.Name+" copy" {
		t.Errorf("clone name = %q", dup.Name)
	}

	srcKids, dupKids := s.ListChildren(g), s.ListChildren(clone)
	if len(dupKids) != len(srcKids) {
		t.Fatalf("clone has %d children, want %d", len(dupKids), len(srcKids))
	}
	for i := range srcKids {
		if original[dupKids[i].ID] {
			t.Errorf("clone child reused id %s", dupKids[i].ID)
		}
		if dupKids[i].Position != srcKids[i].Position {
			t.Errorf("child %d position = %v, want %v", i, dupKids[i].Position, srcKids[i].Position)
		}
	}
	if len(s.Document()) != 6 {
		t.Errorf("document has %d nodes, want 6", len(s.Document()))
	}
}

func TestDuplicateNestedKeepsParent(t *testing.T) {
	s := newTestSession(t)
	a := mustCreate(t, s, KindButton, 10, 10, 20, 20)
	b := mustCreate(t, s, KindText, 60, 40, 20, 20)
	g, _ := s.Group([]string{a, b})

	clone, err := s.Duplicate(a)
	if err != nil {
		t.Fatal(err)
	}
	n := mustGet(t, s, clone)
	if n.ParentID != g {
		t.Errorf("clone parent = %q, want %s", n.ParentID, g)
	}
}

func TestGroupUngroupRoundTrip(t *testing.T) {
	s := newTestSession(t)
	a := mustCreate(t, s, KindButton, 10, 20, 30, 40)
	b := mustCreate(t, s, KindText, 100, 50, 20, 20)

	g, err := s.Group([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	gn := mustGet(t, s, g)
	if gn.Kind != KindGroup || gn.Position != (Point{10, 20}) || gn.Size != (Size{110, 50}) {
		t.Fatalf("group = %+v", gn)
	}
	if got := mustGet(t, s, b).Position; got != (Point{90, 30}) {
		t.Errorf("b relative position = %v, want {90 30}", got)
	}
	if got := s.GetSelection(); !reflect.DeepEqual(got, []string{g}) {
		t.Errorf("selection = %v, want [%s]", got, g)
	}

	children, err := s.Ungroup(g)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(children, []string{a, b}) {
		t.Errorf("children = %v", children)
	}
	if got := mustGet(t, s, a); got.Position != (Point{10, 20}) || got.ParentID != "" {
		t.Errorf("a = %v parent %q, want {10 20} at root", got.Position, got.ParentID)
	}
	if got := mustGet(t, s, b).Position; got != (Point{100, 50}) {
		t.Errorf("b = %v, want {100 50}", got)
	}
	if _, ok := s.GetNode(g); ok {
		t.Error("group shell survived ungroup")
	}
	if got := s.GetSelection(); !reflect.DeepEqual(got, []string{a, b}) {
		t.Errorf("selection = %v", got)
	}
}

func TestUngroupNestedMovesIntoOuterGroup(t *testing.T) {
	s := newTestSession(t)
	if err := s.LoadDocument(nestedDoc()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Ungroup("g2"); err != nil {
		t.Fatal(err)
	}
	b := mustGet(t, s, "b")
	if b.ParentID != "g1" || b.Position != (Point{25, 25}) {
		t.Errorf("b = parent %q at %v, want g1 at {25 25}", b.ParentID, b.Position)
	}
	if got := s.Document().AbsolutePosition("b"); got != (Point{125, 125}) {
		t.Errorf("absolute position = %v, want {125 125}", got)
	}
}

func TestGroupRejections(t *testing.T) {
	s := newTestSession(t)
	a := mustCreate(t, s, KindButton, 0, 0, 20, 20)
	b := mustCreate(t, s, KindButton, 50, 0, 20, 20)
	c := mustCreate(t, s, KindButton, 100, 0, 20, 20)
	if _, err := s.Group([]string{a}); !errors.Is(err, ErrRejected) {
		t.Errorf("single node: error = %v, want ErrRejected", err)
	}
	if _, err := s.Group([]string{a, b}); err != nil {
		t.Fatal(err)
	}

	before := s.Document()
	if _, err := s.Group([]string{a, c}); !errors.Is(err, ErrRejected) {
		t.Errorf("grouped member: error = %v, want ErrRejected", err)
	}
	if !reflect.DeepEqual(s.Document(), before) {
		t.Error("rejected group changed the document")
	}
	if _, err := s.Ungroup(c); !errors.Is(err, ErrRejected) {
		t.Errorf("ungroup non-group: error = %v, want ErrRejected", err)
	}
}

func TestReorderTopIsIdempotent(t *testing.T) {
	s := newTestSession(t)
	a := mustCreate(t, s, KindButton, 0, 0, 20, 20)
	b := mustCreate(t, s, KindButton, 5, 5, 20, 20)
	c := mustCreate(t, s, KindButton, 10, 10, 20, 20)

	s.Reorder(a, Top)
	want := []string{b, c, a}
	if got := ids(s.Document()); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	depth := pastDepth(s)
	s.Reorder(a, Top)
	if got := ids(s.Document()); !reflect.DeepEqual(got, want) {
		t.Errorf("second top: order = %v, want %v", got, want)
	}
	if pastDepth(s) != depth {
		t.Error("no-op reorder recorded a step")
	}
}

func TestReorderSteps(t *testing.T) {
	s := newTestSession(t)
	a := mustCreate(t, s, KindButton, 0, 0, 20, 20)
	b := mustCreate(t, s, KindButton, 5, 5, 20, 20)
	c := mustCreate(t, s, KindButton, 10, 10, 20, 20)

	tests := []struct {
		id   string
		dir  Direction
		want []string
	}{
		{c, Up, []string{a, b, c}},
		{a, Down, []string{a, b, c}},
		{a, Up, []string{b, a, c}},
		{c, Down, []string{b, c, a}},
		{a, Bottom, []string{a, b, c}},
	}
	for _, tt := range tests {
		if err := s.Reorder(tt.id, tt.dir); err != nil {
			t.Fatal(err)
		}
		if got := ids(s.Document()); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Reorder(%s, %s) = %v, want %v", tt.id, tt.dir, got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("TOP"); err != nil || d != Top {
		t.Errorf("ParseDirection(TOP) = %q, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("expected an error for an unknown direction")
	}
}

func TestPasteRemapsFragment(t *testing.T) {
	s := newTestSession(t)
	frag := []Node{
		node("g", KindGroup, "", 10, 10, 100, 50),
		node("a", KindButton, "g", 5, 5, 40, 20),
		node("orphan", KindText, "elsewhere", 200, 0, 40, 20),
	}
	roots, err := s.Paste(frag)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"n1", "n3"}; !reflect.DeepEqual(roots, want) {
		t.Fatalf("roots = %v, want %v", roots, want)
	}
	if g := mustGet(t, s, "n1"); g.Position != (Point{30, 30}) || !g.IsRoot() {
		t.Errorf("group at %v parent %q", g.Position, g.ParentID)
	}
	if a := mustGet(t, s, "n2"); a.ParentID != "n1" || a.Position != (Point{5, 5}) {
		t.Errorf("child parent %q at %v", a.ParentID, a.Position)
	}
	if o := mustGet(t, s, "n3"); !o.IsRoot() || o.Position != (Point{220, 20}) {
		t.Errorf("orphan parent %q at %v", o.ParentID, o.Position)
	}
	if got := s.GetSelection(); !reflect.DeepEqual(got, roots) {
		t.Errorf("selection = %v, want %v", got, roots)
	}
	if got := pastDepth(s); got != 1 {
		t.Errorf("past depth = %d, want 1", got)
	}
	if frag[1].ParentID != "g" {
		t.Error("Paste modified its input")
	}
}

func TestPasteRejectsBadFragment(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.Paste(nil); !errors.Is(err, ErrRejected) {
		t.Errorf("empty paste error = %v", err)
	}
	dup := []Node{node("a", KindButton, "", 0, 0, 10, 10), node("a", KindText, "", 0, 0, 10, 10)}
	var invalid *InvalidDocumentError
	if _, err := s.Paste(dup); !errors.As(err, &invalid) {
		t.Errorf("duplicate id paste error = %v", err)
	}
	if s.CanUndo() {
		t.Error("rejected paste recorded a step")
	}
}

func TestReorderStepsPastSiblings(t *testing.T) {
	s := newTestSession(t)
	err := s.LoadDocument([]Node{
		node("g", KindGroup, "", 0, 0, 100, 100),
		node("c", KindButton, "g", 0, 0, 20, 20),
		node("r", KindButton, "", 50, 50, 20, 20),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Reorder("c", Up); err != nil {
		t.Fatal(err)
	}
	if pastDepth(s) != 0 {
		t.Error("topmost child moved up")
	}

	if err := s.Reorder("r", Down); err != nil {
		t.Fatal(err)
	}
	if got, want := ids(s.Document()), []string{"r", "g", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if got, want := ids(s.PaintOrder()), []string{"r", "g", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("paint order = %v, want %v", got, want)
	}
}
