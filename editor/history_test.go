package editor

import (
	"reflect"
	"testing"
)

func appendNode(n Node) Transform {
	return func(d Document) Document {
		return append(d[:len(d):len(d)], n)
	}
}

func TestHistoryUndoRedoRestores(t *testing.T) {
	h := NewHistory(Document{})
	h.Apply(appendNode(node("a", KindButton, "", 0, 0, 10, 10)), false)
	afterA := h.Current().Clone()
	h.Apply(appendNode(node("b", KindButton, "", 0, 0, 10, 10)), false)
	afterB := h.Current().Clone()

	if !h.Undo() {
		t.Fatal("Undo returned false with a recorded step")
	}
	if !reflect.DeepEqual(h.Current(), afterA) {
		t.Errorf("after undo got %v, want %v", ids(h.Current()), ids(afterA))
	}
	if !h.Redo() {
		t.Fatal("Redo returned false after undo")
	}
	if !reflect.DeepEqual(h.Current(), afterB) {
		t.Errorf("after redo got %v, want %v", ids(h.Current()), ids(afterB))
	}
}

func TestHistoryEmptyStacksAreNoops(t *testing.T) {
	h := NewHistory(Document{})
	if h.Undo() || h.Redo() {
		t.Error("undo/redo on empty history should report false")
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("empty history should not offer undo or redo")
	}
}

func TestHistoryCoalescedRunIsOneStep(t *testing.T) {
	h := NewHistory(Document{node("a", KindButton, "", 0, 0, 10, 10)})
	h.Apply(setPosition("a", Point{1, 1}), false)
	before := h.Current().Clone()

	for i := 0; i < 50; i++ {
		h.Apply(setPosition("a", Point{float64(i), float64(i)}), true)
	}
	h.Apply(setPosition("a", Point{49, 49}), false)

	if past, _ := h.Depth(); past != 2 {
		t.Fatalf("past depth = %d, want 2", past)
	}
	h.Undo()
	if !reflect.DeepEqual(h.Current(), before) {
		t.Errorf("undo of coalesced run got %+v, want %+v", h.Current()[0].Position, before[0].Position)
	}
}

func TestHistorySealStartsNewStep(t *testing.T) {
	h := NewHistory(Document{node("a", KindButton, "", 0, 0, 10, 10)})
	h.Apply(setPosition("a", Point{1, 0}), true)
	h.Seal()
	h.Apply(setPosition("a", Point{2, 0}), true)
	if past, _ := h.Depth(); past != 2 {
		t.Errorf("past depth = %d, want 2", past)
	}
}

func TestHistoryApplyClearsFuture(t *testing.T) {
	h := NewHistory(Document{})
	h.Apply(appendNode(node("a", KindButton, "", 0, 0, 10, 10)), false)
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("expected redo after undo")
	}
	h.Apply(appendNode(node("b", KindButton, "", 0, 0, 10, 10)), false)
	if h.CanRedo() {
		t.Error("apply should clear the redo stack")
	}
}

func TestHistoryResetForgets(t *testing.T) {
	h := NewHistory(Document{})
	h.Apply(appendNode(node("a", KindButton, "", 0, 0, 10, 10)), false)
	h.Reset(Document{node("z", KindText, "", 0, 0, 10, 10)})
	if h.CanUndo() || h.CanRedo() {
		t.Error("reset should clear both stacks")
	}
	if got := ids(h.Current()); !reflect.DeepEqual(got, []string{"z"}) {
		t.Errorf("current = %v, want [z]", got)
	}
}
