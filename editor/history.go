package editor

// History wraps the current document with snapshot undo/redo. Continuous
// edits (a live drag) are applied with coalesce=true and collapse into one
// undo step; the non-coalesced apply that follows them seals that step.
type History struct {
	current    Document
	past       []Document
	future     []Document
	coalescing bool // last apply was coalesced and its step is still open
}

// NewHistory starts a history at doc with empty stacks.
func NewHistory(doc Document) *History {
	return &History{current: doc}
}

// Current returns the live document. Callers must treat it as read-only.
func (h *History) Current() Document {
	return h.current
}

// Apply runs t on the current document and records the previous one.
func (h *History) Apply(t Transform, coalesce bool) {
	next := t(h.current)
	switch {
	case coalesce && h.coalescing:
		// Top of past already holds the pre-gesture document.
	case !coalesce && h.coalescing:
		// Seal the open step without pushing the mid-gesture state.
	default:
		h.past = append(h.past, h.current)
	}
	h.coalescing = coalesce
	h.future = h.future[:0]
	h.current = next
}

// Seal closes an open coalesced step so the next apply starts a new one.
func (h *History) Seal() {
	h.coalescing = false
}

// Coalescing reports whether a coalesced step is still open.
func (h *History) Coalescing() bool {
	return h.coalescing
}

// Undo restores the previous document. It is a no-op when nothing is recorded.
func (h *History) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	last := len(h.past) - 1
	h.future = append(h.future, h.current)
	h.current = h.past[last]
	h.past = h.past[:last]
	h.coalescing = false
	return true
}

// Redo re-applies the most recently undone document.
func (h *History) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	last := len(h.future) - 1
	h.past = append(h.past, h.current)
	h.current = h.future[last]
	h.future = h.future[:last]
	h.coalescing = false
	return true
}

// Reset replaces the document and forgets all history.
func (h *History) Reset(doc Document) {
	h.current = doc
	h.past = nil
	h.future = nil
	h.coalescing = false
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (past, future int) {
	return len(h.past), len(h.future)
}
