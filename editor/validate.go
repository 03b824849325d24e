package editor

import "fmt"

// Validate checks the structural invariants of a document: unique non-empty
// ids, known kinds, size floor, parent references that resolve to a Group,
// and acyclic parent chains. An empty result means the document is valid.
// It never mutates d.
func Validate(d Document) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateIDs(d)...)
	errs = append(errs, validateNodes(d)...)
	errs = append(errs, validateParents(d)...)
	errs = append(errs, validateCycles(d)...)
	return errs
}

func validateIDs(d Document) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(d))
	for i, n := range d {
		if n.ID == "" {
			errs = append(errs, ValidationError{Message: fmt.Sprintf("node at index %d has no id", i)})
			continue
		}
		if seen[n.ID] {
			errs = append(errs, ValidationError{NodeID: n.ID, Message: "duplicate id"})
		}
		seen[n.ID] = true
	}
	return errs
}

func validateNodes(d Document) []ValidationError {
	var errs []ValidationError
	for _, n := range d {
		if !n.Kind.Valid() {
			errs = append(errs, ValidationError{NodeID: n.ID, Message: fmt.Sprintf("unknown kind %q", n.Kind)})
		}
		if n.Size.Width < MinNodeSize || n.Size.Height < MinNodeSize {
			errs = append(errs, ValidationError{
				NodeID:  n.ID,
				Message: fmt.Sprintf("size %gx%g below minimum %g", n.Size.Width, n.Size.Height, MinNodeSize),
			})
		}
	}
	return errs
}

func validateParents(d Document) []ValidationError {
	var errs []ValidationError
	for _, n := range d {
		if n.ParentID == "" {
			continue
		}
		if n.ParentID == n.ID {
			errs = append(errs, ValidationError{NodeID: n.ID, Message: "node is its own parent"})
			continue
		}
		p, ok := d.Get(n.ParentID)
		switch {
		case !ok:
			errs = append(errs, ValidationError{NodeID: n.ID, Message: fmt.Sprintf("parent %s does not exist", n.ParentID)})
		case p.Kind != KindGroup:
			errs = append(errs, ValidationError{NodeID: n.ID, Message: fmt.Sprintf("parent %s is a %s, not a Group", p.ID, p.Kind)})
		}
	}
	return errs
}

// validateCycles walks each parent chain with 3-color marking.
func validateCycles(d Document) []ValidationError {
	const (
		white = iota
		gray
		black
	)
	parent := make(map[string]string, len(d))
	for _, n := range d {
		parent[n.ID] = n.ParentID
	}
	color := make(map[string]int, len(d))
	var errs []ValidationError
	for _, n := range d {
		var path []string
		id := n.ID
		for id != "" && color[id] == white {
			color[id] = gray
			path = append(path, id)
			id = parent[id]
		}
		if id != "" && color[id] == gray {
			errs = append(errs, ValidationError{NodeID: id, Message: "parent chain forms a cycle"})
		}
		for _, p := range path {
			color[p] = black
		}
	}
	return errs
}
