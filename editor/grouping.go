package editor

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// DuplicateOffset is added to both axes of the top clone.
const DuplicateOffset = 20.0

// Direction is a layer-order move.
type Direction string

const (
	Up     Direction = "up"
	Down   Direction = "down"
	Top    Direction = "top"
	Bottom Direction = "bottom"
)

// ParseDirection resolves up, down, top or bottom.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(s)); d {
	case Up, Down, Top, Bottom:
		return d, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Delete removes the node and, for a Group, every transitive descendant in
// one step. The removed ids leave the selection.
func (s *Session) Delete(id string) error {
	doc := s.Document()
	n, ok := doc.Get(id)
	if !ok {
		return s.note(reject("delete", "no node %s", id))
	}
	gone := map[string]bool{id: true}
	if n.Kind == KindGroup {
		for d := range doc.descendantIDs(id) {
			gone[d] = true
		}
	}
	s.discrete(func(d Document) Document { return d.without(gone) })
	s.selection.Remove(lo.Keys(gone)...)
	return nil
}

// Duplicate deep-clones the node and its subtree with fresh ids. The top
// clone keeps the original's parent, is offset by DuplicateOffset and
// becomes the selection.
func (s *Session) Duplicate(id string) (string, error) {
	doc := s.Document()
	orig, ok := doc.Get(id)
	if !ok {
		return "", s.note(reject("duplicate", "no node %s", id))
	}
	remap := map[string]string{id: s.newID()}
	top := orig.Clone()
	top.ID = remap[id]
	top.Name = orig.Name + " copy"
	top.Position = orig.Position.Add(Point{DuplicateOffset, DuplicateOffset})
	clones := []Node{top}

	// Descendants come back in paint order; a parent may follow its child,
	// so ids are assigned first and parents remapped afterwards.
	subtree := doc.Descendants(id)
	for _, d := range subtree {
		remap[d.ID] = s.newID()
	}
	for _, d := range subtree {
		c := d.Clone()
		c.ID = remap[d.ID]
		c.ParentID = remap[d.ParentID]
		clones = append(clones, c)
	}

	s.discrete(func(d Document) Document {
		out := make(Document, 0, len(d)+len(clones))
		return append(append(out, d...), clones...)
	})
	s.selection.Set(top.ID)
	return top.ID, nil
}

// Paste inserts a copied fragment with fresh ids in one step. Fragment
// nodes whose parent is not part of the fragment become roots, offset by
// DuplicateOffset, and those roots become the selection.
func (s *Session) Paste(fragment []Node) ([]string, error) {
	if len(fragment) == 0 {
		return nil, s.note(reject("paste", "nothing to paste"))
	}
	if problems := Validate(Document(fragment).detached()); len(problems) > 0 {
		return nil, s.note(&InvalidDocumentError{Problems: problems})
	}
	remap := make(map[string]string, len(fragment))
	for _, n := range fragment {
		remap[n.ID] = s.newID()
	}
	var roots []string
	clones := make([]Node, 0, len(fragment))
	for _, n := range fragment {
		c := n.Clone()
		c.ID = remap[n.ID]
		if parent, ok := remap[n.ParentID]; ok {
			c.ParentID = parent
		} else {
			c.ParentID = ""
			c.Position = c.Position.Add(Point{DuplicateOffset, DuplicateOffset})
			roots = append(roots, c.ID)
		}
		clones = append(clones, c)
	}

	s.discrete(func(d Document) Document {
		out := make(Document, 0, len(d)+len(clones))
		return append(append(out, d...), clones...)
	})
	s.selection.Set(roots...)
	return roots, nil
}

// Group wraps two or more root-level nodes in a new Group at their bounding
// box. Children keep their absolute placement.
func (s *Session) Group(ids []string) (string, error) {
	ids = lo.Uniq(ids)
	if len(ids) < 2 {
		return "", s.note(reject("group", "need at least two nodes"))
	}
	doc := s.Document()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, id := range ids {
		n, ok := doc.Get(id)
		if !ok {
			return "", s.note(reject("group", "no node %s", id))
		}
		if !n.IsRoot() {
			return "", s.note(reject("group", "%s is already in a group", n.Name))
		}
		minX = math.Min(minX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxX = math.Max(maxX, n.Position.X+n.Size.Width)
		maxY = math.Max(maxY, n.Position.Y+n.Size.Height)
	}

	origin := Point{minX, minY}
	g := Node{
		ID:         s.newID(),
		Name:       fmt.Sprintf("Group %d", doc.CountKind(KindGroup)+1),
		Kind:       KindGroup,
		Position:   origin,
		Size:       Size{maxX - minX, maxY - minY}.Clamp(),
		Properties: DefaultProperties(KindGroup),
		Style:      DefaultStyle(KindGroup),
	}
	members := lo.SliceToMap(ids, func(id string) (string, bool) { return id, true })

	s.discrete(func(d Document) Document {
		out := make(Document, 0, len(d)+1)
		for _, n := range d {
			if members[n.ID] {
				n.ParentID = g.ID
				n.Position = n.Position.Sub(origin)
			}
			out = append(out, n)
		}
		return append(out, g)
	})
	s.selection.Set(g.ID)
	return g.ID, nil
}

// Ungroup dissolves a Group. Its direct children move into the group's own
// coordinate space and become the selection.
func (s *Session) Ungroup(id string) ([]string, error) {
	doc := s.Document()
	g, ok := doc.Get(id)
	if !ok {
		return nil, s.note(reject("ungroup", "no node %s", id))
	}
	if g.Kind != KindGroup {
		return nil, s.note(reject("ungroup", "%s is not a group", g.Name))
	}
	children := lo.Map(doc.Children(id), func(n Node, _ int) string { return n.ID })

	s.discrete(func(d Document) Document {
		out := make(Document, 0, len(d))
		for _, n := range d {
			switch {
			case n.ID == id:
				continue
			case n.ParentID == id:
				n.ParentID = g.ParentID
				n.Position = n.Position.Add(g.Position)
			}
			out = append(out, n)
		}
		return out
	})
	s.selection.Set(children...)
	return children, nil
}

// Reorder moves the node within paint order. Up and Down step past the
// adjacent node sharing its parent. Moves past either end are clamped and
// leave no history step.
func (s *Session) Reorder(id string, dir Direction) error {
	doc := s.Document()
	from := doc.Index(id)
	if from < 0 {
		return s.note(reject("reorder", "no node %s", id))
	}
	parent := doc[from].ParentID
	last := len(doc) - 1
	to := from
	switch dir {
	case Up:
		for j := from + 1; j <= last; j++ {
			if doc[j].ParentID == parent {
				to = j
				break
			}
		}
	case Down:
		for j := from - 1; j >= 0; j-- {
			if doc[j].ParentID == parent {
				to = j
				break
			}
		}
	case Top:
		to = last
	case Bottom:
		to = 0
	default:
		return s.note(reject("reorder", "unknown direction %q", dir))
	}
	if to == from {
		return nil
	}
	s.discrete(func(d Document) Document {
		n := d[from]
		out := make(Document, 0, len(d))
		out = append(out, d[:from]...)
		out = append(out, d[from+1:]...)
		out = append(out[:to], append(Document{n}, out[to:]...)...)
		return out
	})
	return nil
}
