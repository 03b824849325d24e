package editor

import "github.com/samber/lo"

// Document is the ordered node sequence. Order is paint order: later nodes
// render on top. A Document value is never modified in place once it has
// been handed to the history; transforms build new slices.
type Document []Node

// Transform is a pure document rewrite applied through the history.
type Transform func(Document) Document

// Index returns the position of id in paint order, or -1.
func (d Document) Index(id string) int {
	for i := range d {
		if d[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the node with the given id.
func (d Document) Get(id string) (Node, bool) {
	if i := d.Index(id); i >= 0 {
		return d[i], true
	}
	return Node{}, false
}

// Roots returns the nodes without a parent, in paint order.
func (d Document) Roots() []Node {
	return lo.Filter(d, func(n Node, _ int) bool { return n.IsRoot() })
}

// Children returns the nodes whose parent is groupID, in paint order.
func (d Document) Children(groupID string) []Node {
	if groupID == "" {
		return nil
	}
	return lo.Filter(d, func(n Node, _ int) bool { return n.ParentID == groupID })
}

// Descendants returns the transitive children of groupID in paint order.
func (d Document) Descendants(groupID string) []Node {
	ids := d.descendantIDs(groupID)
	return lo.Filter(d, func(n Node, _ int) bool { return ids[n.ID] })
}

func (d Document) descendantIDs(groupID string) map[string]bool {
	found := make(map[string]bool)
	frontier := []string{groupID}
	for len(frontier) > 0 {
		parent := frontier[0]
		frontier = frontier[1:]
		for _, c := range d.Children(parent) {
			if found[c.ID] || c.ID == groupID {
				continue
			}
			found[c.ID] = true
			frontier = append(frontier, c.ID)
		}
	}
	return found
}

// RootAncestor walks the parent chain of id to its outermost ancestor.
// A node without a parent is its own root ancestor.
func (d Document) RootAncestor(id string) (Node, bool) {
	n, ok := d.Get(id)
	if !ok {
		return Node{}, false
	}
	// The hop limit keeps a corrupted chain from looping forever.
	for hops := 0; n.ParentID != "" && hops <= len(d); hops++ {
		p, ok := d.Get(n.ParentID)
		if !ok {
			break
		}
		n = p
	}
	return n, true
}

// Ancestors returns the parent chain of id, nearest first.
func (d Document) Ancestors(id string) []Node {
	var chain []Node
	n, ok := d.Get(id)
	for ok && n.ParentID != "" && len(chain) <= len(d) {
		n, ok = d.Get(n.ParentID)
		if ok {
			chain = append(chain, n)
		}
	}
	return chain
}

// AbsolutePosition converts the node's position to canvas coordinates.
func (d Document) AbsolutePosition(id string) Point {
	n, ok := d.Get(id)
	if !ok {
		return Point{}
	}
	p := n.Position
	for _, a := range d.Ancestors(id) {
		p = p.Add(a.Position)
	}
	return p
}

// AbsoluteRect returns the node's box in canvas coordinates.
func (d Document) AbsoluteRect(id string) Rect {
	n, _ := d.Get(id)
	p := d.AbsolutePosition(id)
	return Rect{X: p.X, Y: p.Y, Width: n.Size.Width, Height: n.Size.Height}
}

// PaintOrder lists nodes bottom to top: each root in document order,
// followed by its subtree.
func (d Document) PaintOrder() []Node {
	out := make([]Node, 0, len(d))
	seen := make(map[string]bool, len(d))
	var walk func(n Node)
	walk = func(n Node) {
		if seen[n.ID] {
			return
		}
		seen[n.ID] = true
		out = append(out, n)
		if n.Kind != KindGroup {
			return
		}
		for _, c := range d.Children(n.ID) {
			walk(c)
		}
	}
	for _, r := range d.Roots() {
		walk(r)
	}
	return out
}

// CountKind returns how many nodes have kind k.
func (d Document) CountKind(k Kind) int {
	return lo.CountBy(d, func(n Node) bool { return n.Kind == k })
}

// Clone deep-copies every node.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i := range d {
		out[i] = d[i].Clone()
	}
	return out
}

// update returns a copy of d with fn applied to the node id.
func (d Document) update(id string, fn func(Node) Node) Document {
	out := make(Document, len(d))
	copy(out, d)
	if i := out.Index(id); i >= 0 {
		out[i] = fn(out[i])
	}
	return out
}

// without returns a copy of d minus the given ids.
func (d Document) without(ids map[string]bool) Document {
	return Document(lo.Filter(d, func(n Node, _ int) bool { return !ids[n.ID] }))
}

// detached clears parent references that point outside d.
func (d Document) detached() Document {
	out := d.Clone()
	for i, n := range out {
		if n.ParentID != "" && d.Index(n.ParentID) < 0 {
			out[i].ParentID = ""
		}
	}
	return out
}
