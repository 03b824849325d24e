package editor

import "github.com/samber/lo"

// Selection is an ordered set of node ids. The last id added is primary.
type Selection struct {
	ids []string
}

// IDs returns a copy of the selected ids in insertion order.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// Primary returns the most recently added id, or "".
func (s *Selection) Primary() string {
	if len(s.ids) == 0 {
		return ""
	}
	return s.ids[len(s.ids)-1]
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	return lo.Contains(s.ids, id)
}

// Set replaces the selection, dropping duplicates.
func (s *Selection) Set(ids ...string) {
	s.ids = lo.Uniq(lo.Compact(ids))
}

// Toggle adds id when absent and removes it when present.
func (s *Selection) Toggle(id string) {
	if s.Contains(id) {
		s.Remove(id)
		return
	}
	s.ids = append(s.ids, id)
}

// Remove drops the given ids.
func (s *Selection) Remove(ids ...string) {
	s.ids = lo.Without(s.ids, ids...)
}

// Clear empties the selection.
func (s *Selection) Clear() { s.ids = nil }

// retain drops ids that no longer exist in d.
func (s *Selection) retain(d Document) {
	s.ids = lo.Filter(s.ids, func(id string, _ int) bool { return d.Index(id) >= 0 })
}
