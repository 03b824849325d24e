package editor

import (
	"fmt"
	"math/rand"
	"testing"
)

// newTestSession returns a session with sequential ids n1, n2, ... and a
// fixed random seed.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	next := 0
	return NewSession(
		WithIDGenerator(func() string {
			next++
			return fmt.Sprintf("n%d", next)
		}),
		WithRand(rand.New(rand.NewSource(1))),
	)
}

func mustCreate(t *testing.T, s *Session, k Kind, x, y, w, h float64) string {
	t.Helper()
	id, err := s.CreateNode(k, Point{x, y}, Size{w, h})
	if err != nil {
		t.Fatalf("CreateNode(%s): %v", k, err)
	}
	return id
}

func mustGet(t *testing.T, s *Session, id string) Node {
	t.Helper()
	n, ok := s.GetNode(id)
	if !ok {
		t.Fatalf("node %s missing", id)
	}
	return n
}

func node(id string, k Kind, parent string, x, y, w, h float64) Node {
	return Node{
		ID:       id,
		Name:     id,
		Kind:     k,
		Position: Point{x, y},
		Size:     Size{w, h},
		ParentID: parent,
	}
}

func ids(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func pastDepth(s *Session) int {
	past, _ := s.History().Depth()
	return past
}
