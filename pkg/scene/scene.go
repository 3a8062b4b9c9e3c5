package scene

import (
	"fmt"
	"path/filepath"
	"slices"

	"viewkit/pkg/view"
	"viewkit/pkg/widget"
)

// Scene is a built node tree with an id index.
type Scene struct {
	Root view.Node

	builder *Builder
	nodes   map[string]view.Node
}

func newScene(b *Builder) *Scene {
	return &Scene{builder: b, nodes: make(map[string]view.Node)}
}

// Load reads the scene file at path and builds it. Relative handles in the
// file resolve against the file's directory.
func Load(path string, opts ...Option) (*Scene, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewBuilder(filepath.Dir(path), opts...).Build(f)
}

// Builder returns the builder that produced the scene, used to create and
// configure nodes after the initial build.
func (s *Scene) Builder() *Builder {
	return s.builder
}

// Node returns the node registered under id.
func (s *Scene) Node(id string) (view.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Register indexes n under id. Ids are unique within a scene.
func (s *Scene) Register(id string, n view.Node) error {
	if id == "" {
		return fmt.Errorf("%w: empty node id", view.ErrInvalidConfiguration)
	}
	if _, ok := s.nodes[id]; ok {
		return fmt.Errorf("%w: duplicate node id %q", view.ErrInvalidConfiguration, id)
	}
	s.nodes[id] = n
	return nil
}

// IDs returns the registered ids in sorted order.
func (s *Scene) IDs() []string {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IDOf returns the id n is registered under, or "".
func (s *Scene) IDOf(n view.Node) string {
	for id, m := range s.nodes {
		if m == n {
			return id
		}
	}
	return ""
}

// Walk calls fn for n and every descendant in index order, depth first.
func Walk(n view.Node, fn func(n view.Node, depth int)) {
	walk(n, 0, fn)
}

func walk(n view.Node, depth int, fn func(view.Node, int)) {
	if n == nil {
		return
	}
	fn(n, depth)
	if g, ok := n.(*widget.BoxGrid); ok {
		for _, c := range g.Children() {
			walk(c, depth+1, fn)
		}
	}
}
