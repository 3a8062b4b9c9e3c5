package scene

import (
	"fmt"
	"io"
	"strings"

	"viewkit/pkg/geom"
	"viewkit/pkg/view"
)

// NodeInfo is the computed geometry of one node after a layout pass.
type NodeInfo struct {
	Kind     string    `json:"kind"`
	ID       string    `json:"id,omitempty"`
	Depth    int       `json:"depth"`
	Measured geom.Size `json:"measured"`
	Bounds   geom.Rect `json:"bounds"`
	State    string    `json:"state"`
}

// Describe lists every node of s in draw order.
func Describe(s *Scene) []NodeInfo {
	var infos []NodeInfo
	Walk(s.Root, func(n view.Node, depth int) {
		infos = append(infos, NodeInfo{
			Kind:     Kind(n),
			ID:       s.IDOf(n),
			Depth:    depth,
			Measured: n.MeasuredSize(),
			Bounds:   n.Bounds(),
			State:    n.Tracker().State().String(),
		})
	})
	return infos
}

// WriteTree prints Describe(s) as an indented tree.
func WriteTree(w io.Writer, s *Scene) error {
	for _, info := range Describe(s) {
		name := info.Kind
		if info.ID != "" {
			name += "#" + info.ID
		}
		_, err := fmt.Fprintf(w, "%s%s %s %s\n",
			strings.Repeat("  ", info.Depth), name, info.Measured, info.Bounds)
		if err != nil {
			return err
		}
	}
	return nil
}
