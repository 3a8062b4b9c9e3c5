package widget

import (
	"fmt"
	"image/color"

	"viewkit/pkg/geom"
	"viewkit/pkg/view"
)

// DefaultColumns is the column count used when none is configured.
const DefaultColumns = 3

// GridConfig configures a BoxGrid.
type GridConfig struct {
	Columns        int
	SeparatorWidth int
	SeparatorColor color.NRGBA
}

// DefaultGridConfig returns three columns with white hairline separators.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Columns:        DefaultColumns,
		SeparatorColor: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// MaxChildren is the number of cells, Columns².
func (c GridConfig) MaxChildren() int {
	return c.Columns * c.Columns
}

// Validate rejects configurations a grid cannot lay out.
func (c GridConfig) Validate() error {
	if c.Columns < 1 {
		return fmt.Errorf("%w: box grid needs at least 1 column, got %d", view.ErrInvalidConfiguration, c.Columns)
	}
	if c.SeparatorWidth < 0 {
		return fmt.Errorf("%w: negative separator width %d", view.ErrInvalidConfiguration, c.SeparatorWidth)
	}
	return nil
}

type gridChild struct {
	node   view.Node
	params *geom.Size // size requested at insertion; cells ignore it
}

// BoxGrid splits its square bounds into Columns×Columns equal cells, places
// children in row-major order and draws separator lines over them.
type BoxGrid struct {
	view.Frame

	columns  int
	stroke   view.Stroke
	children []gridChild
}

var _ view.Node = (*BoxGrid)(nil)

// NewBoxGrid validates cfg and returns an empty grid.
func NewBoxGrid(cfg GridConfig) (*BoxGrid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &BoxGrid{
		columns: cfg.Columns,
		stroke:  view.Stroke{Width: float64(cfg.SeparatorWidth), Color: cfg.SeparatorColor},
	}, nil
}

func (g *BoxGrid) Columns() int           { return g.columns }
func (g *BoxGrid) MaxChildren() int       { return g.columns * g.columns }
func (g *BoxGrid) ChildCount() int        { return len(g.children) }
func (g *BoxGrid) Separator() view.Stroke { return g.stroke }

// ChildAt returns the child at index i, or nil when out of range.
func (g *BoxGrid) ChildAt(i int) view.Node {
	if i < 0 || i >= len(g.children) {
		return nil
	}
	return g.children[i].node
}

// Children returns the children in index order.
func (g *BoxGrid) Children() []view.Node {
	nodes := make([]view.Node, len(g.children))
	for i, c := range g.children {
		nodes[i] = c.node
	}
	return nodes
}

// ChildParams returns the size requested when child i was added with
// AddChildSized.
func (g *BoxGrid) ChildParams(i int) (geom.Size, bool) {
	if i < 0 || i >= len(g.children) || g.children[i].params == nil {
		return geom.Size{}, false
	}
	return *g.children[i].params, true
}

// AddChild appends n.
func (g *BoxGrid) AddChild(n view.Node) error {
	return g.insert(len(g.children), n, nil)
}

// InsertChild inserts n at index; an index outside [0, ChildCount] appends.
func (g *BoxGrid) InsertChild(index int, n view.Node) error {
	return g.insert(index, n, nil)
}

// AddChildSized appends n with a requested size. The request is recorded
// but every child is still measured to exactly one cell.
func (g *BoxGrid) AddChildSized(n view.Node, size geom.Size) error {
	size = size.Clamp()
	return g.insert(len(g.children), n, &size)
}

// insert is the single entry point for adding children. All checks run
// before the child list is touched.
func (g *BoxGrid) insert(index int, n view.Node, params *geom.Size) error {
	if isNilNode(n) {
		return fmt.Errorf("%w: nil child", view.ErrInvalidConfiguration)
	}
	if len(g.children) >= g.MaxChildren() {
		return fmt.Errorf("%w: box grid with %d columns holds at most %d children",
			view.ErrCapacityExceeded, g.columns, g.MaxChildren())
	}
	for _, c := range g.children {
		if c.node == n {
			return fmt.Errorf("%w: node is already a child of this grid", view.ErrInvalidConfiguration)
		}
	}
	if err := g.canAdopt(n); err != nil {
		return err
	}

	child := gridChild{node: n, params: params}
	if index < 0 || index >= len(g.children) {
		g.children = append(g.children, child)
	} else {
		g.children = append(g.children[:index+1], g.children[index:]...)
		g.children[index] = child
	}

	n.Tracker().Attach(g.Tracker())
	g.Tracker().Invalidate()
	return nil
}

// canAdopt rejects nodes owned by another container and nodes that would
// close a loop in the tree: g itself or any of its ancestors.
func (g *BoxGrid) canAdopt(n view.Node) error {
	t := n.Tracker()
	if t.Parent() != nil {
		return fmt.Errorf("%w: node already belongs to another container", view.ErrInvalidConfiguration)
	}
	for p := g.Tracker(); p != nil; p = p.Parent() {
		if p == t {
			return fmt.Errorf("%w: node is this grid or one of its ancestors", view.ErrInvalidConfiguration)
		}
	}
	return nil
}

// isNilNode catches typed nil pointers of the widget kinds, which compare
// unequal to a nil interface. Other Node implementations must not be
// passed as typed nils.
func isNilNode(n view.Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *AspectImage:
		return v == nil
	case *DoubleImage:
		return v == nil
	case *BoxGrid:
		return v == nil
	}
	return false
}

// RemoveChild removes n and reports whether it was a child.
func (g *BoxGrid) RemoveChild(n view.Node) bool {
	for i, c := range g.children {
		if c.node == n {
			g.children = append(g.children[:i], g.children[i+1:]...)
			n.Tracker().Detach()
			g.Tracker().Invalidate()
			return true
		}
	}
	return false
}

// SetColumns changes the column count. The grid is unchanged on error.
func (g *BoxGrid) SetColumns(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: box grid needs at least 1 column, got %d", view.ErrInvalidConfiguration, n)
	}
	if len(g.children) > n*n {
		return fmt.Errorf("%w: %d children do not fit %d columns",
			view.ErrCapacityExceeded, len(g.children), n)
	}
	if n == g.columns {
		return nil
	}
	g.columns = n
	g.Tracker().Invalidate()
	return nil
}

// SetSeparator changes the separator stroke.
func (g *BoxGrid) SetSeparator(stroke view.Stroke) {
	g.stroke = stroke
	g.Tracker().Invalidate()
}

// Measure takes the smaller of the two bounds as the side of a square and
// measures every child to exactly one cell. An unbounded axis counts as 0:
// the grid has no content of its own.
func (g *BoxGrid) Measure(wc, hc geom.Constraint) geom.Size {
	width, _ := wc.Limit()
	height, _ := hc.Limit()
	major := min(width, height)

	cell := geom.Exactly(major / g.columns)
	for _, c := range g.children {
		c.node.Measure(cell, cell)
	}

	g.SetMeasuredSize(geom.Size{Width: major, Height: major})
	return g.MeasuredSize()
}

// AssignBounds stores r and places every child in its cell.
func (g *BoxGrid) AssignBounds(r geom.Rect) {
	g.SetBounds(r)
	g.layoutChildren()
}

// layoutChildren places child i at row i/columns, column i%columns, using
// the child's own measured size. A child that ignored its cell constraint
// is not clamped.
func (g *BoxGrid) layoutChildren() {
	for i, c := range g.children {
		row := i / g.columns
		col := i % g.columns
		size := c.node.MeasuredSize()
		c.node.AssignBounds(geom.RectAt(col*size.Width, row*size.Height, size))
	}
	g.Tracker().MarkClean()
}

// Draw paints children in index order, then the separator lines.
func (g *BoxGrid) Draw(s view.Surface) {
	if !g.LaidOut() {
		return
	}
	if g.Tracker().Stale() {
		g.layoutChildren()
	}

	for _, c := range g.children {
		view.DrawChild(s, c.node)
	}

	width, height := g.Width(), g.Height()
	for k := 0; k <= g.columns; k++ {
		x := k * (width / g.columns)
		s.DrawLine(x, 0, x, height, g.stroke)
	}
	for k := 0; k <= g.columns; k++ {
		y := k * (height / g.columns)
		s.DrawLine(0, y, width, y, g.stroke)
	}
}
