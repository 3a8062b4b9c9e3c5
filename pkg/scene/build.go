package scene

import (
	"fmt"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"viewkit/pkg/attr"
	"viewkit/pkg/images"
	"viewkit/pkg/observability"
	"viewkit/pkg/text"
	"viewkit/pkg/view"
	"viewkit/pkg/widget"
)

// Builder turns node specs into widgets. Image handles and font paths
// resolve against the resolver's base directory.
type Builder struct {
	resolver *images.Resolver
	measurer text.Measurer
	style    text.Style
	logger   *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithMeasurer sets the text measurer given to DoubleImage nodes.
func WithMeasurer(m text.Measurer) Option {
	return func(b *Builder) { b.measurer = m }
}

// WithTextStyle sets the style text attributes are layered on.
func WithTextStyle(st text.Style) Option {
	return func(b *Builder) { b.style = st }
}

// WithLogger sets the logger used for warnings about ignored attributes.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) { b.logger = observability.OrNop(l) }
}

// WithResolver replaces the image resolver.
func WithResolver(r *images.Resolver) Option {
	return func(b *Builder) { b.resolver = r }
}

// NewBuilder returns a builder resolving relative handles against baseDir.
func NewBuilder(baseDir string, opts ...Option) *Builder {
	b := &Builder{
		resolver: images.NewResolver(baseDir),
		measurer: text.Default,
		style:    text.Style{Size: 16, Color: attr.White},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Resolver returns the image resolver.
func (b *Builder) Resolver() *images.Resolver {
	return b.resolver
}

// Build constructs the tree described by f.
func (b *Builder) Build(f *File) (*Scene, error) {
	s := newScene(b)
	root, err := b.build(f.Root, s, "root")
	if err != nil {
		return nil, err
	}
	s.Root = root
	return s, nil
}

func (b *Builder) build(spec NodeSpec, s *Scene, path string) (view.Node, error) {
	if spec.ID != "" {
		path = spec.ID
	}
	n, err := b.NewNode(spec.Type, spec.Attrs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if len(spec.Children) > 0 {
		grid, ok := n.(*widget.BoxGrid)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %s nodes cannot have children",
				path, view.ErrInvalidConfiguration, spec.Type)
		}
		for i, child := range spec.Children {
			c, err := b.build(child, s, fmt.Sprintf("%s/%d", path, i))
			if err != nil {
				return nil, err
			}
			if err := grid.AddChild(c); err != nil {
				return nil, fmt.Errorf("%s: child %d: %w", path, i, err)
			}
		}
	}

	if spec.ID != "" {
		if err := s.Register(spec.ID, n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewNode creates a node of the given kind configured from attrs.
func (b *Builder) NewNode(kind string, attrs attr.Bag) (view.Node, error) {
	var n view.Node
	switch kind {
	case KindGrid:
		columns, err := attrs.Int(attr.NumColumns, widget.DefaultColumns)
		if err != nil {
			return nil, err
		}
		cfg := widget.DefaultGridConfig()
		cfg.Columns = columns
		grid, err := widget.NewBoxGrid(cfg)
		if err != nil {
			return nil, err
		}
		n = grid
	case KindAspect:
		n = widget.NewAspectImage(nil)
	case KindDouble:
		n = widget.NewDoubleImage(widget.DoubleConfig{TextStyle: b.style, Measurer: b.measurer})
	default:
		return nil, fmt.Errorf("%w: unknown node type %q", view.ErrInvalidConfiguration, kind)
	}

	if err := b.Apply(n, attrs); err != nil {
		return nil, err
	}
	return n, nil
}

// Apply sets the attributes in attrs on n. Every value is decoded before
// the node is touched, so a malformed attribute leaves n unchanged.
// Attributes n does not recognize are logged and ignored.
func (b *Builder) Apply(n view.Node, attrs attr.Bag) error {
	switch n := n.(type) {
	case *widget.BoxGrid:
		return b.applyGrid(n, attrs)
	case *widget.AspectImage:
		return b.applyAspect(n, attrs)
	case *widget.DoubleImage:
		return b.applyDouble(n, attrs)
	}
	return fmt.Errorf("%w: cannot configure %T", view.ErrInvalidConfiguration, n)
}

func (b *Builder) applyGrid(g *widget.BoxGrid, attrs attr.Bag) error {
	b.warnUnknown(KindGrid, attrs, attr.NumColumns, attr.SeparatorWidth, attr.SeparatorColor)

	columns, err := attrs.Int(attr.NumColumns, g.Columns())
	if err != nil {
		return err
	}
	stroke := g.Separator()
	width, err := attrs.Dimension(attr.SeparatorWidth, int(stroke.Width))
	if err != nil {
		return err
	}
	col, err := attrs.Color(attr.SeparatorColor, stroke.Color)
	if err != nil {
		return err
	}

	if err := g.SetColumns(columns); err != nil {
		return err
	}
	if attrs.Has(attr.SeparatorWidth) || attrs.Has(attr.SeparatorColor) {
		g.SetSeparator(view.Stroke{Width: float64(width), Color: col})
	}
	return nil
}

func (b *Builder) applyAspect(a *widget.AspectImage, attrs attr.Bag) error {
	b.warnUnknown(KindAspect, attrs, attr.Src)
	if !attrs.Has(attr.Src) {
		return nil
	}
	c, err := b.resolve(attrs, attr.Src)
	if err != nil {
		return err
	}
	a.SetContent(c)
	return nil
}

func (b *Builder) applyDouble(d *widget.DoubleImage, attrs attr.Bag) error {
	b.warnUnknown(KindDouble, attrs,
		attr.DrawableLeft, attr.DrawableRight, attr.Spacing, attr.Text,
		attr.TextColor, attr.TextSize, attr.FontPath, attr.Scale, attr.Overlap)

	left, err := b.resolve(attrs, attr.DrawableLeft)
	if err != nil {
		return err
	}
	right, err := b.resolve(attrs, attr.DrawableRight)
	if err != nil {
		return err
	}
	spacing, err := attrs.Dimension(attr.Spacing, d.Spacing())
	if err != nil {
		return err
	}

	style := d.TextStyle()
	if style.Color, err = attrs.Color(attr.TextColor, style.Color); err != nil {
		return err
	}
	if style.Size, err = attrs.Float(attr.TextSize, style.Size); err != nil {
		return err
	}
	if style.Size <= 0 {
		return fmt.Errorf("%w: attribute %s must be positive", view.ErrInvalidConfiguration, attr.TextSize)
	}
	if attrs.Has(attr.FontPath) {
		style.FontPath = b.path(attrs.String(attr.FontPath, ""))
	}

	scale, overlap := d.Factors()
	if scale, err = attrs.Float(attr.Scale, scale); err != nil {
		return err
	}
	if overlap, err = attrs.Float(attr.Overlap, overlap); err != nil {
		return err
	}

	if attrs.Has(attr.DrawableLeft) {
		d.SetLeft(left)
	}
	if attrs.Has(attr.DrawableRight) {
		d.SetRight(right)
	}
	if attrs.Has(attr.Spacing) {
		d.SetSpacing(spacing)
	}
	if style != d.TextStyle() {
		d.SetTextStyle(style)
	}
	if attrs.Has(attr.Text) {
		d.SetText(attrs.String(attr.Text, ""))
	}
	if attrs.Has(attr.Scale) || attrs.Has(attr.Overlap) {
		d.SetFactors(scale, overlap)
	}
	return nil
}

// resolve returns the content named by the handle under key, or nil when
// the key is absent or empty.
func (b *Builder) resolve(attrs attr.Bag, key string) (view.Content, error) {
	handle := attrs.String(key, "")
	if handle == "" {
		return nil, nil
	}
	c, err := b.resolver.Resolve(handle)
	if err != nil {
		return nil, fmt.Errorf("%w: attribute %s: %v", view.ErrInvalidConfiguration, key, err)
	}
	return c, nil
}

func (b *Builder) path(p string) string {
	if p == "" || filepath.IsAbs(p) || b.resolver.BaseDir == "" {
		return p
	}
	return filepath.Join(b.resolver.BaseDir, p)
}

func (b *Builder) warnUnknown(kind string, attrs attr.Bag, known ...string) {
	for key := range attrs {
		if !slices.Contains(known, key) {
			b.logger.Warn("ignoring attribute", zap.String("type", kind), zap.String("attr", key))
		}
	}
}

// Kind returns the scene type name of n, or "" for foreign nodes.
func Kind(n view.Node) string {
	switch n.(type) {
	case *widget.BoxGrid:
		return KindGrid
	case *widget.AspectImage:
		return KindAspect
	case *widget.DoubleImage:
		return KindDouble
	}
	return ""
}
