package view

// State is a node's geometry state.
type State uint8

const (
	// Clean geometry matches the node's content and bounds.
	Clean State = iota
	// Stale geometry must be recomputed before the next draw.
	Stale
)

func (s State) String() string {
	if s == Stale {
		return "stale"
	}
	return "clean"
}

// Invalidator is implemented by the host runtime that schedules frames.
type Invalidator interface {
	RequestRedraw()
}

// Tracker records whether a node's geometry is stale and forwards redraw
// requests to the host. Trackers form a chain mirroring the node tree so a
// change deep in the tree reaches the host attached at the root.
//
// A new tracker starts Stale: nothing has been computed yet.
type Tracker struct {
	stale       bool
	initialized bool
	parent      *Tracker
	host        Invalidator
	generation  uint64
}

// State returns the current geometry state.
func (t *Tracker) State() State {
	if t.Stale() {
		return Stale
	}
	return Clean
}

// Stale reports whether geometry must be recomputed.
func (t *Tracker) Stale() bool {
	return t.stale || !t.initialized
}

// Generation counts invalidations; hosts compare it across frames.
func (t *Tracker) Generation() uint64 {
	return t.generation
}

// Invalidate marks this node and its ancestors stale and asks the host for
// a redraw. Called on every content, style or structure mutation.
func (t *Tracker) Invalidate() {
	var root *Tracker
	for p := t; p != nil; p = p.parent {
		p.stale = true
		p.generation++
		root = p
	}
	if root.host != nil {
		root.host.RequestRedraw()
	}
}

// MarkClean records that geometry was recomputed.
func (t *Tracker) MarkClean() {
	t.stale = false
	t.initialized = true
}

// Attach links t under parent. Containers call it when adopting a child.
func (t *Tracker) Attach(parent *Tracker) {
	t.parent = parent
}

// Parent returns the tracker t is attached under, or nil for a root.
func (t *Tracker) Parent() *Tracker {
	return t.parent
}

// Detach unlinks t from its parent.
func (t *Tracker) Detach() {
	t.parent = nil
}

// SetHost attaches the host runtime. Only the root tracker's host is used.
func (t *Tracker) SetHost(h Invalidator) {
	t.host = h
}
