// Package geom holds the value types exchanged during size negotiation:
// per-axis constraints, resolved sizes and rectangles.
package geom

import "fmt"

// Mode tags how a parent constrains one axis of a child.
type Mode uint8

const (
	// Unspecified leaves the axis unbounded; the child picks its desired size.
	Unspecified Mode = iota
	// Exact forces the axis to the constraint value.
	Exact
	// AtMostMode lets the child be as large as it wants up to the value.
	AtMostMode
)

func (m Mode) String() string {
	switch m {
	case Exact:
		return "exact"
	case AtMostMode:
		return "at-most"
	default:
		return "unspecified"
	}
}

// Constraint is one axis of a size request. It is created fresh by the
// parent for every measurement call and never mutated.
type Constraint struct {
	Mode  Mode
	Value int
}

// Exactly returns an Exact constraint. Negative values clamp to 0.
func Exactly(v int) Constraint {
	return Constraint{Mode: Exact, Value: nonNegative(v)}
}

// AtMost returns an upper-bounded constraint. Negative values clamp to 0.
func AtMost(v int) Constraint {
	return Constraint{Mode: AtMostMode, Value: nonNegative(v)}
}

// Unbounded returns an Unspecified constraint.
func Unbounded() Constraint {
	return Constraint{Mode: Unspecified}
}

// Resolve reconciles a desired magnitude with the constraint.
//
//	Exact(v)    -> v
//	AtMost(v)   -> min(desired, v)
//	Unspecified -> desired
//
// A negative desired size is treated as 0.
func (c Constraint) Resolve(desired int) int {
	desired = nonNegative(desired)
	switch c.Mode {
	case Exact:
		return nonNegative(c.Value)
	case AtMostMode:
		return min(desired, nonNegative(c.Value))
	default:
		return desired
	}
}

// Limit returns the upper bound imposed by an Exact or AtMost constraint.
// ok is false for Unspecified.
func (c Constraint) Limit() (limit int, ok bool) {
	if c.Mode == Exact || c.Mode == AtMostMode {
		return nonNegative(c.Value), true
	}
	return 0, false
}

// Bounded reports whether the constraint carries an upper bound.
func (c Constraint) Bounded() bool {
	_, ok := c.Limit()
	return ok
}

func (c Constraint) String() string {
	if c.Mode == Unspecified {
		return c.Mode.String()
	}
	return fmt.Sprintf("%s(%d)", c.Mode, c.Value)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
