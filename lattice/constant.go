package lattice

import (
	"github.com/wippyai/dataflow/ir"
)

type constState uint8

const (
	constUninitialized constState = iota
	constKnown
	constOverdefined
)

// Constant is the constant-propagation lattice element for one value:
// either no information yet, a specific folded constant, or proven to vary
// at runtime.
//
// A known constant carries the dialect that produced it. Folding happens
// per dialect and constants from different semantic spaces must not be
// equated, so two known constants join to Overdefined unless both the
// attribute and the dialect match.
type Constant struct {
	state   constState
	attr    ir.Attribute
	dialect string
}

// UninitializedConstant returns the bottom element.
func UninitializedConstant() Constant {
	return Constant{}
}

// KnownConstant returns the element for a folded constant produced by the
// given dialect.
func KnownConstant(attr ir.Attribute, dialect string) Constant {
	return Constant{state: constKnown, attr: attr, dialect: dialect}
}

// Overdefined returns the terminal, least precise element.
func Overdefined() Constant {
	return Constant{state: constOverdefined}
}

// Join returns the least upper bound of two constant elements.
func (c Constant) Join(other Value) Value {
	o := other.(Constant)
	switch {
	case c.state == constUninitialized:
		return o
	case o.state == constUninitialized:
		return c
	case c.Equal(o):
		return c
	default:
		return Overdefined()
	}
}

// Equal reports whether two elements are the same lattice point.
func (c Constant) Equal(other Value) bool {
	o, ok := other.(Constant)
	if !ok || c.state != o.state {
		return false
	}
	if c.state != constKnown {
		return true
	}
	return c.dialect == o.dialect && c.attr.Equal(o.attr)
}

// IsUninitialized reports whether no information has been computed yet.
func (c Constant) IsUninitialized() bool {
	return c.state == constUninitialized
}

// IsConstant reports whether the element holds a specific folded constant.
func (c Constant) IsConstant() bool {
	return c.state == constKnown
}

// IsOverdefined reports whether the value is proven to vary at runtime.
func (c Constant) IsOverdefined() bool {
	return c.state == constOverdefined
}

// Attr returns the folded constant attribute, or nil unless IsConstant.
func (c Constant) Attr() ir.Attribute {
	if c.state != constKnown {
		return nil
	}
	return c.attr
}

// Dialect returns the dialect tag of the folded constant, or "" unless
// IsConstant.
func (c Constant) Dialect() string {
	if c.state != constKnown {
		return ""
	}
	return c.dialect
}

func (c Constant) String() string {
	switch c.state {
	case constUninitialized:
		return "uninitialized"
	case constKnown:
		return "const<" + c.attr.String() + " : " + c.dialect + ">"
	default:
		return "overdefined"
	}
}
