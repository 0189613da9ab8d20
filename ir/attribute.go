package ir

import (
	"fmt"
	"strconv"
)

// Attribute is a compile-time constant value attached to an operation or
// produced by folding. Attribute equality is the equality used by the
// constant lattice.
type Attribute interface {
	// Equal reports whether two attributes hold the same constant.
	Equal(other Attribute) bool
	// String renders the attribute in textual IR form.
	String() string
}

// IntAttr is a 64-bit integer constant.
type IntAttr int64

func (a IntAttr) Equal(other Attribute) bool {
	b, ok := other.(IntAttr)
	return ok && a == b
}

func (a IntAttr) String() string {
	return strconv.FormatInt(int64(a), 10)
}

// FloatAttr is a 64-bit floating point constant.
type FloatAttr float64

func (a FloatAttr) Equal(other Attribute) bool {
	b, ok := other.(FloatAttr)
	return ok && a == b
}

func (a FloatAttr) String() string {
	return strconv.FormatFloat(float64(a), 'g', -1, 64)
}

// BoolAttr is a boolean constant.
type BoolAttr bool

func (a BoolAttr) Equal(other Attribute) bool {
	b, ok := other.(BoolAttr)
	return ok && a == b
}

func (a BoolAttr) String() string {
	if a {
		return "true"
	}
	return "false"
}

// StringAttr is a string constant.
type StringAttr string

func (a StringAttr) Equal(other Attribute) bool {
	b, ok := other.(StringAttr)
	return ok && a == b
}

func (a StringAttr) String() string {
	return fmt.Sprintf("%q", string(a))
}
