package ir

// Value is an identity handle for a runtime value. A value is produced
// exactly once, either as an operation result or as a region argument.
// Values are compared by pointer identity and never renamed or merged.
type Value struct {
	// Name is the textual name (without the % sigil), used for printing
	// and diagnostics. Names are unique within a program.
	Name string
	// Def is the producing operation, or nil for region arguments.
	Def *Operation
	// Owner is the region this value is an argument of, or nil for
	// operation results.
	Owner *Region
	// Index is the result index within Def, or the argument index
	// within Owner.
	Index int
}

// IsRegionArg reports whether the value is a region argument rather than
// an operation result.
func (v *Value) IsRegionArg() bool {
	return v.Def == nil
}

// String returns the value's printed form.
func (v *Value) String() string {
	return "%" + v.Name
}
