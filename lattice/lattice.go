package lattice

// Value is an element of a join-semilattice of finite height. The fixpoint
// solver owns one Value per (analysis, IR value) pair and only ever moves
// it upward through Join.
type Value interface {
	// Join returns the least upper bound of the receiver and other. Other
	// is always an element of the same domain; implementations may panic
	// on foreign types, which indicates a broken analysis registration.
	Join(other Value) Value
	// Equal reports whether two elements are the same point in the
	// lattice. The solver uses it to detect changes under join.
	Equal(other Value) bool
	// IsUninitialized reports whether the element carries no information
	// yet. Uninitialized elements must be treated conservatively, never
	// as any resolved state.
	IsUninitialized() bool
	// String renders the element for diagnostics.
	String() string
}
