package lattice

// Missingness models whether a runtime value is absent, analogous to a
// nullability flag. The four states order as
// Uninitialized ⊑ {Missing, Present} ⊑ Unknown.
type Missingness uint8

const (
	// MissingnessUninitialized carries no information yet. It must never
	// be read as "present".
	MissingnessUninitialized Missingness = iota
	// Missing means the value is statically known to be absent.
	Missing
	// Present means the value is statically known to exist.
	Present
	// MissingnessUnknown means the value may or may not be absent. This is
	// the terminal, overdefined state.
	MissingnessUnknown
)

// Join returns the least upper bound of two missingness elements.
func (m Missingness) Join(other Value) Value {
	o := other.(Missingness)
	switch {
	case m == o:
		return m
	case m == MissingnessUninitialized:
		return o
	case o == MissingnessUninitialized:
		return m
	default:
		// Missing ⊔ Present, or anything involving Unknown.
		return MissingnessUnknown
	}
}

// Equal reports whether two elements are the same state.
func (m Missingness) Equal(other Value) bool {
	o, ok := other.(Missingness)
	return ok && m == o
}

// IsUninitialized reports whether no information has been computed yet.
func (m Missingness) IsUninitialized() bool {
	return m == MissingnessUninitialized
}

// IsMissing reports whether the value is statically known to be absent.
// False on Uninitialized and Unknown.
func (m Missingness) IsMissing() bool {
	return m == Missing
}

// IsPresent reports whether the value is statically known to exist.
// False on Uninitialized and Unknown.
func (m Missingness) IsPresent() bool {
	return m == Present
}

func (m Missingness) String() string {
	switch m {
	case MissingnessUninitialized:
		return "uninitialized"
	case Missing:
		return "missing"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}
