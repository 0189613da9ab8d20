// Package lattice defines the abstract value domains used by the sparse
// dataflow analyses: the four-state Missingness domain and the
// Constant domain, plus the generic Value interface the fixpoint solver
// stores and joins.
//
// Both domains are monotone with finite height. Every transition moves up:
//
//	Missingness: Uninitialized → {Missing, Present} → Unknown
//	Constant:    Uninitialized → Constant(attr, dialect) → Overdefined
//
// Unknown and Overdefined are explicit terminal variants with no further
// transitions, not sentinel values. Join is commutative, associative, and
// idempotent in both domains; joining two distinct constants collapses to
// Overdefined.
package lattice
