// Package missingness implements the per-value missingness (nullability)
// analysis as a dataflow.Analysis.
//
// Most operations are missingness-strict: the result is missing exactly
// when some operand is missing. The analysis applies that rule by default
// and lets operation kinds deviate in two ways: through traits on their
// OpDef (ProducesMissing, MissingnessPredicate, ConstantLike) and through
// per-op transfer overrides registered in the Config, which is how
// first-present semantics like missing.coalesce are expressed.
//
// Operations with nested regions are never modeled; their results go
// straight to Unknown.
//
// Constant propagation consumes this analysis's lattice through the
// solver, under the name missingness.Name. Any analysis producing
// lattice.Missingness elements can be substituted under that name.
package missingness
