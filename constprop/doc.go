// Package constprop implements missingness-aware sparse conditional
// constant propagation as a dataflow.Analysis.
//
// The transfer function simulates folding each operation to a constant
// without ever rewriting the program. It differs from plain constant
// propagation in two ways:
//
//   - It consults an independently computed missingness lattice before
//     folding anything: an operation applied to a missing input has
//     undefined runtime behavior and must not be folded as if executed,
//     so any operand that is known missing (or not yet resolved) makes
//     the transfer function abstain for that round.
//
//   - The "is this value missing?" predicate operation is answered
//     directly from the missingness lattice instead of being folded.
//
// Operations with nested regions are never simulated: folding them cannot
// be guaranteed out-of-place, and this analysis performs simulated
// execution only. Fold failure, or a fold that signals an in-place
// rewrite, pessimizes the operation's results to Overdefined and the run
// continues. The only fatal condition is a fold capability returning the
// wrong number of results, which is a broken collaborator.
package constprop
