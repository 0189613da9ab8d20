// Package dialect provides the built-in operation dialects:
//
//   - arith: integer/float constants, arithmetic, comparison, and select,
//     all with fold capabilities including algebraic simplifications that
//     fold to existing values (x + 0, x * 1).
//   - missing: the missing constant, the is_missing predicate, and
//     coalesce (first-present selection).
//   - cf: structured control flow carrying nested regions.
//
// Each dialect has a RegisterXxx function; DefaultRegistry returns a
// registry with all of them.
package dialect
