// Package errors provides structured error types for the dataflow library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the qualified operation
// name, the dialect, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAnalysis, errors.KindContract).
//		Op("arith.add").
//		Detail("fold returned %d results for %d-result op", 2, 1).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Contract("arith.add", "fold result arity mismatch")
//	err := errors.UnknownOp(errors.PhaseParse, "arith.bogus")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
