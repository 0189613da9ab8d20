// Package ir provides the program representation consumed by the dataflow
// analyses: values, operations, regions, attributes, and registered
// operation definitions with an optional fold capability.
//
// # Structure
//
// A Program owns a single top-level Region. A Region holds an ordered list
// of argument values and an ordered list of operations. An Operation refers
// to its OpDef (the registered kind), an ordered operand list, an ordered
// result list, named attributes, and zero or more nested regions.
//
// Values are identity handles: a value is produced exactly once, either as
// an operation result or as a region argument, and is never renamed or
// merged. Identity is pointer identity.
//
// # Folding
//
// An OpDef may carry a Folder: a pure capability that, given one constant
// attribute per operand (nil for non-constant operands), attempts to
// compute the operation's results at analysis time. The outcome is a
// tagged decision:
//
//	Failure    the operation declines to fold
//	InPlace    the operation could only fold by rewriting itself;
//	           callers treat this as a rejection
//	Results    one outcome per result, each either a literal attribute
//	           or an alias of an existing value
//
// Folders must never mutate the operation. Expressing the capability as a
// pure function returning a decision keeps simulated execution free of
// snapshot/restore bookkeeping.
//
// # Dialects
//
// Operation definitions are registered per dialect under a qualified
// "dialect.op" name. See the dialect package for the built-in dialects.
package ir
