// Package irtext provides a textual form for ir programs: a parser that
// builds a Program against a registry, and a printer producing the same
// form back.
//
// # Syntax
//
// One operation per statement. Results come first, then the qualified op
// name, operands, attributes in square brackets, and nested regions in
// braces (optionally with parenthesized region arguments):
//
//	(%in)
//	%x = arith.const [value = 2]
//	%y = arith.const [value = 3]
//	%s = arith.add %x, %y
//	%m = missing.missing
//	%p = missing.is_missing %m
//	%r = cf.if %p {
//	    %t = arith.const [value = 1]
//	} {
//	    %e = arith.const [value = 0]
//	}
//
// A parenthesized value list before the first operation declares the
// program's top-level region arguments. Attribute values are integers,
// floats, booleans, or double-quoted strings. Line comments start with //.
package irtext
