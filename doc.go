// Package dataflow provides a sparse, monotone dataflow framework with a
// missingness-aware constant propagation analysis over a small region-based
// program representation.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	dataflow/            Root package with the sparse fixpoint Solver
//	├── ir/              Values, operations, regions, attributes, folding
//	├── lattice/         Missingness and Constant abstract domains
//	├── constprop/       Missingness-aware constant propagation analysis
//	├── missingness/     Per-value missingness (nullability) analysis
//	├── dialect/         Built-in arith, missing, and cf dialects
//	├── irtext/          Textual IR parser and printer
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Parse a program, run both analyses, inspect the lattices:
//
//	prog, err := irtext.Parse(dialect.DefaultRegistry(), source)
//	if err != nil { ... }
//	if err := ir.Verify(prog); err != nil { ... }
//
//	solver := dataflow.NewSolver(prog, dataflow.Config{})
//	solver.Register(missingness.New(missingness.Config{}))
//	solver.Register(constprop.New(constprop.Config{}))
//	if err := solver.Run(); err != nil { ... }
//
//	for _, v := range prog.Values() {
//		c, _ := solver.Result(constprop.Name, v)
//		fmt.Println(v, c)
//	}
//
// # Model
//
// Each registered Analysis owns one lattice element per IR value, stored
// and mutated exclusively by the Solver. The solver drives a sequential
// worklist of (analysis, operation) items: it pops an item, invokes the
// analysis's transfer function for that operation, and applies any joins
// the transfer function proposes. Every element read during a visit
// registers the visiting item as a dependent, so a later change to that
// element re-enqueues the item. Because all updates are joins over
// lattices of finite height, the worklist drains in finitely many steps.
//
// # Seeding
//
// Every operation is enqueued once per analysis at the start of a run, and
// every region-argument value is joined with the owning analysis's Top
// element: region arguments have no producing operation, so the solver's
// default policy leaves them unconstrained.
//
// # Sparseness
//
// A transfer function is re-invoked only when an element it actually read
// changes. Reads cross analysis boundaries through Context.Lookup, which is
// also how one analysis consumes another's results (constant propagation
// consuming missingness).
//
// Transfer functions never mutate the program graph; they only propose
// joins, which the solver applies idempotently. A visit either completes
// with proposed joins or returns an error that aborts the run. Errors are
// reserved for broken collaborators (see the errors package), never for
// properties of the analyzed program.
package dataflow
