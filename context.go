package dataflow

import (
	"go.uber.org/zap"

	"github.com/wippyai/dataflow/errors"
	"github.com/wippyai/dataflow/ir"
	"github.com/wippyai/dataflow/lattice"
)

// Context carries the state of one visit: which analysis is running, which
// operation is being visited, and the solver that owns the lattice store.
// Every element read through it registers the visit as a dependent, so a
// later change to that element re-triggers the operation.
type Context struct {
	solver   *Solver
	analysis int
	op       *ir.Operation
	changed  []*ir.Value
}

// Logger returns the solver's logger.
func (c *Context) Logger() *zap.Logger {
	return c.solver.logger
}

func (c *Context) item() workItem {
	return workItem{analysis: c.analysis, op: c.solver.opIndex[c.op]}
}

// Element returns the visiting analysis's current element for v and
// registers the dependency. The boolean is false while the element is
// uninitialized.
func (c *Context) Element(v *ir.Value) (lattice.Value, bool) {
	name := c.solver.analyses[c.analysis].Name()
	key := elementKey{analysis: name, value: v}
	c.solver.depend(key, c.item())
	cur := c.solver.element(key, c.analysis)
	return cur, !cur.IsUninitialized()
}

// Lookup returns the named analysis's current element for v and registers
// the dependency, letting one analysis consume another's results. The
// boolean is false while the element is uninitialized. An unregistered
// analysis name is a wiring mistake and returns a contract error.
func (c *Context) Lookup(analysis string, v *ir.Value) (lattice.Value, bool, error) {
	idx, ok := c.solver.byName[analysis]
	if !ok {
		return nil, false, errors.Contract(c.op.Name(), "analysis "+analysis+" is not registered")
	}
	key := elementKey{analysis: analysis, value: v}
	c.solver.depend(key, c.item())
	cur := c.solver.element(key, idx)
	return cur, !cur.IsUninitialized(), nil
}

// PropagateIfChanged joins proposed into the visiting analysis's element
// for v. When the element moves up, every dependent of the element is
// re-enqueued.
func (c *Context) PropagateIfChanged(v *ir.Value, proposed lattice.Value) {
	name := c.solver.analyses[c.analysis].Name()
	c.solver.join(elementKey{analysis: name, value: v}, c.analysis, proposed, &c.changed)
}

// MarkAllPessimistic joins the analysis's Top element into every result of
// the visited operation: the pessimistic fixpoint, terminal and never
// revisited downward.
func (c *Context) MarkAllPessimistic() {
	top := c.solver.analyses[c.analysis].Top()
	for _, result := range c.op.Results {
		c.PropagateIfChanged(result, top)
	}
}
