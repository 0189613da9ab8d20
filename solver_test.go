package dataflow

import (
	"testing"

	"github.com/wippyai/dataflow/errors"
	"github.com/wippyai/dataflow/ir"
	"github.com/wippyai/dataflow/lattice"
)

// scriptedAnalysis runs an arbitrary visit function over the missingness
// lattice, so tests can exercise solver behavior directly.
type scriptedAnalysis struct {
	name  string
	visit func(ctx *Context, op *ir.Operation) error
}

func (a *scriptedAnalysis) Name() string          { return a.name }
func (a *scriptedAnalysis) Bottom() lattice.Value { return lattice.MissingnessUninitialized }
func (a *scriptedAnalysis) Top() lattice.Value    { return lattice.MissingnessUnknown }
func (a *scriptedAnalysis) Visit(ctx *Context, op *ir.Operation) error {
	return a.visit(ctx, op)
}

func flowRegistry() *ir.Registry {
	r := ir.NewRegistry()
	r.Register(&ir.OpDef{Dialect: "flow", Name: "src", NumResults: 1})
	r.Register(&ir.OpDef{Dialect: "flow", Name: "copy", NumOperands: 1, NumResults: 1})
	return r
}

// copyVisit models the simplest forward transfer: sources become Present,
// copies take their operand's element once it resolves.
func copyVisit(ctx *Context, op *ir.Operation) error {
	if op.Name() == "flow.src" {
		ctx.PropagateIfChanged(op.Results[0], lattice.Present)
		return nil
	}
	el, ok := ctx.Element(op.Operands[0])
	if !ok {
		return nil
	}
	ctx.PropagateIfChanged(op.Results[0], el)
	return nil
}

func buildChain(t *testing.T) *ir.Program {
	t.Helper()
	b := ir.NewBuilder(flowRegistry(), "chain")
	src, err := b.Op("flow.src", nil, nil, "a")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	c1, err := b.Op("flow.copy", []*ir.Value{src.Results[0]}, nil, "b")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := b.Op("flow.copy", []*ir.Value{c1.Results[0]}, nil, "c"); err != nil {
		t.Fatalf("build: %v", err)
	}
	return b.Program()
}

func TestSolver_RunReachesFixpoint(t *testing.T) {
	prog := buildChain(t)
	s := NewSolver(prog, Config{})
	s.Register(&scriptedAnalysis{name: "copy", visit: copyVisit})

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, v := range prog.Values() {
		el, err := s.Result("copy", v)
		if err != nil {
			t.Fatalf("Result(%s): %v", v, err)
		}
		if !el.Equal(lattice.Present) {
			t.Errorf("element of %s = %v, want present", v, el)
		}
	}
	if s.Steps() < prog.NumOps() {
		t.Errorf("Steps = %d, want at least one visit per op", s.Steps())
	}

	// The worklist stays empty after the fixpoint.
	info, err := s.Step()
	if err != nil || info != nil {
		t.Errorf("Step after fixpoint = (%v, %v), want (nil, nil)", info, err)
	}
}

// TestSolver_DependencyRetrigger puts a consumer ahead of its producer so
// the first visit reads an uninitialized operand. The read must register a
// dependency that re-enqueues the consumer once the producer resolves.
func TestSolver_DependencyRetrigger(t *testing.T) {
	reg := flowRegistry()
	producer := &ir.Operation{Def: reg.Get("flow.src")}
	producer.Results = []*ir.Value{{Name: "p", Def: producer}}
	consumer := &ir.Operation{
		Def:      reg.Get("flow.copy"),
		Operands: []*ir.Value{producer.Results[0]},
	}
	consumer.Results = []*ir.Value{{Name: "c", Def: consumer}}
	prog := &ir.Program{Name: "reordered", Body: &ir.Region{
		Ops: []*ir.Operation{consumer, producer},
	}}

	s := NewSolver(prog, Config{})
	s.Register(&scriptedAnalysis{name: "copy", visit: copyVisit})
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	el, err := s.Result("copy", consumer.Results[0])
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if !el.Equal(lattice.Present) {
		t.Errorf("consumer element = %v, want present after re-trigger", el)
	}
	// Two ops, one extra visit for the re-triggered consumer.
	if s.Steps() < 3 {
		t.Errorf("Steps = %d, want at least 3", s.Steps())
	}
}

func TestSolver_StepReportsChanges(t *testing.T) {
	prog := buildChain(t)
	s := NewSolver(prog, Config{})
	s.Register(&scriptedAnalysis{name: "copy", visit: copyVisit})

	info, err := s.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if info == nil {
		t.Fatal("Step returned nil with a pending worklist")
	}
	if info.Analysis != "copy" {
		t.Errorf("info.Analysis = %q, want copy", info.Analysis)
	}
	if info.Op.Name() != "flow.src" {
		t.Errorf("first visit = %s, want flow.src (seeding order)", info.Op.Name())
	}
	if len(info.Changed) != 1 || info.Changed[0].Name != "a" {
		t.Errorf("info.Changed = %v, want [%%a]", info.Changed)
	}
}

func TestSolver_SeedsRegionArgsToTop(t *testing.T) {
	b := ir.NewBuilder(flowRegistry(), "args")
	x, err := b.Arg("x")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := b.Op("flow.copy", []*ir.Value{x}, nil, "y"); err != nil {
		t.Fatalf("build: %v", err)
	}
	prog := b.Program()

	s := NewSolver(prog, Config{})
	s.Register(&scriptedAnalysis{name: "copy", visit: copyVisit})
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	el, err := s.Result("copy", x)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if !el.Equal(lattice.MissingnessUnknown) {
		t.Errorf("region arg element = %v, want the unconstrained top", el)
	}
}

func TestSolver_JoinsAreMonotone(t *testing.T) {
	b := ir.NewBuilder(flowRegistry(), "mono")
	src, _ := b.Op("flow.src", nil, nil, "a")
	prog := b.Program()

	s := NewSolver(prog, Config{})
	s.Register(&scriptedAnalysis{name: "mono", visit: func(ctx *Context, op *ir.Operation) error {
		// Conflicting proposals within one visit must join upward, never
		// overwrite.
		ctx.PropagateIfChanged(op.Results[0], lattice.Missing)
		ctx.PropagateIfChanged(op.Results[0], lattice.Present)
		return nil
	}})
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	el, err := s.Result("mono", src.Results[0])
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if !el.Equal(lattice.MissingnessUnknown) {
		t.Errorf("element = %v, want unknown (missing ⊔ present)", el)
	}
}

func TestSolver_MarkAllPessimistic(t *testing.T) {
	b := ir.NewBuilder(flowRegistry(), "pess")
	src, _ := b.Op("flow.src", nil, nil, "a")
	prog := b.Program()

	s := NewSolver(prog, Config{})
	s.Register(&scriptedAnalysis{name: "pess", visit: func(ctx *Context, op *ir.Operation) error {
		ctx.MarkAllPessimistic()
		return nil
	}})
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	el, _ := s.Result("pess", src.Results[0])
	if !el.Equal(lattice.MissingnessUnknown) {
		t.Errorf("element = %v, want top", el)
	}
}

func TestSolver_VisitErrorAbortsRun(t *testing.T) {
	prog := buildChain(t)
	s := NewSolver(prog, Config{})
	s.Register(&scriptedAnalysis{name: "bad", visit: func(ctx *Context, op *ir.Operation) error {
		return errors.Contract(op.Name(), "broken collaborator")
	}})

	err := s.Run()
	if err == nil {
		t.Fatal("Run must surface the visit error")
	}
	if errors.KindOf(err) != errors.KindContract {
		t.Errorf("error kind = %v, want contract_violation", errors.KindOf(err))
	}
}

func TestSolver_ResultUnknownAnalysis(t *testing.T) {
	prog := buildChain(t)
	s := NewSolver(prog, Config{})
	s.Register(&scriptedAnalysis{name: "copy", visit: copyVisit})

	if _, err := s.Result("nope", prog.Values()[0]); err == nil {
		t.Error("Result must reject an unregistered analysis name")
	}
	if s.Has("nope") || !s.Has("copy") {
		t.Error("Has reports the wrong registration state")
	}
}

func TestContext_LookupCrossAnalysis(t *testing.T) {
	b := ir.NewBuilder(flowRegistry(), "cross")
	src, _ := b.Op("flow.src", nil, nil, "a")
	prog := b.Program()

	// "mirror" copies whatever "copy" computed for the same value.
	s := NewSolver(prog, Config{})
	s.Register(&scriptedAnalysis{name: "copy", visit: copyVisit})
	s.Register(&scriptedAnalysis{name: "mirror", visit: func(ctx *Context, op *ir.Operation) error {
		el, ok, err := ctx.Lookup("copy", op.Results[0])
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		ctx.PropagateIfChanged(op.Results[0], el)
		return nil
	}})
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	el, err := s.Result("mirror", src.Results[0])
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if !el.Equal(lattice.Present) {
		t.Errorf("mirror element = %v, want present via cross-analysis lookup", el)
	}
}

func TestContext_LookupUnknownAnalysis(t *testing.T) {
	b := ir.NewBuilder(flowRegistry(), "cross")
	b.Op("flow.src", nil, nil, "a")
	prog := b.Program()

	s := NewSolver(prog, Config{})
	s.Register(&scriptedAnalysis{name: "broken", visit: func(ctx *Context, op *ir.Operation) error {
		_, _, err := ctx.Lookup("missing-analysis", op.Results[0])
		return err
	}})

	err := s.Run()
	if err == nil {
		t.Fatal("Lookup of an unregistered analysis must abort the run")
	}
	if errors.KindOf(err) != errors.KindContract {
		t.Errorf("error kind = %v, want contract_violation", errors.KindOf(err))
	}
}
