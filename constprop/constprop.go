package constprop

import (
	"go.uber.org/zap"

	"github.com/wippyai/dataflow"
	"github.com/wippyai/dataflow/errors"
	"github.com/wippyai/dataflow/ir"
	"github.com/wippyai/dataflow/lattice"
)

// Name is the lattice-space name this analysis registers under.
const Name = "constprop"

// DefaultMissingnessName is the lattice-space name the analysis consumes
// missingness from unless configured otherwise.
const DefaultMissingnessName = "missingness"

// Config configures the analysis.
type Config struct {
	// MissingnessAnalysis names the analysis whose lattice answers
	// missingness queries. Defaults to DefaultMissingnessName.
	MissingnessAnalysis string
}

// Analysis is the missingness-aware constant propagation transfer
// function. Register it on a dataflow.Solver together with a missingness
// analysis.
type Analysis struct {
	missingness string
}

// New creates the analysis.
func New(cfg Config) *Analysis {
	name := cfg.MissingnessAnalysis
	if name == "" {
		name = DefaultMissingnessName
	}
	return &Analysis{missingness: name}
}

// Name implements dataflow.Analysis.
func (a *Analysis) Name() string { return Name }

// Bottom implements dataflow.Analysis.
func (a *Analysis) Bottom() lattice.Value { return lattice.UninitializedConstant() }

// Top implements dataflow.Analysis.
func (a *Analysis) Top() lattice.Value { return lattice.Overdefined() }

// Visit implements dataflow.Analysis. It is side-effect-free on the graph:
// the only state it touches is the solver-owned lattice store, through
// proposed joins.
func (a *Analysis) Visit(ctx *dataflow.Context, op *ir.Operation) error {
	// The missingness predicate is answered from the missingness lattice,
	// not folded.
	if op.Def.Traits.MissingnessPredicate {
		return a.visitPredicate(ctx, op)
	}

	// Don't try to simulate the results of a region operation as we can't
	// guarantee that folding will be out-of-place. The results take the
	// unconstrained default.
	if len(op.Regions) != 0 {
		ctx.MarkAllPessimistic()
		return nil
	}

	// Only propagate constants if there are no missing operands. An
	// unresolved operand means waiting, a missing one means the runtime
	// behavior is undefined; either way, abstain this round.
	for _, operand := range op.Operands {
		m, _, err := a.missingnessOf(ctx, op, operand)
		if err != nil {
			return err
		}
		if m.IsUninitialized() || m.IsMissing() {
			return nil
		}
	}

	constOperands := make([]ir.Attribute, len(op.Operands))
	for i, operand := range op.Operands {
		el, _ := ctx.Element(operand)
		if c, ok := el.(lattice.Constant); ok && c.IsConstant() {
			constOperands[i] = c.Attr()
		}
	}

	// Simulate the result of folding this operation to a constant. A
	// failed or in-place fold marks the results as overdefined: the
	// desire here is simulated execution, not general folding.
	decision := op.Fold(constOperands)
	switch decision.Outcome {
	case ir.FoldFailure, ir.FoldInPlace:
		ctx.MarkAllPessimistic()
		return nil
	case ir.FoldedResults:
		// handled below
	default:
		return errors.Contract(op.Name(), "fold returned an invalid outcome")
	}

	if len(decision.Results) != len(op.Results) {
		return errors.New(errors.PhaseAnalysis, errors.KindContract).
			Op(op.Name()).
			Detail("fold returned %d results for %d-result op", len(decision.Results), len(op.Results)).
			Build()
	}

	// Merge the fold results into the lattice, either a constant or an
	// alias of an existing value.
	for i, res := range decision.Results {
		result := op.Results[i]
		switch {
		case res.IsLiteral():
			ctx.Logger().Debug("folded to constant",
				zap.String("op", op.Name()),
				zap.String("result", result.String()),
				zap.String("attr", res.Attr.String()),
			)
			ctx.PropagateIfChanged(result, lattice.KnownConstant(res.Attr, op.Def.Dialect))
		case res.Alias != nil:
			ctx.Logger().Debug("folded to value",
				zap.String("op", op.Name()),
				zap.String("result", result.String()),
				zap.String("alias", res.Alias.String()),
			)
			el, _ := ctx.Element(res.Alias)
			ctx.PropagateIfChanged(result, el)
		default:
			return errors.Contract(op.Name(), "fold result carries neither attribute nor value")
		}
	}
	return nil
}

// visitPredicate answers the single-operand "is missing?" operation from
// the missingness lattice of its operand.
func (a *Analysis) visitPredicate(ctx *dataflow.Context, op *ir.Operation) error {
	if len(op.Operands) != 1 || len(op.Results) != 1 {
		return errors.Contract(op.Name(), "missingness predicate must have one operand and one result")
	}
	m, ready, err := a.missingnessOf(ctx, op, op.Operands[0])
	if err != nil {
		return err
	}
	if !ready {
		// Wait for the missingness analysis to resolve the operand.
		return nil
	}

	result := op.Results[0]
	switch {
	case m.IsMissing():
		ctx.PropagateIfChanged(result, lattice.KnownConstant(ir.BoolAttr(true), op.Def.Dialect))
	case m.IsPresent():
		ctx.PropagateIfChanged(result, lattice.KnownConstant(ir.BoolAttr(false), op.Def.Dialect))
	default:
		// Unknown: cannot be determined statically.
		ctx.PropagateIfChanged(result, lattice.Overdefined())
	}
	return nil
}

// missingnessOf looks up the missingness element of a value, registering
// the dependency so the operation is re-visited when it changes.
func (a *Analysis) missingnessOf(ctx *dataflow.Context, op *ir.Operation, v *ir.Value) (lattice.Missingness, bool, error) {
	el, ready, err := ctx.Lookup(a.missingness, v)
	if err != nil {
		return lattice.MissingnessUninitialized, false, err
	}
	m, ok := el.(lattice.Missingness)
	if !ok {
		return lattice.MissingnessUninitialized, false,
			errors.Contract(op.Name(), "analysis "+a.missingness+" does not produce missingness elements")
	}
	return m, ready, nil
}
