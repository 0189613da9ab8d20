package missingness

import (
	"github.com/wippyai/dataflow"
	"github.com/wippyai/dataflow/ir"
	"github.com/wippyai/dataflow/lattice"
)

// Name is the lattice-space name this analysis registers under. It matches
// constprop.DefaultMissingnessName.
const Name = "missingness"

// TransferFunc computes the missingness of an operation's results from the
// current missingness of its operands. Returning Uninitialized abstains
// for this round (the proposed join is a no-op).
type TransferFunc func(op *ir.Operation, operands []lattice.Missingness) lattice.Missingness

// Config configures the analysis.
type Config struct {
	// Transfers overrides the default strict rule for specific qualified
	// op names. Entries here take precedence over the built-in overrides.
	Transfers map[string]TransferFunc
}

// Analysis is the missingness transfer function.
type Analysis struct {
	transfers map[string]TransferFunc
}

// New creates the analysis with the built-in overrides plus any configured
// ones.
func New(cfg Config) *Analysis {
	transfers := map[string]TransferFunc{
		"missing.coalesce": coalesceTransfer,
	}
	for name, fn := range cfg.Transfers {
		transfers[name] = fn
	}
	return &Analysis{transfers: transfers}
}

// Name implements dataflow.Analysis.
func (a *Analysis) Name() string { return Name }

// Bottom implements dataflow.Analysis.
func (a *Analysis) Bottom() lattice.Value { return lattice.MissingnessUninitialized }

// Top implements dataflow.Analysis.
func (a *Analysis) Top() lattice.Value { return lattice.MissingnessUnknown }

// Visit implements dataflow.Analysis.
func (a *Analysis) Visit(ctx *dataflow.Context, op *ir.Operation) error {
	// Region operations are not modeled; whatever their bodies do, the
	// results stay unconstrained.
	if len(op.Regions) != 0 {
		ctx.MarkAllPessimistic()
		return nil
	}

	traits := op.Def.Traits
	switch {
	case traits.ProducesMissing:
		a.propagateAll(ctx, op, lattice.Missing)
		return nil
	case traits.MissingnessPredicate, traits.ConstantLike:
		// The predicate's boolean and a materialized constant always
		// exist.
		a.propagateAll(ctx, op, lattice.Present)
		return nil
	}

	operands := make([]lattice.Missingness, len(op.Operands))
	for i, operand := range op.Operands {
		el, _ := ctx.Element(operand)
		operands[i] = el.(lattice.Missingness)
	}

	if fn, ok := a.transfers[op.Name()]; ok {
		a.propagateAll(ctx, op, fn(op, operands))
		return nil
	}
	a.propagateAll(ctx, op, strictTransfer(operands))
	return nil
}

func (a *Analysis) propagateAll(ctx *dataflow.Context, op *ir.Operation, m lattice.Missingness) {
	for _, result := range op.Results {
		ctx.PropagateIfChanged(result, m)
	}
}

// strictTransfer is the default rule: the result is missing exactly when
// some operand is missing. Unresolved operands make it abstain; operands
// that may be missing make the result unknown. Zero-operand operations
// without a trait are opaque sources and stay unknown.
func strictTransfer(operands []lattice.Missingness) lattice.Missingness {
	if len(operands) == 0 {
		return lattice.MissingnessUnknown
	}
	anyUnknown := false
	for _, m := range operands {
		switch {
		case m.IsMissing():
			return lattice.Missing
		case m == lattice.MissingnessUnknown:
			anyUnknown = true
		case m.IsUninitialized():
			return lattice.MissingnessUninitialized
		}
	}
	if anyUnknown {
		return lattice.MissingnessUnknown
	}
	return lattice.Present
}

// coalesceTransfer models first-present selection: the result exists when
// any operand is known present, and is missing only when every operand is
// known missing.
func coalesceTransfer(_ *ir.Operation, operands []lattice.Missingness) lattice.Missingness {
	if len(operands) == 0 {
		return lattice.Missing
	}
	allMissing := true
	anyUninit := false
	for _, m := range operands {
		switch {
		case m.IsPresent():
			return lattice.Present
		case m.IsUninitialized():
			anyUninit = true
			allMissing = false
		case m == lattice.MissingnessUnknown:
			allMissing = false
		}
	}
	if allMissing {
		return lattice.Missing
	}
	if anyUninit {
		// An unresolved operand may still turn out present.
		return lattice.MissingnessUninitialized
	}
	return lattice.MissingnessUnknown
}
