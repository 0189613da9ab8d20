package dialect

import "github.com/wippyai/dataflow/ir"

// RegisterMissing registers the missing dialect: the missing constant, the
// is_missing predicate, and coalesce.
func RegisterMissing(r *ir.Registry) {
	r.Register(&ir.OpDef{
		Dialect:    Missing,
		Name:       "missing",
		NumResults: 1,
		Traits:     ir.Traits{ProducesMissing: true},
	})
	r.Register(&ir.OpDef{
		Dialect:     Missing,
		Name:        "is_missing",
		NumOperands: 1,
		NumResults:  1,
		Traits:      ir.Traits{MissingnessPredicate: true},
	})
	r.Register(&ir.OpDef{
		Dialect:     Missing,
		Name:        "coalesce",
		NumOperands: ir.VariadicOperands,
		NumResults:  1,
		Fold:        ir.FoldFunc(foldCoalesce),
	})
}

// foldCoalesce folds only the trivial single-operand form. With several
// operands the chosen one depends on runtime presence, which constant
// folding cannot observe.
func foldCoalesce(op *ir.Operation, _ []ir.Attribute) ir.FoldDecision {
	if len(op.Operands) == 1 {
		return ir.Folded(ir.AliasOf(op.Operands[0]))
	}
	return ir.Failure()
}
