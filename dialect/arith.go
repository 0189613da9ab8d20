package dialect

import "github.com/wippyai/dataflow/ir"

// RegisterArith registers the arith dialect: constants, integer and float
// arithmetic, comparison, and select.
func RegisterArith(r *ir.Registry) {
	r.Register(&ir.OpDef{
		Dialect:    Arith,
		Name:       "const",
		NumResults: 1,
		Traits:     ir.Traits{ConstantLike: true},
		Fold:       ir.FoldFunc(foldConst),
	})
	r.Register(binOp("add", foldAdd))
	r.Register(binOp("sub", foldSub))
	r.Register(binOp("mul", foldMul))
	r.Register(binOp("div", foldDiv))
	r.Register(binOp("cmp_eq", foldCmpEq))
	r.Register(&ir.OpDef{
		Dialect:     Arith,
		Name:        "select",
		NumOperands: 3,
		NumResults:  1,
		Fold:        ir.FoldFunc(foldSelect),
	})
}

func binOp(name string, fold func(op *ir.Operation, operands []ir.Attribute) ir.FoldDecision) *ir.OpDef {
	return &ir.OpDef{
		Dialect:     Arith,
		Name:        name,
		NumOperands: 2,
		NumResults:  1,
		Fold:        ir.FoldFunc(fold),
	}
}

// foldConst materializes the op's value attribute.
func foldConst(op *ir.Operation, _ []ir.Attribute) ir.FoldDecision {
	attr := op.Attr("value")
	if attr == nil {
		return ir.Failure()
	}
	return ir.Folded(ir.Literal(attr))
}

func foldAdd(op *ir.Operation, operands []ir.Attribute) ir.FoldDecision {
	// x + 0 folds to x without knowing x.
	if isIntZero(operands[1]) {
		return ir.Folded(ir.AliasOf(op.Operands[0]))
	}
	if isIntZero(operands[0]) {
		return ir.Folded(ir.AliasOf(op.Operands[1]))
	}
	if a, b, ok := intPair(operands); ok {
		return ir.Folded(ir.Literal(ir.IntAttr(a + b)))
	}
	if a, b, ok := floatPair(operands); ok {
		return ir.Folded(ir.Literal(ir.FloatAttr(a + b)))
	}
	return ir.Failure()
}

func foldSub(op *ir.Operation, operands []ir.Attribute) ir.FoldDecision {
	if isIntZero(operands[1]) {
		return ir.Folded(ir.AliasOf(op.Operands[0]))
	}
	if a, b, ok := intPair(operands); ok {
		return ir.Folded(ir.Literal(ir.IntAttr(a - b)))
	}
	if a, b, ok := floatPair(operands); ok {
		return ir.Folded(ir.Literal(ir.FloatAttr(a - b)))
	}
	return ir.Failure()
}

func foldMul(op *ir.Operation, operands []ir.Attribute) ir.FoldDecision {
	// x * 0 is 0 and x * 1 is x, either way without knowing x.
	if isIntZero(operands[0]) || isIntZero(operands[1]) {
		return ir.Folded(ir.Literal(ir.IntAttr(0)))
	}
	if isIntOne(operands[1]) {
		return ir.Folded(ir.AliasOf(op.Operands[0]))
	}
	if isIntOne(operands[0]) {
		return ir.Folded(ir.AliasOf(op.Operands[1]))
	}
	if a, b, ok := intPair(operands); ok {
		return ir.Folded(ir.Literal(ir.IntAttr(a * b)))
	}
	if a, b, ok := floatPair(operands); ok {
		return ir.Folded(ir.Literal(ir.FloatAttr(a * b)))
	}
	return ir.Failure()
}

func foldDiv(_ *ir.Operation, operands []ir.Attribute) ir.FoldDecision {
	if a, b, ok := intPair(operands); ok {
		// Division by zero traps at runtime; refuse to simulate it.
		if b == 0 {
			return ir.Failure()
		}
		return ir.Folded(ir.Literal(ir.IntAttr(a / b)))
	}
	if a, b, ok := floatPair(operands); ok && b != 0 {
		return ir.Folded(ir.Literal(ir.FloatAttr(a / b)))
	}
	return ir.Failure()
}

func foldCmpEq(_ *ir.Operation, operands []ir.Attribute) ir.FoldDecision {
	if operands[0] == nil || operands[1] == nil {
		return ir.Failure()
	}
	return ir.Folded(ir.Literal(ir.BoolAttr(operands[0].Equal(operands[1]))))
}

// foldSelect picks a branch when the condition is a known boolean; the
// chosen operand is an alias, not a fresh constant.
func foldSelect(op *ir.Operation, operands []ir.Attribute) ir.FoldDecision {
	cond, ok := operands[0].(ir.BoolAttr)
	if !ok {
		return ir.Failure()
	}
	if cond {
		return ir.Folded(ir.AliasOf(op.Operands[1]))
	}
	return ir.Folded(ir.AliasOf(op.Operands[2]))
}

func intPair(operands []ir.Attribute) (int64, int64, bool) {
	a, okA := operands[0].(ir.IntAttr)
	b, okB := operands[1].(ir.IntAttr)
	return int64(a), int64(b), okA && okB
}

func floatPair(operands []ir.Attribute) (float64, float64, bool) {
	a, okA := operands[0].(ir.FloatAttr)
	b, okB := operands[1].(ir.FloatAttr)
	return float64(a), float64(b), okA && okB
}

func isIntZero(a ir.Attribute) bool {
	v, ok := a.(ir.IntAttr)
	return ok && v == 0
}

func isIntOne(a ir.Attribute) bool {
	v, ok := a.(ir.IntAttr)
	return ok && v == 1
}
