package ir

import (
	"github.com/wippyai/dataflow/errors"
)

// Verify checks the structural integrity of a program: operand, result,
// and region arity against each operation's definition, definition-before-
// use for every operand, and required attributes. Analyses assume a
// verified program.
func Verify(p *Program) error {
	if p.Body == nil {
		return errors.InvalidInput(errors.PhaseVerify, "program has no body region")
	}
	defined := make(map[*Value]bool)
	return verifyRegion(p.Body, defined)
}

// verifyRegion checks one region against the values visible from enclosing
// regions. Each region gets its own copy of the defined set so definitions
// inside a nested region are not visible to its siblings or to operations
// after the enclosing one.
func verifyRegion(r *Region, outer map[*Value]bool) error {
	defined := make(map[*Value]bool, len(outer)+len(r.Args)+len(r.Ops))
	for v := range outer {
		defined[v] = true
	}
	for _, arg := range r.Args {
		defined[arg] = true
	}

	for _, op := range r.Ops {
		def := op.Def
		if def == nil {
			return errors.InvalidInput(errors.PhaseVerify, "operation has no definition")
		}
		if def.NumOperands != VariadicOperands && len(op.Operands) != def.NumOperands {
			return errors.ArityMismatch(errors.PhaseVerify, def.QualifiedName(), def.NumOperands, len(op.Operands))
		}
		if len(op.Results) != def.NumResults {
			return errors.ArityMismatch(errors.PhaseVerify, def.QualifiedName(), def.NumResults, len(op.Results))
		}
		if len(op.Regions) != def.NumRegions {
			return errors.ArityMismatch(errors.PhaseVerify, def.QualifiedName(), def.NumRegions, len(op.Regions))
		}
		if def.Traits.ConstantLike && op.Attr("value") == nil {
			return errors.MissingAttr(errors.PhaseVerify, def.QualifiedName(), "value")
		}

		for _, operand := range op.Operands {
			if operand == nil {
				return errors.InvalidInput(errors.PhaseVerify, "nil operand in "+def.QualifiedName())
			}
			if !defined[operand] {
				return errors.UseBeforeDef(def.QualifiedName(), operand.Name)
			}
		}

		for _, result := range op.Results {
			defined[result] = true
		}

		for _, nested := range op.Regions {
			if err := verifyRegion(nested, defined); err != nil {
				return err
			}
		}
	}
	return nil
}
