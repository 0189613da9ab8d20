package ir

import (
	"github.com/wippyai/dataflow/errors"
)

// Builder constructs a Program against a Registry, tracking named values
// and the current region. The text parser and tests build programs
// through it.
type Builder struct {
	reg   *Registry
	prog  *Program
	stack []*Region
	names map[string]*Value
}

// NewBuilder creates a builder for a new program with an empty top-level
// region.
func NewBuilder(reg *Registry, name string) *Builder {
	body := &Region{}
	return &Builder{
		reg:   reg,
		prog:  &Program{Name: name, Body: body},
		stack: []*Region{body},
		names: make(map[string]*Value),
	}
}

// Program returns the program under construction.
func (b *Builder) Program() *Program {
	return b.prog
}

func (b *Builder) current() *Region {
	return b.stack[len(b.stack)-1]
}

// Arg adds a named argument value to the current region.
func (b *Builder) Arg(name string) (*Value, error) {
	if _, exists := b.names[name]; exists {
		return nil, errors.DuplicateName(errors.PhaseBuild, name)
	}
	r := b.current()
	v := &Value{Name: name, Owner: r, Index: len(r.Args)}
	r.Args = append(r.Args, v)
	b.names[name] = v
	return v, nil
}

// Value resolves a previously defined value by name.
func (b *Builder) Value(name string) (*Value, error) {
	v, ok := b.names[name]
	if !ok {
		return nil, errors.UnknownValue(errors.PhaseBuild, name)
	}
	return v, nil
}

// Op appends an operation to the current region. The qualified name is
// resolved through the registry, operand arity is checked against the
// definition, and one result value is created per name in resultNames.
func (b *Builder) Op(qualified string, operands []*Value, attrs map[string]Attribute, resultNames ...string) (*Operation, error) {
	def := b.reg.Get(qualified)
	if def == nil {
		return nil, errors.UnknownOp(errors.PhaseBuild, qualified)
	}
	if def.NumOperands != VariadicOperands && len(operands) != def.NumOperands {
		return nil, errors.ArityMismatch(errors.PhaseBuild, qualified, def.NumOperands, len(operands))
	}
	if len(resultNames) != def.NumResults {
		return nil, errors.ArityMismatch(errors.PhaseBuild, qualified, def.NumResults, len(resultNames))
	}

	op := &Operation{
		Def:      def,
		Operands: operands,
		Attrs:    attrs,
	}
	for i, name := range resultNames {
		if _, exists := b.names[name]; exists {
			return nil, errors.DuplicateName(errors.PhaseBuild, name)
		}
		v := &Value{Name: name, Def: op, Index: i}
		op.Results = append(op.Results, v)
		b.names[name] = v
	}

	r := b.current()
	r.Ops = append(r.Ops, op)
	return op, nil
}

// EnterRegion appends a new nested region to op and makes it current.
// Subsequent Arg and Op calls build into the nested region until
// ExitRegion.
func (b *Builder) EnterRegion(op *Operation) *Region {
	r := &Region{}
	op.Regions = append(op.Regions, r)
	b.stack = append(b.stack, r)
	return r
}

// ExitRegion pops back to the enclosing region.
func (b *Builder) ExitRegion() error {
	if len(b.stack) == 1 {
		return errors.InvalidInput(errors.PhaseBuild, "no nested region to exit")
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}
