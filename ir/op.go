package ir

// Operation is a single node in the dataflow graph: an ordered list of
// operand values, an ordered list of result values, named attributes, and
// zero or more nested regions.
type Operation struct {
	Def      *OpDef
	Operands []*Value
	Results  []*Value
	Attrs    map[string]Attribute
	Regions  []*Region
}

// Name returns the qualified "dialect.op" name.
func (o *Operation) Name() string {
	return o.Def.QualifiedName()
}

// Attr returns the named attribute, or nil if unset.
func (o *Operation) Attr(name string) Attribute {
	if o.Attrs == nil {
		return nil
	}
	return o.Attrs[name]
}

// Fold invokes the operation's fold capability with one constant attribute
// per operand (nil for operands without a known constant). Operations
// without a Folder always fail to fold.
func (o *Operation) Fold(constOperands []Attribute) FoldDecision {
	if o.Def.Fold == nil {
		return Failure()
	}
	return o.Def.Fold.Fold(o, constOperands)
}

// Region is an ordered list of operations with its own argument values.
// Region arguments model values bound by the enclosing operation (loop
// variables, closure parameters) and have no producing operation.
type Region struct {
	Args []*Value
	Ops  []*Operation
}

// Program is the unit of analysis: a named top-level region.
type Program struct {
	Name string
	Body *Region
}

// Walk visits every operation in the program in pre-order, descending into
// nested regions.
func (p *Program) Walk(fn func(*Operation)) {
	walkRegion(p.Body, fn)
}

func walkRegion(r *Region, fn func(*Operation)) {
	if r == nil {
		return
	}
	for _, op := range r.Ops {
		fn(op)
		for _, nested := range op.Regions {
			walkRegion(nested, fn)
		}
	}
}

// NumOps returns the total operation count, including nested regions.
func (p *Program) NumOps() int {
	n := 0
	p.Walk(func(*Operation) { n++ })
	return n
}

// Values returns every value in the program in definition order: region
// arguments first, then each operation's results, descending pre-order.
func (p *Program) Values() []*Value {
	var vals []*Value
	var collect func(r *Region)
	collect = func(r *Region) {
		if r == nil {
			return
		}
		vals = append(vals, r.Args...)
		for _, op := range r.Ops {
			vals = append(vals, op.Results...)
			for _, nested := range op.Regions {
				collect(nested)
			}
		}
	}
	collect(p.Body)
	return vals
}
