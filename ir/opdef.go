package ir

// VariadicOperands marks an OpDef as accepting any number of operands.
const VariadicOperands = -1

// Traits describe intrinsic properties of an operation kind that analyses
// dispatch on.
type Traits struct {
	// ConstantLike marks operations that materialize the constant held in
	// their "value" attribute.
	ConstantLike bool
	// MissingnessPredicate marks the single-operand boolean operation that
	// asks "is this value missing?".
	MissingnessPredicate bool
	// ProducesMissing marks operations whose results are statically known
	// to be missing.
	ProducesMissing bool
}

// OpDef is a registered operation kind: its qualified name, arity policy,
// traits, and optional fold capability. OpDefs are immutable after
// registration and shared by every operation of that kind.
type OpDef struct {
	Dialect string
	Name    string
	// NumOperands is the required operand count, or VariadicOperands.
	NumOperands int
	NumResults  int
	NumRegions  int
	Traits      Traits
	Fold        Folder
}

// QualifiedName returns the "dialect.op" form.
func (d *OpDef) QualifiedName() string {
	return d.Dialect + "." + d.Name
}

// Folder is the per-operation-kind fold capability. Implementations must be
// pure: they receive one constant attribute per operand (nil where the
// operand has no known constant) and return a decision without mutating
// the operation.
type Folder interface {
	Fold(op *Operation, constOperands []Attribute) FoldDecision
}

// FoldFunc is an adapter to use ordinary functions as Folders.
type FoldFunc func(op *Operation, constOperands []Attribute) FoldDecision

// Fold implements Folder.
func (f FoldFunc) Fold(op *Operation, constOperands []Attribute) FoldDecision {
	return f(op, constOperands)
}

// FoldOutcome tags a FoldDecision.
type FoldOutcome int

const (
	// FoldFailure means the operation declined to fold.
	FoldFailure FoldOutcome = iota
	// FoldInPlace means the operation could only fold by rewriting its own
	// operands or attributes. Analyses performing simulated execution
	// treat this as a rejection.
	FoldInPlace
	// FoldedResults means the decision carries one outcome per result.
	FoldedResults
)

// FoldResult is the outcome for a single result: either a literal constant
// attribute or an alias of an existing value. Exactly one field is set.
type FoldResult struct {
	Attr  Attribute
	Alias *Value
}

// IsLiteral reports whether the outcome is a literal attribute.
func (r FoldResult) IsLiteral() bool {
	return r.Attr != nil
}

// FoldDecision is the outcome of a fold attempt.
type FoldDecision struct {
	Outcome FoldOutcome
	Results []FoldResult
}

// Failure returns the declining decision.
func Failure() FoldDecision {
	return FoldDecision{Outcome: FoldFailure}
}

// InPlace returns the in-place-rewrite decision, which simulating callers
// reject.
func InPlace() FoldDecision {
	return FoldDecision{Outcome: FoldInPlace}
}

// Folded returns a successful decision with one outcome per result.
func Folded(results ...FoldResult) FoldDecision {
	return FoldDecision{Outcome: FoldedResults, Results: results}
}

// Literal wraps an attribute as a fold result.
func Literal(a Attribute) FoldResult {
	return FoldResult{Attr: a}
}

// AliasOf wraps an existing value as a fold result.
func AliasOf(v *Value) FoldResult {
	return FoldResult{Alias: v}
}
