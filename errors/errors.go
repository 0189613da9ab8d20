package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // textual IR parsing
	PhaseBuild    Phase = "build"    // programmatic IR construction
	PhaseVerify   Phase = "verify"   // structural IR verification
	PhaseAnalysis Phase = "analysis" // fixpoint solving
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidIR     Kind = "invalid_ir"
	KindUnknownOp     Kind = "unknown_op"
	KindUnknownValue  Kind = "unknown_value"
	KindArityMismatch Kind = "arity_mismatch"
	KindUseBeforeDef  Kind = "use_before_def"
	KindDuplicateName Kind = "duplicate_name"
	KindMissingAttr   Kind = "missing_attr"
	KindContract      Kind = "contract_violation"
	KindInvalidInput  Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	OpName  string // qualified operation name, e.g. "arith.add"
	Dialect string
	Detail  string
	Line    int // 1-based source line for parse errors, 0 if unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}

	if e.OpName != "" {
		b.WriteString(" in ")
		b.WriteString(e.OpName)
	} else if e.Dialect != "" {
		b.WriteString(" in dialect ")
		b.WriteString(e.Dialect)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// KindOf returns the Kind of err when it is, or wraps, an *Error. It
// returns the empty Kind for nil and for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the qualified operation name
func (b *Builder) Op(name string) *Builder {
	b.err.OpName = name
	return b
}

// Dialect sets the dialect name
func (b *Builder) Dialect(name string) *Builder {
	b.err.Dialect = name
	return b
}

// Line sets the source line for parse errors
func (b *Builder) Line(line int) *Builder {
	b.err.Line = line
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Contract creates a fatal contract-violation error. These indicate a broken
// collaborator (a fold capability misbehaving), never a property of the
// analyzed program.
func Contract(opName, detail string) *Error {
	return &Error{
		Phase:  PhaseAnalysis,
		Kind:   KindContract,
		OpName: opName,
		Detail: detail,
	}
}

// UnknownOp creates an unknown-operation error
func UnknownOp(phase Phase, opName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownOp,
		OpName: opName,
		Detail: fmt.Sprintf("operation %q is not registered", opName),
	}
}

// UnknownValue creates an unknown-value error
func UnknownValue(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownValue,
		Detail: fmt.Sprintf("value %q is not defined", name),
	}
}

// ArityMismatch creates an operand/result arity error
func ArityMismatch(phase Phase, opName string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArityMismatch,
		OpName: opName,
		Detail: fmt.Sprintf("want %d, got %d", want, got),
	}
}

// UseBeforeDef creates a use-before-definition error
func UseBeforeDef(opName, valueName string) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindUseBeforeDef,
		OpName: opName,
		Detail: fmt.Sprintf("value %q used before its definition", valueName),
	}
}

// DuplicateName creates a duplicate-definition error
func DuplicateName(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateName,
		Detail: fmt.Sprintf("name %q already defined", name),
	}
}

// MissingAttr creates a missing-attribute error
func MissingAttr(phase Phase, opName, attr string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingAttr,
		OpName: opName,
		Detail: fmt.Sprintf("required attribute %q not set", attr),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// ParseFailed creates a parsing error with a line number
func ParseFailed(line int, detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidIR,
		Line:   line,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
