package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseAnalysis,
				Kind:   KindContract,
				OpName: "arith.add",
				Detail: "fold result arity mismatch",
			},
			contains: []string{"[analysis]", "contract_violation", "arith.add", "fold result arity mismatch"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseVerify,
				Kind:  KindArityMismatch,
			},
			contains: []string{"[verify]", "arity_mismatch"},
		},
		{
			name: "parse error with line",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindInvalidIR,
				Line:   7,
				Detail: "unexpected token",
			},
			contains: []string{"[parse]", "invalid_ir", "line 7", "unexpected token"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseBuild,
				Kind:   KindInvalidInput,
				Detail: "bad operand",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[build]", "invalid_input", "bad operand", "caused by", "underlying error"},
		},
		{
			name: "dialect only",
			err: &Error{
				Phase:   PhaseBuild,
				Kind:    KindUnknownOp,
				Dialect: "arith",
			},
			contains: []string{"[build]", "unknown_op", "dialect arith"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Error() = %q, want substring %q", got, want)
				}
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := Contract("arith.add", "arity")
	target := &Error{Phase: PhaseAnalysis, Kind: KindContract}

	if !errors.Is(err, target) {
		t.Errorf("errors.Is() = false, want true for matching phase/kind")
	}

	other := &Error{Phase: PhaseParse, Kind: KindContract}
	if errors.Is(err, other) {
		t.Errorf("errors.Is() = true, want false for differing phase")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseVerify, KindInvalidIR, cause, "verification failed")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is() did not find wrapped cause")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(Contract("arith.add", "bad")); got != KindContract {
		t.Errorf("KindOf = %q, want %q", got, KindContract)
	}
	wrapped := Wrap(PhaseAnalysis, KindContract, errors.New("inner"), "outer")
	if got := KindOf(wrapped); got != KindContract {
		t.Errorf("KindOf(wrapped) = %q, want %q", got, KindContract)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(foreign) = %q, want empty", got)
	}
	if got := KindOf(nil); got != "" {
		t.Errorf("KindOf(nil) = %q, want empty", got)
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseAnalysis, KindContract).
		Op("missing.is_missing").
		Detail("fold returned %d results for %d-result op", 2, 1).
		Build()

	if err.OpName != "missing.is_missing" {
		t.Errorf("OpName = %q, want %q", err.OpName, "missing.is_missing")
	}
	if err.Detail != "fold returned 2 results for 1-result op" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"Contract", Contract("arith.add", "bad"), KindContract},
		{"UnknownOp", UnknownOp(PhaseParse, "arith.bogus"), KindUnknownOp},
		{"UnknownValue", UnknownValue(PhaseParse, "%x"), KindUnknownValue},
		{"ArityMismatch", ArityMismatch(PhaseVerify, "arith.add", 2, 3), KindArityMismatch},
		{"UseBeforeDef", UseBeforeDef("arith.add", "%x"), KindUseBeforeDef},
		{"DuplicateName", DuplicateName(PhaseParse, "%x"), KindDuplicateName},
		{"MissingAttr", MissingAttr(PhaseVerify, "arith.const", "value"), KindMissingAttr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Errorf("Error() is empty")
			}
		})
	}
}
