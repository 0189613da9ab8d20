package missingness

import (
	"testing"

	"github.com/wippyai/dataflow"
	"github.com/wippyai/dataflow/dialect"
	"github.com/wippyai/dataflow/ir"
	"github.com/wippyai/dataflow/irtext"
	"github.com/wippyai/dataflow/lattice"
)

// analyze parses src against the built-in dialects, runs the missingness
// analysis to a fixpoint, and returns the element of every named value.
func analyze(t *testing.T, src string, cfg Config) map[string]lattice.Missingness {
	t.Helper()
	prog, err := irtext.Parse(dialect.DefaultRegistry(), src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := ir.Verify(prog); err != nil {
		t.Fatalf("verify: %v", err)
	}

	s := dataflow.NewSolver(prog, dataflow.Config{})
	s.Register(New(cfg))
	if err := s.Run(); err != nil {
		t.Fatalf("solve: %v", err)
	}

	out := make(map[string]lattice.Missingness)
	for _, v := range prog.Values() {
		el, err := s.Result(Name, v)
		if err != nil {
			t.Fatalf("result of %s: %v", v, err)
		}
		out[v.Name] = el.(lattice.Missingness)
	}
	return out
}

func TestAnalysis_Traits(t *testing.T) {
	got := analyze(t, `
		%c = arith.const [value = 1]
		%m = missing.missing
		%p = missing.is_missing %m
	`, Config{})

	want := map[string]lattice.Missingness{
		"c": lattice.Present, // materialized constants always exist
		"m": lattice.Missing,
		"p": lattice.Present, // the predicate's boolean always exists
	}
	for name, wantEl := range want {
		if got[name] != wantEl {
			t.Errorf("%%%s = %v, want %v", name, got[name], wantEl)
		}
	}
}

func TestAnalysis_StrictRule(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want map[string]lattice.Missingness
	}{
		{
			name: "all present operands",
			src: `
				%a = arith.const [value = 1]
				%b = arith.const [value = 2]
				%sum = arith.add %a, %b
			`,
			want: map[string]lattice.Missingness{"sum": lattice.Present},
		},
		{
			name: "missing operand poisons the result",
			src: `
				%a = arith.const [value = 1]
				%m = missing.missing
				%sum = arith.add %a, %m
			`,
			want: map[string]lattice.Missingness{"sum": lattice.Missing},
		},
		{
			name: "unknown operand keeps the result unknown",
			src: `
				(%x)
				%a = arith.const [value = 1]
				%sum = arith.add %a, %x
			`,
			want: map[string]lattice.Missingness{
				"x":   lattice.MissingnessUnknown, // arguments are unconstrained
				"sum": lattice.MissingnessUnknown,
			},
		},
		{
			name: "missing wins over unknown",
			src: `
				(%x)
				%m = missing.missing
				%sum = arith.add %x, %m
			`,
			want: map[string]lattice.Missingness{"sum": lattice.Missing},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyze(t, tt.src, Config{})
			for name, wantEl := range tt.want {
				if got[name] != wantEl {
					t.Errorf("%%%s = %v, want %v", name, got[name], wantEl)
				}
			}
		})
	}
}

func TestAnalysis_Coalesce(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want lattice.Missingness
	}{
		{
			name: "present fallback rescues a missing value",
			src: `
				%m = missing.missing
				%c = arith.const [value = 1]
				%r = missing.coalesce %m, %c
			`,
			want: lattice.Present,
		},
		{
			name: "all operands missing",
			src: `
				%m1 = missing.missing
				%m2 = missing.missing
				%r = missing.coalesce %m1, %m2
			`,
			want: lattice.Missing,
		},
		{
			name: "unknown fallback stays unknown",
			src: `
				(%x)
				%m = missing.missing
				%r = missing.coalesce %m, %x
			`,
			want: lattice.MissingnessUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyze(t, tt.src, Config{})
			if got["r"] != tt.want {
				t.Errorf("%%r = %v, want %v", got["r"], tt.want)
			}
		})
	}
}

func TestAnalysis_RegionResultsUnconstrained(t *testing.T) {
	got := analyze(t, `
		%c = arith.const [value = 1]
		%r = cf.if %c { %t = arith.const [value = 2] } { %e = missing.missing }
	`, Config{})

	if got["r"] != lattice.MissingnessUnknown {
		t.Errorf("region op result = %v, want unknown", got["r"])
	}
	// Nested bodies are still analyzed on their own.
	if got["t"] != lattice.Present {
		t.Errorf("%%t = %v, want present", got["t"])
	}
	if got["e"] != lattice.Missing {
		t.Errorf("%%e = %v, want missing", got["e"])
	}
}

func TestAnalysis_TransferOverride(t *testing.T) {
	// Treat arith.add as never producing a missing value, regardless of
	// operands.
	cfg := Config{Transfers: map[string]TransferFunc{
		"arith.add": func(_ *ir.Operation, _ []lattice.Missingness) lattice.Missingness {
			return lattice.Present
		},
	}}
	got := analyze(t, `
		%a = arith.const [value = 1]
		%m = missing.missing
		%sum = arith.add %a, %m
	`, cfg)

	if got["sum"] != lattice.Present {
		t.Errorf("%%sum = %v, want present under the override", got["sum"])
	}
}

func TestStrictTransfer(t *testing.T) {
	tests := []struct {
		name     string
		operands []lattice.Missingness
		want     lattice.Missingness
	}{
		{"no operands is an opaque source", nil, lattice.MissingnessUnknown},
		{"all present", []lattice.Missingness{lattice.Present, lattice.Present}, lattice.Present},
		{"one missing", []lattice.Missingness{lattice.Present, lattice.Missing}, lattice.Missing},
		{"missing beats uninitialized", []lattice.Missingness{lattice.MissingnessUninitialized, lattice.Missing}, lattice.Missing},
		{"uninitialized abstains", []lattice.Missingness{lattice.MissingnessUninitialized, lattice.Present}, lattice.MissingnessUninitialized},
		{"unknown taints", []lattice.Missingness{lattice.MissingnessUnknown, lattice.Present}, lattice.MissingnessUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strictTransfer(tt.operands); got != tt.want {
				t.Errorf("strictTransfer = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoalesceTransfer(t *testing.T) {
	tests := []struct {
		name     string
		operands []lattice.Missingness
		want     lattice.Missingness
	}{
		{"present short-circuits", []lattice.Missingness{lattice.Missing, lattice.Present}, lattice.Present},
		{"present beats uninitialized", []lattice.Missingness{lattice.MissingnessUninitialized, lattice.Present}, lattice.Present},
		{"all missing", []lattice.Missingness{lattice.Missing, lattice.Missing}, lattice.Missing},
		{"uninitialized abstains", []lattice.Missingness{lattice.Missing, lattice.MissingnessUninitialized}, lattice.MissingnessUninitialized},
		{"unknown stays unknown", []lattice.Missingness{lattice.Missing, lattice.MissingnessUnknown}, lattice.MissingnessUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coalesceTransfer(nil, tt.operands); got != tt.want {
				t.Errorf("coalesceTransfer = %v, want %v", got, tt.want)
			}
		})
	}
}
