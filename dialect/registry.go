package dialect

import "github.com/wippyai/dataflow/ir"

// Dialect names.
const (
	Arith   = "arith"
	Missing = "missing"
	CF      = "cf"
)

// DefaultRegistry creates a registry with all built-in dialects.
func DefaultRegistry() *ir.Registry {
	r := ir.NewRegistry()
	RegisterArith(r)
	RegisterMissing(r)
	RegisterCF(r)
	return r
}
