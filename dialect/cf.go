package dialect

import "github.com/wippyai/dataflow/ir"

// RegisterCF registers the cf dialect. cf.if carries two nested regions
// (then and else); analyses that simulate execution skip over it, so it
// deliberately has no fold capability.
func RegisterCF(r *ir.Registry) {
	r.Register(&ir.OpDef{
		Dialect:     CF,
		Name:        "if",
		NumOperands: 1,
		NumResults:  1,
		NumRegions:  2,
	})
}
