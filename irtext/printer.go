package irtext

import (
	"sort"
	"strings"

	"github.com/wippyai/dataflow/ir"
)

// Print renders a program in the form Parse accepts.
func Print(p *ir.Program) string {
	var b strings.Builder
	if len(p.Body.Args) > 0 {
		b.WriteString(printArgs(p.Body.Args))
		b.WriteByte('\n')
	}
	printOps(&b, p.Body.Ops, 0)
	return b.String()
}

func printArgs(args []*ir.Value) string {
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = arg.String()
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func printOps(b *strings.Builder, ops []*ir.Operation, depth int) {
	indent := strings.Repeat("    ", depth)
	for _, op := range ops {
		b.WriteString(indent)
		b.WriteString(printOpHeader(op))
		for _, region := range op.Regions {
			b.WriteByte(' ')
			if len(region.Args) > 0 {
				b.WriteString(printArgs(region.Args))
				b.WriteByte(' ')
			}
			b.WriteString("{\n")
			printOps(b, region.Ops, depth+1)
			b.WriteString(indent)
			b.WriteByte('}')
		}
		b.WriteByte('\n')
	}
}

func printOpHeader(op *ir.Operation) string {
	var b strings.Builder
	if len(op.Results) > 0 {
		names := make([]string, len(op.Results))
		for i, r := range op.Results {
			names[i] = r.String()
		}
		b.WriteString(strings.Join(names, ", "))
		b.WriteString(" = ")
	}
	b.WriteString(op.Name())
	if len(op.Operands) > 0 {
		names := make([]string, len(op.Operands))
		for i, o := range op.Operands {
			names[i] = o.String()
		}
		b.WriteByte(' ')
		b.WriteString(strings.Join(names, ", "))
	}
	if len(op.Attrs) > 0 {
		keys := make([]string, 0, len(op.Attrs))
		for k := range op.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + " = " + op.Attrs[k].String()
		}
		b.WriteString(" [")
		b.WriteString(strings.Join(pairs, ", "))
		b.WriteByte(']')
	}
	return b.String()
}
