package header

import (
	"fmt"
	"math/big"
	"strconv"

	"tmplconfig/internal/machine"
	"tmplconfig/internal/probe"
)

// Supplementary headers, written only when extras are requested.
var (
	IntTypeHeader = Artifact{
		File:      "tmpl_inttype.h",
		Component: "integer type header",
		Guard:     "TMPL_INTTYPE_H",
		Purpose:   "Fixed-width integer typedefs, when the platform has them.",
		body:      intTypeBody,
	}
	LimitsHeader = Artifact{
		File:      "tmpl_limits.h",
		Component: "limits header",
		Guard:     "TMPL_LIMITS_H",
		Purpose:   "Value bits of the unsigned integer types.",
		body:      limitsBody,
	}
	FloatHeader = Artifact{
		File:      "tmpl_float.h",
		Component: "float header",
		Guard:     "TMPL_FLOAT_H",
		Purpose:   "Machine epsilon of the floating types and its roots.",
		body:      floatBody,
	}
)

// Extras lists the supplementary headers in the order they are written.
func Extras() []Artifact {
	return []Artifact{IntTypeHeader, LimitsHeader, FloatHeader}
}

var fixedWidths = [...]int{8, 16, 32, 64}

// bitCountStems name the consuming library's per-type bit counting macros,
// unsigned then signed.
var bitCountStems = map[machine.Type][2]string{
	machine.Char:     {"TMPL_UCHAR", "TMPL_CHAR"},
	machine.Short:    {"TMPL_USHORT", "TMPL_SHORT"},
	machine.Int:      {"TMPL_UINT", "TMPL_INT"},
	machine.Long:     {"TMPL_ULONG", "TMPL_LONG"},
	machine.LongLong: {"TMPL_ULLONG", "TMPL_LLONG"},
}

// fixedWidthLines aliases tmpl_UIntN and tmpl_SIntN and their zero counting
// macros to the C type t.
func fixedWidthLines(t machine.Type, n int) []string {
	stems := bitCountStems[t]
	return []string{
		fmt.Sprintf("typedef %s tmpl_UInt%d;", t.CName(), n),
		fmt.Sprintf("typedef %s tmpl_SInt%d;", t.SignedCName(), n),
		fmt.Sprintf("#define tmpl_UInt%d_Trailing_Zeros %s_TRAILING_ZEROS", n, stems[0]),
		fmt.Sprintf("#define tmpl_SInt%d_Trailing_Zeros %s_TRAILING_ZEROS", n, stems[1]),
		fmt.Sprintf("#define tmpl_UInt%d_Leading_Zeros %s_LEADING_ZEROS", n, stems[0]),
	}
}

func intTypeBody(p *probe.Profile, _ CompilerOptions) []string {
	lines := []string{define("TMPL_HAS_LONGLONG", flag(p.Widths.LongLong.Known)), ""}
	if p.Options.DisableFixedWidth {
		for _, n := range fixedWidths {
			lines = append(lines, define(fmt.Sprintf("TMPL_HAS_%d_BIT_INT", n), "0"))
		}
		return lines
	}
	for _, n := range fixedWidths {
		t, ok := p.Widths.Exact(n)
		lines = append(lines, define(fmt.Sprintf("TMPL_HAS_%d_BIT_INT", n), flag(ok)))
		if ok {
			lines = append(lines, fixedWidthLines(t, n)...)
		}
		lines = append(lines, "")
	}
	return lines[:len(lines)-1]
}

var limitNames = [...]struct {
	typ  machine.Type
	name string
}{
	{machine.Char, "TMPL_UCHAR_BIT"},
	{machine.Short, "TMPL_USHORT_BIT"},
	{machine.Int, "TMPL_UINT_BIT"},
	{machine.Long, "TMPL_ULONG_BIT"},
	{machine.LongLong, "TMPL_ULLONG_BIT"},
}

func limitsBody(p *probe.Profile, _ CompilerOptions) []string {
	var lines []string
	for _, l := range limitNames {
		w := p.Widths.Of(l.typ)
		if !w.Known {
			continue
		}
		lines = append(lines, define(l.name, strconv.Itoa(w.Value)))
	}
	return lines
}

type epsilonRow struct {
	typ    machine.Type
	name   string
	suffix string
}

var epsilonRows = [...]epsilonRow{
	{machine.Double, "DBL", ""},
	{machine.Float, "FLT", "F"},
	{machine.LongDouble, "LDBL", "L"},
}

func floatBody(p *probe.Profile, _ CompilerOptions) []string {
	type root struct {
		prefix string
		apply  func(*big.Float) *big.Float
	}
	roots := []root{
		{"", func(x *big.Float) *big.Float { return x }},
		{"SQRT_", sqrt},
		{"QURT_", func(x *big.Float) *big.Float { return sqrt(sqrt(x)) }},
	}
	var lines []string
	for i, r := range roots {
		if i > 0 {
			lines = append(lines, "")
		}
		for _, row := range epsilonRows {
			eps, ok := p.Epsilons.Of(row.typ)
			if !ok {
				continue
			}
			v := r.apply(eps)
			lines = append(lines, define(
				"TMPL_"+r.prefix+row.name+"_EPS",
				"("+v.Text('E', 24)+row.suffix+")"))
		}
	}
	return lines
}

func sqrt(x *big.Float) *big.Float {
	return new(big.Float).SetPrec(x.Prec()).Sqrt(x)
}
