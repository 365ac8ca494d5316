package probe

import (
	"tmplconfig/internal/machine"
)

// candidate is a bit-field layout that spells 1.0 if the machine uses it.
type candidate struct {
	name   string
	order  fillOrder
	fields []field
}

func (c candidate) image() []byte {
	return pack(c.order, totalWidth(c.fields)/8, c.fields)
}

func (c candidate) storageBits() int { return totalWidth(c.fields) }

func mantissa(prefix string, widths ...int) []field {
	out := make([]field, len(widths))
	for i, w := range widths {
		out[i] = field{name: prefix + string(rune('0'+i)), width: w}
	}
	return out
}

func pad(name string, width int) field { return field{name: name, width: width} }

func sign() field { return field{name: "sign", width: 1} }

// expo is the exponent field holding the bias, which encodes 2^0.
func expo(width int) field {
	return field{name: "expo", width: width, value: 1<<(width-1) - 1}
}

// intr is the explicit integer bit of the x87 format.
func intr() field { return field{name: "intr", width: 1, value: 1} }

// Fields in most significant order; little-endian candidates declare them in
// reverse and pack from the low bit.
var (
	binary32Fields = concat([]field{sign(), expo(8)}, mantissa("man", 7, 16))
	binary64Fields = concat([]field{sign(), expo(11)}, mantissa("man", 4, 16, 16, 16))
	quadFields     = concat([]field{sign(), expo(15)}, mantissa("man", 16, 16, 16, 16, 16, 16, 16))
	x87Mantissa    = concat([]field{intr()}, mantissa("man", 15, 16, 16, 16))
)

func bigCandidate(name string, fields []field) candidate {
	return candidate{name: name, order: msbFirst, fields: fields}
}

func littleCandidate(name string, fields []field) candidate {
	return candidate{name: name, order: lsbFirst, fields: reversed(fields)}
}

type floatCandidate struct {
	candidate
	layout FloatLayout
}

// Big-endian is tried first for float and double, as for long double.
var (
	floatCandidates = []floatCandidate{
		{bigCandidate("binary32 big", binary32Fields), LayoutBigIEEE754},
		{littleCandidate("binary32 little", binary32Fields), LayoutLittleIEEE754},
	}
	doubleCandidates = []floatCandidate{
		{bigCandidate("binary64 big", binary64Fields), LayoutBigIEEE754},
		{littleCandidate("binary64 little", binary64Fields), LayoutLittleIEEE754},
	}
)

type longDoubleCandidate struct {
	candidate
	layout LongDoubleLayout
}

func longDoubleCatalogue() []longDoubleCandidate {
	dd := []field{pad("lo0", 16), pad("lo1", 16), pad("lo2", 16), pad("lo3", 16)}
	return []longDoubleCandidate{
		{bigCandidate("64-bit big", binary64Fields), LongDouble64Big},
		{littleCandidate("64-bit little", binary64Fields), LongDouble64Little},

		// 80-bit extended with two octets of padding; big-endian ABIs pad
		// between the exponent and the mantissa.
		{bigCandidate("96-bit extended big",
			concat([]field{sign(), expo(15), pad("pad0", 16)}, x87Mantissa)), LongDouble96ExtendedBig},
		{littleCandidate("96-bit extended little",
			concat([]field{pad("pad0", 16), sign(), expo(15)}, x87Mantissa)), LongDouble96ExtendedLittle},

		{littleCandidate("128-bit extended little",
			concat([]field{pad("pad0", 16), pad("pad1", 16), pad("pad2", 16), sign(), expo(15)}, x87Mantissa)),
			LongDouble128ExtendedLittle},
		{bigCandidate("128-bit extended big",
			concat([]field{pad("pad0", 16), pad("pad1", 16), sign(), expo(15), pad("pad2", 16)}, x87Mantissa)),
			LongDouble128ExtendedBig},

		{littleCandidate("128-bit quadruple little", quadFields), LongDouble128QuadLittle},
		{bigCandidate("128-bit quadruple big", quadFields), LongDouble128QuadBig},

		// the high double comes first in memory in both byte orders
		{candidate{name: "128-bit double-double little", order: lsbFirst,
			fields: concat(reversed(binary64Fields), dd)}, LongDouble128DoubleDoubleLittle},
		{bigCandidate("128-bit double-double big", concat(binary64Fields, dd)), LongDouble128DoubleDoubleBig},
	}
}

// matchFloat tries candidates of the given storage size against t in order
// and returns the first that reads back as 1.0.
func matchFloat(m machine.Machine, t machine.Type, cands []floatCandidate, try func(name string, ok bool)) FloatLayout {
	for _, c := range cands {
		ok := m.EqualsOne(t, c.image())
		try(c.name, ok)
		if ok {
			return c.layout
		}
	}
	return LayoutUnknown
}

func matchLongDouble(m machine.Machine, storageBits int, try func(name string, ok bool)) LongDoubleLayout {
	for _, c := range longDoubleCatalogue() {
		if c.storageBits() != storageBits {
			continue
		}
		ok := m.EqualsOne(machine.LongDouble, c.image())
		try(c.name, ok)
		if ok {
			return c.layout
		}
	}
	return LongDoubleUnknown
}
