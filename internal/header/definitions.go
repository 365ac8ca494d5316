package header

import (
	"strconv"

	"tmplconfig/internal/probe"
)

// Definition is one #define line.
type Definition struct {
	Name  string
	Value string
}

// Integer and floating byte order tags.
const (
	tagLittle  = "TMPL_LITTLE_ENDIAN"
	tagMixed   = "TMPL_MIXED_ENDIAN"
	tagBig     = "TMPL_BIG_ENDIAN"
	tagUnknown = "TMPL_UNKNOWN_ENDIAN"
)

func endianTag(e probe.Endianness) string {
	switch e {
	case probe.EndianLittle:
		return tagLittle
	case probe.EndianBig:
		return tagBig
	case probe.EndianMixed:
		return tagMixed
	}
	return tagUnknown
}

func signedTag(s probe.SignedRep) string {
	switch s {
	case probe.SignAndMagnitude:
		return "TMPL_SIGN_AND_MAGNITUDE"
	case probe.OnesComplement:
		return "TMPL_ONES_COMPLEMENT"
	case probe.TwosComplement:
		return "TMPL_TWOS_COMPLEMENT"
	}
	return "TMPL_UNKNOWN_SIGNED_REP"
}

func longDoubleTag(l probe.LongDoubleLayout) string {
	return "TMPL_LDOUBLE_" + l.Tag()
}

// familyTag shares TMPL_LDOUBLE_UNKNOWN with the layout tags.
func familyTag(f probe.LongDoubleFamily) string {
	return "TMPL_LDOUBLE_" + f.Tag()
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Vocabulary lists the values the tags in Definitions may take.
func Vocabulary() []Definition {
	defs := []Definition{
		{tagLittle, "0"},
		{tagMixed, "1"},
		{tagBig, "2"},
		{tagUnknown, "3"},

		{signedTag(probe.SignAndMagnitude), "0"},
		{signedTag(probe.OnesComplement), "1"},
		{signedTag(probe.TwosComplement), "2"},
		{signedTag(probe.SignedUnknown), "3"},
	}
	for _, l := range probe.LongDoubleLayouts() {
		defs = append(defs, Definition{longDoubleTag(l), strconv.Itoa(l.Index())})
	}
	defs = append(defs, Definition{longDoubleTag(probe.LongDoubleUnknown), strconv.Itoa(probe.LongDoubleUnknown.Index())})
	for _, f := range []probe.LongDoubleFamily{probe.Family64, probe.Family80, probe.Family128, probe.FamilyDoubleDouble} {
		defs = append(defs, Definition{familyTag(f), strconv.Itoa(f.Index())})
	}
	for _, g := range []GCDAlgorithm{GCDBinary, GCDMixedBinary, GCDEuclidean, GCDNaive} {
		defs = append(defs, Definition{g.Tag(), strconv.Itoa(int(g))})
	}
	return defs
}

// Definitions returns the constants of tmpl_config.h in output order.
func Definitions(p *probe.Profile, c CompilerOptions) []Definition {
	inlineDecl, staticInline := "extern", "static"
	if c.Inline {
		inlineDecl, staticInline = "static inline", "static inline"
	}
	restrict := ""
	if c.Restrict {
		restrict = "restrict"
	}
	gcd := c.GCD
	if _, ok := gcdTags[gcd]; !ok {
		gcd = GCDMixedBinary
	}
	caps := p.Capabilities
	return []Definition{
		{"TMPL_ENDIAN", endianTag(p.Endianness)},
		{"TMPL_SIGNED_REP", signedTag(p.Signed)},
		{"TMPL_FLOAT_ENDIANNESS", endianTag(p.Float.Endianness())},
		{"TMPL_DOUBLE_ENDIANNESS", endianTag(p.Double.Endianness())},
		{"TMPL_LDOUBLE_ENDIANNESS", longDoubleTag(p.LongDouble)},
		{"TMPL_LDOUBLE_TYPE", familyTag(p.LongDouble.Family())},
		{"TMPL_HAS_FLOATINT32", flag(caps.FloatIntPun32)},
		{"TMPL_HAS_FLOATINT64", flag(caps.FloatIntPun64)},
		{"TMPL_HAS_FLOATINT_LONG_DOUBLE", flag(caps.FloatIntPunLongDouble)},
		{"TMPL_HAS_ASCII", flag(p.ASCII)},
		{"TMPL_USE_INLINE", flag(c.Inline)},
		{"TMPL_INLINE_DECL", inlineDecl},
		{"TMPL_STATIC_INLINE", staticInline},
		{"TMPL_HAS_RESTRICT", flag(c.Restrict)},
		{"TMPL_RESTRICT", restrict},
		{"TMPL_USE_MEMCPY", flag(c.Memcpy)},
		{"TMPL_GCD_ALGORITHM", gcd.Tag()},
	}
}
