package probe

import (
	"fmt"
	"strings"
)

// Endianness is the byte order of an integer or floating type.
type Endianness uint8

const (
	EndianUnknown Endianness = iota
	EndianLittle
	EndianBig
	EndianMixed
)

var endiannessNames = [...]string{
	EndianUnknown: "unknown",
	EndianLittle:  "little",
	EndianBig:     "big",
	EndianMixed:   "mixed",
}

func (e Endianness) String() string {
	if int(e) < len(endiannessNames) {
		return endiannessNames[e]
	}
	return fmt.Sprintf("endianness(%d)", uint8(e))
}

func (e Endianness) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *Endianness) UnmarshalText(text []byte) error {
	v, err := parseName(string(text), endiannessNames[:], "endianness")
	if err != nil {
		return err
	}
	*e = Endianness(v)
	return nil
}

// SignedRep is the encoding of negative integers.
type SignedRep uint8

const (
	SignedUnknown SignedRep = iota
	SignAndMagnitude
	OnesComplement
	TwosComplement
)

var signedNames = [...]string{
	SignedUnknown:    "unknown",
	SignAndMagnitude: "sign-and-magnitude",
	OnesComplement:   "ones-complement",
	TwosComplement:   "twos-complement",
}

func (s SignedRep) String() string {
	if int(s) < len(signedNames) {
		return signedNames[s]
	}
	return fmt.Sprintf("signed(%d)", uint8(s))
}

func (s SignedRep) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SignedRep) UnmarshalText(text []byte) error {
	v, err := parseName(string(text), signedNames[:], "signed representation")
	if err != nil {
		return err
	}
	*s = SignedRep(v)
	return nil
}

// FloatLayout classifies float and double. Only IEEE-754 layouts are known.
type FloatLayout uint8

const (
	LayoutUnknown FloatLayout = iota
	LayoutLittleIEEE754
	LayoutBigIEEE754
)

var floatLayoutNames = [...]string{
	LayoutUnknown:       "unknown",
	LayoutLittleIEEE754: "little-ieee754",
	LayoutBigIEEE754:    "big-ieee754",
}

func (l FloatLayout) String() string {
	if int(l) < len(floatLayoutNames) {
		return floatLayoutNames[l]
	}
	return fmt.Sprintf("layout(%d)", uint8(l))
}

// Endianness is the byte order implied by the layout.
func (l FloatLayout) Endianness() Endianness {
	switch l {
	case LayoutLittleIEEE754:
		return EndianLittle
	case LayoutBigIEEE754:
		return EndianBig
	}
	return EndianUnknown
}

func (l FloatLayout) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *FloatLayout) UnmarshalText(text []byte) error {
	v, err := parseName(string(text), floatLayoutNames[:], "float layout")
	if err != nil {
		return err
	}
	*l = FloatLayout(v)
	return nil
}

// LongDoubleLayout is one entry of the long double catalogue.
type LongDoubleLayout uint8

const (
	LongDoubleUnknown LongDoubleLayout = iota
	LongDouble64Little
	LongDouble64Big
	LongDouble96ExtendedLittle
	LongDouble96ExtendedBig
	LongDouble128ExtendedLittle
	LongDouble128ExtendedBig
	LongDouble128QuadLittle
	LongDouble128QuadBig
	LongDouble128DoubleDoubleLittle
	LongDouble128DoubleDoubleBig

	numLongDoubleLayouts
)

var longDoubleNames = [...]string{
	LongDoubleUnknown:               "unknown",
	LongDouble64Little:              "64-little",
	LongDouble64Big:                 "64-big",
	LongDouble96ExtendedLittle:      "96-extended-little",
	LongDouble96ExtendedBig:         "96-extended-big",
	LongDouble128ExtendedLittle:     "128-extended-little",
	LongDouble128ExtendedBig:        "128-extended-big",
	LongDouble128QuadLittle:         "128-quadruple-little",
	LongDouble128QuadBig:            "128-quadruple-big",
	LongDouble128DoubleDoubleLittle: "128-doubledouble-little",
	LongDouble128DoubleDoubleBig:    "128-doubledouble-big",
}

// Tags are the header spellings, without the TMPL_LDOUBLE_ prefix.
var longDoubleTags = [...]string{
	LongDoubleUnknown:               "UNKNOWN",
	LongDouble64Little:              "64_BIT_LITTLE_ENDIAN",
	LongDouble64Big:                 "64_BIT_BIG_ENDIAN",
	LongDouble96ExtendedLittle:      "96_BIT_EXTENDED_LITTLE_ENDIAN",
	LongDouble96ExtendedBig:         "96_BIT_EXTENDED_BIG_ENDIAN",
	LongDouble128ExtendedLittle:     "128_BIT_EXTENDED_LITTLE_ENDIAN",
	LongDouble128ExtendedBig:        "128_BIT_EXTENDED_BIG_ENDIAN",
	LongDouble128QuadLittle:         "128_BIT_QUADRUPLE_LITTLE_ENDIAN",
	LongDouble128QuadBig:            "128_BIT_QUADRUPLE_BIG_ENDIAN",
	LongDouble128DoubleDoubleLittle: "128_BIT_DOUBLEDOUBLE_LITTLE_ENDIAN",
	LongDouble128DoubleDoubleBig:    "128_BIT_DOUBLEDOUBLE_BIG_ENDIAN",
}

// LongDoubleLayouts lists the catalogue in header numbering order.
func LongDoubleLayouts() []LongDoubleLayout {
	out := make([]LongDoubleLayout, 0, numLongDoubleLayouts-1)
	for l := LongDouble64Little; l < numLongDoubleLayouts; l++ {
		out = append(out, l)
	}
	return out
}

func (l LongDoubleLayout) String() string {
	if l < numLongDoubleLayouts {
		return longDoubleNames[l]
	}
	return fmt.Sprintf("long-double(%d)", uint8(l))
}

// Tag is the header constant suffix, e.g. 128_BIT_QUADRUPLE_BIG_ENDIAN.
func (l LongDoubleLayout) Tag() string {
	if l < numLongDoubleLayouts {
		return longDoubleTags[l]
	}
	return longDoubleTags[LongDoubleUnknown]
}

// Index is the numeric value the header assigns to the tag. Catalogue
// entries count from zero; Unknown comes last.
func (l LongDoubleLayout) Index() int {
	if l == LongDoubleUnknown || l >= numLongDoubleLayouts {
		return int(numLongDoubleLayouts) - 1
	}
	return int(l) - 1
}

// StorageBits is the object size the layout occupies.
func (l LongDoubleLayout) StorageBits() int {
	switch l {
	case LongDouble64Little, LongDouble64Big:
		return 64
	case LongDouble96ExtendedLittle, LongDouble96ExtendedBig:
		return 96
	case LongDoubleUnknown:
		return 0
	}
	return 128
}

func (l LongDoubleLayout) Endianness() Endianness {
	switch l {
	case LongDouble64Little, LongDouble96ExtendedLittle, LongDouble128ExtendedLittle,
		LongDouble128QuadLittle, LongDouble128DoubleDoubleLittle:
		return EndianLittle
	case LongDoubleUnknown:
		return EndianUnknown
	}
	return EndianBig
}

// Family is the coarse format of the layout.
func (l LongDoubleLayout) Family() LongDoubleFamily {
	switch l {
	case LongDouble64Little, LongDouble64Big:
		return Family64
	case LongDouble96ExtendedLittle, LongDouble96ExtendedBig,
		LongDouble128ExtendedLittle, LongDouble128ExtendedBig:
		return Family80
	case LongDouble128QuadLittle, LongDouble128QuadBig:
		return Family128
	case LongDouble128DoubleDoubleLittle, LongDouble128DoubleDoubleBig:
		return FamilyDoubleDouble
	}
	return FamilyUnknown
}

func (l LongDoubleLayout) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *LongDoubleLayout) UnmarshalText(text []byte) error {
	v, err := parseName(string(text), longDoubleNames[:], "long double layout")
	if err != nil {
		return err
	}
	*l = LongDoubleLayout(v)
	return nil
}

// LongDoubleFamily groups the catalogue by format.
type LongDoubleFamily uint8

const (
	FamilyUnknown LongDoubleFamily = iota
	Family64
	Family80
	Family128
	FamilyDoubleDouble
)

var familyTags = [...]string{
	FamilyUnknown:      "UNKNOWN",
	Family64:           "64_BIT",
	Family80:           "80_BIT",
	Family128:          "128_BIT",
	FamilyDoubleDouble: "DOUBLEDOUBLE",
}

// Tag is the header constant suffix of the family.
func (f LongDoubleFamily) Tag() string {
	if int(f) < len(familyTags) {
		return familyTags[f]
	}
	return familyTags[FamilyUnknown]
}

// Index is the header value of the family; Unknown comes last.
func (f LongDoubleFamily) Index() int {
	if f == FamilyUnknown || int(f) >= len(familyTags) {
		return len(familyTags) - 1
	}
	return int(f) - 1
}

func (f LongDoubleFamily) String() string {
	return strings.ToLower(strings.ReplaceAll(f.Tag(), "_", "-"))
}

func parseName(s string, names []string, what string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, s)
}
