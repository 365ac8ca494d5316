// Package machine models the data representation of a C platform as a small
// set of primitive operations. Probes in internal/probe only ever observe a
// platform through this interface, so the same detection logic runs against
// the Go host, the C toolchain through cgo, or a described target.
package machine

import (
	"fmt"
	"math/big"
	"strings"
)

// Type is a C arithmetic type. Integer types stand for their unsigned
// variants except in SignedAnd.
type Type uint8

const (
	Char Type = iota
	Short
	Int
	Long
	LongLong
	Float
	Double
	LongDouble

	numTypes
)

// UnsignedTypes lists the unsigned integer types from narrowest to widest.
var UnsignedTypes = [...]Type{Char, Short, Int, Long, LongLong}

// FloatingTypes lists the floating types from narrowest to widest.
var FloatingTypes = [...]Type{Float, Double, LongDouble}

var typeNames = [numTypes]string{
	Char:       "char",
	Short:      "short",
	Int:        "int",
	Long:       "long",
	LongLong:   "long long",
	Float:      "float",
	Double:     "double",
	LongDouble: "long double",
}

var typeKeys = [numTypes]string{
	Char:       "char",
	Short:      "short",
	Int:        "int",
	Long:       "long",
	LongLong:   "long_long",
	Float:      "float",
	Double:     "double",
	LongDouble: "long_double",
}

func (t Type) String() string {
	if t < numTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Key is the snake_case name used in description files.
func (t Type) Key() string {
	if t < numTypes {
		return typeKeys[t]
	}
	return t.String()
}

// CName spells the unsigned variant of an integer type, or the type itself
// for floating types.
func (t Type) CName() string {
	if t.IsFloating() {
		return t.String()
	}
	return "unsigned " + t.String()
}

// SignedCName spells the signed variant of an integer type.
func (t Type) SignedCName() string {
	if t == Char {
		return "signed char"
	}
	return "signed " + t.String()
}

// IsFloating reports whether t is float, double or long double.
func (t Type) IsFloating() bool {
	return t >= Float && t < numTypes
}

// ParseType accepts either the C spelling or the description key.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "unsigned ")
	for i := range numTypes {
		if typeNames[i] == name || typeKeys[i] == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown C type %q", s)
}

// PrintableCount is the number of printable ASCII glyphs, ' ' through '~'.
const PrintableCount = 0x7F - 0x20

// Machine exposes the primitive operations the probes are built from.
//
// Unsigned values travel as uint64 and are reduced modulo 2^w where w is the
// number of value bits of the type; no machine may have an unsigned type
// wider than 64 value bits.
type Machine interface {
	// Name identifies the machine in reports.
	Name() string

	// Sizeof returns sizeof(t) in chars, or 0 when the type is absent.
	Sizeof(t Type) int

	// Mul, Add and Shl evaluate a*b, a+b and a<<n in the unsigned type t.
	Mul(t Type, a, b uint64) uint64
	Add(t Type, a, b uint64) uint64
	Shl(t Type, a uint64, n uint) uint64

	// Cells returns the object representation of v stored in an object of
	// unsigned type t, one element per char, in memory order.
	Cells(t Type, v uint64) []uint64

	// SignedAnd evaluates a & b in the signed counterpart of t.
	SignedAnd(t Type, a, b int64) int64

	// CharCode returns the execution character set code of the i-th
	// printable ASCII glyph. ok is false when the glyph is not a single char.
	CharCode(i int) (code uint64, ok bool)

	// EqualsOne reinterprets image, an octet sequence in memory order, as
	// an object of floating type t and compares it with 1.0.
	EqualsOne(t Type, image []byte) bool

	// Epsilon returns the machine epsilon of floating type t.
	Epsilon(t Type) (*big.Float, bool)
}

// cgoHost is installed by the cgo oracle when it is compiled in.
var cgoHost func() Machine

// Host returns the machine the process runs on: the C toolchain itself when
// built with the cgoprobe tag, the Go runtime otherwise.
func Host() Machine {
	if cgoHost != nil {
		return cgoHost()
	}
	return NewNative()
}

// HasCgoOracle reports whether Host consults the C compiler.
func HasCgoOracle() bool {
	return cgoHost != nil
}
