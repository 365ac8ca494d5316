package floatfmt

import (
	"fmt"
	"strings"
)

// Encoding names an object format for a floating-point type.
type Encoding uint8

const (
	// None means the type has no format this package can decode.
	None Encoding = iota
	// Binary32 is IEEE-754 single precision.
	Binary32
	// Binary64 is IEEE-754 double precision.
	Binary64
	// Binary128 is IEEE-754 quadruple precision.
	Binary128
	// X87 is the 80-bit extended format with an explicit integer bit,
	// usually padded to 96 or 128 bits of storage.
	X87
	// DoubleDouble is a pair of Binary64 values whose sum is the value.
	DoubleDouble
)

var encodingNames = [...]string{
	None:         "none",
	Binary32:     "binary32",
	Binary64:     "binary64",
	Binary128:    "binary128",
	X87:          "x87",
	DoubleDouble: "double-double",
}

func (e Encoding) String() string {
	if int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return fmt.Sprintf("encoding(%d)", uint8(e))
}

// ParseEncoding converts a description string into an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "none":
		return None, nil
	case "x87", "x87-extended", "extended":
		return X87, nil
	case "ibm-double-double", "doubledouble":
		return DoubleDouble, nil
	}
	for i, n := range encodingNames {
		if n == name {
			return Encoding(i), nil
		}
	}
	return None, fmt.Errorf("invalid float encoding: %q (expected: none|binary32|binary64|binary128|x87|double-double)", s)
}

// MinBits is the smallest storage, in bits, that can hold the encoding.
func (e Encoding) MinBits() int {
	switch e {
	case Binary32:
		return 32
	case Binary64:
		return 64
	case X87:
		return 80
	case Binary128, DoubleDouble:
		return 128
	}
	return 0
}

// Precision is the number of significand bits, counting the leading bit.
func (e Encoding) Precision() uint {
	switch e {
	case Binary32:
		return 24
	case Binary64:
		return 53
	case Binary128:
		return 113
	case X87:
		return 64
	case DoubleDouble:
		return 106
	}
	return 0
}

// MarshalText implements encoding.TextMarshaler.
func (e Encoding) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Encoding) UnmarshalText(text []byte) error {
	v, err := ParseEncoding(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
