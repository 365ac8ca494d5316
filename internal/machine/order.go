package machine

import (
	"fmt"
	"strings"
)

// ByteOrder decides where each char of a multi-char object lives.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota + 1
	BigEndian
	// PDPEndian stores 16-bit halves most significant first, each half
	// least significant char first.
	PDPEndian
)

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	case PDPEndian:
		return "pdp"
	default:
		return "unknown"
	}
}

// ParseByteOrder converts a description string to a ByteOrder.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little", "le", "little-endian":
		return LittleEndian, nil
	case "big", "be", "big-endian":
		return BigEndian, nil
	case "pdp", "middle", "pdp-endian":
		return PDPEndian, nil
	default:
		return 0, fmt.Errorf("invalid byte order: %q (expected: little|big|pdp)", s)
	}
}

// Offset returns the memory offset of the char holding significance sig
// (0 = least significant) in an object of n chars.
func (o ByteOrder) Offset(sig, n int) int {
	switch o {
	case BigEndian:
		return n - 1 - sig
	case PDPEndian:
		if n < 2 || n%2 != 0 {
			return sig
		}
		words := n / 2
		return 2*(words-1-sig/2) + sig%2
	default:
		return sig
	}
}

func (o ByteOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *ByteOrder) UnmarshalText(text []byte) error {
	v, err := ParseByteOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Repr is the encoding of negative signed integers.
type Repr uint8

const (
	TwosComplement Repr = iota
	OnesComplement
	SignMagnitude
)

func (r Repr) String() string {
	switch r {
	case TwosComplement:
		return "twos-complement"
	case OnesComplement:
		return "ones-complement"
	case SignMagnitude:
		return "sign-magnitude"
	default:
		return "unknown"
	}
}

// ParseRepr converts a description string to a Repr.
func ParseRepr(s string) (Repr, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "twos-complement", "twos", "two's complement":
		return TwosComplement, nil
	case "ones-complement", "ones", "one's complement":
		return OnesComplement, nil
	case "sign-magnitude", "sign-and-magnitude", "sign and magnitude":
		return SignMagnitude, nil
	default:
		return 0, fmt.Errorf("invalid signed representation: %q (expected: twos-complement|ones-complement|sign-magnitude)", s)
	}
}

func (r Repr) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Repr) UnmarshalText(text []byte) error {
	v, err := ParseRepr(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
