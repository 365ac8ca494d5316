package floatfmt

import (
	"math/big"
	"slices"
)

// decodePrec is wide enough to hold every single-part value exactly.
const decodePrec = 256

// sumPrec covers the full exponent span of two binary64 values, so the
// double-double sum below is exact.
const sumPrec = 4096

// Decode reads image, an object representation in memory order, as enc and
// returns its exact value. ok is false for NaN, infinities, x87 unnormals and
// images too short for the encoding. bigEndian selects the byte order the
// image was stored in.
func Decode(enc Encoding, image []byte, bigEndian bool) (v *big.Float, ok bool) {
	switch enc {
	case Binary32:
		return decodeBinary(image, 4, 8, bigEndian)
	case Binary64:
		return decodeBinary(image, 8, 11, bigEndian)
	case Binary128:
		return decodeBinary(image, 16, 15, bigEndian)
	case X87:
		return decodeX87(image, bigEndian)
	case DoubleDouble:
		return decodeDoubleDouble(image, bigEndian)
	}
	return nil, false
}

// IsOne reports whether image decodes to exactly 1.0.
func IsOne(enc Encoding, image []byte, bigEndian bool) bool {
	v, ok := Decode(enc, image, bigEndian)
	if !ok {
		return false
	}
	return v.Cmp(big.NewFloat(1)) == 0
}

// Epsilon returns the distance from 1.0 to the next larger value of enc.
func Epsilon(enc Encoding) (*big.Float, bool) {
	p := enc.Precision()
	if p == 0 {
		return nil, false
	}
	eps := new(big.Float).SetPrec(decodePrec).SetInt64(1)
	return eps.SetMantExp(eps, 1-int(p)), true
}

// word interprets octets as an unsigned integer stored in the given order.
func word(octets []byte, bigEndian bool) *big.Int {
	be := slices.Clone(octets)
	if !bigEndian {
		slices.Reverse(be)
	}
	return new(big.Int).SetBytes(be)
}

func lowBits(w *big.Int, shift, n uint) *big.Int {
	out := new(big.Int).Rsh(w, shift)
	mask := new(big.Int).Lsh(big.NewInt(1), n)
	mask.Sub(mask, big.NewInt(1))
	return out.And(out, mask)
}

func finish(negative bool, mant *big.Int, exp int) *big.Float {
	f := new(big.Float).SetPrec(decodePrec).SetInt(mant)
	f.SetMantExp(f, exp)
	if negative {
		f.Neg(f)
	}
	return f
}

func decodeBinary(image []byte, size int, expBits uint, bigEndian bool) (*big.Float, bool) {
	if len(image) != size {
		return nil, false
	}
	total := uint(size * 8)
	fracBits := total - 1 - expBits
	w := word(image, bigEndian)

	frac := lowBits(w, 0, fracBits)
	exp := int(lowBits(w, fracBits, expBits).Int64())
	negative := w.Bit(int(total-1)) == 1

	maxExp := 1<<expBits - 1
	bias := maxExp >> 1
	if exp == maxExp {
		return nil, false
	}
	e := 1 - bias
	if exp != 0 {
		frac.SetBit(frac, int(fracBits), 1)
		e = exp - bias
	}
	return finish(negative, frac, e-int(fracBits)), true
}

// decodeX87 places the 80 meaningful bits the way the padded ABIs do: on
// little-endian storage the mantissa is at offset 0 with sign and exponent
// right after it; on big-endian storage the mantissa occupies the last eight
// octets and sign and exponent sit twelve octets before the end.
func decodeX87(image []byte, bigEndian bool) (*big.Float, bool) {
	var mantOctets, seOctets []byte
	n := len(image)
	if bigEndian {
		if n < 12 {
			return nil, false
		}
		mantOctets = image[n-8:]
		seOctets = image[n-12 : n-10]
	} else {
		if n < 10 {
			return nil, false
		}
		mantOctets = image[:8]
		seOctets = image[8:10]
	}

	mant := word(mantOctets, bigEndian)
	se := word(seOctets, bigEndian).Int64()
	negative := se&0x8000 != 0
	exp := int(se & 0x7FFF)

	const bias = 16383
	switch {
	case exp == 0x7FFF:
		return nil, false
	case exp == 0:
		return finish(negative, mant, 1-bias-63), true
	case mant.Bit(63) == 0:
		// unnormal
		return nil, false
	}
	return finish(negative, mant, exp-bias-63), true
}

func decodeDoubleDouble(image []byte, bigEndian bool) (*big.Float, bool) {
	if len(image) != 16 {
		return nil, false
	}
	hi, ok := decodeBinary(image[:8], 8, 11, bigEndian)
	if !ok {
		return nil, false
	}
	lo, ok := decodeBinary(image[8:], 8, 11, bigEndian)
	if !ok {
		return nil, false
	}
	sum := new(big.Float).SetPrec(sumPrec)
	return sum.Add(hi, lo), true
}
