package machine

import (
	"math/big"

	"tmplconfig/internal/floatfmt"
)

// Synthetic evaluates every primitive from a Description. It lets the probes
// run against platforms other than the one the tool is running on.
type Synthetic struct {
	desc    Description
	charset *charset
}

// NewSynthetic validates desc and returns a machine that behaves as it says.
func NewSynthetic(desc Description) (*Synthetic, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	cs, err := newCharset(desc.Charset)
	if err != nil {
		return nil, err
	}
	return &Synthetic{desc: desc, charset: cs}, nil
}

// Description returns a copy of the description the machine was built from.
func (m *Synthetic) Description() Description { return m.desc }

func (m *Synthetic) Name() string { return m.desc.Name }

func (m *Synthetic) Sizeof(t Type) int { return m.desc.Sizes.Get(t) }

func (m *Synthetic) mask(t Type) uint64 {
	bits := m.desc.ValueBitsOf(t)
	if bits >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<bits - 1
}

func (m *Synthetic) Mul(t Type, a, b uint64) uint64 {
	k := m.mask(t)
	return (a & k) * (b & k) & k
}

func (m *Synthetic) Add(t Type, a, b uint64) uint64 {
	k := m.mask(t)
	return ((a & k) + (b & k)) & k
}

func (m *Synthetic) Shl(t Type, a uint64, n uint) uint64 {
	if n >= 64 {
		return 0
	}
	k := m.mask(t)
	return ((a & k) << n) & k
}

// Cells lays the value bits out from the least significant char upward and
// leaves padding bits, which sit above the value bits, zero.
func (m *Synthetic) Cells(t Type, v uint64) []uint64 {
	n := m.desc.Sizes.Get(t)
	cb := m.desc.CharBits
	cellMask := uint64(1)<<cb - 1
	v &= m.mask(t)
	out := make([]uint64, n)
	for sig := range n {
		shift := sig * cb
		var cell uint64
		if shift < 64 {
			cell = (v >> shift) & cellMask
		}
		out[m.desc.ByteOrder.Offset(sig, n)] = cell
	}
	return out
}

// SignedAnd encodes both operands in the described representation, ANDs the
// bit patterns and decodes the result the same way.
func (m *Synthetic) SignedAnd(t Type, a, b int64) int64 {
	bits := m.desc.ValueBitsOf(t)
	k := m.mask(t)
	sign := uint64(1) << (bits - 1)
	return m.decodeSigned(m.encodeSigned(a, k, sign)&m.encodeSigned(b, k, sign), k, sign)
}

func (m *Synthetic) encodeSigned(v int64, k, sign uint64) uint64 {
	if v >= 0 {
		return uint64(v) & k
	}
	mag := uint64(-v)
	switch m.desc.Signed {
	case OnesComplement:
		return ^mag & k
	case SignMagnitude:
		return (mag | sign) & k
	default:
		return uint64(v) & k
	}
}

func (m *Synthetic) decodeSigned(bits, k, sign uint64) int64 {
	if bits&sign == 0 {
		return int64(bits)
	}
	switch m.desc.Signed {
	case OnesComplement:
		return -int64(^bits & k)
	case SignMagnitude:
		return -int64(bits &^ sign)
	default:
		return int64(bits | ^k)
	}
}

func (m *Synthetic) CharCode(i int) (uint64, bool) { return m.charset.code(i) }

func (m *Synthetic) EqualsOne(t Type, image []byte) bool {
	enc := m.desc.Encodings.Get(t)
	if enc == floatfmt.None || m.desc.CharBits != 8 {
		return false
	}
	if len(image) != m.desc.Sizes.Get(t) {
		return false
	}
	switch m.desc.ByteOrder {
	case LittleEndian:
		return floatfmt.IsOne(enc, image, false)
	case BigEndian:
		return floatfmt.IsOne(enc, image, true)
	}
	return false
}

func (m *Synthetic) Epsilon(t Type) (*big.Float, bool) {
	return floatfmt.Epsilon(m.desc.Encodings.Get(t))
}
