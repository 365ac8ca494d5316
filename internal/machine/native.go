package machine

import (
	"math/big"
	"unsafe"

	"golang.org/x/sys/cpu"
)

type unsignedWord interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

type signedWord interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Native runs integer and float/double primitives on live Go values of the
// width the host C ABI gives each type, and reads object representations
// straight out of memory. Only the ABI size table, the charset and the long
// double format come from the host's target description.
type Native struct {
	abi *Synthetic
}

// NewNative returns the Go-runtime view of the host.
func NewNative() *Native {
	abi, err := NewSynthetic(HostTarget())
	if err != nil {
		// the built-in table is validated by tests
		panic(err)
	}
	return &Native{abi: abi}
}

func (m *Native) Name() string { return "host/" + m.abi.Name() }

func (m *Native) Sizeof(t Type) int { return m.abi.Sizeof(t) }

func mulAs[T unsignedWord](a, b uint64) uint64 { return uint64(T(a) * T(b)) }

func addAs[T unsignedWord](a, b uint64) uint64 { return uint64(T(a) + T(b)) }

func shlAs[T unsignedWord](a uint64, n uint) uint64 { return uint64(T(a) << n) }

func cellsAs[T unsignedWord](v uint64) []uint64 {
	x := T(v)
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&x)), unsafe.Sizeof(x))
	out := make([]uint64, len(raw))
	for i, b := range raw {
		out[i] = uint64(b)
	}
	return out
}

func andAs[T signedWord](a, b int64) int64 { return int64(T(a) & T(b)) }

func (m *Native) Mul(t Type, a, b uint64) uint64 {
	switch m.Sizeof(t) {
	case 1:
		return mulAs[uint8](a, b)
	case 2:
		return mulAs[uint16](a, b)
	case 4:
		return mulAs[uint32](a, b)
	case 8:
		return mulAs[uint64](a, b)
	}
	return m.abi.Mul(t, a, b)
}

func (m *Native) Add(t Type, a, b uint64) uint64 {
	switch m.Sizeof(t) {
	case 1:
		return addAs[uint8](a, b)
	case 2:
		return addAs[uint16](a, b)
	case 4:
		return addAs[uint32](a, b)
	case 8:
		return addAs[uint64](a, b)
	}
	return m.abi.Add(t, a, b)
}

func (m *Native) Shl(t Type, a uint64, n uint) uint64 {
	switch m.Sizeof(t) {
	case 1:
		return shlAs[uint8](a, n)
	case 2:
		return shlAs[uint16](a, n)
	case 4:
		return shlAs[uint32](a, n)
	case 8:
		return shlAs[uint64](a, n)
	}
	return m.abi.Shl(t, a, n)
}

func (m *Native) Cells(t Type, v uint64) []uint64 {
	switch m.Sizeof(t) {
	case 1:
		return cellsAs[uint8](v)
	case 2:
		return cellsAs[uint16](v)
	case 4:
		return cellsAs[uint32](v)
	case 8:
		return cellsAs[uint64](v)
	}
	return m.abi.Cells(t, v)
}

func (m *Native) SignedAnd(t Type, a, b int64) int64 {
	switch m.Sizeof(t) {
	case 1:
		return andAs[int8](a, b)
	case 2:
		return andAs[int16](a, b)
	case 4:
		return andAs[int32](a, b)
	case 8:
		return andAs[int64](a, b)
	}
	return m.abi.SignedAnd(t, a, b)
}

func (m *Native) CharCode(i int) (uint64, bool) { return m.abi.CharCode(i) }

func (m *Native) EqualsOne(t Type, image []byte) bool {
	switch {
	case t == Float && len(image) == 4:
		var f float32
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&f)), 4), image)
		return f == 1
	case t == Double && len(image) == 8:
		var f float64
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&f)), 8), image)
		return f == 1
	case t == LongDouble:
		return m.abi.EqualsOne(t, image)
	}
	return false
}

func (m *Native) Epsilon(t Type) (*big.Float, bool) {
	switch t {
	case Float:
		one, eps := float32(1), float32(1)
		for float32(one+eps/2) != one {
			eps /= 2
		}
		return new(big.Float).SetFloat64(float64(eps)), true
	case Double:
		one, eps := float64(1), float64(1)
		for float64(one+eps/2) != one {
			eps /= 2
		}
		return new(big.Float).SetFloat64(eps), true
	}
	return m.abi.Epsilon(t)
}

// ReportedBigEndian lets probes compare their result with the runtime's claim.
func (m *Native) ReportedBigEndian() bool { return RuntimeBigEndian() }

// RuntimeBigEndian is the byte order the Go runtime claims for the host.
// Probes never use it; it only serves as a cross-check.
func RuntimeBigEndian() bool {
	return cpu.IsBigEndian
}
