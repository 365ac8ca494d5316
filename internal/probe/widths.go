package probe

import (
	"tmplconfig/internal/machine"
)

// WidthInfo describes one unsigned integer type.
type WidthInfo struct {
	// Storage is the number of bits the object occupies, padding included.
	Storage int `json:"storage" msgpack:"storage"`
	// Value is the number of bits that carry magnitude.
	Value int `json:"value" msgpack:"value"`
	// Known is false when the type is absent or disabled.
	Known bool `json:"known" msgpack:"known"`
}

// Padding is the number of storage bits that carry no value.
func (w WidthInfo) Padding() int { return w.Storage - w.Value }

// Exact reports whether the type has exactly n value bits and no padding.
func (w WidthInfo) Exact(n int) bool {
	return w.Known && w.Value == n && w.Storage == n
}

// Widths holds the widths of the five standard unsigned types.
type Widths struct {
	Char     WidthInfo `json:"char" msgpack:"char"`
	Short    WidthInfo `json:"short" msgpack:"short"`
	Int      WidthInfo `json:"int" msgpack:"int"`
	Long     WidthInfo `json:"long" msgpack:"long"`
	LongLong WidthInfo `json:"long_long" msgpack:"long_long"`
}

// Of returns the entry for an unsigned type, or the zero WidthInfo.
func (w Widths) Of(t machine.Type) WidthInfo {
	if p := w.slot(t); p != nil {
		return *p
	}
	return WidthInfo{}
}

func (w *Widths) slot(t machine.Type) *WidthInfo {
	switch t {
	case machine.Char:
		return &w.Char
	case machine.Short:
		return &w.Short
	case machine.Int:
		return &w.Int
	case machine.Long:
		return &w.Long
	case machine.LongLong:
		return &w.LongLong
	}
	return nil
}

// CharWidth is the number of bits in a char, 0 when unknown.
func (w Widths) CharWidth() int { return w.Char.Value }

// Exact returns the narrowest unsigned type with exactly n value bits and no
// padding.
func (w Widths) Exact(n int) (machine.Type, bool) {
	for _, t := range machine.UnsignedTypes {
		if w.Of(t).Exact(n) {
			return t, true
		}
	}
	return 0, false
}

// maxDoublings bounds the doubling loop. A machine must wrap within 64 value
// bits; anything still non-zero afterwards is reported and truncated.
const maxDoublings = 64

// doublings counts how often 1 can be doubled in t before it wraps to zero.
func doublings(m machine.Machine, t machine.Type) (n int, wrapped bool) {
	v := uint64(1)
	for n < maxDoublings {
		v = m.Mul(t, v, 2)
		n++
		if v == 0 {
			return n, true
		}
	}
	return n, false
}
