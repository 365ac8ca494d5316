package probe

// Capabilities are the flags derived from the probed layouts. They say
// whether a floating value may be reinterpreted as a same-width unsigned
// integer.
type Capabilities struct {
	Has32BitUnsigned bool `json:"has_32bit_unsigned" msgpack:"has32"`
	Has64BitUnsigned bool `json:"has_64bit_unsigned" msgpack:"has64"`

	FloatIntPun32         bool `json:"float_int_pun32" msgpack:"pun32"`
	FloatIntPun64         bool `json:"float_int_pun64" msgpack:"pun64"`
	FloatIntPunLongDouble bool `json:"float_int_pun_long_double" msgpack:"pun_ld"`
}

// Compose derives the capability flags. It does no probing.
//
// A pun needs an unsigned type of the right width and a floating byte order
// equal to the integer byte order; Unknown on either side means no pun. The
// 80-bit extended formats are split into a 64-bit mantissa and a 32-bit
// sign/exponent word, so they need both widths.
func Compose(w Widths, endian Endianness, float, double FloatLayout, ld LongDoubleLayout, opts Options) Capabilities {
	var c Capabilities
	if !opts.DisableFixedWidth {
		_, c.Has32BitUnsigned = w.Exact(32)
		_, c.Has64BitUnsigned = w.Exact(64)
	}
	known := endian == EndianLittle || endian == EndianBig

	c.FloatIntPun32 = c.Has32BitUnsigned && known && float.Endianness() == endian
	c.FloatIntPun64 = c.Has64BitUnsigned && known && double.Endianness() == endian

	if known && ld.Endianness() == endian {
		switch ld.Family() {
		case Family64, Family128, FamilyDoubleDouble:
			c.FloatIntPunLongDouble = c.Has64BitUnsigned
		case Family80:
			c.FloatIntPunLongDouble = c.Has32BitUnsigned && c.Has64BitUnsigned
		}
	}
	return c
}
