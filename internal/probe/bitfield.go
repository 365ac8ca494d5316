package probe

// field is one C bit-field of a candidate layout.
type field struct {
	name  string
	width int
	value uint64
}

// fillOrder says where the first declared bit-field lands.
type fillOrder uint8

const (
	// lsbFirst allocates from the least significant bit of octet 0 upward,
	// as compilers for little-endian targets do.
	lsbFirst fillOrder = iota
	// msbFirst allocates from the most significant bit of octet 0 downward,
	// as compilers for big-endian targets do.
	msbFirst
)

// pack assembles the fields into an octet image of size octets. Bits not
// covered by a field stay zero.
func pack(order fillOrder, size int, fields []field) []byte {
	image := make([]byte, size)
	pos := 0
	for _, f := range fields {
		for i := range f.width {
			var bit uint64
			if order == lsbFirst {
				bit = f.value >> i & 1
			} else {
				bit = f.value >> (f.width - 1 - i) & 1
			}
			if bit != 0 {
				setBit(image, order, pos+i)
			}
		}
		pos += f.width
	}
	return image
}

func setBit(image []byte, order fillOrder, g int) {
	octet := g / 8
	if octet >= len(image) {
		return
	}
	shift := g % 8
	if order == msbFirst {
		shift = 7 - shift
	}
	image[octet] |= 1 << shift
}

func totalWidth(fields []field) int {
	n := 0
	for _, f := range fields {
		n += f.width
	}
	return n
}

func reversed(fields []field) []field {
	out := make([]field, len(fields))
	for i, f := range fields {
		out[len(fields)-1-i] = f
	}
	return out
}

func concat(parts ...[]field) []field {
	var out []field
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
