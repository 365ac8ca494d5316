package machine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tmplconfig/internal/floatfmt"
)

// Sizes holds one integer per C type. It is used both for sizeof values
// (in chars) and for value-bit overrides.
type Sizes struct {
	Char       int `toml:"char,omitempty"`
	Short      int `toml:"short,omitempty"`
	Int        int `toml:"int,omitempty"`
	Long       int `toml:"long,omitempty"`
	LongLong   int `toml:"long_long,omitempty"`
	Float      int `toml:"float,omitempty"`
	Double     int `toml:"double,omitempty"`
	LongDouble int `toml:"long_double,omitempty"`
}

// Get returns the entry for t.
func (s *Sizes) Get(t Type) int {
	switch t {
	case Char:
		return s.Char
	case Short:
		return s.Short
	case Int:
		return s.Int
	case Long:
		return s.Long
	case LongLong:
		return s.LongLong
	case Float:
		return s.Float
	case Double:
		return s.Double
	case LongDouble:
		return s.LongDouble
	}
	return 0
}

// Encodings names the object format of each floating type.
type Encodings struct {
	Float      floatfmt.Encoding `toml:"float"`
	Double     floatfmt.Encoding `toml:"double"`
	LongDouble floatfmt.Encoding `toml:"long_double"`
}

// Get returns the encoding of floating type t.
func (e *Encodings) Get(t Type) floatfmt.Encoding {
	switch t {
	case Float:
		return e.Float
	case Double:
		return e.Double
	case LongDouble:
		return e.LongDouble
	}
	return floatfmt.None
}

// Description is the declarative form of a platform's data model. It is
// what machine description files decode into and what the built-in target
// table is made of.
type Description struct {
	Name      string    `toml:"name"`
	ByteOrder ByteOrder `toml:"byte_order"`
	CharBits  int       `toml:"char_bits"`
	Signed    Repr      `toml:"signed"`
	Charset   string    `toml:"charset"`
	Sizes     Sizes     `toml:"sizes"`
	// ValueBits overrides the number of value bits of an unsigned type;
	// zero means every storage bit is a value bit.
	ValueBits Sizes     `toml:"value_bits"`
	Encodings Encodings `toml:"encodings"`
}

// StorageBits is sizeof(t) * CHAR_BIT.
func (d *Description) StorageBits(t Type) int {
	return d.Sizes.Get(t) * d.CharBits
}

// ValueBitsOf returns the value bits of unsigned type t.
func (d *Description) ValueBitsOf(t Type) int {
	if v := d.ValueBits.Get(t); v > 0 {
		return v
	}
	return d.StorageBits(t)
}

const (
	minCharBits = 8
	maxCharBits = 16
	maxIntBits  = 64
)

// Validate checks the description for internal consistency.
func (d *Description) Validate() error {
	return d.validate("")
}

func (d *Description) validate(path string) error {
	if strings.TrimSpace(d.Name) == "" {
		return &DescriptionError{Kind: DescErrMissing, Path: path, Key: "name"}
	}
	if d.ByteOrder == 0 {
		return &DescriptionError{Kind: DescErrMissing, Path: path, Key: "byte_order"}
	}
	if d.CharBits < minCharBits || d.CharBits > maxCharBits {
		return &DescriptionError{Kind: DescErrRange, Path: path, Key: "char_bits", Value: int64(d.CharBits)}
	}
	if d.Sizes.Char != 1 {
		return &DescriptionError{Kind: DescErrRange, Path: path, Key: "sizes.char", Value: int64(d.Sizes.Char)}
	}
	for _, t := range UnsignedTypes {
		size := d.Sizes.Get(t)
		key := "sizes." + t.Key()
		if size < 0 || (size == 0 && t != LongLong) {
			return &DescriptionError{Kind: DescErrRange, Path: path, Key: key, Value: int64(size)}
		}
		if d.StorageBits(t) > maxIntBits {
			return &DescriptionError{Kind: DescErrRange, Path: path, Key: key, Value: int64(size)}
		}
		vb := d.ValueBits.Get(t)
		if vb < 0 || vb > d.StorageBits(t) || (t == Char && vb != 0 && vb != d.CharBits) {
			return &DescriptionError{Kind: DescErrRange, Path: path, Key: "value_bits." + t.Key(), Value: int64(vb)}
		}
	}
	for _, t := range FloatingTypes {
		size := d.Sizes.Get(t)
		if size < 1 {
			return &DescriptionError{Kind: DescErrRange, Path: path, Key: "sizes." + t.Key(), Value: int64(size)}
		}
		if err := d.checkEncoding(t); err != nil {
			return &DescriptionError{Kind: DescErrEncoding, Path: path, Key: "encodings." + t.Key(), Err: err}
		}
	}
	if _, err := newCharset(d.Charset); err != nil {
		return &DescriptionError{Kind: DescErrCharset, Path: path, Err: err}
	}
	return nil
}

func (d *Description) checkEncoding(t Type) error {
	enc := d.Encodings.Get(t)
	if enc == floatfmt.None {
		return nil
	}
	if d.CharBits != 8 {
		return fmt.Errorf("%s needs 8-bit chars, have %d", enc, d.CharBits)
	}
	if d.ByteOrder == PDPEndian {
		return fmt.Errorf("%s cannot be stored in pdp byte order", enc)
	}
	bits := d.StorageBits(t)
	switch enc {
	case floatfmt.X87:
		if bits == 96 || bits == 128 || (bits == 80 && d.ByteOrder == LittleEndian) {
			return nil
		}
	default:
		if bits == enc.MinBits() {
			return nil
		}
	}
	return fmt.Errorf("%s does not fit %d bits of storage", enc, bits)
}

// ParseDescription decodes a TOML machine description. path is only used
// in error messages and to derive a default name.
func ParseDescription(data, path string) (*Description, error) {
	d := &Description{}
	meta, err := toml.Decode(data, d)
	if err != nil {
		return nil, &DescriptionError{Kind: DescErrParse, Path: path, Err: err}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &DescriptionError{Kind: DescErrUnknownKey, Path: path, Key: undecoded[0].String()}
	}
	if !meta.IsDefined("byte_order") {
		return nil, &DescriptionError{Kind: DescErrMissing, Path: path, Key: "byte_order"}
	}
	if !meta.IsDefined("char_bits") {
		d.CharBits = 8
	}
	if !meta.IsDefined("sizes", "char") {
		d.Sizes.Char = 1
	}
	if strings.TrimSpace(d.Name) == "" && path != "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := d.validate(path); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadDescription reads and validates a machine description file.
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DescriptionError{Kind: DescErrParse, Path: path, Err: err}
	}
	return ParseDescription(string(data), path)
}
