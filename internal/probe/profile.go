package probe

import (
	"math/big"

	"tmplconfig/internal/machine"
)

// Options switch off assumptions the generated header may rely on.
type Options struct {
	// DisableIEEE classifies every floating layout as unknown.
	DisableIEEE bool `toml:"disable_ieee754" json:"disable_ieee754" msgpack:"no_ieee"`
	// DisableFixedWidth clears the 32 and 64-bit unsigned flags.
	DisableFixedWidth bool `toml:"disable_fixed_width" json:"disable_fixed_width" msgpack:"no_fixed"`
	// DisableASCII reports a non-ASCII character set.
	DisableASCII bool `toml:"disable_ascii" json:"disable_ascii" msgpack:"no_ascii"`
	// DisableLongLong treats unsigned long long as absent.
	DisableLongLong bool `toml:"disable_long_long" json:"disable_long_long" msgpack:"no_llong"`
}

// Epsilons holds the machine epsilon of each floating type as an exact
// hexadecimal big.Float string; empty when unknown.
type Epsilons struct {
	Float      string `json:"float,omitempty" msgpack:"float"`
	Double     string `json:"double,omitempty" msgpack:"double"`
	LongDouble string `json:"long_double,omitempty" msgpack:"long_double"`
}

// Of parses the epsilon of floating type t.
func (e Epsilons) Of(t machine.Type) (*big.Float, bool) {
	var s string
	switch t {
	case machine.Float:
		s = e.Float
	case machine.Double:
		s = e.Double
	case machine.LongDouble:
		s = e.LongDouble
	}
	if s == "" {
		return nil, false
	}
	f, _, err := big.ParseFloat(s, 0, epsilonPrec, big.ToNearestEven)
	if err != nil {
		return nil, false
	}
	return f, true
}

const epsilonPrec = 256

// Profile is the frozen result of probing one machine. It is never modified
// after Prober.Profile returns it.
type Profile struct {
	Machine string  `json:"machine" msgpack:"machine"`
	Options Options `json:"options" msgpack:"options"`

	Widths Widths `json:"widths" msgpack:"widths"`
	// Widest is the type the byte order was measured on.
	Widest     machine.Type `json:"-" msgpack:"widest"`
	Endianness Endianness   `json:"endianness" msgpack:"endianness"`
	Signed     SignedRep    `json:"signed" msgpack:"signed"`
	ASCII      bool         `json:"ascii" msgpack:"ascii"`

	Float      FloatLayout      `json:"float" msgpack:"float"`
	Double     FloatLayout      `json:"double" msgpack:"double"`
	LongDouble LongDoubleLayout `json:"long_double" msgpack:"long_double"`

	Capabilities Capabilities `json:"capabilities" msgpack:"capabilities"`
	Epsilons     Epsilons     `json:"epsilons" msgpack:"epsilons"`
}

// WidestName spells the type the byte order was measured on.
func (p *Profile) WidestName() string {
	if !p.Widths.Of(p.Widest).Known {
		return ""
	}
	return p.Widest.CName()
}
