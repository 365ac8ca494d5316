package header

import (
	"fmt"
	"strings"
)

// GCDAlgorithm selects the default greatest-common-divisor routine of the
// consuming library.
type GCDAlgorithm uint8

const (
	GCDBinary GCDAlgorithm = iota + 1
	GCDMixedBinary
	GCDEuclidean
	GCDNaive
)

var gcdNames = map[GCDAlgorithm]string{
	GCDMixedBinary: "mixed-binary",
	GCDBinary:      "binary",
	GCDEuclidean:   "euclidean",
	GCDNaive:       "naive",
}

var gcdTags = map[GCDAlgorithm]string{
	GCDMixedBinary: "MIXED_BINARY",
	GCDBinary:      "BINARY",
	GCDEuclidean:   "EUCLIDEAN",
	GCDNaive:       "NAIVE",
}

func (g GCDAlgorithm) String() string {
	if s, ok := gcdNames[g]; ok {
		return s
	}
	return fmt.Sprintf("gcd(%d)", uint8(g))
}

// Tag is the header constant naming the algorithm.
func (g GCDAlgorithm) Tag() string {
	if s, ok := gcdTags[g]; ok {
		return "TMPL_GCD_ALGORITHM_" + s
	}
	return "TMPL_GCD_ALGORITHM_" + gcdTags[GCDMixedBinary]
}

// ParseGCDAlgorithm accepts the lowercase name or the tag suffix.
func ParseGCDAlgorithm(s string) (GCDAlgorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")
	for g, n := range gcdNames {
		if n == name {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown gcd algorithm %q (want mixed-binary, binary, euclidean or naive)", s)
}

func (g GCDAlgorithm) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *GCDAlgorithm) UnmarshalText(text []byte) error {
	v, err := ParseGCDAlgorithm(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// CompilerOptions are the compiler capability flags. They are configured,
// not probed.
type CompilerOptions struct {
	Inline   bool         `toml:"inline"`
	Restrict bool         `toml:"restrict"`
	Memcpy   bool         `toml:"memcpy"`
	GCD      GCDAlgorithm `toml:"gcd"`
}

// DefaultCompilerOptions enables inline and memcpy and picks the mixed
// binary GCD.
func DefaultCompilerOptions() CompilerOptions {
	return CompilerOptions{
		Inline: true,
		Memcpy: true,
		GCD:    GCDMixedBinary,
	}
}
