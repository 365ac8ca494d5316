package header

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tmplconfig/internal/diag"
	"tmplconfig/internal/floatfmt"
	"tmplconfig/internal/machine"
	"tmplconfig/internal/probe"
)

func targetProfile(t *testing.T, name string, edit func(*machine.Description), opts probe.Options) *probe.Profile {
	t.Helper()
	d, ok := machine.LookupTarget(name)
	if !ok {
		t.Fatalf("no target %s", name)
	}
	if edit != nil {
		edit(&d)
	}
	m, err := machine.NewSynthetic(d)
	if err != nil {
		t.Fatalf("NewSynthetic: %v", err)
	}
	return probe.Detect(m, opts)
}

func render(t *testing.T, a Artifact, p *probe.Profile, c CompilerOptions) string {
	t.Helper()
	var buf bytes.Buffer
	if err := a.Render(&buf, p, c); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func assertLines(t *testing.T, out string, want ...string) {
	t.Helper()
	lines := strings.Split(out, "\n")
	for _, w := range want {
		found := false
		for _, l := range lines {
			if l == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing line %q in:\n%s", w, out)
		}
	}
}

func TestLittleEndianIEEEPlatform(t *testing.T) {
	p := targetProfile(t, "x86_64-linux-gnu", nil, probe.Options{})
	out := render(t, ConfigHeader, p, DefaultCompilerOptions())
	assertLines(t, out,
		"#ifndef TMPL_CONFIG_H",
		"#define TMPL_ENDIAN TMPL_LITTLE_ENDIAN",
		"#define TMPL_SIGNED_REP TMPL_TWOS_COMPLEMENT",
		"#define TMPL_FLOAT_ENDIANNESS TMPL_LITTLE_ENDIAN",
		"#define TMPL_DOUBLE_ENDIANNESS TMPL_LITTLE_ENDIAN",
		"#define TMPL_LDOUBLE_ENDIANNESS TMPL_LDOUBLE_128_BIT_EXTENDED_LITTLE_ENDIAN",
		"#define TMPL_LDOUBLE_TYPE TMPL_LDOUBLE_80_BIT",
		"#define TMPL_HAS_FLOATINT32 1",
		"#define TMPL_HAS_FLOATINT64 1",
		"#define TMPL_HAS_FLOATINT_LONG_DOUBLE 1",
		"#define TMPL_HAS_ASCII 1",
		"#define TMPL_USE_INLINE 1",
		"#define TMPL_INLINE_DECL static inline",
		"#define TMPL_GCD_ALGORITHM TMPL_GCD_ALGORITHM_MIXED_BINARY",
		"#endif",
	)
}

func TestDefinitionOrder(t *testing.T) {
	p := targetProfile(t, "s390x-linux-gnu", nil, probe.Options{})
	want := []string{
		"TMPL_ENDIAN", "TMPL_SIGNED_REP", "TMPL_FLOAT_ENDIANNESS", "TMPL_DOUBLE_ENDIANNESS",
		"TMPL_LDOUBLE_ENDIANNESS", "TMPL_LDOUBLE_TYPE",
		"TMPL_HAS_FLOATINT32", "TMPL_HAS_FLOATINT64", "TMPL_HAS_FLOATINT_LONG_DOUBLE",
		"TMPL_HAS_ASCII", "TMPL_USE_INLINE", "TMPL_INLINE_DECL", "TMPL_STATIC_INLINE",
		"TMPL_HAS_RESTRICT", "TMPL_RESTRICT", "TMPL_USE_MEMCPY", "TMPL_GCD_ALGORITHM",
	}
	defs := Definitions(p, CompilerOptions{})
	if len(defs) != len(want) {
		t.Fatalf("got %d definitions, want %d", len(defs), len(want))
	}
	for i, d := range defs {
		if d.Name != want[i] {
			t.Fatalf("definition %d = %s, want %s", i, d.Name, want[i])
		}
	}
	if defs[4].Value != "TMPL_LDOUBLE_128_BIT_QUADRUPLE_BIG_ENDIAN" || defs[5].Value != "TMPL_LDOUBLE_128_BIT" {
		t.Fatalf("s390x long double = %s / %s", defs[4].Value, defs[5].Value)
	}
}

func TestVocabularyCoversEveryValue(t *testing.T) {
	names := map[string]string{}
	for _, d := range Vocabulary() {
		if _, dup := names[d.Name]; dup {
			t.Fatalf("%s defined twice", d.Name)
		}
		names[d.Name] = d.Value
	}
	for _, l := range append(probe.LongDoubleLayouts(), probe.LongDoubleUnknown) {
		if _, ok := names[longDoubleTag(l)]; !ok {
			t.Fatalf("vocabulary lacks %s", longDoubleTag(l))
		}
	}
	if names["TMPL_LDOUBLE_64_BIT_LITTLE_ENDIAN"] != "0" || names["TMPL_LDOUBLE_UNKNOWN"] != "10" {
		t.Fatalf("long double numbering: %v", names)
	}
	for tag, want := range map[string]string{
		"TMPL_GCD_ALGORITHM_BINARY":       "1",
		"TMPL_GCD_ALGORITHM_MIXED_BINARY": "2",
		"TMPL_GCD_ALGORITHM_EUCLIDEAN":    "3",
		"TMPL_GCD_ALGORITHM_NAIVE":        "4",
	} {
		if names[tag] != want {
			t.Fatalf("%s = %q, want %s", tag, names[tag], want)
		}
	}
}

func TestUncataloguedLongDouble(t *testing.T) {
	p := targetProfile(t, "x86_64-linux-gnu", func(d *machine.Description) {
		d.Encodings.LongDouble = floatfmt.None
	}, probe.Options{})
	out := render(t, ConfigHeader, p, DefaultCompilerOptions())
	assertLines(t, out,
		"#define TMPL_LDOUBLE_ENDIANNESS TMPL_LDOUBLE_UNKNOWN",
		"#define TMPL_LDOUBLE_TYPE TMPL_LDOUBLE_UNKNOWN",
		"#define TMPL_HAS_FLOATINT_LONG_DOUBLE 0",
	)
}

func TestCompilerOptionsOff(t *testing.T) {
	p := targetProfile(t, "mips-linux-gnu", nil, probe.Options{})
	out := render(t, ConfigHeader, p, CompilerOptions{GCD: GCDEuclidean})
	assertLines(t, out,
		"#define TMPL_ENDIAN TMPL_BIG_ENDIAN",
		"#define TMPL_USE_INLINE 0",
		"#define TMPL_INLINE_DECL extern",
		"#define TMPL_STATIC_INLINE static",
		"#define TMPL_HAS_RESTRICT 0",
		"#define TMPL_RESTRICT",
		"#define TMPL_USE_MEMCPY 0",
		"#define TMPL_GCD_ALGORITHM TMPL_GCD_ALGORITHM_EUCLIDEAN",
	)
}

func TestSynthesizeWritesFile(t *testing.T) {
	m, err := machine.NewSynthetic(machine.HostTarget())
	if err != nil {
		t.Fatalf("NewSynthetic: %v", err)
	}
	prober := probe.NewProber(context.Background(), m, probe.Options{}, nil)
	path := filepath.Join(t.TempDir(), "tmpl_config.h")
	if err := os.WriteFile(path, []byte("stale contents that are longer than nothing\n"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := &Synthesizer{Source: prober, Compiler: DefaultCompilerOptions()}
	if err := s.Synthesize(context.Background(), path); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := render(t, ConfigHeader, prober.Profile(), DefaultCompilerOptions())
	if string(got) != want {
		t.Fatalf("file differs from Render:\n%s", got)
	}
	if prober.Runs(probe.KindWidths) != 1 {
		t.Fatalf("widths probed %d times", prober.Runs(probe.KindWidths))
	}
}

func TestSynthesizeOpenFailure(t *testing.T) {
	m, err := machine.NewSynthetic(machine.HostTarget())
	if err != nil {
		t.Fatalf("NewSynthetic: %v", err)
	}
	prober := probe.NewProber(context.Background(), m, probe.Options{}, nil)
	bag := diag.NewBag(10)
	s := &Synthesizer{Source: prober, Reporter: diag.BagReporter{Bag: bag}}

	path := filepath.Join(t.TempDir(), "missing", "tmpl_config.h")
	err = s.Synthesize(context.Background(), path)
	var se *SynthesisError
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not a SynthesisError", err)
	}
	if se.Component != "config header" || se.Op != "open" || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("unexpected error: %+v", se)
	}
	if !bag.Has(diag.SynOpenFailed) || !bag.HasErrors() {
		t.Fatalf("open failure not reported")
	}
	if prober.Runs(probe.KindWidths) != 0 {
		t.Fatalf("probes ran although the artifact could not be opened")
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("artifact exists after failure")
	}
}

func TestIntTypeHeader(t *testing.T) {
	p := targetProfile(t, "x86_64-linux-gnu", nil, probe.Options{})
	out := render(t, IntTypeHeader, p, CompilerOptions{})
	assertLines(t, out,
		"#define TMPL_HAS_LONGLONG 1",
		"#define TMPL_HAS_8_BIT_INT 1",
		"typedef unsigned char tmpl_UInt8;",
		"typedef signed char tmpl_SInt8;",
		"typedef unsigned short tmpl_UInt16;",
		"typedef unsigned int tmpl_UInt32;",
		"typedef signed int tmpl_SInt32;",
		"typedef unsigned long tmpl_UInt64;",
		"#define tmpl_UInt8_Trailing_Zeros TMPL_UCHAR_TRAILING_ZEROS",
		"#define tmpl_SInt16_Trailing_Zeros TMPL_SHORT_TRAILING_ZEROS",
		"#define tmpl_UInt32_Leading_Zeros TMPL_UINT_LEADING_ZEROS",
		"#define tmpl_UInt64_Leading_Zeros TMPL_ULONG_LEADING_ZEROS",
	)
	if strings.Contains(out, "tmpl_SInt64_Leading_Zeros") {
		t.Fatalf("signed leading zeros emitted:\n%s", out)
	}

	p = targetProfile(t, "x86_64-linux-gnu", nil, probe.Options{DisableFixedWidth: true, DisableLongLong: true})
	out = render(t, IntTypeHeader, p, CompilerOptions{})
	assertLines(t, out,
		"#define TMPL_HAS_LONGLONG 0",
		"#define TMPL_HAS_32_BIT_INT 0",
		"#define TMPL_HAS_64_BIT_INT 0",
	)
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "typedef ") || strings.HasPrefix(line, "#define tmpl_") {
			t.Fatalf("fixed-width names emitted while disabled: %q", line)
		}
	}
}

func TestLimitsHeader(t *testing.T) {
	p := targetProfile(t, "pdp11-unix", nil, probe.Options{})
	out := render(t, LimitsHeader, p, CompilerOptions{})
	assertLines(t, out,
		"#define TMPL_UCHAR_BIT 8",
		"#define TMPL_UINT_BIT 16",
		"#define TMPL_ULONG_BIT 32",
	)
	if strings.Contains(out, "TMPL_ULLONG_BIT") {
		t.Fatalf("long long limit emitted without long long:\n%s", out)
	}
}

func TestFloatHeader(t *testing.T) {
	p := targetProfile(t, "x86_64-linux-gnu", nil, probe.Options{})
	out := render(t, FloatHeader, p, CompilerOptions{})
	assertLines(t, out,
		"#define TMPL_DBL_EPS (2.220446049250313080847263E-16)",
		"#define TMPL_FLT_EPS (1.192092895507812500000000E-07F)",
		"#define TMPL_LDBL_EPS (1.084202172485504434007453E-19L)",
		"#define TMPL_SQRT_DBL_EPS (1.490116119384765625000000E-08)",
		"#define TMPL_QURT_DBL_EPS (1.220703125000000000000000E-04)",
	)
}

func TestSynthesizeExtras(t *testing.T) {
	p := targetProfile(t, "aarch64-linux-gnu", nil, probe.Options{})
	dir := t.TempDir()
	s := &Synthesizer{Source: Static(p)}
	paths, err := s.SynthesizeExtras(context.Background(), dir)
	if err != nil {
		t.Fatalf("SynthesizeExtras: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("wrote %v", paths)
	}
	for _, a := range Extras() {
		if _, err := os.Stat(filepath.Join(dir, a.File)); err != nil {
			t.Fatalf("%s: %v", a.File, err)
		}
	}
}

func TestParseGCDAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want GCDAlgorithm
	}{
		{"mixed-binary", GCDMixedBinary},
		{"MIXED_BINARY", GCDMixedBinary},
		{"euclidean", GCDEuclidean},
		{" naive ", GCDNaive},
	}
	for _, tt := range tests {
		got, err := ParseGCDAlgorithm(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseGCDAlgorithm(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseGCDAlgorithm("stein"); err == nil {
		t.Fatalf("unknown algorithm accepted")
	}
}
