package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"tmplconfig/internal/diag"
	"tmplconfig/internal/header"
	"tmplconfig/internal/machine"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", path, ok, err)
	}
	if want := filepath.Join(root, FileName); path != want {
		t.Fatalf("Find = %q, want %q", path, want)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	dir := t.TempDir()
	p, err := Discover(dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if p.Path != "" {
		// a tmplconfig.toml above the temp dir would leak into the test
		t.Skipf("found project file %s above temp dir", p.Path)
	}
	if diff := pretty.Compare(p.File, Default()); diff != "" {
		t.Fatalf("defaults differ (-got +want):\n%s", diff)
	}
	if got, want := p.HeaderPath(), filepath.Join(dir, "include", "tmpl_config.h"); got != want {
		t.Fatalf("HeaderPath = %q, want %q", got, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `
[output]
dir = "gen"
extras = true

[compiler]
restrict = true
gcd = "euclidean"

[probe]
long_long = false

[target]
name = "mips-linux-gnu"

[colour]
scheme = "dark"
`)
	bag := diag.NewBag(10)
	p, err := Load(path, diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := p.File
	if f.Output.Dir != "gen" || !f.Output.Extras || f.Output.ConfigHeader != "tmpl_config.h" {
		t.Fatalf("output = %+v", f.Output)
	}
	if !f.Compiler.Inline || !f.Compiler.Restrict || f.Compiler.GCD != header.GCDEuclidean {
		t.Fatalf("compiler = %+v", f.Compiler)
	}
	opts := f.ProbeOptions()
	if !opts.DisableLongLong || opts.DisableIEEE || opts.DisableASCII {
		t.Fatalf("probe options = %+v", opts)
	}
	if !bag.Has(diag.CfgUnknownKey) {
		t.Fatalf("unknown keys not reported")
	}
	m, err := p.Machine()
	if err != nil {
		t.Fatalf("Machine: %v", err)
	}
	if m.Name() != "mips-linux-gnu" {
		t.Fatalf("machine = %s", m.Name())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad gcd", "[compiler]\ngcd = \"stein\"\n"},
		{"both targets", "[target]\nname = \"x\"\ndescription = \"y.toml\"\n"},
		{"bad toml", "[output\n"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), FileName)
		writeFile(t, path, tt.src)
		if _, err := Load(path, nil); err == nil {
			t.Fatalf("%s: Load succeeded", tt.name)
		}
	}
}

func TestMachineFromDescription(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "machines", "toy.toml"), `
byte_order = "big"
[sizes]
short = 2
int = 2
long = 4
long_long = 0
float = 4
double = 8
long_double = 8
`)
	writeFile(t, filepath.Join(root, FileName), "[target]\ndescription = \"machines/toy.toml\"\n")
	p, err := Load(filepath.Join(root, FileName), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, err := p.Machine()
	if err != nil {
		t.Fatalf("Machine: %v", err)
	}
	if m.Name() != "toy" || m.Sizeof(machine.Long) != 4 {
		t.Fatalf("machine %s, sizeof(long) = %d", m.Name(), m.Sizeof(machine.Long))
	}

	p.File.Target = Target{Name: "vax-bsd"}
	if _, err := p.Machine(); err == nil {
		t.Fatalf("unknown target accepted")
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Fatalf("WriteDefault replaced an existing file")
	}
	bag := diag.NewBag(10)
	p, err := Load(path, diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diag.FormatShort(bag.Items(), false))
	}
	if diff := pretty.Compare(p.File, Default()); diff != "" {
		t.Fatalf("round trip differs (-got +want):\n%s", diff)
	}
}
