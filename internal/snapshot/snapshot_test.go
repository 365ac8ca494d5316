package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"tmplconfig/internal/machine"
	"tmplconfig/internal/probe"
)

func profileOf(t *testing.T, name string, opts probe.Options) *probe.Profile {
	t.Helper()
	d, ok := machine.LookupTarget(name)
	if !ok {
		t.Fatalf("no target %s", name)
	}
	m, err := machine.NewSynthetic(d)
	if err != nil {
		t.Fatalf("NewSynthetic: %v", err)
	}
	return probe.Detect(m, opts)
}

func TestSaveLoad(t *testing.T) {
	for _, name := range []string{"x86_64-linux-gnu", "powerpc64-linux-gnu", "pdp11-unix"} {
		want := profileOf(t, name, probe.Options{DisableASCII: true})
		path := filepath.Join(t.TempDir(), "profiles", name+".msgpack")
		if err := Save(path, want, "test"); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		got, pl, err := Load(path)
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if pl.Tool != "test" || pl.Machine != name || pl.Digest.IsZero() {
			t.Fatalf("%s: envelope = %+v", name, pl)
		}
		if diff := pretty.Compare(got, want); diff != "" {
			t.Fatalf("%s: profile differs (-got +want):\n%s", name, diff)
		}
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.msgpack")
	p := profileOf(t, "aarch64-linux-gnu", probe.Options{})
	for range 2 {
		if err := Save(path, p, "test"); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("directory holds %d entries, want 1", len(entries))
	}
}

func TestDecodeRejectsTampering(t *testing.T) {
	pl, err := Encode(profileOf(t, "s390x-linux-gnu", probe.Options{}), "test")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	pl.Body[len(pl.Body)-1] ^= 0xFF
	if _, err := pl.Decode(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Decode of tampered body = %v, want ErrCorrupt", err)
	}

	pl, _ = Encode(profileOf(t, "s390x-linux-gnu", probe.Options{}), "test")
	pl.Schema++
	if _, err := pl.Decode(); !errors.Is(err, ErrSchema) {
		t.Fatalf("Decode of future schema = %v, want ErrSchema", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.msgpack"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load = %v, want not-exist", err)
	}
}
