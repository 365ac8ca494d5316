package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tmplconfig/internal/config"
	"tmplconfig/internal/diag"
	"tmplconfig/internal/header"
	"tmplconfig/internal/machine"
	"tmplconfig/internal/observ"
	"tmplconfig/internal/probe"
	"tmplconfig/internal/snapshot"
	"tmplconfig/internal/trace"
)

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	tests := []struct {
		mode string
		tty  bool
		want bool
	}{
		{"auto", true, true},
		{"auto", false, false},
		{"", true, true},
		{"on", false, true},
		{"off", true, false},
	}
	for _, tt := range tests {
		got, err := colorEnabled(tt.mode, tt.tty)
		if err != nil || got != tt.want {
			t.Fatalf("colorEnabled(%q, %v) = %v, %v, want %v", tt.mode, tt.tty, got, err, tt.want)
		}
	}
	if _, err := colorEnabled("rainbow", true); err == nil {
		t.Fatalf("colorEnabled(rainbow) should fail")
	}
}

func ptr[T any](v T) *T { return &v }

func TestOverridesWinOverFile(t *testing.T) {
	proj := &config.Project{Root: t.TempDir(), File: config.Default()}
	proj.File.Target.Description = "machines/dsp.toml"
	o := overrides{
		target:     "mips-linux-gnu",
		extras:     ptr(true),
		inline:     ptr(false),
		restrict:   ptr(true),
		gcd:        "euclidean",
		noASCII:    true,
		noLongLong: true,
	}
	if err := o.apply(proj); err != nil {
		t.Fatalf("apply: %v", err)
	}
	f := proj.File
	if f.Target != (config.Target{Name: "mips-linux-gnu"}) {
		t.Fatalf("target = %+v", f.Target)
	}
	if !f.Output.Extras || f.Compiler.Inline || !f.Compiler.Restrict || !f.Compiler.Memcpy {
		t.Fatalf("output/compiler = %+v %+v", f.Output, f.Compiler)
	}
	if f.Compiler.GCD != header.GCDEuclidean {
		t.Fatalf("gcd = %s", f.Compiler.GCD)
	}
	opts := f.ProbeOptions()
	if !opts.DisableASCII || !opts.DisableLongLong || opts.DisableIEEE || opts.DisableFixedWidth {
		t.Fatalf("probe options = %+v", opts)
	}
}

func TestOverridesReject(t *testing.T) {
	tests := []struct {
		name string
		o    overrides
	}{
		{"both targets", overrides{target: "mips-linux-gnu", description: "x.toml"}},
		{"unknown target", overrides{target: "vax-bsd"}},
		{"bad gcd", overrides{gcd: "stein"}},
	}
	for _, tt := range tests {
		proj := &config.Project{Root: t.TempDir(), File: config.Default()}
		if err := tt.o.apply(proj); err == nil {
			t.Fatalf("%s: apply succeeded", tt.name)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestGenerateWritesHeaders(t *testing.T) {
	dir := t.TempDir()
	proj := &config.Project{Root: dir, File: config.Default()}
	proj.File.Target.Name = "x86_64-linux-gnu"
	proj.File.Output.Extras = true

	bag := diag.NewBag(maxDiagnostics)
	timer := observ.NewTimer()
	written, err := generate(context.Background(), proj, "", diag.BagReporter{Bag: bag}, timer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(written) != 1+len(header.Extras()) {
		t.Fatalf("wrote %v", written)
	}
	if written[0] != filepath.Join(dir, "include", "tmpl_config.h") {
		t.Fatalf("config header at %s", written[0])
	}
	cfg := readFile(t, written[0])
	for _, want := range []string{
		"#define TMPL_ENDIAN TMPL_LITTLE_ENDIAN",
		"#define TMPL_LDOUBLE_TYPE TMPL_LDOUBLE_80_BIT",
		"#define TMPL_HAS_FLOATINT64 1",
	} {
		if !strings.Contains(cfg, want) {
			t.Fatalf("tmpl_config.h lacks %q:\n%s", want, cfg)
		}
	}
	if inttype := readFile(t, filepath.Join(dir, "include", "tmpl_inttype.h")); !strings.Contains(inttype, "unsigned long tmpl_UInt64") {
		t.Fatalf("tmpl_inttype.h:\n%s", inttype)
	}

	names := map[string]bool{}
	for _, p := range timer.Report().Phases {
		names[p.Name] = true
	}
	for _, want := range []string{"probe", "synthesize", "extras"} {
		if !names[want] {
			t.Fatalf("timer lacks phase %s: %+v", want, timer.Report())
		}
	}
}

func TestGenerateFromSnapshot(t *testing.T) {
	dir := t.TempDir()
	d, _ := machine.LookupTarget("s390x-linux-gnu")
	m, err := machine.NewSynthetic(d)
	if err != nil {
		t.Fatalf("NewSynthetic: %v", err)
	}
	snap := filepath.Join(dir, "s390x.msgpack")
	if err := snapshot.Save(snap, probe.Detect(m, probe.Options{}), "test"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// the project names another target; the snapshot wins
	proj := &config.Project{Root: dir, File: config.Default()}
	proj.File.Target.Name = "x86_64-linux-gnu"
	bag := diag.NewBag(maxDiagnostics)
	written, err := generate(context.Background(), proj, snap, diag.BagReporter{Bag: bag}, observ.NewTimer())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if cfg := readFile(t, written[0]); !strings.Contains(cfg, "#define TMPL_ENDIAN TMPL_BIG_ENDIAN") {
		t.Fatalf("header not generated from snapshot:\n%s", cfg)
	}
	if !bag.Has(diag.SynInfo) {
		t.Fatalf("snapshot use not reported")
	}

	_, err = generate(context.Background(), proj, filepath.Join(dir, "absent.msgpack"), diag.BagReporter{Bag: bag}, observ.NewTimer())
	if err == nil || !bag.Has(diag.SynSnapshotRead) {
		t.Fatalf("missing snapshot: err = %v, SynSnapshotRead reported = %v", err, bag.Has(diag.SynSnapshotRead))
	}
}

func TestGenerateReportsBadMachine(t *testing.T) {
	dir := t.TempDir()
	proj := &config.Project{Root: dir, File: config.Default()}
	proj.File.Target.Description = "missing.toml"
	bag := diag.NewBag(maxDiagnostics)
	if _, err := generate(context.Background(), proj, "", diag.BagReporter{Bag: bag}, observ.NewTimer()); err == nil {
		t.Fatalf("generate with a missing description succeeded")
	}
	if !bag.Has(diag.CfgMachine) {
		t.Fatalf("CfgMachine not reported")
	}
	if _, err := os.Stat(filepath.Join(dir, "include")); !os.IsNotExist(err) {
		t.Fatalf("output directory created before the machine was known")
	}
}

func TestProbeTargetsKeepsOrder(t *testing.T) {
	descs := machine.Targets()
	results, err := probeTargets(context.Background(), descs, 3)
	if err != nil {
		t.Fatalf("probeTargets: %v", err)
	}
	if len(results) != len(descs) {
		t.Fatalf("got %d results for %d targets", len(results), len(descs))
	}
	for i, r := range results {
		if r.name != descs[i].Name || r.profile.Machine != descs[i].Name {
			t.Fatalf("result %d is %s, want %s", i, r.name, descs[i].Name)
		}
	}
	table := probedTargets(results, false).Render()
	if !strings.Contains(table, "pdp11-unix") || !strings.Contains(table, "mixed") {
		t.Fatalf("probed table:\n%s", table)
	}
}

func TestTimedProbeFailsOnCancel(t *testing.T) {
	d, _ := machine.LookupTarget("x86_64-linux-gnu")
	m, err := machine.NewSynthetic(d)
	if err != nil {
		t.Fatalf("NewSynthetic: %v", err)
	}

	timer := observ.NewTimer()
	p, err := timedProbe(context.Background(), timer, m, probe.Options{}, diag.Nop)
	if err != nil || p.Machine != "x86_64-linux-gnu" {
		t.Fatalf("timedProbe = %v, %v", p, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	timer = observ.NewTimer()
	if _, err := timedProbe(ctx, timer, m, probe.Options{}, diag.Nop); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled probe error = %v", err)
	}
	if rep := timer.Report(); len(rep.Phases) != 1 || rep.Phases[0].Note != "failed" {
		t.Fatalf("phase not marked failed: %+v", rep)
	}
}

func TestProfileTable(t *testing.T) {
	d, _ := machine.LookupTarget("aarch64-linux-gnu")
	m, err := machine.NewSynthetic(d)
	if err != nil {
		t.Fatalf("NewSynthetic: %v", err)
	}
	out := profileTable(probe.Detect(m, probe.Options{}), false).Render()
	for _, want := range []string{
		"aarch64-linux-gnu",
		"unsigned long long",
		"64 bits",
		"byte order",
		"little (unsigned long long)",
		"128-quadruple-little",
		"long double epsilon",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("profile table lacks %q:\n%s", want, out)
		}
	}
}

func TestInitProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	path, err := initProject(dir)
	if err != nil {
		t.Fatalf("initProject: %v", err)
	}
	proj, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if proj.Root != dir {
		t.Fatalf("root = %s, want %s", proj.Root, dir)
	}
	if _, err := initProject(dir); err == nil {
		t.Fatalf("second init succeeded")
	}
}

func TestTraceConfig(t *testing.T) {
	tests := []struct {
		flags  traceFlags
		level  trace.Level
		mode   trace.StorageMode
		format trace.Format
	}{
		{traceFlags{level: "off", mode: "stream", format: "auto"}, trace.LevelOff, 0, trace.FormatAuto},
		{traceFlags{output: "-", level: "off", mode: "stream", format: "auto"}, trace.LevelPhase, trace.ModeStream, trace.FormatAuto},
		{traceFlags{level: "debug", mode: "both", format: "ndjson"}, trace.LevelDebug, trace.ModeBoth, trace.FormatNDJSON},
	}
	for _, tt := range tests {
		cfg, err := tt.flags.traceConfig()
		if err != nil {
			t.Fatalf("traceConfig(%+v): %v", tt.flags, err)
		}
		if cfg.Level != tt.level || cfg.Mode != tt.mode || cfg.Format != tt.format {
			t.Fatalf("traceConfig(%+v) = %+v", tt.flags, cfg)
		}
	}
	if _, err := (traceFlags{level: "phase", mode: "disk", format: "auto"}).traceConfig(); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}
