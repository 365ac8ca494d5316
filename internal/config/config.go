// Package config loads tmplconfig.toml, the project file that says where the
// headers go, which machine to probe and which compiler capabilities to
// declare.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tmplconfig/internal/diag"
	"tmplconfig/internal/header"
	"tmplconfig/internal/machine"
	"tmplconfig/internal/probe"
)

// FileName is the project file looked up from the working directory upward.
const FileName = "tmplconfig.toml"

type Output struct {
	Dir          string `toml:"dir"`
	ConfigHeader string `toml:"config_header"`
	Extras       bool   `toml:"extras"`
}

// Probe enables the assumptions the header may rely on. Everything is on by
// default.
type Probe struct {
	IEEE754    bool `toml:"ieee754"`
	FixedWidth bool `toml:"fixed_width"`
	ASCII      bool `toml:"ascii"`
	LongLong   bool `toml:"long_long"`
}

// Target picks the machine. Name is a built-in target; Description is a
// machine description file relative to the project file. Both empty means
// the host.
type Target struct {
	Name        string `toml:"name,omitempty"`
	Description string `toml:"description,omitempty"`
}

type File struct {
	Output   Output                 `toml:"output"`
	Compiler header.CompilerOptions `toml:"compiler"`
	Probe    Probe                  `toml:"probe"`
	Target   Target                 `toml:"target"`
}

// Project is a loaded project file.
type Project struct {
	// Path is empty when no project file was found.
	Path string
	Root string
	File File
}

// Default returns the configuration used without a project file.
func Default() File {
	return File{
		Output: Output{
			Dir:          "include",
			ConfigHeader: header.ConfigHeader.File,
		},
		Compiler: header.DefaultCompilerOptions(),
		Probe: Probe{
			IEEE754:    true,
			FixedWidth: true,
			ASCII:      true,
			LongLong:   true,
		},
	}
}

// ProbeOptions converts the [probe] section.
func (f *File) ProbeOptions() probe.Options {
	return probe.Options{
		DisableIEEE:       !f.Probe.IEEE754,
		DisableFixedWidth: !f.Probe.FixedWidth,
		DisableASCII:      !f.Probe.ASCII,
		DisableLongLong:   !f.Probe.LongLong,
	}
}

// HeaderPath is where tmpl_config.h goes, relative paths taken from root.
func (p *Project) HeaderPath() string {
	return filepath.Join(p.OutputDir(), p.File.Output.ConfigHeader)
}

// OutputDir resolves [output].dir against the project root.
func (p *Project) OutputDir() string {
	dir := p.File.Output.Dir
	if dir == "" {
		dir = "."
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.Root, dir)
}

// Machine builds the machine named by [target].
func (p *Project) Machine() (machine.Machine, error) {
	t := p.File.Target
	switch {
	case t.Description != "":
		path := t.Description
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.Root, path)
		}
		desc, err := machine.LoadDescription(path)
		if err != nil {
			return nil, err
		}
		return machine.NewSynthetic(*desc)
	case t.Name != "":
		desc, ok := machine.LookupTarget(t.Name)
		if !ok {
			return nil, fmt.Errorf("%s: unknown target %q", p.displayPath(), t.Name)
		}
		return machine.NewSynthetic(desc)
	}
	return machine.Host(), nil
}

func (p *Project) displayPath() string {
	if p.Path == "" {
		return "defaults"
	}
	return p.Path
}

// Find walks up from startDir to locate tmplconfig.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the project file above startDir, or the defaults rooted at
// startDir when there is none.
func Discover(startDir string, reporter diag.Reporter) (*Project, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve start directory: %w", err)
		}
		return &Project{Root: root, File: Default()}, nil
	}
	return Load(path, reporter)
}

// Load reads a project file. Keys it does not know are reported as
// warnings and otherwise ignored.
func Load(path string, reporter diag.Reporter) (*Project, error) {
	if reporter == nil {
		reporter = diag.Nop
	}
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		diag.ReportWarning(reporter, diag.CfgUnknownKey, path, fmt.Sprintf("unknown key %q", key.String())).Emit()
	}
	if cfg.Target.Name != "" && cfg.Target.Description != "" {
		diag.ReportError(reporter, diag.CfgInvalidValue, path, "[target] sets both name and description").Emit()
		return nil, fmt.Errorf("%s: [target] sets both name and description", path)
	}
	if strings.TrimSpace(cfg.Output.ConfigHeader) == "" {
		cfg.Output.ConfigHeader = header.ConfigHeader.File
	}
	if cfg.Compiler.GCD == 0 {
		cfg.Compiler.GCD = header.GCDMixedBinary
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return &Project{Path: abs, Root: filepath.Dir(abs), File: cfg}, nil
}

// WriteDefault creates a project file with the default settings. It refuses
// to replace an existing file.
func WriteDefault(path string) error {
	var buf bytes.Buffer
	buf.WriteString("# tmplconfig project file\n\n")
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return fmt.Errorf("%s: failed to encode TOML: %w", path, err)
	}
	// #nosec G304 -- path is chosen by the user
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
