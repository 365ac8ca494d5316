package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tmplconfig/internal/config"
	"tmplconfig/internal/diag"
	"tmplconfig/internal/header"
	"tmplconfig/internal/machine"
)

// loadProject reads --config if given, otherwise discovers tmplconfig.toml
// upward from dir.
func loadProject(cmd *cobra.Command, dir string, reporter diag.Reporter) (*config.Project, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		return config.Load(path, reporter)
	}
	return config.Discover(dir, reporter)
}

// overrides are command-line values that win over the project file. Nil
// pointers leave the file value alone.
type overrides struct {
	target      string
	description string
	outputDir   string
	extras      *bool

	inline   *bool
	restrict *bool
	memcpy   *bool
	gcd      string

	noIEEE       bool
	noFixedWidth bool
	noASCII      bool
	noLongLong   bool
}

func registerProbeFlags(cmd *cobra.Command, o *overrides) {
	cmd.Flags().StringVar(&o.target, "target", "", "built-in target to describe (see `tmplconfig targets`)")
	cmd.Flags().StringVar(&o.description, "description", "", "machine description file")
	cmd.Flags().BoolVar(&o.noIEEE, "no-ieee754", false, "classify every floating layout as unknown")
	cmd.Flags().BoolVar(&o.noFixedWidth, "no-fixed-width", false, "declare no 32/64-bit unsigned types")
	cmd.Flags().BoolVar(&o.noASCII, "no-ascii", false, "report a non-ASCII character set")
	cmd.Flags().BoolVar(&o.noLongLong, "no-long-long", false, "treat unsigned long long as absent")
}

// boolFlag returns the flag value only when it was set on the command line.
func boolFlag(cmd *cobra.Command, name string) (*bool, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (o *overrides) apply(p *config.Project) error {
	f := &p.File
	switch {
	case o.target != "" && o.description != "":
		return fmt.Errorf("--target and --description are mutually exclusive")
	case o.target != "":
		if _, ok := machine.LookupTarget(o.target); !ok {
			return fmt.Errorf("unknown target %q", o.target)
		}
		f.Target = config.Target{Name: o.target}
	case o.description != "":
		// flag paths are relative to the working directory, not the project
		f.Target = config.Target{Description: absPath(o.description)}
	}
	if o.outputDir != "" {
		f.Output.Dir = absPath(o.outputDir)
	}
	if o.extras != nil {
		f.Output.Extras = *o.extras
	}

	if o.inline != nil {
		f.Compiler.Inline = *o.inline
	}
	if o.restrict != nil {
		f.Compiler.Restrict = *o.restrict
	}
	if o.memcpy != nil {
		f.Compiler.Memcpy = *o.memcpy
	}
	if o.gcd != "" {
		g, err := header.ParseGCDAlgorithm(o.gcd)
		if err != nil {
			return err
		}
		f.Compiler.GCD = g
	}

	if o.noIEEE {
		f.Probe.IEEE754 = false
	}
	if o.noFixedWidth {
		f.Probe.FixedWidth = false
	}
	if o.noASCII {
		f.Probe.ASCII = false
	}
	if o.noLongLong {
		f.Probe.LongLong = false
	}
	return nil
}

// projectMachine builds the machine the project selects, reporting a
// CFG diagnostic when it cannot.
func projectMachine(p *config.Project, reporter diag.Reporter) (machine.Machine, error) {
	m, err := p.Machine()
	if err != nil {
		diag.ReportError(reporter, diag.CfgMachine, targetSubject(p), err.Error()).Emit()
		return nil, err
	}
	return m, nil
}

func targetSubject(p *config.Project) string {
	switch t := p.File.Target; {
	case t.Description != "":
		return t.Description
	case t.Name != "":
		return t.Name
	}
	return "host"
}
