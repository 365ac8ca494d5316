package header

import (
	"fmt"
	"io"
	"strings"

	"tmplconfig/internal/probe"
)

// Artifact is one generated header file.
type Artifact struct {
	// File is the base name written into the output directory.
	File string
	// Component names the artifact in diagnostics and errors.
	Component string
	Guard     string
	Purpose   string

	body func(p *probe.Profile, c CompilerOptions) []string
}

// ConfigHeader is tmpl_config.h, the artifact every run produces.
var ConfigHeader = Artifact{
	File:      "tmpl_config.h",
	Component: "config header",
	Guard:     "TMPL_CONFIG_H",
	Purpose:   "Numeric representation of the target and compiler capabilities.",
	body:      configBody,
}

func configBody(p *probe.Profile, c CompilerOptions) []string {
	lines := []string{"/*  Values the tags below may take.  */"}
	lines = append(lines, defines(Vocabulary())...)
	lines = append(lines, "", "/*  Probed on "+p.Machine+".  */")
	lines = append(lines, defines(Definitions(p, c))...)
	return lines
}

func defines(defs []Definition) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = define(d.Name, d.Value)
	}
	return out
}

func define(name, value string) string {
	if value == "" {
		return "#define " + name
	}
	return "#define " + name + " " + value
}

// Render writes the artifact for p to w.
func (a Artifact) Render(w io.Writer, p *probe.Profile, c CompilerOptions) error {
	var b strings.Builder
	b.WriteString("/*  " + a.File + "\n")
	b.WriteString(" *  Generated by tmplconfig. Do not edit.\n")
	if a.Purpose != "" {
		b.WriteString(" *  " + a.Purpose + "\n")
	}
	b.WriteString(" */\n\n")
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", a.Guard, a.Guard)
	for _, line := range a.body(p, c) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("\n#endif\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Render writes tmpl_config.h for p to w.
func Render(w io.Writer, p *probe.Profile, c CompilerOptions) error {
	return ConfigHeader.Render(w, p, c)
}
