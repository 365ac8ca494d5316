package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tmplconfig/internal/diag"
	"tmplconfig/internal/machine"
	"tmplconfig/internal/observ"
	"tmplconfig/internal/probe"
	"tmplconfig/internal/snapshot"
	"tmplconfig/internal/ui"
	"tmplconfig/internal/version"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe the target and print its numeric profile",
	Long: `Probe the configured machine and print what was found. --save writes the
profile as a snapshot that "tmplconfig generate --profile" can consume on
another host.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

var (
	probeOverrides overrides
	probeFormat    string
	probeSave      string
)

func init() {
	registerProbeFlags(probeCmd, &probeOverrides)
	probeCmd.Flags().StringVar(&probeFormat, "format", "pretty", "output format (pretty|json)")
	probeCmd.Flags().StringVar(&probeSave, "save", "", "write the profile snapshot to this file")
}

func runProbe(cmd *cobra.Command, _ []string) error {
	out, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	switch probeFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", probeFormat)
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	defer printDiagnostics(cmd.ErrOrStderr(), bag, out.quiet)

	proj, err := loadProject(cmd, ".", reporter)
	if err != nil {
		return err
	}
	o := probeOverrides
	if err := o.apply(proj); err != nil {
		return err
	}
	m, err := projectMachine(proj, reporter)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	p, err := timedProbe(cmd.Context(), timer, m, proj.File.ProbeOptions(), reporter)
	if err != nil {
		return err
	}

	if probeSave != "" {
		err := timer.Track("save", func() (string, error) {
			return displayPath(probeSave), snapshot.Save(probeSave, p, version.Tool())
		})
		if err != nil {
			diag.ReportError(reporter, diag.SynSnapshotSave, probeSave, err.Error()).Emit()
			return fmt.Errorf("save profile: %w", err)
		}
	}

	w := cmd.OutOrStdout()
	if probeFormat == "json" {
		err = writeProfileJSON(w, p)
	} else {
		fmt.Fprint(w, profileTable(p, !color.NoColor).Render())
	}
	if err != nil {
		return err
	}
	if out.timings {
		fmt.Fprint(w, timer.Summary())
	}
	return nil
}

// timedProbe runs the prober as the "probe" phase. A context cancelled while
// probing fails the phase.
func timedProbe(ctx context.Context, timer *observ.Timer, m machine.Machine, opts probe.Options, reporter diag.Reporter) (*probe.Profile, error) {
	var p *probe.Profile
	err := timer.Track("probe", func() (string, error) {
		p = runProber(ctx, m, opts, reporter)
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("probe %s: %w", m.Name(), err)
		}
		return p.Machine, nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func runProber(ctx context.Context, m machine.Machine, opts probe.Options, reporter diag.Reporter) *probe.Profile {
	return probe.NewProber(ctx, m, opts, reporter).Profile()
}

func writeProfileJSON(w io.Writer, p *probe.Profile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// profileTable lays out a profile as property/value rows.
func profileTable(p *probe.Profile, styled bool) *ui.Table {
	t := &ui.Table{Title: p.Machine, Header: []string{"property", "value"}, Styled: styled}
	for _, typ := range machine.UnsignedTypes {
		w := p.Widths.Of(typ)
		if !w.Known {
			t.Append(typ.CName(), "unavailable")
			continue
		}
		val := strconv.Itoa(w.Value) + " bits"
		if pad := w.Padding(); pad > 0 {
			val += fmt.Sprintf(" (+%d padding)", pad)
		}
		t.Append(typ.CName(), val)
	}
	order := p.Endianness.String()
	if name := p.WidestName(); name != "" {
		order += " (" + name + ")"
	}
	t.Append("byte order", order)
	t.Append("signed", p.Signed.String())
	t.Append("ascii", ui.YesNo(p.ASCII))
	t.Append("float", p.Float.String())
	t.Append("double", p.Double.String())
	t.Append("long double", p.LongDouble.String())
	t.Append("long double family", p.LongDouble.Family().String())

	c := p.Capabilities
	t.Append("32-bit unsigned", ui.YesNo(c.Has32BitUnsigned))
	t.Append("64-bit unsigned", ui.YesNo(c.Has64BitUnsigned))
	t.Append("float/int pun 32", ui.YesNo(c.FloatIntPun32))
	t.Append("float/int pun 64", ui.YesNo(c.FloatIntPun64))
	t.Append("long double pun", ui.YesNo(c.FloatIntPunLongDouble))

	for _, typ := range machine.FloatingTypes {
		if eps, ok := p.Epsilons.Of(typ); ok {
			t.Append(typ.String()+" epsilon", eps.Text('g', 10))
		}
	}
	return t
}
