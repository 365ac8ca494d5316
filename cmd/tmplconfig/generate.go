package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"tmplconfig/internal/config"
	"tmplconfig/internal/diag"
	"tmplconfig/internal/header"
	"tmplconfig/internal/observ"
	"tmplconfig/internal/probe"
	"tmplconfig/internal/snapshot"
	"tmplconfig/internal/trace"
)

var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Probe the target and write tmpl_config.h",
	Long: `Probe the configured machine (the host unless [target] or --target says
otherwise) and write tmpl_config.h into the output directory. With --all the
supplementary tmpl_inttype.h, tmpl_limits.h and tmpl_float.h are written too.
With --profile the probe step is replaced by a snapshot saved by
"tmplconfig probe --save".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateOverrides overrides
	generateProfile   string
)

func init() {
	registerProbeFlags(generateCmd, &generateOverrides)
	generateCmd.Flags().StringVarP(&generateOverrides.outputDir, "output", "o", "", "output directory (overrides [output].dir)")
	generateCmd.Flags().Bool("all", false, "also write the supplementary headers")
	generateCmd.Flags().StringVar(&generateProfile, "profile", "", "generate from a saved profile snapshot instead of probing")
	generateCmd.Flags().Bool("inline", true, "declare inline support")
	generateCmd.Flags().Bool("restrict", false, "declare restrict support")
	generateCmd.Flags().Bool("memcpy", true, "declare that memcpy may be used")
	generateCmd.Flags().StringVar(&generateOverrides.gcd, "gcd", "", "GCD algorithm (mixed-binary|binary|euclidean|naive)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	o := generateOverrides
	for name, dst := range map[string]**bool{
		"all":      &o.extras,
		"inline":   &o.inline,
		"restrict": &o.restrict,
		"memcpy":   &o.memcpy,
	} {
		if *dst, err = boolFlag(cmd, name); err != nil {
			return err
		}
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	defer printDiagnostics(cmd.ErrOrStderr(), bag, out.quiet)

	proj, err := loadProject(cmd, dir, reporter)
	if err != nil {
		return err
	}
	if err := o.apply(proj); err != nil {
		return err
	}

	timer := observ.NewTimer()
	written, err := generate(cmd.Context(), proj, generateProfile, reporter, timer)
	if err != nil {
		return err
	}
	if !out.quiet {
		for _, path := range written {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", displayPath(path))
		}
	}
	if out.timings {
		fmt.Fprint(cmd.OutOrStdout(), timer.Summary())
	}
	return nil
}

// generate writes the config header and, when the project asks for them,
// the supplementary headers. It returns the paths written.
func generate(ctx context.Context, proj *config.Project, profilePath string, reporter diag.Reporter, timer *observ.Timer) ([]string, error) {
	sp := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "generate", trace.CurrentSpan(ctx).SpanID)
	defer sp.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: sp.ID()})

	var src header.ProfileSource
	if profilePath != "" {
		p, pl, err := snapshot.Load(profilePath)
		if err != nil {
			diag.ReportError(reporter, diag.SynSnapshotRead, profilePath, err.Error()).Emit()
			return nil, fmt.Errorf("load profile: %w", err)
		}
		diag.ReportInfo(reporter, diag.SynInfo, profilePath, fmt.Sprintf("using %s profile saved by %s", p.Machine, pl.Tool)).Emit()
		src = header.Static(p)
	} else {
		m, err := projectMachine(proj, reporter)
		if err != nil {
			return nil, err
		}
		src = probe.NewProber(ctx, m, proj.File.ProbeOptions(), reporter)
	}

	if err := os.MkdirAll(proj.OutputDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	syn := &header.Synthesizer{
		Source:   &timedSource{src: src, timer: timer},
		Compiler: proj.File.Compiler,
		Reporter: reporter,
	}
	var written []string
	err := timer.Track("synthesize", func() (string, error) {
		path := proj.HeaderPath()
		if err := syn.Synthesize(ctx, path); err != nil {
			return "", err
		}
		written = append(written, path)
		return header.ConfigHeader.File, nil
	})
	if err != nil {
		return written, err
	}
	if !proj.File.Output.Extras {
		return written, nil
	}
	err = timer.Track("extras", func() (string, error) {
		paths, err := syn.SynthesizeExtras(ctx, proj.OutputDir())
		written = append(written, paths...)
		return fmt.Sprintf("%d headers", len(paths)), err
	})
	return written, err
}

// timedSource records the first Profile call as the probe phase.
type timedSource struct {
	src   header.ProfileSource
	timer *observ.Timer
	once  sync.Once
	p     *probe.Profile
}

func (s *timedSource) Profile() *probe.Profile {
	s.once.Do(func() {
		idx := s.timer.Begin("probe")
		s.p = s.src.Profile()
		s.timer.End(idx, s.p.Machine)
	})
	return s.p
}
