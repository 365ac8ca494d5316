package main

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tmplconfig/internal/diag"
	"tmplconfig/internal/machine"
	"tmplconfig/internal/probe"
	"tmplconfig/internal/ui"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the built-in machine descriptions",
	Long: `List the built-in machine descriptions usable with --target or
[target].name. With --probe every target is probed and the results are shown
side by side.`,
	Args: cobra.NoArgs,
	RunE: runTargets,
}

var (
	targetsProbe bool
	targetsJobs  int
)

func init() {
	targetsCmd.Flags().BoolVar(&targetsProbe, "probe", false, "probe every target")
	targetsCmd.Flags().IntVarP(&targetsJobs, "jobs", "j", 0, "parallel probes (default: number of CPUs)")
}

func runTargets(cmd *cobra.Command, _ []string) error {
	out, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	descs := machine.Targets()
	styled := !color.NoColor
	w := cmd.OutOrStdout()
	if !targetsProbe {
		fmt.Fprint(w, describeTargets(descs, styled).Render())
		return nil
	}

	results, err := probeTargets(cmd.Context(), descs, targetsJobs)
	if err != nil {
		return err
	}
	fmt.Fprint(w, probedTargets(results, styled).Render())

	bag := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		bag.Merge(r.bag)
	}
	printDiagnostics(cmd.ErrOrStderr(), bag, out.quiet)
	return nil
}

func describeTargets(descs []machine.Description, styled bool) *ui.Table {
	t := &ui.Table{
		Header: []string{"target", "order", "char", "short", "int", "long", "long long", "long double"},
		Styled: styled,
	}
	for _, d := range descs {
		t.Append(
			d.Name,
			d.ByteOrder.String(),
			strconv.Itoa(d.CharBits),
			sizeCell(&d, machine.Short),
			sizeCell(&d, machine.Int),
			sizeCell(&d, machine.Long),
			sizeCell(&d, machine.LongLong),
			fmt.Sprintf("%s/%s", sizeCell(&d, machine.LongDouble), d.Encodings.LongDouble),
		)
	}
	return t
}

func sizeCell(d *machine.Description, t machine.Type) string {
	if d.Sizes.Get(t) == 0 {
		return "-"
	}
	return strconv.Itoa(d.StorageBits(t))
}

type targetResult struct {
	name    string
	profile *probe.Profile
	bag     *diag.Bag
}

// probeTargets probes each description with its own Prober, at most jobs
// at a time. Results keep the order of descs.
func probeTargets(ctx context.Context, descs []machine.Description, jobs int) ([]targetResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]targetResult, len(descs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, d := range descs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := machine.NewSynthetic(d)
			if err != nil {
				return fmt.Errorf("target %s: %w", d.Name, err)
			}
			bag := diag.NewBag(maxDiagnostics)
			p := probe.NewProber(ctx, m, probe.Options{}, diag.BagReporter{Bag: bag}).Profile()
			results[i] = targetResult{name: d.Name, profile: p, bag: bag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func probedTargets(results []targetResult, styled bool) *ui.Table {
	t := &ui.Table{
		Header: []string{"target", "endian", "signed", "double", "long double", "pun32", "pun64", "pun ld"},
		Styled: styled,
	}
	for _, r := range results {
		p := r.profile
		t.Append(
			r.name,
			p.Endianness.String(),
			p.Signed.String(),
			p.Double.String(),
			p.LongDouble.String(),
			ui.YesNo(p.Capabilities.FloatIntPun32),
			ui.YesNo(p.Capabilities.FloatIntPun64),
			ui.YesNo(p.Capabilities.FloatIntPunLongDouble),
		)
	}
	return t
}
