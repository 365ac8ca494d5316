package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tmplconfig/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tmplconfig",
	Short: "Probe a C platform and generate tmpl_config.h",
	Long: `tmplconfig measures how a C platform represents numbers (type widths,
byte order, signed representation, float layouts, the long double format)
and writes the results as preprocessor definitions.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

// traceCleanup flushes the tracer set up by preRun.
var traceCleanup = func() {}

// main registers the subcommands and global flags, runs the root command
// and exits with status 1 on error.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress informational output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "project file (default: tmplconfig.toml found upward from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace encoding (auto|text|ndjson)")

	err := rootCmd.ExecuteContext(context.Background())
	traceCleanup()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func preRun(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	on, err := colorEnabled(mode, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	color.NoColor = !on

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup
	return nil
}

// colorEnabled resolves --color against whether stdout is a terminal.
func colorEnabled(mode string, tty bool) (bool, error) {
	switch mode {
	case "", "auto":
		return tty && os.Getenv("NO_COLOR") == "", nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
