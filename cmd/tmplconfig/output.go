package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tmplconfig/internal/diag"
)

const maxDiagnostics = 200

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	noteColor    = color.New(color.Faint)
)

type outputFlags struct {
	quiet   bool
	timings bool
}

func readOutputFlags(cmd *cobra.Command) (outputFlags, error) {
	flags := cmd.Root().PersistentFlags()
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return outputFlags{}, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return outputFlags{}, err
	}
	return outputFlags{quiet: quiet, timings: timings}, nil
}

// printDiagnostics writes the bag sorted by severity. Info diagnostics are
// dropped when quiet is set.
func printDiagnostics(w io.Writer, bag *diag.Bag, quiet bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	for _, d := range bag.Items() {
		if quiet && d.Severity == diag.SevInfo {
			continue
		}
		line := diag.FormatShort([]diag.Diagnostic{{
			Severity: d.Severity,
			Code:     d.Code,
			Subject:  d.Subject,
			Message:  d.Message,
		}}, false)
		fmt.Fprintln(w, severityColor(d.Severity).Sprint(line))
		for _, n := range d.Notes {
			fmt.Fprintln(w, noteColor.Sprint("  note: "+n))
		}
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorColor.Sprint("error: ")+err.Error())
}
