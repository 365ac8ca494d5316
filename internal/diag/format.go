package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders diagnostics one per line in a stable form:
//
//	warning PRB1001 unsigned int: 8 padding bits
//
// Notes follow their diagnostic as "note" lines when includeNotes is set.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s: %s", severityLabel(d.Severity), d.Code.ID(), d.Subject, sanitizeMessage(d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "\nnote %s %s: %s", d.Code.ID(), d.Subject, sanitizeMessage(n))
		}
	}
	return b.String()
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
