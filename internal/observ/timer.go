package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed stage of a command.
type Phase struct {
	Name       string
	Start, End time.Time
	Note       string
}

func (p Phase) Duration() time.Duration {
	if p.End.IsZero() {
		return 0
	}
	return p.End.Sub(p.Start)
}

// Timer collects phases for --timings. Not safe for concurrent use.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a phase; pass the returned index to End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes phase idx. Unknown indexes are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	t.phases[idx].End = time.Now()
	t.phases[idx].Note = note
}

// Track times fn as phase name. A failing fn without a note is noted "failed".
func (t *Timer) Track(name string, fn func() (string, error)) error {
	idx := t.Begin(name)
	note, err := fn()
	if err != nil && note == "" {
		note = "failed"
	}
	t.End(idx, note)
	return err
}

type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report lists phases in start order. The probe phase runs inside
// synthesize, so TotalMS is wall time rather than a sum.
func (t *Timer) Report() Report {
	var rep Report
	if len(t.phases) == 0 {
		return rep
	}
	var last time.Time
	for _, p := range t.phases {
		if p.End.After(last) {
			last = p.End
		}
		rep.Phases = append(rep.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Duration()), Note: p.Note})
	}
	if !last.IsZero() {
		rep.TotalMS = millis(last.Sub(t.phases[0].Start))
	}
	return rep
}

func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&b, "  %-12s %8.3f ms", name, ms)
		if note != "" {
			b.WriteString("  # " + note)
		}
		b.WriteByte('\n')
	}
	for _, p := range rep.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", rep.TotalMS, "")
	return b.String()
}

func millis(d time.Duration) float64 {
	return d.Seconds() * 1000
}
