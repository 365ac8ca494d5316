package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimerTracksPhases(t *testing.T) {
	tm := NewTimer()
	if err := tm.Track("probe", func() (string, error) { return "x86_64-linux-gnu", nil }); err != nil {
		t.Fatalf("Track: %v", err)
	}
	boom := errors.New("boom")
	if err := tm.Track("synthesize", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("Track error = %v", err)
	}

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(rep.Phases))
	}
	if rep.Phases[0].Note != "x86_64-linux-gnu" || rep.Phases[1].Note != "failed" {
		t.Fatalf("unexpected notes: %+v", rep.Phases)
	}
	if rep.TotalMS < rep.Phases[0].DurationMS {
		t.Fatalf("total %.3f below phase %.3f", rep.TotalMS, rep.Phases[0].DurationMS)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:", "probe", "# failed", "total"} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary lacks %q:\n%s", want, sum)
		}
	}
}

func TestEndIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "nothing")
	if rep := tm.Report(); len(rep.Phases) != 0 || rep.TotalMS != 0 {
		t.Fatalf("empty timer report = %+v", rep)
	}
}
