package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeStage, true},
		{LevelPhase, ScopeProbe, false},
		{LevelDetail, ScopeProbe, true},
		{LevelDetail, ScopeCandidate, false},
		{LevelDebug, ScopeCandidate, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestRingKeepsSpansInOrder(t *testing.T) {
	ring := NewRingTracer(8, LevelDetail)
	root := Begin(ring, ScopeStage, "probe", 0)
	child := Begin(ring, ScopeProbe, "widths", root.ID())
	child.WithExtra("char", "8").End("ok")
	Point(ring, ScopeCandidate, "dropped", "", child.ID())
	root.End("")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if events[1].Name != "widths" || events[1].ParentID != root.ID() {
		t.Fatalf("unexpected child event: %+v", events[1])
	}
	if events[2].Extra["char"] != "8" {
		t.Fatalf("extra not carried to end event: %+v", events[2])
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Fatalf("sequence not monotonic at %d", i)
		}
	}
}

func TestRingWraps(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeProbe, name, "", 0)
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected snapshot after wrap: %+v", events)
	}
}

func TestStreamTextFormat(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatText)
	sp := Begin(st, ScopeProbe, "long double", 0)
	sp.End("128_BIT_EXTENDED_LITTLE_ENDIAN")
	out := buf.String()
	if !strings.Contains(out, "→ long double") || !strings.Contains(out, "← long double (128_BIT_EXTENDED_LITTLE_ENDIAN)") {
		t.Fatalf("unexpected text trace:\n%s", out)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopeStage, "synthesize", 0).End("")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"kind":"begin"`) {
		t.Fatalf("unexpected ndjson:\n%s", buf.String())
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should yield Nop")
	}
	ring := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatalf("tracer not propagated")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 7})
	if CurrentSpan(ctx).SpanID != 7 {
		t.Fatalf("span context not propagated")
	}
}

func TestParseLevelAndMode(t *testing.T) {
	if l, err := ParseLevel("detail"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(detail) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel(loud) should fail")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(both) = %v, %v", m, err)
	}
}
