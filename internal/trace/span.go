package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// Span is an open span. The zero Span and spans from a disabled tracer
// accept every call and emit nothing.
type Span struct {
	tracer Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	start  time.Time
	extra  map[string]string
}

func live(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !live(t, scope) {
		return &Span{}
	}
	sp := &Span{
		tracer: t,
		id:     spanCounter.Add(1),
		parent: parent,
		scope:  scope,
		name:   name,
		start:  time.Now(),
	}
	sp.emit(KindSpanBegin, "", nil, sp.start)
	return sp
}

func (s *Span) emit(kind Kind, detail string, extra map[string]string, at time.Time) {
	s.tracer.Emit(&Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Extra:    extra,
	})
}

// End emits the end event carrying detail and the collected extras, and
// returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	s.emit(KindSpanEnd, detail, s.extra, now)
	return now.Sub(s.start)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = map[string]string{}
	}
	s.extra[key] = value
	return s
}

// ID is 0 for a span that emits nothing.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !live(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		SpanID:   spanCounter.Add(1),
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
