package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanContext names the span new spans should hang under.
type SpanContext struct {
	SpanID uint64
}

func CurrentSpan(ctx context.Context) SpanContext {
	if ctx != nil {
		if sc, ok := ctx.Value(spanKey{}).(SpanContext); ok {
			return sc
		}
	}
	return SpanContext{}
}

func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanKey{}, sc)
}
