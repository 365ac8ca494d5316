// Package trace records what the tool does while it probes a machine and
// writes headers.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	tmplconfig generate --trace=- --trace-level=detail
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer dumped to stderr when the command exits
//   - MultiTracer: combines multiple tracers
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: one CLI command
//   - ScopeStage: probing, header synthesis, snapshot I/O
//   - ScopeProbe: a single probe (widths, endianness, long double, ...)
//   - ScopeCandidate: one candidate layout tried by a probe
//
// # Context Propagation
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "probe", parentID)
//	defer span.End("")
package trace
