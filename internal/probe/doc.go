// Package probe classifies how a machine represents its numeric types.
//
// A Prober is bound to one machine.Machine. Each probe runs at most once per
// Prober; later calls return the memoized result. Profile runs every probe in
// dependency order and freezes the results into an immutable Profile, which
// is what the header synthesizer consumes.
//
// A probe that cannot classify the machine returns the Unknown value of its
// result type and reports a diagnostic. That is never an error: code built
// from the generated header falls back to portable implementations.
package probe
