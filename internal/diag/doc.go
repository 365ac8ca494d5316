// Package diag defines the findings model shared by the probes, the header
// synthesizer and the configuration loader.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Subject – the thing the finding is about ("long double", "tmpl_config.h").
//   - Message – human oriented text; keep it short and actionable.
//   - Notes – optional extra lines of context.
//
// Indeterminate platform facts are not errors: a probe that cannot classify
// a type reports an Info or Warning and records Unknown. Errors are reserved
// for failures that stop a command, such as an artifact that cannot be
// opened.
//
// Producers emit through a Reporter and never format or print; rendering
// happens in FormatShort and in the CLI.
package diag
