package header

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tmplconfig/internal/diag"
	"tmplconfig/internal/probe"
	"tmplconfig/internal/trace"
)

// ProfileSource yields the profile a header is generated from. *probe.Prober
// forces its probes on the first call.
type ProfileSource interface {
	Profile() *probe.Profile
}

type staticSource struct{ p *probe.Profile }

func (s staticSource) Profile() *probe.Profile { return s.p }

// Static wraps an already computed profile, e.g. one loaded from a snapshot.
func Static(p *probe.Profile) ProfileSource { return staticSource{p: p} }

// SynthesisError reports a failed step of writing an artifact.
type SynthesisError struct {
	Component string
	Path      string
	Op        string
	Err       error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s: %v", e.Component, e.Op, e.Path, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// Synthesizer writes headers from one profile.
type Synthesizer struct {
	Source   ProfileSource
	Compiler CompilerOptions
	Reporter diag.Reporter
}

// Synthesize writes tmpl_config.h to path, replacing any existing file.
func (s *Synthesizer) Synthesize(ctx context.Context, path string) error {
	return s.write(ctx, ConfigHeader, path)
}

// SynthesizeExtras writes the supplementary headers into dir and returns
// their paths. It stops at the first failure.
func (s *Synthesizer) SynthesizeExtras(ctx context.Context, dir string) ([]string, error) {
	var written []string
	for _, a := range Extras() {
		path := filepath.Join(dir, a.File)
		if err := s.write(ctx, a, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func (s *Synthesizer) reporter() diag.Reporter {
	if s.Reporter == nil {
		return diag.Nop
	}
	return s.Reporter
}

func (s *Synthesizer) fail(a Artifact, path, op string, code diag.Code, err error) error {
	diag.ReportError(s.reporter(), code, a.Component, fmt.Sprintf("cannot %s %s: %v", op, path, err)).
		WithNote("synthesis aborted").Emit()
	return &SynthesisError{Component: a.Component, Path: path, Op: op, Err: err}
}

func (s *Synthesizer) write(ctx context.Context, a Artifact, path string) (err error) {
	if s.Source == nil {
		return errors.New("synthesizer has no profile source")
	}
	sp := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "synthesize "+a.File, trace.CurrentSpan(ctx).SpanID)
	defer func() {
		if err != nil {
			sp.End("failed")
			return
		}
		sp.End(path)
	}()

	// #nosec G304 -- path comes from the output configuration
	f, err := os.Create(path)
	if err != nil {
		return s.fail(a, path, "open", diag.SynOpenFailed, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = s.fail(a, path, "close", diag.SynCloseFailed, closeErr)
		}
	}()

	profile := s.Source.Profile()
	w := bufio.NewWriter(f)
	if err := a.Render(w, profile, s.Compiler); err != nil {
		return s.fail(a, path, "write", diag.SynWriteFailed, err)
	}
	if err := w.Flush(); err != nil {
		return s.fail(a, path, "write", diag.SynWriteFailed, err)
	}
	diag.ReportInfo(s.reporter(), diag.SynInfo, a.Component, "wrote "+path).Emit()
	return nil
}
