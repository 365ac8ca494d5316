package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tmplconfig/internal/trace"
)

type traceFlags struct {
	output, level, mode, format string
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	var tf traceFlags
	flags := cmd.Root().PersistentFlags()
	for name, dst := range map[string]*string{
		"trace":        &tf.output,
		"trace-level":  &tf.level,
		"trace-mode":   &tf.mode,
		"trace-format": &tf.format,
	} {
		v, err := flags.GetString(name)
		if err != nil {
			return tf, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}
	return tf, nil
}

// traceConfig turns the flags into a tracer config. --trace without a
// level means phase.
func (tf traceFlags) traceConfig() (trace.Config, error) {
	cfg := trace.Config{OutputPath: tf.output}
	var err error
	if cfg.Level, err = trace.ParseLevel(tf.level); err != nil {
		return cfg, err
	}
	if cfg.Level == trace.LevelOff && tf.output != "" {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Level == trace.LevelOff {
		return cfg, nil
	}
	if cfg.Mode, err = trace.ParseMode(tf.mode); err != nil {
		return cfg, err
	}
	if cfg.Format, err = trace.ParseFormat(tf.format); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupTracing attaches a tracer to the command context. The cleanup dumps
// any ring to stderr, then closes the tracer.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := tf.traceConfig()
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if !tracer.Enabled() {
		return func() {}, nil
	}

	stderr := cmd.ErrOrStderr()
	return func() { closeTracer(tracer, stderr) }, nil
}

func closeTracer(tracer trace.Tracer, stderr io.Writer) {
	var ring *trace.RingTracer
	switch t := tracer.(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring, _ = t.Ring()
	}
	if ring != nil {
		if err := ring.Dump(stderr, trace.FormatText); err != nil {
			fmt.Fprintf(stderr, "trace: dump error: %v\n", err)
		}
	}
	if err := tracer.Close(); err != nil {
		fmt.Fprintf(stderr, "trace: close error: %v\n", err)
	}
}
