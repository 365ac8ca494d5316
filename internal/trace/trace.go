package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Tracer receives events. Implementations must be safe for concurrent use;
// `targets --probe` traces several probers at once.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled is Level() > LevelOff.
	Enabled() bool
}

// Level selects how deep into the scopes events are kept.
type Level uint8

const (
	LevelOff Level = iota
	// LevelError keeps nothing in the stream; a ring still collects for
	// a dump after a failure.
	LevelError
	LevelPhase
	LevelDetail
	LevelDebug
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the lower or upper case level name.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// deepest is the finest scope each level keeps.
var deepest = [...]Scope{
	LevelPhase:  ScopeStage,
	LevelDetail: ScopeProbe,
	LevelDebug:  ScopeCandidate,
}

// ShouldEmit reports whether events of scope are kept at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(deepest) {
		return false
	}
	return scope != 0 && scope <= deepest[l]
}

// Scope is how fine-grained an event is; larger is finer.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // a CLI command
	ScopeStage                   // probing, synthesis, snapshot I/O
	ScopeProbe                   // one probe
	ScopeCandidate               // one candidate layout
)

var scopeNames = [...]string{"unknown", "driver", "stage", "probe", "candidate"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Kind distinguishes span boundaries from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{"unknown", "begin", "end", "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is one trace record. Seq is stamped by the sink that stores it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // "widths", "long double", "128-bit quadruple little"
	Detail   string
	Extra    map[string]string
}

// StorageMode says where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing
	ModeBoth
)

var modeNames = [...]string{"unknown", "stream", "ring", "both"}

func (m StorageMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

func ParseMode(s string) (StorageMode, error) {
	for i, name := range modeNames[1:] {
		if strings.EqualFold(s, name) {
			return StorageMode(i + 1), nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

const defaultRingSize = 4096

type Config struct {
	Level  Level
	Mode   StorageMode
	Format Format // FormatAuto picks from OutputPath
	// Output wins over OutputPath. An empty path or "-" is stderr.
	Output     io.Writer
	OutputPath string
	RingSize   int
}

// New builds the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatFor(cfg.OutputPath)
	}

	var sinks []Tracer
	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, NewStreamTracer(w, cfg.Level, format))
	}
	if cfg.Mode == ModeRing || cfg.Mode == ModeBoth {
		sinks = append(sinks, NewRingTracer(cfg.RingSize, cfg.Level))
	}
	switch len(sinks) {
	case 0:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	case 1:
		return sinks[0], nil
	}
	return NewMultiTracer(cfg.Level, sinks...), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, nil
	}
	// #nosec G304 -- path is chosen by the user
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
