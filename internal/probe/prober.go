package probe

import (
	"context"
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"tmplconfig/internal/diag"
	"tmplconfig/internal/machine"
	"tmplconfig/internal/trace"
)

// Prober runs the probes against one machine and remembers their results.
// It is not safe for concurrent use; give each goroutine its own Prober.
type Prober struct {
	m        machine.Machine
	opts     Options
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64

	known [numKinds]bool
	runs  [numKinds]int

	widths     Widths
	widest     machine.Type
	endian     Endianness
	signed     SignedRep
	ascii      bool
	float      FloatLayout
	double     FloatLayout
	longDouble LongDoubleLayout
	epsilons   Epsilons
	caps       Capabilities

	profile *Profile
}

// NewProber binds a Prober to m. Probe spans are emitted to the tracer in
// ctx under its current span; findings go to reporter, which may be nil.
func NewProber(ctx context.Context, m machine.Machine, opts Options, reporter diag.Reporter) *Prober {
	if reporter == nil {
		reporter = diag.Nop
	}
	return &Prober{
		m:        m,
		opts:     opts,
		reporter: reporter,
		tracer:   trace.FromContext(ctx),
		parent:   trace.CurrentSpan(ctx).SpanID,
	}
}

// Detect probes m once and returns its profile.
func Detect(m machine.Machine, opts Options) *Profile {
	return NewProber(context.Background(), m, opts, nil).Profile()
}

// Machine returns the machine the Prober observes.
func (p *Prober) Machine() machine.Machine { return p.m }

// Runs reports how many times the detection for kind actually executed.
func (p *Prober) Runs(kind Kind) int {
	if kind >= numKinds {
		return 0
	}
	return p.runs[kind]
}

// once runs fn unless kind is already known. fn returns the span detail.
func (p *Prober) once(kind Kind, fn func(sp *trace.Span) string) {
	if p.known[kind] {
		return
	}
	sp := trace.Begin(p.tracer, trace.ScopeProbe, kind.String(), p.parent)
	p.runs[kind]++
	detail := fn(sp)
	p.known[kind] = true
	sp.End(detail)
}

func (p *Prober) candidate(sp *trace.Span) func(name string, ok bool) {
	return func(name string, ok bool) {
		detail := "no match"
		if ok {
			detail = "match"
		}
		trace.Point(p.tracer, trace.ScopeCandidate, name, detail, sp.ID())
	}
}

// Profile runs every probe that has not run yet, in dependency order, and
// returns the frozen result. Every call returns the same pointer.
func (p *Prober) Profile() *Profile {
	if p.profile != nil {
		return p.profile
	}
	order, err := plan()
	if err != nil {
		panic(err)
	}
	for _, kind := range order {
		p.run(kind)
	}
	p.profile = &Profile{
		Machine:      p.m.Name(),
		Options:      p.opts,
		Widths:       p.widths,
		Widest:       p.widest,
		Endianness:   p.endian,
		Signed:       p.signed,
		ASCII:        p.ascii,
		Float:        p.float,
		Double:       p.double,
		LongDouble:   p.longDouble,
		Capabilities: p.caps,
		Epsilons:     p.epsilons,
	}
	return p.profile
}

func (p *Prober) run(kind Kind) {
	switch kind {
	case KindWidths:
		p.Widths()
	case KindEndianness:
		p.Endianness()
	case KindSigned:
		p.Signed()
	case KindASCII:
		p.ASCII()
	case KindFloat:
		p.Float()
	case KindDouble:
		p.Double()
	case KindLongDouble:
		p.LongDouble()
	case KindEpsilon:
		p.Epsilons()
	case KindCapabilities:
		p.Capabilities()
	}
}

// Widths measures every unsigned type. The value width is the number of
// doublings of 1 before the type wraps to zero; the storage width is the
// size in chars times the char width.
func (p *Prober) Widths() Widths {
	p.once(KindWidths, func(sp *trace.Span) string {
		charWidth, _ := doublings(p.m, machine.Char)
		for _, t := range machine.UnsignedTypes {
			slot := p.widths.slot(t)
			size := p.m.Sizeof(t)
			if size == 0 {
				if t == machine.LongLong {
					diag.ReportInfo(p.reporter, diag.ProbeNoLongLong, t.CName(), "type is not available").Emit()
				}
				continue
			}
			if t == machine.LongLong && p.opts.DisableLongLong {
				diag.ReportInfo(p.reporter, diag.ProbeFeatureDisabled, t.CName(), "long long support disabled").Emit()
				continue
			}
			value, wrapped := doublings(p.m, t)
			if !wrapped {
				diag.ReportWarning(p.reporter, diag.ProbeWidthLimitReached, t.CName(),
					fmt.Sprintf("value did not wrap after %d doublings", value)).Emit()
			}
			storage := size * charWidth
			if t == machine.Char {
				storage = value
			}
			*slot = WidthInfo{Storage: storage, Value: value, Known: true}
			if value < storage {
				diag.ReportWarning(p.reporter, diag.ProbePadding, t.CName(),
					fmt.Sprintf("%d of %d bits are padding", storage-value, storage)).Emit()
			}
			sp.WithExtra(t.Key(), strconv.Itoa(value)+"/"+strconv.Itoa(storage))
		}
		if charWidth != 8 {
			diag.ReportWarning(p.reporter, diag.ProbeCharWidth, "unsigned char",
				fmt.Sprintf("char is %d bits wide", charWidth)).
				WithNote("floating-point layouts are only probed with 8-bit chars").Emit()
		}
		return "char " + strconv.Itoa(charWidth)
	})
	return p.widths
}

// Endianness classifies the byte order of the widest unsigned type by
// storing 0, 1, 2, ... in successive chars of a value and reading which one
// lands at the lowest address.
func (p *Prober) Endianness() Endianness {
	p.once(KindEndianness, func(sp *trace.Span) string {
		w := p.Widths()
		p.widest = machine.Long
		if w.LongLong.Known {
			p.widest = machine.LongLong
		}
		p.endian = p.classifyOrder(p.widest, w.CharWidth())
		sp.WithExtra("type", p.widest.CName())

		switch p.endian {
		case EndianMixed:
			diag.ReportWarning(p.reporter, diag.ProbeEndianMixed, p.widest.CName(),
				"chars are neither in ascending nor descending order").Emit()
		case EndianUnknown:
			diag.ReportWarning(p.reporter, diag.ProbeEndianUnknown, p.widest.CName(),
				"byte order could not be classified").Emit()
		}
		p.crossCheck()
		return p.endian.String()
	})
	return p.endian
}

func (p *Prober) classifyOrder(t machine.Type, charWidth int) Endianness {
	n := p.m.Sizeof(t)
	if n < 2 || charWidth <= 0 {
		return EndianUnknown
	}
	shift, err := safecast.Conv[uint](charWidth)
	if err != nil {
		return EndianUnknown
	}
	radix := p.m.Shl(t, 1, shift)
	var v uint64
	power := uint64(1)
	for k := range n {
		digit, err := safecast.Conv[uint64](k)
		if err != nil {
			return EndianUnknown
		}
		v = p.m.Add(t, v, p.m.Mul(t, digit, power))
		power = p.m.Mul(t, power, radix)
	}
	cells := p.m.Cells(t, v)
	if len(cells) == 0 {
		return EndianUnknown
	}
	last, err := safecast.Conv[uint64](n - 1)
	if err != nil {
		return EndianUnknown
	}
	switch first := cells[0]; {
	case first == 0:
		return EndianLittle
	case first == last:
		return EndianBig
	case first < last:
		return EndianMixed
	}
	return EndianUnknown
}

// byteOrderReporter is implemented by machines that can say what byte order
// their runtime claims.
type byteOrderReporter interface {
	ReportedBigEndian() bool
}

func (p *Prober) crossCheck() {
	r, ok := p.m.(byteOrderReporter)
	if !ok || (p.endian != EndianLittle && p.endian != EndianBig) {
		return
	}
	claimed := EndianLittle
	if r.ReportedBigEndian() {
		claimed = EndianBig
	}
	if claimed != p.endian {
		diag.ReportWarning(p.reporter, diag.ProbeRuntimeDisagrees, p.widest.CName(),
			fmt.Sprintf("probed %s, runtime reports %s", p.endian, claimed)).
			WithNote("the probed value is used").Emit()
	}
}

// Signed classifies negative integers from the low two bits of -1.
func (p *Prober) Signed() SignedRep {
	p.once(KindSigned, func(*trace.Span) string {
		switch p.m.SignedAnd(machine.Int, -1, 3) {
		case 1:
			p.signed = SignAndMagnitude
		case 2:
			p.signed = OnesComplement
		case 3:
			p.signed = TwosComplement
		default:
			p.signed = SignedUnknown
			diag.ReportWarning(p.reporter, diag.ProbeSignedUnknown, "signed int",
				"(-1) & 3 matches no known representation").Emit()
		}
		return p.signed.String()
	})
	return p.signed
}

// ASCII reports whether every printable glyph has its ASCII code.
func (p *Prober) ASCII() bool {
	p.once(KindASCII, func(*trace.Span) string {
		if p.opts.DisableASCII {
			diag.ReportInfo(p.reporter, diag.ProbeFeatureDisabled, "charset", "ASCII support disabled").Emit()
			return "disabled"
		}
		p.ascii = true
		for i := range machine.PrintableCount {
			code, ok := p.m.CharCode(i)
			if !ok || code != uint64(0x20+i) {
				p.ascii = false
				diag.ReportInfo(p.reporter, diag.ProbeNoASCII, "charset",
					fmt.Sprintf("%q is not encoded as %#02x", rune(0x20+i), 0x20+i)).Emit()
				break
			}
		}
		return strconv.FormatBool(p.ascii)
	})
	return p.ascii
}

// floatPrecondition reports whether t may be probed for a layout of the
// given storage width.
func (p *Prober) floatPrecondition(t machine.Type, storageBits ...int) (int, bool) {
	if p.opts.DisableIEEE {
		diag.ReportInfo(p.reporter, diag.ProbeFeatureDisabled, t.String(), "IEEE-754 support disabled").Emit()
		return 0, false
	}
	cw := p.Widths().CharWidth()
	if cw != 8 {
		return 0, false
	}
	bits := p.m.Sizeof(t) * cw
	if len(storageBits) == 0 {
		return bits, true
	}
	for _, b := range storageBits {
		if bits == b {
			return bits, true
		}
	}
	diag.ReportInfo(p.reporter, diag.ProbeLayoutUnknown, t.String(),
		fmt.Sprintf("no candidate layout occupies %d bits", bits)).Emit()
	return bits, false
}

func (p *Prober) floatLayout(sp *trace.Span, t machine.Type, bits int, cands []floatCandidate) FloatLayout {
	if _, ok := p.floatPrecondition(t, bits); !ok {
		return LayoutUnknown
	}
	l := matchFloat(p.m, t, cands, p.candidate(sp))
	if l == LayoutUnknown {
		diag.ReportInfo(p.reporter, diag.ProbeLayoutUnknown, t.String(),
			"neither IEEE-754 byte order reads back as 1.0").Emit()
	}
	return l
}

// Float classifies float as little or big-endian binary32.
func (p *Prober) Float() FloatLayout {
	p.once(KindFloat, func(sp *trace.Span) string {
		p.float = p.floatLayout(sp, machine.Float, 32, floatCandidates)
		return p.float.String()
	})
	return p.float
}

// Double classifies double as little or big-endian binary64.
func (p *Prober) Double() FloatLayout {
	p.once(KindDouble, func(sp *trace.Span) string {
		p.double = p.floatLayout(sp, machine.Double, 64, doubleCandidates)
		return p.double.String()
	})
	return p.double
}

// LongDouble walks the catalogue entries whose size matches long double.
func (p *Prober) LongDouble() LongDoubleLayout {
	p.once(KindLongDouble, func(sp *trace.Span) string {
		bits, ok := p.floatPrecondition(machine.LongDouble, 64, 96, 128)
		if !ok {
			return p.longDouble.String()
		}
		sp.WithExtra("bits", strconv.Itoa(bits))
		p.longDouble = matchLongDouble(p.m, bits, p.candidate(sp))
		if p.longDouble == LongDoubleUnknown {
			diag.ReportInfo(p.reporter, diag.ProbeLayoutUnknown, "long double",
				fmt.Sprintf("no %d-bit catalogue layout reads back as 1.0", bits)).Emit()
		} else {
			diag.ReportInfo(p.reporter, diag.ProbeSingleValue, "long double",
				"layout "+p.longDouble.String()+" matched").
				WithNote("acceptance rests on the single test value 1.0").Emit()
		}
		return p.longDouble.String()
	})
	return p.longDouble
}

// Epsilons reads the machine epsilon of every present floating type.
func (p *Prober) Epsilons() Epsilons {
	p.once(KindEpsilon, func(*trace.Span) string {
		for _, t := range machine.FloatingTypes {
			if p.m.Sizeof(t) == 0 {
				continue
			}
			eps, ok := p.m.Epsilon(t)
			if !ok {
				continue
			}
			s := eps.Text('p', 0)
			switch t {
			case machine.Float:
				p.epsilons.Float = s
			case machine.Double:
				p.epsilons.Double = s
			case machine.LongDouble:
				p.epsilons.LongDouble = s
			}
		}
		return ""
	})
	return p.epsilons
}

// Capabilities composes the pun flags from the other probes.
func (p *Prober) Capabilities() Capabilities {
	p.once(KindCapabilities, func(*trace.Span) string {
		p.caps = Compose(p.Widths(), p.Endianness(), p.Float(), p.Double(), p.LongDouble(), p.opts)
		p.reportMismatch(machine.Float, p.float.Endianness())
		p.reportMismatch(machine.Double, p.double.Endianness())
		p.reportMismatch(machine.LongDouble, p.longDouble.Endianness())
		return fmt.Sprintf("pun32=%t pun64=%t punld=%t",
			p.caps.FloatIntPun32, p.caps.FloatIntPun64, p.caps.FloatIntPunLongDouble)
	})
	return p.caps
}

func (p *Prober) reportMismatch(t machine.Type, order Endianness) {
	if order == EndianUnknown || p.endian == EndianUnknown || order == p.endian {
		return
	}
	diag.ReportWarning(p.reporter, diag.ProbeOrderMismatch, t.String(),
		fmt.Sprintf("%s byte order is %s, integers are %s", t, order, p.endian)).
		WithNote("float/int punning is disabled for this type").Emit()
}
