package diag

// Reporter receives diagnostics as they are found.
type Reporter interface {
	Report(code Code, sev Severity, subject, msg string, notes []string)
}

// ReportBuilder holds a diagnostic until Emit, so callers can attach notes.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func build(r Reporter, sev Severity, code Code, subject, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, subject, msg)}
}

func ReportError(r Reporter, code Code, subject, msg string) *ReportBuilder {
	return build(r, SevError, code, subject, msg)
}

func ReportWarning(r Reporter, code Code, subject, msg string) *ReportBuilder {
	return build(r, SevWarning, code, subject, msg)
}

func ReportInfo(r Reporter, code Code, subject, msg string) *ReportBuilder {
	return build(r, SevInfo, code, subject, msg)
}

func (b *ReportBuilder) WithNote(msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(msg)
	}
	return b
}

// Emit is idempotent.
func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	if b.to != nil {
		b.to.Report(b.d.Code, b.d.Severity, b.d.Subject, b.d.Message, b.d.Notes)
	}
}

// BagReporter stores into Bag; a nil Bag drops everything.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, subject, msg string, notes []string) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Subject: subject, Message: msg, Notes: notes})
	}
}

type discard struct{}

func (discard) Report(Code, Severity, string, string, []string) {}

var Nop Reporter = discard{}
