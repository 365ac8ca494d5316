package diag

type Diagnostic struct {
	Severity Severity
	Code     Code
	Subject  string
	Message  string
	Notes    []string
}

func New(sev Severity, code Code, subject, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Subject:  subject,
		Message:  msg,
	}
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, msg)
	return d
}
