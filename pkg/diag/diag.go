// Package diag collects non-fatal findings of a compilation. Errors in the
// collection block only the artifacts they name; warnings and infos never
// block output.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gn"
)

// Severity of a diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding.
	Code gn.ErrorCode
	// Subject is the IRI the finding is about.
	Subject string
	// Message is the plain text description.
	Message string
	// Details lists related terms, one per line.
	Details []string
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	if d.Subject != "" {
		b.WriteString(" <" + d.Subject + ">")
	}
	b.WriteString(": " + d.Message)
	for _, v := range d.Details {
		b.WriteString("\n  " + v)
	}
	return b.String()
}

// Diagnostics holds all findings of a compilation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Add appends a diagnostic to the list of its severity.
func (d *Diagnostics) Add(v Diagnostic) {
	switch v.Severity {
	case Error:
		d.Errors = append(d.Errors, v)
	case Warning:
		d.Warnings = append(d.Warnings, v)
	default:
		d.Infos = append(d.Infos, v)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code gn.ErrorCode, subject, message string) {
	d.Add(Diagnostic{Severity: Error, Code: code, Subject: subject,
		Message: message})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code gn.ErrorCode, subject, message string) {
	d.Add(Diagnostic{Severity: Warning, Code: code, Subject: subject,
		Message: message})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code gn.ErrorCode, subject, message string) {
	d.Add(Diagnostic{Severity: Info, Code: code, Subject: subject,
		Message: message})
}

// AddErr converts an error into a diagnostic. Errors of type *gn.Error keep
// their code and user message.
func (d *Diagnostics) AddErr(sev Severity, subject string, err error) {
	if err == nil {
		return
	}
	res := Diagnostic{Severity: sev, Subject: subject, Message: err.Error()}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		res.Code = gnErr.Code
		res.Message = Plain(gnErr.Msg, gnErr.Vars...)
	}
	d.Add(res)
}

// Merge appends all diagnostics of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the number of all diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// ByCode returns diagnostics of all severities with the given code.
func (d *Diagnostics) ByCode(code gn.ErrorCode) []Diagnostic {
	var res []Diagnostic
	for _, l := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, v := range l {
			if v.Code == code {
				res = append(res, v)
			}
		}
	}
	return res
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}
	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}
	return errors.New(strings.Join(parts, "; "))
}

var tags = strings.NewReplacer(
	"<em>", "", "</em>", "",
	"<title>", "", "</title>", "",
	"<warn>", "", "</warn>", "",
)

// Plain formats a user message and removes its markup.
func Plain(msg string, vars ...any) string {
	if len(vars) > 0 {
		msg = fmt.Sprintf(msg, vars...)
	}
	return tags.Replace(msg)
}
