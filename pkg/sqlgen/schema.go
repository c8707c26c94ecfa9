package sqlgen

import "strings"

// Section orders statements of a script: every table exists before
// anything references it.
type Section int

const (
	SectionBootstrap Section = iota
	SectionCreate
	SectionAlter
	SectionTrigger
	SectionView
)

// String returns the name of the section.
func (s Section) String() string {
	switch s {
	case SectionBootstrap:
		return "bootstrap"
	case SectionCreate:
		return "create"
	case SectionAlter:
		return "alter"
	case SectionTrigger:
		return "trigger"
	case SectionView:
		return "view"
	default:
		return "unknown"
	}
}

// Statement is one or more SQL statements about a subject.
type Statement struct {
	Section Section
	// Subject is the class IRI the statement belongs to, empty for
	// bootstrap statements.
	Subject string
	SQL     string
}

// Schema is a generated relational schema.
type Schema struct {
	// Dialect is the name of the dialect the script is written in.
	Dialect string
	// Statements in execution order.
	Statements []Statement
	// Tables are unquoted names of generated tables, bootstrap included.
	Tables []string
	// Views are unquoted names of generated views.
	Views []string
}

// Script joins all statements.
func (s *Schema) Script() string {
	var b strings.Builder
	for i, v := range s.Statements {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(v.SQL)
	}
	b.WriteString("\n")
	return b.String()
}

// BySubject returns statements of a class.
func (s *Schema) BySubject(iri string) []Statement {
	var res []Statement
	for _, v := range s.Statements {
		if v.Subject == iri {
			res = append(res, v)
		}
	}
	return res
}
