// Package ident derives stable identifiers from IRIs: Go package paths,
// type and member names, and length-limited SQL identifiers.
package ident

import (
	"go/token"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Anonymous is the package segment of IRIs without a path.
const Anonymous = "anonymous"

var separators = regexp.MustCompile(`[/\\#?=]+`)

// SplitIRI splits an IRI into escaped path segments. The scheme is dropped,
// an IRI without separators is placed under Anonymous.
func SplitIRI(iri string) []string {
	parts := separators.Split(iri, -1)
	if len(parts) > 0 && strings.HasSuffix(parts[0], ":") {
		parts = parts[1:]
	}
	var res []string
	for _, v := range parts {
		v = Escape(v)
		if v == "" || v == "." || v == ".." {
			continue
		}
		res = append(res, v)
	}
	if len(res) == 1 {
		res = append([]string{Anonymous}, res...)
	}
	if len(res) == 0 {
		res = []string{Anonymous, Anonymous}
	}
	return res
}

// Escape replaces runes that cannot appear in a Go identifier with '_' and
// trims leading and trailing underscores.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	return strings.Trim(b.String(), "_")
}

// Leaf returns the escaped last segment of an IRI.
func Leaf(iri string) string {
	parts := SplitIRI(iri)
	return parts[len(parts)-1]
}

// PackageDirs returns the directories of the Go package that holds the
// class with the given IRI, starting with root.
func PackageDirs(root, iri string) []string {
	parts := SplitIRI(iri)
	parts = parts[:len(parts)-1]
	res := make([]string, 0, len(parts)+1)
	if root != "" {
		res = append(res, strings.Split(root, "/")...)
	}
	for _, v := range parts {
		res = append(res, PackageName(v))
	}
	return res
}

// PackageName converts a segment into a valid lower case package name.
func PackageName(s string) string {
	s = strings.ToLower(Escape(s))
	if s == "" {
		return Anonymous
	}
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsDigit(r) {
		s = "x" + s
	}
	if token.IsKeyword(s) {
		s += "_"
	}
	return s
}

// Exported converts a segment into an exported Go identifier.
func Exported(s string) string {
	s = Escape(s)
	if s == "" {
		return "X"
	}
	r, size := utf8.DecodeRuneInString(s)
	switch {
	case unicode.IsUpper(r):
		return s
	case unicode.IsLower(r):
		return string(unicode.ToUpper(r)) + s[size:]
	default:
		// digits and caseless letters cannot start an exported name
		return "X" + s
	}
}

// Unexported converts a segment into an unexported Go identifier.
func Unexported(s string) string {
	s = Exported(s)
	r, size := utf8.DecodeRuneInString(s)
	res := string(unicode.ToLower(r)) + s[size:]
	if token.IsKeyword(res) {
		res += "_"
	}
	return res
}

// TypeName is the exported Go name of a class.
func TypeName(iri string) string {
	return Exported(Leaf(iri))
}

// FileBase is the lower case file name stem of a class.
func FileBase(iri string) string {
	return strings.ToLower(TypeName(iri))
}
