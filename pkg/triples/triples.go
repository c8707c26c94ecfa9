// Package triples provides the statement model the compiler reads from and
// an in-memory store that answers subject/predicate/object pattern queries.
package triples

import (
	"iter"

	"github.com/gnames/owlgen/pkg/vocab"
)

// TermKind distinguishes IRIs, blank nodes and literals.
type TermKind int

const (
	// Any is the zero kind. A term of this kind matches everything.
	Any TermKind = iota
	IRI
	Blank
	Literal
)

// Term is a node of a statement.
type Term struct {
	Kind  TermKind
	Value string
	// Lang is the language tag of a literal.
	Lang string
	// Datatype is the datatype IRI of a literal.
	Datatype string
}

// NewIRI creates an IRI term.
func NewIRI(iri string) Term {
	return Term{Kind: IRI, Value: iri}
}

// NewBlank creates a blank node term.
func NewBlank(id string) Term {
	return Term{Kind: Blank, Value: id}
}

// NewLiteral creates a plain literal term.
func NewLiteral(s string) Term {
	return Term{Kind: Literal, Value: s}
}

// IsZero reports if the term is a wildcard.
func (t Term) IsZero() bool {
	return t.Kind == Any
}

// IsNode reports if the term is an IRI or a blank node.
func (t Term) IsNode() bool {
	return t.Kind == IRI || t.Kind == Blank
}

func (t Term) String() string {
	switch t.Kind {
	case IRI:
		return "<" + t.Value + ">"
	case Blank:
		return "_:" + t.Value
	case Literal:
		return `"` + t.Value + `"`
	default:
		return "*"
	}
}

// Triple is a statement together with the name of the document (graph) it
// was read from.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     string
}

// Store answers pattern queries. Zero terms in a pattern are wildcards.
type Store interface {
	// Match iterates over statements matching the pattern in insertion
	// order.
	Match(s, p, o Term) iter.Seq[Triple]
	// Graphs returns the names of source documents in insertion order.
	Graphs() []string
}

// Objects returns objects of statements with the given subject and
// predicate.
func Objects(st Store, s, p Term) []Term {
	var res []Term
	for t := range st.Match(s, p, Term{}) {
		res = append(res, t.Object)
	}
	return res
}

// Subjects returns distinct subjects of statements matching predicate and
// object in order of first appearance.
func Subjects(st Store, p, o Term) []Term {
	seen := make(map[Term]struct{})
	var res []Term
	for t := range st.Match(Term{}, p, o) {
		if _, ok := seen[t.Subject]; ok {
			continue
		}
		seen[t.Subject] = struct{}{}
		res = append(res, t.Subject)
	}
	return res
}

// List walks an RDF collection starting at head and returns its members.
// A collection that loops back on itself ends at the first repeated node.
func List(st Store, head Term) []Term {
	first := NewIRI(vocab.RdfFirst)
	rest := NewIRI(vocab.RdfRest)
	visited := make(map[Term]struct{})
	var res []Term
	node := head
	for node.IsNode() && node.Value != vocab.RdfNil {
		if _, ok := visited[node]; ok {
			break
		}
		visited[node] = struct{}{}
		res = append(res, Objects(st, node, first)...)
		next := Objects(st, node, rest)
		if len(next) == 0 {
			break
		}
		node = next[0]
	}
	return res
}
