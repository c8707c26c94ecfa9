// Package iotriples reads ontology documents in Turtle, N-Triples and
// RDF/XML into a triples.Graph. Every statement remembers the document it
// came from, blank node labels are scoped to their document, and known
// legacy namespaces are rewritten.
package iotriples

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/owlgen/pkg/triples"
	"github.com/gnames/owlgen/pkg/vocab"
	"github.com/knakk/rdf"
)

// Extensions lists file extensions recognized as ontology documents.
var Extensions = []string{".ttl", ".nt", ".rdf", ".owl", ".xml"}

// FormatFor picks a decoder for a file. Files with .owl extension are
// sniffed: XML content is RDF/XML, anything else is Turtle.
func FormatFor(path string, head []byte) (rdf.Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl":
		return rdf.Turtle, true
	case ".nt":
		return rdf.NTriples, true
	case ".rdf", ".xml":
		return rdf.RDFXML, true
	case ".owl":
		if bytes.HasPrefix(bytes.TrimSpace(head), []byte("<")) {
			return rdf.RDFXML, true
		}
		return rdf.Turtle, true
	}
	return 0, false
}

// LoadFiles reads every file into a new graph.
func LoadFiles(paths []string) (*triples.Graph, error) {
	res := triples.NewGraph()
	for _, v := range paths {
		if _, err := LoadFile(res, v); err != nil {
			return nil, err
		}
	}
	slog.Info("Ontology documents loaded",
		"documents", humanize.Comma(int64(len(paths))),
		"statements", humanize.Comma(int64(res.Len())),
	)
	return res, nil
}

// LoadFile reads one document into g using the path as the document
// name. It returns the number of new statements.
func LoadFile(g *triples.Graph, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, ReadFileError(path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	head, _ := r.Peek(512)
	format, ok := FormatFor(path, head)
	if !ok {
		return 0, FormatError(path)
	}
	return Decode(g, path, r, format)
}

// Decode reads statements from r into g under the document name.
func Decode(g *triples.Graph, name string, r io.Reader, format rdf.Format) (int, error) {
	dec := rdf.NewTripleDecoder(r, format)
	var res int
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, DecodeError(name, err)
		}
		st := triples.Triple{
			Subject:   convert(name, t.Subj),
			Predicate: convert(name, t.Pred),
			Object:    convert(name, t.Obj),
			Graph:     name,
		}
		if g.Add(st) {
			res++
		}
	}
	slog.Debug("Document decoded", "document", name, "statements", res)
	return res, nil
}

// convert turns a decoded term into a store term. Blank labels get the
// document name as prefix so equal labels of different documents stay
// distinct.
func convert(doc string, t rdf.Term) triples.Term {
	switch t.Type() {
	case rdf.TermIRI:
		return triples.NewIRI(vocab.Fixup(t.String()))
	case rdf.TermBlank:
		return triples.NewBlank(doc + "|" + strings.TrimPrefix(t.String(), "_:"))
	default:
		res := triples.NewLiteral(t.String())
		if l, ok := t.(rdf.Literal); ok {
			res.Lang = l.Lang()
			res.Datatype = l.DataType.String()
		}
		return res
	}
}
