package compiler_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/compiler"
	"github.com/gnames/owlgen/pkg/config"
	"github.com/gnames/owlgen/pkg/errcode"
	"github.com/gnames/owlgen/pkg/ldcontext"
	"github.com/gnames/owlgen/pkg/triples"
	"github.com/gnames/owlgen/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ex    = "http://example.org/"
	ctxID = "https://example.org/ctx"
	doc   = "animals.ttl"
)

type mapLoader map[string]string

func (m mapLoader) Load(iri string) (*ldcontext.Document, error) {
	data, ok := m[iri]
	if !ok {
		return nil, fmt.Errorf("no document %s", iri)
	}
	return ldcontext.ParseDocument(iri, []byte(data))
}

const ctxDoc = `{
  "@context": {
    "ex": "http://example.org/",
    "Dog": "ex:Dog",
    "name": "ex:name",
    "lost": "ex:lost",
    "id": "@id"
  }
}`

func animals() *triples.Graph {
	g := triples.NewGraph()
	g.AddIRIs(doc, ex+"Animal", vocab.RdfType, vocab.OwlClass)
	g.AddIRIs(doc, ex+"Dog", vocab.RdfType, vocab.OwlClass)
	g.AddIRIs(doc, ex+"Dog", vocab.RdfsSubClassOf, ex+"Animal")
	for _, v := range []string{"name", "born"} {
		g.AddIRIs(doc, ex+v, vocab.RdfType, vocab.OwlDatatypeProperty)
		g.AddIRIs(doc, ex+v, vocab.RdfsDomain, ex+"Animal")
	}
	g.AddIRIs(doc, ex+"name", vocab.RdfsRange, vocab.XsdString)
	g.AddIRIs(doc, ex+"born", vocab.RdfsRange, vocab.XsdDateTime)
	return g
}

func compile(t *testing.T, g *triples.Graph, ctxs ...string) *compiler.Output {
	t.Helper()
	in := compiler.Input{
		Store:    g,
		Contexts: ctxs,
		Loader:   mapLoader{ctxID: ctxDoc},
	}
	res, err := compiler.Compile(in, config.New().Generate)
	require.Nil(t, err)
	return res
}

func TestCompile(t *testing.T) {
	res := compile(t, animals(), ctxID)
	assert.False(t, res.Diagnostics.HasErrors())

	paths := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		paths = append(paths, filepath.ToSlash(f.Path))
	}
	for _, v := range []string{
		"pojo/example_org/animal_iface.go",
		"pojo/example_org/animal_impl.go",
		"pojo/example_org/dog_iface.go",
		"pojo/example_org/dog_impl.go",
	} {
		assert.Contains(t, paths, v)
	}

	require.NotNil(t, res.Schema)
	assert.Len(t, res.Schema.Tables, 4)
	assert.Contains(t, res.Schema.Tables, "id")
	assert.Len(t, res.Schema.Views, 2)

	dog, ok := res.Registry.LookupClass(ex + "Dog")
	require.True(t, ok)
	assert.Equal(t, []string{ctxID}, dog.Contexts())

	animal, ok := res.Registry.LookupClass(ex + "Animal")
	require.True(t, ok)
	assert.Empty(t, animal.Contexts())
}

func TestTargetFile(t *testing.T) {
	g := animals()
	g.Add(triples.Triple{
		Subject:   triples.NewIRI(ctxID),
		Predicate: triples.NewIRI(vocab.MetaTargetFile),
		Object:    triples.NewLiteral(doc),
		Graph:     "meta.ttl",
	})
	res := compile(t, g, ctxID)

	animal, ok := res.Registry.LookupClass(ex + "Animal")
	require.True(t, ok)
	assert.True(t, animal.HasContext(ctxID))

	name, ok := res.Registry.LookupProperty(ex + "name")
	require.True(t, ok)
	assert.True(t, name.HasContext(ctxID))
}

func TestTargetOntology(t *testing.T) {
	tests := []struct {
		msg      string
		declare  bool
		warnings int
	}{
		{"declared ontology", true, 0},
		{"missing ontology", false, 1},
	}

	for _, v := range tests {
		g := animals()
		if v.declare {
			g.AddIRIs(doc, ex+"onto", vocab.RdfType, vocab.OwlOntology)
		}
		g.AddIRIs("meta.ttl", ctxID, vocab.MetaTargetOntology, ex+"onto")
		res := compile(t, g, ctxID)

		warns := res.Diagnostics.ByCode(errcode.MissingTargetOntologyError)
		assert.Len(t, warns, v.warnings, v.msg)

		animal, ok := res.Registry.LookupClass(ex + "Animal")
		require.True(t, ok, v.msg)
		assert.Equal(t, v.declare, animal.HasContext(ctxID), v.msg)
	}
}

func TestUnresolvedContext(t *testing.T) {
	res := compile(t, animals(), "https://example.org/none", ctxID)
	warns := res.Diagnostics.ByCode(errcode.UnresolvedContextError)
	require.Len(t, warns, 1)
	assert.Equal(t, "https://example.org/none", warns[0].Subject)
	assert.Len(t, res.Registry.Modules(), 1)
	assert.False(t, res.Diagnostics.HasErrors())
}

func TestUnattached(t *testing.T) {
	g := animals()
	g.AddIRIs("meta.ttl", ctxID, vocab.MetaTargetFile, doc)
	res := compile(t, g, ctxID)

	infos := res.Diagnostics.ByCode(errcode.UnattachedTermError)
	bySubject := make(map[string][]string)
	for _, v := range infos {
		bySubject[v.Subject] = v.Details
	}
	assert.True(t, slices.Contains(bySubject[ctxID], ex+"lost"))
	assert.False(t, slices.Contains(bySubject[ctxID], ex+"Dog"))
	assert.Equal(t, []string{ex + "Animal", ex + "born"}, bySubject[ex+"Animal"])
}

func TestUnsupportedDialect(t *testing.T) {
	cfg := config.New().Generate
	cfg.SQLDialect = "oracle"
	_, err := compiler.Compile(compiler.Input{Store: animals()}, cfg)
	require.NotNil(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DBUnsupportedDialectError, gnErr.Code)
}
