package gogen_test

import (
	"go/parser"
	"go/token"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/owlgen/pkg/diag"
	"github.com/gnames/owlgen/pkg/errcode"
	"github.com/gnames/owlgen/pkg/gogen"
	"github.com/gnames/owlgen/pkg/ldcontext"
	"github.com/gnames/owlgen/pkg/ontology"
	"github.com/gnames/owlgen/pkg/override"
	"github.com/gnames/owlgen/pkg/triples"
	"github.com/gnames/owlgen/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ex = "http://example.org/"

var cfg = gogen.Config{Root: "pojo", Module: "example.com/model"}

func class(g *triples.Graph, iri string) {
	g.AddIRIs("", iri, vocab.RdfType, vocab.OwlClass)
}

func prop(g *triples.Graph, iri, typ, domain, rng string) {
	g.AddIRIs("", iri, vocab.RdfType, typ)
	g.AddIRIs("", iri, vocab.RdfsDomain, domain)
	if rng != "" {
		g.AddIRIs("", iri, vocab.RdfsRange, rng)
	}
}

func animals() *triples.Graph {
	g := triples.NewGraph()
	class(g, ex+"Animal")
	class(g, ex+"Dog")
	g.AddIRIs("", ex+"Dog", vocab.RdfsSubClassOf, ex+"Animal")
	prop(g, ex+"name", vocab.OwlDatatypeProperty, ex+"Animal", vocab.XsdString)
	g.Add(triples.Triple{
		Subject:   triples.NewIRI(ex + "name"),
		Predicate: triples.NewIRI(vocab.MetaNullable),
		Object:    triples.NewLiteral("false"),
	})
	prop(g, ex+"born", vocab.OwlDatatypeProperty, ex+"Animal", vocab.XsdDateTime)
	prop(g, ex+"age", vocab.OwlDatatypeProperty, ex+"Dog", vocab.XsdUnsignedByte)
	prop(g, ex+"friend", vocab.OwlObjectProperty, ex+"Dog", ex+"Animal")
	prop(g, ex+"extra", vocab.OwlObjectProperty, ex+"Dog", "")
	return g
}

func build(t *testing.T, g *triples.Graph, ctxs ...*ldcontext.Context) (
	*ontology.Registry, *diag.Diagnostics,
) {
	reg := ontology.NewRegistry(override.Default())
	for _, v := range ctxs {
		reg.RegisterModule(v)
	}
	var diags diag.Diagnostics
	require.Nil(t, ontology.NewBuilder(reg, g, &diags).Build())
	reg.Freeze()
	return reg, &diags
}

func generate(t *testing.T, g *triples.Graph, ctxs ...*ldcontext.Context) (
	map[string]string, *diag.Diagnostics,
) {
	reg, diags := build(t, g, ctxs...)
	files, err := gogen.New(reg, cfg, diags).Generate()
	require.Nil(t, err)
	res := make(map[string]string, len(files))
	for _, f := range files {
		_, err := parser.ParseFile(token.NewFileSet(), f.Path, f.Content, 0)
		require.Nil(t, err, f.Path)
		res[filepath.ToSlash(f.Path)] = string(f.Content)
	}
	return res, diags
}

func TestNotFrozen(t *testing.T) {
	reg := ontology.NewRegistry(nil)
	_, err := gogen.New(reg, cfg, &diag.Diagnostics{}).Generate()
	assert.NotNil(t, err)
}

func TestAnimalDog(t *testing.T) {
	assert := assert.New(t)
	files, diags := generate(t, animals())
	assert.False(diags.HasErrors())

	iface, ok := files["pojo/example_org/animal_iface.go"]
	require.True(t, ok)
	assert.Contains(iface, "package example_org")
	assert.Contains(iface, `const AnimalIRI = "http://example.org/Animal"`)
	assert.Contains(iface, "GetName() string")
	assert.Contains(iface, "SetName(value string) error")
	assert.Contains(iface, "GetBorn() *time.Time")
	assert.Contains(iface, "SetBorn(value any) error")

	impl := files["pojo/example_org/animal_impl.go"]
	assert.Contains(impl, "type AnimalImpl struct")
	assert.Contains(impl, "pojo.As[time.Time](xsd.ParseDateTime)")
	assert.Contains(impl, `"github.com/gnames/owlgen/pkg/pojo/xsd"`)
	assert.Contains(impl, "pojo.Register(AnimalIRI")

	iface = files["pojo/example_org/dog_iface.go"]
	assert.Contains(iface, "\tAnimal\n")
	assert.Contains(iface, "GetAge() *int64")
	assert.Contains(iface, "SetAge(value *int64) error")
	assert.Contains(iface, "GetFriend() []Animal")
	assert.Contains(iface, "AddFriend(values ...Animal) error")
	assert.Contains(iface, "DelExtra(values ...any) error")
	assert.NotContains(iface, "GetName")

	impl = files["pojo/example_org/dog_impl.go"]
	assert.Contains(impl, "pojo.As[int64]().Check(pojo.AnyOf(xsd.UnsignedByte))")
	assert.Contains(impl, "func (o *DogImpl) GetName() string")
	assert.Contains(impl, "friend: []Animal{},")

	dt := "pojo/www_w3_org/x2001/xmlschema/datetime_iface.go"
	assert.Contains(files, dt)
	assert.NotContains(files, strings.Replace(dt, "_iface", "_impl", 1))
	assert.NotContains(files, "pojo/www_w3_org/x2001/xmlschema/string_iface.go")
}

func TestUnion(t *testing.T) {
	g := triples.NewGraph()
	class(g, ex+"Note")
	class(g, ex+"Link")
	class(g, ex+"Ref")
	g.Add(triples.Triple{Subject: triples.NewIRI(ex + "Ref"),
		Predicate: triples.NewIRI(vocab.OwlUnionOf), Object: triples.NewBlank("l0")})
	g.Add(triples.Triple{Subject: triples.NewBlank("l0"),
		Predicate: triples.NewIRI(vocab.RdfFirst), Object: triples.NewIRI(ex + "Link")})
	g.Add(triples.Triple{Subject: triples.NewBlank("l0"),
		Predicate: triples.NewIRI(vocab.RdfRest), Object: triples.NewBlank("l1")})
	g.Add(triples.Triple{Subject: triples.NewBlank("l1"),
		Predicate: triples.NewIRI(vocab.RdfFirst), Object: triples.NewIRI(vocab.XsdDateTime)})
	g.Add(triples.Triple{Subject: triples.NewBlank("l1"),
		Predicate: triples.NewIRI(vocab.RdfRest), Object: triples.NewIRI(vocab.RdfNil)})
	prop(g, ex+"target", vocab.OwlObjectProperty, ex+"Note", ex+"Ref")

	files, diags := generate(t, g)
	assert.False(t, diags.HasErrors())
	impl := files["pojo/example_org/note_impl.go"]
	assert.Contains(t, impl, "Target pojo.Conv[any]")
	assert.Contains(t, impl, "pojo.Either(pojo.Widen(pojo.As[Link]()), "+
		"pojo.Widen(pojo.As[time.Time](xsd.ParseDateTime)))")
	assert.NotContains(t, files, "pojo/example_org/ref_iface.go")
}

func TestCollisions(t *testing.T) {
	g := triples.NewGraph()
	class(g, "http://example.org/a#Foo")
	class(g, "http://example.org/a/Foo")
	class(g, ex+"Bar")
	prop(g, ex+"name", vocab.OwlDatatypeProperty, ex+"Bar", vocab.XsdString)
	prop(g, "http://other.org/name", vocab.OwlDatatypeProperty, ex+"Bar", vocab.XsdString)
	class(g, ex+"Baz")

	files, diags := generate(t, g)
	coll := diags.ByCode(errcode.AmbiguousIdentifierCollisionError)
	subjects := make(map[string]bool)
	for _, v := range coll {
		subjects[v.Subject] = true
	}
	assert.True(t, subjects["http://example.org/a#Foo"])
	assert.True(t, subjects["http://example.org/a/Foo"])
	assert.True(t, subjects[ex+"Bar"])
	assert.NotContains(t, files, "pojo/example_org/a/foo_iface.go")
	assert.NotContains(t, files, "pojo/example_org/bar_iface.go")
	assert.Contains(t, files, "pojo/example_org/baz_iface.go")
}

func TestImportCycle(t *testing.T) {
	a, b := "http://a.org/A", "http://b.org/B"
	t.Run("references", func(t *testing.T) {
		g := triples.NewGraph()
		class(g, a)
		class(g, b)
		class(g, "http://b.org/C")
		prop(g, "http://a.org/b", vocab.OwlObjectProperty, a, b)
		prop(g, "http://b.org/a", vocab.OwlObjectProperty, b, a)
		prop(g, "http://b.org/c", vocab.OwlObjectProperty, b, "http://b.org/C")

		files, diags := generate(t, g)
		assert.Empty(t, diags.ByCode(errcode.ImportCycleError))
		assertAcyclic(t, files)
		assert.NotContains(t, files["pojo/a_org/a_impl.go"], `"example.com/model/pojo/b_org"`)
		assert.NotContains(t, files["pojo/b_org/b_impl.go"], `"example.com/model/pojo/a_org"`)
		assert.Contains(t, files["pojo/a_org/a_iface.go"], "GetB() []any")
		assert.Contains(t, files["pojo/b_org/b_iface.go"], "GetC() []C")
	})

	t.Run("parents", func(t *testing.T) {
		g := triples.NewGraph()
		for _, v := range []string{a, b, "http://a.org/D", "http://b.org/E"} {
			class(g, v)
		}
		g.AddIRIs("", a, vocab.RdfsSubClassOf, b)
		g.AddIRIs("", "http://b.org/E", vocab.RdfsSubClassOf, "http://a.org/D")

		files, diags := generate(t, g)
		assertAcyclic(t, files)
		errs := diags.ByCode(errcode.ImportCycleError)
		require.Len(t, errs, 2)
		subjects := make(map[string]bool)
		for _, v := range errs {
			assert.Equal(t, diag.Error, v.Severity)
			subjects[v.Subject] = true
		}
		assert.True(t, subjects[a])
		assert.True(t, subjects["http://b.org/E"])
		assert.NotContains(t, files, "pojo/a_org/a_iface.go")
		assert.NotContains(t, files, "pojo/b_org/e_iface.go")
		assert.Contains(t, files, "pojo/a_org/d_iface.go")
		assert.Contains(t, files, "pojo/b_org/b_iface.go")
	})
}

// assertAcyclic fails if generated packages import each other.
func assertAcyclic(t *testing.T, files map[string]string) {
	t.Helper()
	edges := make(map[string][]string)
	for p, src := range files {
		f, err := parser.ParseFile(token.NewFileSet(), p, src, parser.ImportsOnly)
		require.Nil(t, err, p)
		from := cfg.Module + "/" + path.Dir(p)
		for _, spec := range f.Imports {
			to := strings.Trim(spec.Path.Value, `"`)
			if strings.HasPrefix(to, cfg.Module+"/") && to != from {
				edges[from] = append(edges[from], to)
			}
		}
	}
	state := make(map[string]int)
	var visit func(v string)
	visit = func(v string) {
		state[v] = 1
		for _, w := range edges[v] {
			switch state[w] {
			case 0:
				visit(w)
			case 1:
				t.Errorf("import cycle through %s and %s", v, w)
			}
		}
		state[v] = 2
	}
	for v := range edges {
		if state[v] == 0 {
			visit(v)
		}
	}
}

func TestModule(t *testing.T) {
	ctx := &ldcontext.Context{
		IRI: "https://example.org/ns",
		Expanded: map[string]string{
			"ex":  "https://example.org/ns#",
			"Bar": "https://example.org/ns#Bar",
		},
	}
	g := triples.NewGraph()
	class(g, "https://example.org/ns#Bar")
	class(g, "https://example.org/ns#Baz")
	for _, v := range []string{"Bar", "Baz"} {
		g.Add(triples.Triple{Subject: triples.NewIRI("https://example.org/ns#" + v),
			Predicate: triples.NewIRI(vocab.MetaContext),
			Object:    triples.NewIRI(ctx.IRI)})
	}

	files, _ := generate(t, g, ctx)
	mod, ok := files["pojo/example_org/ns/module.go"]
	require.True(t, ok)
	assert.Contains(t, mod, "var ModuleMeta = pojo.Module{")
	assert.Contains(t, mod, `"Baz": "https://example.org/ns#Baz"`)
	assert.Contains(t, mod, `"ex":  "https://example.org/ns#"`)
	ext := mod[strings.Index(mod, "Ext:"):]
	assert.NotContains(t, ext, `"Bar"`)

	iface := files["pojo/example_org/ns/bar_iface.go"]
	assert.Contains(t, iface, `"https://example.org/ns",`)
}
