package gogen

import (
	"cmp"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/gnames/owlgen/pkg/ident"
	"github.com/gnames/owlgen/pkg/ontology"
)

type keyValue struct {
	Key, Value string
}

type moduleData struct {
	Package  string
	Import   string
	Runtime  string
	IRI      string
	Prefixes []keyValue
	Ext      []keyValue
}

// moduleDirs places the module of a context in the package of its
// namespace.
func (g *Generator) moduleDirs(m *ontology.Module) []string {
	ns := m.IRI
	if m.Context != nil && m.Context.Vocab != "" {
		ns = m.Context.Vocab
	}
	if !strings.HasSuffix(ns, "/") && !strings.HasSuffix(ns, "#") {
		ns += "#"
	}
	return ident.PackageDirs(g.cfg.Root, ns+"ModuleMeta")
}

// moduleFile renders the module of a context. A second context placed in
// the same package is a collision and is skipped.
func (g *Generator) moduleFile(m *ontology.Module) (File, bool, error) {
	pkg := g.pkg(g.moduleDirs(m))
	if err := pkg.namer.Claim("ModuleMeta", m.IRI); err != nil {
		g.diagErr(m.IRI, err)
		return File{}, false, nil
	}
	im := newImports(pkg.path)
	rt := im.add(g.cfg.Runtime, runtimeName(g.cfg.Runtime))
	data := moduleData{
		Package: pkg.name,
		Import:  im.specs()[0],
		Runtime: rt,
		IRI:     m.IRI,
	}
	if m.Context != nil {
		data.Prefixes = sortedPairs(m.Context.Expanded)
		data.Ext = sortedPairs(g.ext(m))
	}
	f, err := g.render("module", path.Join(path.Join(pkg.dirs...), "module.go"), data)
	if err != nil {
		return File{}, false, err
	}
	return f, true, nil
}

// ext returns aliases of classes and properties tagged with the context
// that the prefix table does not already map to the same IRI.
func (g *Generator) ext(m *ontology.Module) map[string]string {
	ctx := m.Context
	res := make(map[string]string)
	add := func(iri string) {
		k := localName(iri)
		if k == "" || ctx.Expanded[k] == iri {
			return
		}
		if _, ok := res[k]; !ok {
			res[k] = iri
		}
	}
	maps.Copy(res, ctx.Ext)
	for _, c := range g.reg.Classes() {
		if c.HasContext(m.IRI) && !c.IsBlank() {
			add(c.IRI)
		}
	}
	for _, p := range g.reg.Properties() {
		if !p.HasContext(m.IRI) {
			continue
		}
		for _, u := range p.URIs {
			add(u)
		}
	}
	return res
}

// localName is the part of an IRI after the last '#' or '/'.
func localName(iri string) string {
	i := strings.LastIndexAny(iri, "#/")
	return iri[i+1:]
}

func sortedPairs(m map[string]string) []keyValue {
	res := make([]keyValue, 0, len(m))
	for k, v := range m {
		res = append(res, keyValue{Key: k, Value: v})
	}
	slices.SortFunc(res, func(a, b keyValue) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return res
}
