// Package ontology holds the class and property graph of an ontology: the
// registry of entities keyed by IRI, the builder that populates it from
// triples, and the resolver of concrete constituent types.
package ontology

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnames/owlgen/pkg/ldcontext"
	"github.com/gnames/owlgen/pkg/override"
	"github.com/gnames/owlgen/pkg/vocab"
)

// MemoSize is the number of constituent sets kept after the registry is
// frozen.
const MemoSize = 4096

// Module is a context registered as the owner of its namespaces.
type Module struct {
	// IRI is the context IRI.
	IRI string
	// Namespaces are IRI prefixes claimed by the module.
	Namespaces []string
	// Context is the resolved context.
	Context *ldcontext.Context
}

type memoKey struct {
	iri   string
	flags Flags
}

// Registry owns all classes, properties and modules of a compilation.
type Registry struct {
	overrides override.Table
	classes   map[string]*Class
	classList []*Class
	props     map[string]*Property
	propList  []*Property
	modules   []*Module
	frozen    bool
	memo      *lru.Cache[memoKey, []*Class]
}

// NewRegistry creates an empty registry that uses tbl for native-type
// overrides.
func NewRegistry(tbl override.Table) *Registry {
	if tbl == nil {
		tbl = override.Table{}
	}
	memo, _ := lru.New[memoKey, []*Class](MemoSize)
	return &Registry{
		overrides: tbl,
		classes:   make(map[string]*Class),
		props:     make(map[string]*Property),
		memo:      memo,
	}
}

// Overrides returns the native-type override table.
func (r *Registry) Overrides() override.Table {
	return r.overrides
}

// Class returns the class with the given IRI, creating it when needed.
// A class listed in the override table starts as a plain class.
func (r *Registry) Class(iri string) *Class {
	if res, ok := r.classes[iri]; ok {
		return res
	}
	res := newClass(iri, len(r.classList))
	if d, ok := r.overrides.Lookup(iri); ok {
		res.Native = &d
		res.Kind = KindClass
	}
	r.classes[iri] = res
	r.classList = append(r.classList, res)
	if r.frozen {
		// new classes may become constituents of memoized sets
		r.memo.Purge()
	}
	return res
}

// LookupClass returns an existing class.
func (r *Registry) LookupClass(iri string) (*Class, bool) {
	res, ok := r.classes[iri]
	return res, ok
}

// Classes returns all classes in creation order.
func (r *Registry) Classes() []*Class {
	return r.classList
}

// Property returns the canonical property for an IRI, creating a record
// when the IRI is new.
func (r *Registry) Property(iri string) *Property {
	if res, ok := r.props[iri]; ok {
		return res.root()
	}
	res := newProperty(iri, len(r.propList))
	r.props[iri] = res
	r.propList = append(r.propList, res)
	return res
}

// LookupProperty returns the canonical property of an existing IRI.
func (r *Registry) LookupProperty(iri string) (*Property, bool) {
	res, ok := r.props[iri]
	if !ok {
		return nil, false
	}
	return res.root(), true
}

// Merge declares alias and target to be the same property. The canonical
// record of target survives and absorbs the aliases and metadata of
// alias.
func (r *Registry) Merge(alias, target string) *Property {
	a := r.Property(alias)
	t := r.Property(target)
	if a == t {
		return t
	}
	t.absorb(a)
	return t
}

// Properties returns canonical properties in creation order.
func (r *Registry) Properties() []*Property {
	var res []*Property
	for _, v := range r.propList {
		if v.parent == nil {
			res = append(res, v)
		}
	}
	return res
}

// RegisterModule makes a context the owner of its namespaces.
func (r *Registry) RegisterModule(ctx *ldcontext.Context) *Module {
	for _, v := range r.modules {
		if v.IRI == ctx.IRI {
			return v
		}
	}
	res := &Module{IRI: ctx.IRI, Namespaces: ctx.Namespaces(), Context: ctx}
	r.modules = append(r.modules, res)
	return res
}

// Modules returns registered modules in registration order.
func (r *Registry) Modules() []*Module {
	return r.modules
}

// ModuleFor returns the module whose namespace is the longest prefix of
// iri. Ties go to the module registered first. Nil means the IRI belongs
// to no module.
func (r *Registry) ModuleFor(iri string) *Module {
	var res *Module
	var best int
	for _, m := range r.modules {
		for _, ns := range m.Namespaces {
			if ns == "" || !strings.HasPrefix(iri, ns) {
				continue
			}
			if len(ns) > best {
				best = len(ns)
				res = m
			}
		}
	}
	return res
}

// Freeze marks the graph complete and enables memoization. The synthetic
// string class used as a fallback constituent and the JSON class used as
// a storage fallback are created here.
func (r *Registry) Freeze() {
	if r.frozen {
		return
	}
	for _, v := range r.overrides {
		if v.HasFallback() {
			r.stringClass()
			break
		}
	}
	if _, ok := r.overrides.Lookup(vocab.TypesJSON); ok {
		r.Class(vocab.TypesJSON)
	}
	r.frozen = true
}

// Frozen reports if the graph is complete.
func (r *Registry) Frozen() bool {
	return r.frozen
}

func (r *Registry) stringClass() *Class {
	res := r.Class(vocab.XsdString)
	if res.Kind == KindUnknown {
		res.Kind = KindClass
	}
	return res
}
