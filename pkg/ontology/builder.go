package ontology

import (
	"log/slog"

	"github.com/gnames/owlgen/pkg/diag"
	"github.com/gnames/owlgen/pkg/errcode"
	"github.com/gnames/owlgen/pkg/triples"
	"github.com/gnames/owlgen/pkg/vocab"
)

var (
	classTypes = []string{vocab.OwlClass, vocab.RdfsClass, vocab.RdfsDatatype}
	propTypes  = []string{
		vocab.OwlDatatypeProperty,
		vocab.OwlObjectProperty,
		vocab.OwlFunctionalProperty,
	}
	aliasPreds = []string{vocab.OwlEquivalentProperty, vocab.OwlSameAs}
)

// Builder populates a registry from a triple store.
type Builder struct {
	reg   *Registry
	st    triples.Store
	diags *diag.Diagnostics
}

// NewBuilder creates a Builder. Findings are added to diags.
func NewBuilder(reg *Registry, st triples.Store, diags *diag.Diagnostics) *Builder {
	return &Builder{reg: reg, st: st, diags: diags}
}

// Build runs the class pass and both property passes. Every class exists
// before any property metadata is applied, and every alias is merged
// before property metadata is read.
func (b *Builder) Build() error {
	if b.reg.Frozen() {
		return RegistryFrozenError()
	}
	classes := b.subjects(classTypes)
	for _, s := range classes {
		b.applyClass(s)
	}
	props := b.subjects(propTypes)
	for _, s := range props {
		b.mergeAliases(s)
	}
	for _, s := range props {
		b.applyProperty(s)
	}
	slog.Info("Ontology graph built",
		"classes", len(b.reg.Classes()),
		"properties", len(b.reg.Properties()),
	)
	return nil
}

// subjects returns IRIs of subjects typed with any of types, in order of
// first appearance.
func (b *Builder) subjects(types []string) []string {
	seen := make(map[string]struct{})
	var res []string
	rdfType := triples.NewIRI(vocab.RdfType)
	for _, t := range types {
		for _, s := range triples.Subjects(b.st, rdfType, triples.NewIRI(t)) {
			if !s.IsNode() {
				continue
			}
			if _, ok := seen[s.Value]; ok {
				continue
			}
			seen[s.Value] = struct{}{}
			res = append(res, s.Value)
		}
	}
	return res
}

// node turns a class reference into its registry IRI. Blank nodes keep
// their label so anonymous composites become classes of their own.
func node(t triples.Term) string {
	if t.Kind == triples.Blank {
		return "_:" + t.Value
	}
	return t.Value
}

func term(iri string) triples.Term {
	if len(iri) > 2 && iri[:2] == "_:" {
		return triples.NewBlank(iri[2:])
	}
	return triples.NewIRI(iri)
}

func (b *Builder) applyClass(iri string) {
	c := b.reg.Class(iri)
	for t := range b.st.Match(term(iri), triples.Term{}, triples.Term{}) {
		o := t.Object
		switch t.Predicate.Value {
		case vocab.RdfType:
			switch o.Value {
			case vocab.OwlClass, vocab.RdfsClass:
				c.setType(KindClass)
			case vocab.RdfsDatatype:
				c.setType(KindDatatype)
			}
		case vocab.RdfsLabel:
			c.Label = o.Value
		case vocab.RdfsComment:
			c.addComment(o.Value)
		case vocab.MetaContext:
			c.addContext(o.Value)
		case vocab.RdfsSubClassOf:
			if o.IsNode() {
				c.addImplements(b.reg.Class(node(o)))
			}
		case vocab.OwlUnionOf:
			b.composite(c, KindUnion, o)
		case vocab.OwlIntersectionOf:
			b.composite(c, KindIntersection, o)
		case vocab.OwlComplementOf:
			c.setComposite(KindComplement)
			if o.IsNode() {
				c.addImplements(b.reg.Class(node(o)))
			}
		case vocab.OwlOnDatatype:
			c.setType(KindDatatype)
			if o.IsNode() {
				c.addImplements(b.reg.Class(node(o)))
			}
		}
	}
}

func (b *Builder) composite(c *Class, k Kind, head triples.Term) {
	c.setComposite(k)
	for _, v := range triples.List(b.st, head) {
		if v.IsNode() {
			c.addImplements(b.reg.Class(node(v)))
		}
	}
}

func (b *Builder) mergeAliases(iri string) {
	for _, p := range aliasPreds {
		for _, o := range triples.Objects(b.st, term(iri), triples.NewIRI(p)) {
			if o.Kind != triples.IRI {
				continue
			}
			b.reg.Merge(iri, o.Value)
		}
	}
}

func (b *Builder) applyProperty(iri string) {
	p := b.reg.Property(iri)
	for t := range b.st.Match(term(iri), triples.Term{}, triples.Term{}) {
		o := t.Object
		switch t.Predicate.Value {
		case vocab.RdfType:
			switch o.Value {
			case vocab.OwlDatatypeProperty:
				p.Datatype = true
			case vocab.OwlObjectProperty:
				p.Object = true
			case vocab.OwlFunctionalProperty:
				p.Functional = true
			}
		case vocab.RdfsRange:
			if !o.IsNode() {
				continue
			}
			p.Range = b.reg.Class(node(o))
		case vocab.RdfsComment:
			p.addComment(o.Value)
		case vocab.MetaContext:
			p.contexts[o.Value] = struct{}{}
		case vocab.MetaNullable:
			p.Nullable = o.Value != "false"
		}
	}
	for _, o := range triples.Objects(b.st, term(iri), triples.NewIRI(vocab.RdfsDomain)) {
		b.applyDomain(p, iri, o)
	}
	if p.Range != nil && !resolvable(p.Range) {
		b.diags.AddInfo(errcode.MissingDomainClassError, iri,
			"range <"+p.Range.IRI+"> is not a declared class, values are not constrained")
	}
}

// applyDomain attaches p under alias. The wildcard attaches to every class
// declared as a class; other domains attach to their direct constituents.
func (b *Builder) applyDomain(p *Property, alias string, o triples.Term) {
	if o.Value == vocab.Wildcard {
		for _, c := range b.reg.Classes() {
			if c.typed && c.Kind == KindClass {
				c.attach(alias, p)
			}
		}
		return
	}
	if !o.IsNode() {
		return
	}
	d := b.reg.Class(node(o))
	p.addDomain(d)
	cs := b.reg.Constituents(d, FlagDirect)
	if len(cs) == 0 {
		b.diags.AddInfo(errcode.MissingDomainClassError, alias,
			"domain <"+d.IRI+"> has no concrete class, property is not attached")
		return
	}
	for _, c := range cs {
		c.attach(alias, p)
	}
}

func resolvable(c *Class) bool {
	switch c.Kind {
	case KindClass, KindUnion, KindDatatype:
		return true
	default:
		return false
	}
}
