package ontology

import (
	"maps"
	"slices"
)

// Property is a canonical property record. Aliases merged into it are
// listed in URIs.
type Property struct {
	// IRI is the canonical identity.
	IRI string
	// URIs are all IRIs of the property, canonical first.
	URIs []string
	// Range is the type of values.
	Range *Class
	// Domains are classes declared as domain.
	Domains []*Class
	// Nullable is false for mandatory properties.
	Nullable bool
	// Datatype, Object and Functional mirror the declared property types.
	Datatype   bool
	Object     bool
	Functional bool
	// Comments are distinct rdfs:comment values in declaration order.
	Comments []string

	seq      int
	parent   *Property
	contexts map[string]struct{}
}

func newProperty(iri string, seq int) *Property {
	return &Property{
		IRI:      iri,
		URIs:     []string{iri},
		Nullable: true,
		seq:      seq,
		contexts: make(map[string]struct{}),
	}
}

// IsArray reports if the property holds many values. Only datatype
// properties are scalar.
func (p *Property) IsArray() bool {
	return !p.Datatype
}

// Contexts returns the sorted IRIs of contexts the property is exposed
// through.
func (p *Property) Contexts() []string {
	return slices.Sorted(maps.Keys(p.contexts))
}

// HasContext reports if the property is tagged with the context.
func (p *Property) HasContext(iri string) bool {
	_, ok := p.contexts[iri]
	return ok
}

// root follows merge pointers to the canonical record and compresses the
// path on the way back.
func (p *Property) root() *Property {
	res := p
	for res.parent != nil {
		res = res.parent
	}
	for p != res {
		next := p.parent
		p.parent = res
		p = next
	}
	return res
}

// absorb moves aliases and metadata of o into p.
func (p *Property) absorb(o *Property) {
	for _, v := range o.URIs {
		if !slices.Contains(p.URIs, v) {
			p.URIs = append(p.URIs, v)
		}
	}
	if p.Range == nil {
		p.Range = o.Range
	}
	for _, v := range o.Domains {
		p.addDomain(v)
	}
	p.Nullable = p.Nullable && o.Nullable
	p.Datatype = p.Datatype || o.Datatype
	p.Object = p.Object || o.Object
	p.Functional = p.Functional || o.Functional
	for _, v := range o.Comments {
		p.addComment(v)
	}
	maps.Copy(p.contexts, o.contexts)
	o.parent = p
}

func (p *Property) addDomain(c *Class) {
	if !slices.Contains(p.Domains, c) {
		p.Domains = append(p.Domains, c)
	}
}

func (p *Property) addComment(s string) {
	if s == "" || slices.Contains(p.Comments, s) {
		return
	}
	p.Comments = append(p.Comments, s)
}
