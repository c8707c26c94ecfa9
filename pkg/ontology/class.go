package ontology

import (
	"maps"
	"slices"
	"strings"

	"github.com/gnames/owlgen/pkg/override"
)

// Class is a node of the class graph.
type Class struct {
	// IRI is the identity of the class.
	IRI string
	// Seq is the creation order inside the registry.
	Seq int
	// Kind tells how the class is composed.
	Kind Kind
	// Label is the rdfs:label of the class.
	Label string
	// Comments are distinct rdfs:comment values in declaration order.
	Comments []string
	// Native is the override descriptor of the class, if any.
	Native *override.Descriptor

	typed      bool
	implements []*Class
	attached   []Attachment
	byAlias    map[string]int
	contexts   map[string]struct{}
}

// Attachment is a property attached to a class under the IRI its domain
// was declared with.
type Attachment struct {
	// Alias is the IRI the domain statement used.
	Alias string
	// Property is the canonical property.
	Property *Property
	// Owner is the class the property is attached to.
	Owner *Class
}

func newClass(iri string, seq int) *Class {
	return &Class{
		IRI:      iri,
		Seq:      seq,
		byAlias:  make(map[string]int),
		contexts: make(map[string]struct{}),
	}
}

// Typed reports if the class was declared as owl:Class or rdfs:Class.
func (c *Class) Typed() bool {
	return c.typed
}

// Implements returns parents of a class, or operands of a composite or
// datatype, in declaration order.
func (c *Class) Implements() []*Class {
	return c.implements
}

// Attached returns properties attached directly to the class in
// attachment order.
func (c *Class) Attached() []Attachment {
	return c.attached
}

// Contexts returns the sorted IRIs of contexts the class is exposed
// through.
func (c *Class) Contexts() []string {
	return slices.Sorted(maps.Keys(c.contexts))
}

// HasContext reports if the class is tagged with the context.
func (c *Class) HasContext(iri string) bool {
	_, ok := c.contexts[iri]
	return ok
}

// IsBlank reports if the class is an anonymous node.
func (c *Class) IsBlank() bool {
	return strings.HasPrefix(c.IRI, "_:")
}

// Emittable reports if the class can get generated artifacts.
func (c *Class) Emittable() bool {
	if c.Kind != KindClass || c.IsBlank() {
		return false
	}
	return c.Native == nil || !c.Native.Suppressed()
}

// HasTable reports if instances of the class are stored in their own
// table.
func (c *Class) HasTable() bool {
	if c.Kind != KindClass || c.IsBlank() {
		return false
	}
	if c.Native == nil {
		return true
	}
	return c.Native.SQLType == "" && !c.Native.Suppressed()
}

// HasFallback reports if the class accepts string values through a
// decoder.
func (c *Class) HasFallback() bool {
	return c.Native != nil && c.Native.HasFallback()
}

func (c *Class) addImplements(o *Class) {
	if slices.Contains(c.implements, o) {
		return
	}
	c.implements = append(c.implements, o)
}

func (c *Class) addComment(s string) {
	if s == "" || slices.Contains(c.Comments, s) {
		return
	}
	c.Comments = append(c.Comments, s)
}

func (c *Class) addContext(iri string) {
	c.contexts[iri] = struct{}{}
}

// attach adds a property under alias. Attaching a second alias of the same
// canonical property keeps both attachments, generators dedupe them by
// property.
func (c *Class) attach(alias string, p *Property) {
	if _, ok := c.byAlias[alias]; ok {
		return
	}
	c.byAlias[alias] = len(c.attached)
	c.attached = append(c.attached, Attachment{Alias: alias, Property: p, Owner: c})
}

// setType applies an rdf:type assertion.
func (c *Class) setType(k Kind) {
	if c.Kind.IsComposite() {
		return
	}
	switch k {
	case KindClass:
		c.typed = true
		if c.Kind == KindUnknown {
			c.Kind = KindClass
		}
	case KindDatatype:
		c.Kind = KindDatatype
	}
}

// setComposite sets a composite kind. The first composite kind wins.
func (c *Class) setComposite(k Kind) {
	if c.Kind.IsComposite() {
		return
	}
	c.Kind = k
}
