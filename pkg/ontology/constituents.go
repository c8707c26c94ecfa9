package ontology

import (
	"slices"
	"strings"
)

// Flags select a flavor of constituent resolution.
type Flags uint8

const (
	// FlagDirect resolves the declared type only: no string fallback
	// constituents.
	FlagDirect Flags = 1 << iota
	// FlagDerived adds every class that transitively implements a found
	// constituent.
	FlagDerived
	// FlagVaradic resolves the types a setter accepts.
	FlagVaradic
)

// Has reports if all bits of o are set.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

// Constituents returns the concrete classes a class denotes, sorted by
// IRI. Results are memoized once the registry is frozen.
func (r *Registry) Constituents(c *Class, flags Flags) []*Class {
	if c == nil {
		return nil
	}
	key := memoKey{iri: c.IRI, flags: flags}
	if r.frozen {
		if res, ok := r.memo.Get(key); ok {
			return res
		}
	}
	set := make(map[*Class]struct{})
	r.resolve(c, flags, make(map[*Class]struct{}), set)
	res := make([]*Class, 0, len(set))
	for k := range set {
		res = append(res, k)
	}
	slices.SortFunc(res, func(a, b *Class) int {
		return strings.Compare(a.IRI, b.IRI)
	})
	if r.frozen {
		r.memo.Add(key, res)
	}
	return res
}

// resolve adds constituents of c to res. The visited set holds the classes
// on the current path and is restored before returning.
func (r *Registry) resolve(
	c *Class,
	flags Flags,
	visited map[*Class]struct{},
	res map[*Class]struct{},
) {
	if _, ok := visited[c]; ok {
		return
	}
	visited[c] = struct{}{}
	defer delete(visited, c)

	switch c.Kind {
	case KindClass:
		res[c] = struct{}{}
		if c.HasFallback() && !flags.Has(FlagDirect) {
			res[r.stringClass()] = struct{}{}
		}
	case KindUnion, KindDatatype:
		for _, v := range c.implements {
			r.resolve(v, flags&^FlagDerived, visited, res)
		}
	case KindIntersection, KindComplement, KindUnknown:
		// no constraint
	}

	if !flags.Has(FlagDerived) {
		return
	}
	for _, v := range r.classList {
		if _, ok := res[v]; ok {
			continue
		}
		if !implementsAny(v, res) {
			continue
		}
		r.resolve(v, flags, visited, res)
	}
}

func implementsAny(c *Class, set map[*Class]struct{}) bool {
	for _, v := range c.implements {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// Ancestors returns every class reachable through the parents of c,
// nearest first, without c itself.
func (r *Registry) Ancestors(c *Class) []*Class {
	visited := map[*Class]struct{}{c: {}}
	var res []*Class
	queue := []*Class{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Kind != KindClass {
			continue
		}
		for _, v := range cur.implements {
			if _, ok := visited[v]; ok {
				continue
			}
			visited[v] = struct{}{}
			res = append(res, v)
			queue = append(queue, v)
		}
	}
	return res
}

// AllProperties returns properties attached to c and to its ancestors,
// one attachment per canonical property; attachments of c come first.
func (r *Registry) AllProperties(c *Class) []Attachment {
	seen := make(map[*Property]struct{})
	var res []Attachment
	for _, cls := range append([]*Class{c}, r.Ancestors(c)...) {
		for _, a := range cls.attached {
			p := a.Property.root()
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			a.Property = p
			res = append(res, a)
		}
	}
	return res
}
