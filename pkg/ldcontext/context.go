// Package ldcontext resolves JSON-LD style contexts: alias dictionaries
// that map short names onto IRIs, possibly through nested contexts and
// compact "prefix:local" forms.
package ldcontext

import (
	"maps"
	"slices"
	"strings"

	"github.com/gnames/owlgen/pkg/triples"
	"github.com/gnames/owlgen/pkg/vocab"
)

// Context is a resolved context.
type Context struct {
	// IRI is the identity of the context.
	IRI string
	// PrefixMap holds the declared values after nested contexts were
	// merged.
	PrefixMap map[string]string
	// Expanded holds fully expanded values of PrefixMap.
	Expanded map[string]string
	// Ext holds extra alias mappings attached with meta:ldmap.
	Ext map[string]string
	// Vocab is the "@vocab" value, if any.
	Vocab string
}

// Keys returns sorted keys of the prefix map.
func (c *Context) Keys() []string {
	return slices.Sorted(maps.Keys(c.PrefixMap))
}

// Namespaces returns the IRI prefixes that belong to the context.
func (c *Context) Namespaces() []string {
	res := []string{c.IRI}
	if c.Vocab != "" && c.Vocab != c.IRI {
		res = append(res, c.Vocab)
	}
	return res
}

// Values returns distinct expanded values in sorted order.
func (c *Context) Values() []string {
	set := make(map[string]struct{}, len(c.Expanded))
	for _, v := range c.Expanded {
		set[v] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Expand replaces a term with the IRI it denotes. Terms that are neither
// keys nor compact IRIs with a known prefix are returned unchanged.
func (c *Context) Expand(term string) string {
	if v, ok := c.Expanded[term]; ok {
		return v
	}
	return expand(c.Expanded, term)
}

// LoadExt reads extension mappings: for every (ctx, meta:ldmap, node)
// statement, each (node, p, v) statement maps p to v.
func (c *Context) LoadExt(st triples.Store) {
	c.Ext = make(map[string]string)
	ldmap := triples.NewIRI(vocab.MetaLDMap)
	for _, node := range triples.Objects(st, triples.NewIRI(c.IRI), ldmap) {
		if !node.IsNode() {
			continue
		}
		for t := range st.Match(node, triples.Term{}, triples.Term{}) {
			c.Ext[t.Predicate.Value] = t.Object.Value
		}
	}
}

// ExpandAll expands every value of a prefix map. A key whose expansion
// loops keeps its declared value.
func ExpandAll(prefixMap map[string]string) map[string]string {
	res := make(map[string]string, len(prefixMap))
	for k, v := range prefixMap {
		res[k] = expand(prefixMap, v)
	}
	return res
}

// expand rewrites value until no rule applies. The walk is bounded by the
// size of the map; revisiting a value means a cycle and the original value
// is returned.
func expand(m map[string]string, value string) string {
	seen := map[string]struct{}{value: {}}
	cur := value
	for range len(m) + 1 {
		next, ok := rewrite(m, cur)
		if !ok {
			return cur
		}
		if _, ok := seen[next]; ok {
			return value
		}
		seen[next] = struct{}{}
		cur = next
	}
	return value
}

func rewrite(m map[string]string, s string) (string, bool) {
	if v, ok := m[s]; ok && v != s {
		return v, true
	}
	prefix, local, ok := strings.Cut(s, ":")
	if !ok || strings.HasPrefix(local, "//") {
		return "", false
	}
	if v, found := m[prefix]; found {
		return v + local, true
	}
	return "", false
}
