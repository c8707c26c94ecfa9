package ldcontext

import (
	"log/slog"
	"maps"
)

// Resolver loads and resolves contexts, caching every context it has
// resolved, nested ones included.
type Resolver struct {
	loader  Loader
	cache   map[string]*Context
	order   []string
	loading map[string]struct{}
}

// NewResolver creates a Resolver that reads documents from loader.
func NewResolver(loader Loader) *Resolver {
	return &Resolver{
		loader:  loader,
		cache:   make(map[string]*Context),
		loading: make(map[string]struct{}),
	}
}

// Resolve returns the context with the given IRI. Entries are merged in
// declaration order, later entries override earlier ones; nested
// references contribute their own merged prefix map. A nested reference
// back to a context that is still being resolved is skipped.
func (r *Resolver) Resolve(iri string) (*Context, error) {
	if res, ok := r.cache[iri]; ok {
		return res, nil
	}
	r.loading[iri] = struct{}{}
	defer delete(r.loading, iri)

	doc, err := r.loader.Load(iri)
	if err != nil {
		return nil, UnresolvedContextError(iri, err)
	}

	res := &Context{IRI: iri, PrefixMap: make(map[string]string)}
	for _, e := range doc.Entries {
		if e.Ref != "" {
			if _, ok := r.loading[e.Ref]; ok {
				slog.Warn("Skipping recursive context reference",
					"context", iri, "ref", e.Ref)
				continue
			}
			nested, err := r.Resolve(e.Ref)
			if err != nil {
				return nil, err
			}
			maps.Copy(res.PrefixMap, nested.PrefixMap)
			continue
		}
		maps.Copy(res.PrefixMap, e.Terms)
		if e.Vocab != "" {
			res.Vocab = e.Vocab
		}
	}
	res.Expanded = ExpandAll(res.PrefixMap)
	res.Ext = make(map[string]string)

	r.cache[iri] = res
	r.order = append(r.order, iri)
	return res, nil
}

// Contexts returns every resolved context in the order resolution
// finished.
func (r *Resolver) Contexts() []*Context {
	res := make([]*Context, 0, len(r.order))
	for _, v := range r.order {
		res = append(res, r.cache[v])
	}
	return res
}
