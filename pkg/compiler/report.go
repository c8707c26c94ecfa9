package compiler

import (
	"maps"
	"slices"
	"strings"

	"github.com/gnames/owlgen/pkg/diag"
	"github.com/gnames/owlgen/pkg/errcode"
	"github.com/gnames/owlgen/pkg/ontology"
)

// reportUnattached adds info diagnostics for context values the ontology
// does not define, and for IRIs of context-tagged classes that no context
// expands to.
func reportUnattached(reg *ontology.Registry, diags *diag.Diagnostics) {
	inOntology := make(map[string]struct{})
	for _, c := range reg.Classes() {
		inOntology[c.IRI] = struct{}{}
	}
	for _, p := range reg.Properties() {
		for _, v := range p.URIs {
			inOntology[v] = struct{}{}
		}
	}

	inContext := make(map[string]struct{})
	for _, m := range reg.Modules() {
		var missing []string
		for _, v := range m.Context.Values() {
			if !strings.Contains(v, ":") {
				continue
			}
			inContext[v] = struct{}{}
			if _, ok := inOntology[v]; !ok {
				missing = append(missing, v)
			}
		}
		if len(missing) > 0 {
			diags.Add(diag.Diagnostic{
				Severity: diag.Info,
				Code:     errcode.UnattachedTermError,
				Subject:  m.IRI,
				Message:  "Context entries not in any ontology",
				Details:  missing,
			})
		}
	}

	for _, c := range reg.Classes() {
		if len(c.Contexts()) == 0 {
			continue
		}
		missing := make(map[string]struct{})
		check := func(iri string) {
			if !strings.Contains(iri, ":") {
				return
			}
			if _, ok := inContext[iri]; !ok {
				missing[iri] = struct{}{}
			}
		}
		check(c.IRI)
		for _, a := range c.Attached() {
			check(a.Alias)
		}
		if len(missing) > 0 {
			diags.Add(diag.Diagnostic{
				Severity: diag.Info,
				Code:     errcode.UnattachedTermError,
				Subject:  c.IRI,
				Message:  "IRIs not in any context",
				Details:  slices.Sorted(maps.Keys(missing)),
			})
		}
	}
}
