package compiler

import (
	"github.com/gnames/owlgen/pkg/diag"
	"github.com/gnames/owlgen/pkg/ldcontext"
	"github.com/gnames/owlgen/pkg/triples"
	"github.com/gnames/owlgen/pkg/vocab"
)

// tagContext adds meta:context statements that expose terms through ctx.
// Absolute values of the expansion table are tagged directly. Documents
// named by meta:target-file, or declaring an ontology named by
// meta:target-ontology, have every subject tagged.
func tagContext(st Store, ctx *ldcontext.Context, diags *diag.Diagnostics) {
	ctxTerm := triples.NewIRI(ctx.IRI)
	meta := triples.NewIRI(vocab.MetaContext)

	var tags []triples.Triple
	for _, v := range ctx.Values() {
		if !vocab.IsAbsolute(v) {
			continue
		}
		tags = append(tags, triples.Triple{
			Subject:   triples.NewIRI(v),
			Predicate: meta,
			Object:    ctxTerm,
			Graph:     ctx.IRI,
		})
	}

	for _, doc := range targetDocuments(st, ctx, diags) {
		seen := make(map[triples.Term]struct{})
		for t := range st.MatchIn(doc, triples.Term{}, triples.Term{}, triples.Term{}) {
			if _, ok := seen[t.Subject]; ok {
				continue
			}
			seen[t.Subject] = struct{}{}
			tags = append(tags, triples.Triple{
				Subject:   t.Subject,
				Predicate: meta,
				Object:    ctxTerm,
				Graph:     doc,
			})
		}
	}

	for _, t := range tags {
		st.Add(t)
	}
}

// targetDocuments returns names of documents whose subjects belong to ctx.
func targetDocuments(st Store, ctx *ldcontext.Context, diags *diag.Diagnostics) []string {
	ctxTerm := triples.NewIRI(ctx.IRI)
	rdfType := triples.NewIRI(vocab.RdfType)
	ontology := triples.NewIRI(vocab.OwlOntology)

	seen := make(map[string]struct{})
	var res []string
	add := func(doc string) {
		if _, ok := seen[doc]; ok || doc == "" {
			return
		}
		seen[doc] = struct{}{}
		res = append(res, doc)
	}

	target := triples.NewIRI(vocab.MetaTargetOntology)
	for _, o := range triples.Objects(st, ctxTerm, target) {
		var found bool
		for t := range st.Match(o, rdfType, ontology) {
			found = true
			add(t.Graph)
		}
		if !found {
			diags.AddErr(diag.Warning, ctx.IRI, MissingTargetOntologyError(ctx.IRI, o.Value))
		}
	}

	for _, o := range triples.Objects(st, ctxTerm, triples.NewIRI(vocab.MetaTargetFile)) {
		add(o.Value)
	}
	return res
}
