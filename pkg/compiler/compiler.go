// Package compiler runs the whole pipeline: contexts are resolved and
// attached to the ontology, the class graph is built and frozen, and both
// backends generate their artifacts. The package performs no I/O; triples,
// context documents and override tables come from the caller.
package compiler

import (
	"iter"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/owlgen/pkg/config"
	"github.com/gnames/owlgen/pkg/diag"
	"github.com/gnames/owlgen/pkg/gogen"
	"github.com/gnames/owlgen/pkg/ldcontext"
	"github.com/gnames/owlgen/pkg/ontology"
	"github.com/gnames/owlgen/pkg/override"
	"github.com/gnames/owlgen/pkg/sqlgen"
	"github.com/gnames/owlgen/pkg/triples"
)

// Store is a triple store that accepts the context tags added during
// compilation.
type Store interface {
	triples.Store
	// Add stores a statement, returning false for duplicates.
	Add(t triples.Triple) bool
	// MatchIn is Match restricted to one source document.
	MatchIn(graph string, s, p, o triples.Term) iter.Seq[triples.Triple]
}

// Input collects everything a compilation reads.
type Input struct {
	// Store holds the ontology statements.
	Store Store
	// Contexts are IRIs of contexts to resolve, in order.
	Contexts []string
	// Loader provides context documents.
	Loader ldcontext.Loader
	// Overrides is the native-type table. Nil means override.Default().
	Overrides override.Table
}

// Output is the result of a compilation.
type Output struct {
	// Files are generated Go sources sorted by path.
	Files []gogen.File
	// Schema is the generated relational schema.
	Schema *sqlgen.Schema
	// Registry is the frozen class graph.
	Registry *ontology.Registry
	// Diagnostics are all findings of the compilation.
	Diagnostics *diag.Diagnostics
}

// Compile builds the class graph from in and generates Go sources and the
// relational schema according to cfg. Findings that do not stop the
// compilation are returned in Output.Diagnostics; the returned error is
// reserved for failures of the pipeline itself.
func Compile(in Input, cfg config.GenerateConfig) (*Output, error) {
	dialect, err := sqlgen.NewDialect(cfg.SQLDialect)
	if err != nil {
		return nil, err
	}
	tbl := in.Overrides
	if tbl == nil {
		tbl = override.Default()
	}

	diags := &diag.Diagnostics{}
	reg := ontology.NewRegistry(tbl)

	ctxs := resolveContexts(in, diags)
	for _, ctx := range ctxs {
		ctx.LoadExt(in.Store)
		reg.RegisterModule(ctx)
		tagContext(in.Store, ctx, diags)
	}

	err = ontology.NewBuilder(reg, in.Store, diags).Build()
	if err != nil {
		return nil, err
	}
	reg.Freeze()

	gcfg := gogen.Config{
		Root:    cfg.GoRoot,
		Module:  cfg.GoModule,
		Runtime: cfg.RuntimeImport,
	}
	files, err := gogen.New(reg, gcfg, diags).Generate()
	if err != nil {
		return nil, err
	}

	schema, err := sqlgen.New(reg, dialect, diags).Generate()
	if err != nil {
		return nil, err
	}

	reportUnattached(reg, diags)

	slog.Info("Compilation finished",
		"contexts", humanize.Comma(int64(len(ctxs))),
		"errors", humanize.Comma(int64(len(diags.Errors))),
		"warnings", humanize.Comma(int64(len(diags.Warnings))),
		"infos", humanize.Comma(int64(len(diags.Infos))),
	)

	res := &Output{
		Files:       files,
		Schema:      schema,
		Registry:    reg,
		Diagnostics: diags,
	}
	return res, nil
}

// resolveContexts resolves the requested contexts. A context that cannot
// be resolved is reported and skipped.
func resolveContexts(in Input, diags *diag.Diagnostics) []*ldcontext.Context {
	if in.Loader == nil {
		return nil
	}
	r := ldcontext.NewResolver(in.Loader)
	seen := make(map[string]struct{}, len(in.Contexts))
	var res []*ldcontext.Context
	for _, iri := range in.Contexts {
		if _, ok := seen[iri]; ok {
			continue
		}
		seen[iri] = struct{}{}
		ctx, err := r.Resolve(iri)
		if err != nil {
			diags.AddErr(diag.Warning, iri, err)
			continue
		}
		res = append(res, ctx)
	}
	return res
}
