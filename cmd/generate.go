/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/owlgen/internal/ioemit"
	"github.com/gnames/owlgen/internal/iofs"
	"github.com/gnames/owlgen/internal/ioldctx"
	"github.com/gnames/owlgen/internal/iooverride"
	"github.com/gnames/owlgen/internal/iotriples"
	"github.com/gnames/owlgen/pkg/compiler"
	"github.com/gnames/owlgen/pkg/config"
	"github.com/gnames/owlgen/pkg/diag"
	"github.com/gnames/owlgen/pkg/gogen"
	"github.com/gnames/owlgen/pkg/ldcontext"
	"github.com/spf13/cobra"
)

// getGenerateCmd returns the generate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getGenerateCmd() *cobra.Command {
	var quiet bool

	generateCmd := &cobra.Command{
		Use:   "generate [ontology_dir...]",
		Short: "Generate Go packages and an SQL schema from ontologies",
		Long: `Generate compiles OWL ontologies into a Go object model and a
relational schema script.

This command:
  1. Loads ontology files (.ttl, .nt, .rdf, .owl) from the given directories
  2. Resolves JSON-LD contexts found in the context directory
  3. Builds the class graph and applies native-type overrides
  4. Writes Go packages and the schema script into the output directory

Directories given as arguments replace generate.ontology_dirs of the
config file. Findings are printed after the files are written; the
command fails if any of them is an error.

Examples:
  owlgen generate ./ontologies
  owlgen generate -x ./contexts -o ./model -m example.com/model ./ontologies
  owlgen generate -d postgres --schema-file model.sql ./ontologies`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, quiet)
		},
	}

	f := generateCmd.Flags()
	f.StringP("context-dir", "x", "", "directory with JSON-LD context documents")
	f.StringSliceP("context", "c", nil, "IRI of a context to resolve (repeatable)")
	f.StringSliceP("override", "r", nil, "override table merged over the built-in one (repeatable)")
	f.StringP("output", "o", "", "output directory")
	f.StringP("module", "m", "", "import path of the output directory")
	f.String("root", "", "directory of generated packages inside output")
	f.StringP("dialect", "d", "", "SQL dialect: mysql, postgres or sqlite")
	f.String("schema-file", "", "name of the schema script inside output")
	f.IntP("jobs", "j", 0, "number of concurrent writers")
	f.BoolVarP(&quiet, "quiet", "q", false, "do not show the progress bar")

	return generateCmd
}

func runGenerate(cmd *cobra.Command, args []string, quiet bool) error {
	ctx := context.Background()

	opts := flagOptions(cmd, generateFlags...)
	if len(args) > 0 {
		opts = append(opts, config.OptGenerateOntologyDirs(args))
	}
	cfg.Update(opts)
	gen := cfg.Generate

	out, err := compile(gen)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	files := make([]gogen.File, 0, len(out.Files)+1)
	files = append(files, out.Files...)
	files = append(files, gogen.File{
		Path:    gen.SchemaFile,
		Content: []byte(out.Schema.Script()),
	})

	stats, err := ioemit.Write(ctx, gen.OutputDir, files,
		ioemit.OptJobs(cfg.JobsNumber),
		ioemit.OptProgress(!quiet),
	)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	printDiagnostics(out.Diagnostics)

	gn.Message(
		"<em>Generated %s classes into %s</em>",
		humanize.Comma(int64(len(out.Registry.Classes()))),
		gen.OutputDir,
	)
	gn.Info(
		"Files written: <em>%s</em>, unchanged: <em>%s</em>",
		humanize.Comma(int64(stats.Written)),
		humanize.Comma(int64(stats.Unchanged)),
	)
	gn.Info(
		"Schema script: <em>%s</em> (%s)",
		filepath.Join(gen.OutputDir, gen.SchemaFile),
		out.Schema.Dialect,
	)

	if err = out.Diagnostics.Error(); err != nil {
		gn.Warn("Compilation finished with <em>%d</em> errors", len(out.Diagnostics.Errors))
		return err
	}
	return nil
}

// compile loads everything the configuration points to and runs the
// compiler.
func compile(gen config.GenerateConfig) (*compiler.Output, error) {
	if len(gen.OntologyDirs) == 0 {
		return nil, errors.New("no ontology directories given")
	}

	paths, err := iofs.FindFiles(gen.OntologyDirs, iotriples.Extensions...)
	if err != nil {
		return nil, err
	}
	gn.Info("Loading <em>%d</em> ontology files", len(paths))
	g, err := iotriples.LoadFiles(paths)
	if err != nil {
		return nil, err
	}

	var loader ldcontext.Loader
	contexts := gen.Contexts
	if gen.ContextDir != "" {
		loader = ioldctx.New(gen.ContextDir)
		if len(contexts) == 0 {
			if contexts, err = ioldctx.Discover(gen.ContextDir); err != nil {
				return nil, err
			}
		}
	}

	tbl, err := iooverride.Load(gen.OverrideFiles...)
	if err != nil {
		return nil, err
	}

	in := compiler.Input{
		Store:     g,
		Contexts:  contexts,
		Loader:    loader,
		Overrides: tbl,
	}
	return compiler.Compile(in, gen)
}

// printDiagnostics shows errors and warnings to the user. Informational
// findings go to the log only.
func printDiagnostics(d *diag.Diagnostics) {
	for _, v := range d.Infos {
		slogDiagnostic(v)
	}
	for _, v := range d.Warnings {
		slogDiagnostic(v)
		gn.Warn("%s", diag.Plain(v.String()))
	}
	for _, v := range d.Errors {
		slogDiagnostic(v)
		gn.Warn("<warn>%s</warn>", diag.Plain(v.String()))
	}
}

func slogDiagnostic(d diag.Diagnostic) {
	attrs := []any{"code", d.Code, "subject", d.Subject}
	if len(d.Details) > 0 {
		attrs = append(attrs, "details", d.Details)
	}
	switch d.Severity {
	case diag.Error:
		slog.Error(d.Message, attrs...)
	case diag.Warning:
		slog.Warn(d.Message, attrs...)
	default:
		slog.Info(d.Message, attrs...)
	}
}
