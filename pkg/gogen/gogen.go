// Package gogen generates the Go object model of a frozen ontology graph:
// an interface and an implementation per emitted class and a module file
// per context.
package gogen

import (
	"bytes"
	"cmp"
	"go/format"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/gnames/owlgen/pkg/diag"
	"github.com/gnames/owlgen/pkg/ident"
	"github.com/gnames/owlgen/pkg/ontology"
	"github.com/gnames/owlgen/pkg/templates"
	"github.com/gnames/owlgen/pkg/vocab"
)

// DefaultRuntime is the import path of the runtime of generated code.
const DefaultRuntime = "github.com/gnames/owlgen/pkg/pojo"

// Config tells where generated packages live.
type Config struct {
	// Root is the slash separated directory of generated packages,
	// relative to the output directory.
	Root string
	// Module is the Go module path of the output directory.
	Module string
	// Runtime is the import path of the pojo runtime.
	Runtime string
}

// File is a generated source file.
type File struct {
	// Path is relative to the output directory.
	Path    string
	Content []byte
}

// Generator renders Go sources.
type Generator struct {
	reg   *ontology.Registry
	cfg   Config
	diags *diag.Diagnostics

	pkgs    map[string]*pkgInfo
	classes map[*ontology.Class]*classInfo
	widen   graph
	tmpl    *template.Template
}

type pkgInfo struct {
	dirs  []string
	path  string
	name  string
	namer *ident.Namer
}

type classInfo struct {
	class *ontology.Class
	pkg   *pkgInfo
	name  string
	file  string
}

// New creates a Generator. Collisions and classes dropped to break import
// cycles are added to diags.
func New(reg *ontology.Registry, cfg Config, diags *diag.Diagnostics) *Generator {
	if cfg.Runtime == "" {
		cfg.Runtime = DefaultRuntime
	}
	if cfg.Root == "" {
		cfg.Root = "pojo"
	}
	return &Generator{
		reg:     reg,
		cfg:     cfg,
		diags:   diags,
		pkgs:    make(map[string]*pkgInfo),
		classes: make(map[*ontology.Class]*classInfo),
		widen:   make(graph),
	}
}

// Generate returns generated files sorted by path.
func (g *Generator) Generate() ([]File, error) {
	if !g.reg.Frozen() {
		return nil, ontology.RegistryNotFrozenError()
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	g.tmpl = tmpl

	g.plan()
	g.breakCycles()

	var res []File
	for _, ci := range g.sortedClasses() {
		files, err := g.classFiles(ci)
		if err != nil {
			return nil, err
		}
		res = append(res, files...)
	}
	for _, m := range g.reg.Modules() {
		f, ok, err := g.moduleFile(m)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, f)
		}
	}
	slices.SortFunc(res, func(a, b File) int {
		return cmp.Compare(a.Path, b.Path)
	})

	slog.Info("Go sources generated",
		"classes", humanize.Comma(int64(len(g.classes))),
		"files", humanize.Comma(int64(len(res))),
	)
	return res, nil
}

func parseTemplates() (*template.Template, error) {
	res := template.New("gogen")
	srcs := []struct{ name, src string }{
		{"iface", templates.GoIface},
		{"impl", templates.GoImpl},
		{"module", templates.GoModule},
	}
	for _, v := range srcs {
		if _, err := res.New(v.name).Parse(v.src); err != nil {
			return nil, TemplateError(v.name, err)
		}
	}
	return res, nil
}

// pkg returns the package of the given directories.
func (g *Generator) pkg(dirs []string) *pkgInfo {
	key := strings.Join(dirs, "/")
	if res, ok := g.pkgs[key]; ok {
		return res
	}
	res := &pkgInfo{
		dirs:  dirs,
		path:  key,
		name:  dirs[len(dirs)-1],
		namer: ident.NewNamer(),
	}
	if g.cfg.Module != "" {
		res.path = g.cfg.Module + "/" + key
	}
	g.pkgs[key] = res
	return res
}

// emittable reports if the class gets generated code. xsd:string without
// an override is the builtin string.
func emittable(c *ontology.Class) bool {
	return c.Emittable() && !(c.IRI == vocab.XsdString && c.Native == nil)
}

// plan assigns packages and names to classes. Classes that collide on a
// name inside one package are dropped, as are classes with conflicting
// accessor names.
func (g *Generator) plan() {
	dropped := make(map[string]struct{})
	var infos []*classInfo
	for _, c := range g.reg.Classes() {
		if !emittable(c) {
			continue
		}
		ci := &classInfo{
			class: c,
			pkg:   g.pkg(ident.PackageDirs(g.cfg.Root, c.IRI)),
			name:  ident.TypeName(c.IRI),
			file:  ident.FileBase(c.IRI),
		}
		names := []string{
			ci.name, ci.name + "Impl", "New" + ci.name, ci.name + "IRI",
			ci.name + "NS", convName(ci.name),
			"file:" + ci.file + "_iface.go", "file:" + ci.file + "_impl.go",
		}
		for _, n := range names {
			if err := ci.pkg.namer.Claim(n, c.IRI); err != nil {
				prev, _ := ci.pkg.namer.Owner(n)
				dropped[prev] = struct{}{}
				dropped[c.IRI] = struct{}{}
				g.diagErr(c.IRI, err)
				g.diagErr(prev, err)
				break
			}
		}
		infos = append(infos, ci)
	}
	for _, ci := range infos {
		if _, ok := dropped[ci.class.IRI]; ok {
			continue
		}
		if err := g.checkAccessors(ci.class); err != nil {
			g.diagErr(ci.class.IRI, err)
			continue
		}
		g.classes[ci.class] = ci
	}
}

func convName(name string) string {
	return ident.Unexported(name) + "Conv"
}

// checkAccessors claims accessor names of every property of c.
func (g *Generator) checkAccessors(c *ontology.Class) error {
	namer := ident.NewNamer()
	for _, a := range g.reg.AllProperties(c) {
		if err := namer.Claim(ident.TypeName(a.Property.IRI), a.Property.IRI); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) sortedClasses() []*classInfo {
	res := make([]*classInfo, 0, len(g.classes))
	for _, v := range g.classes {
		res = append(res, v)
	}
	slices.SortFunc(res, func(a, b *classInfo) int {
		return cmp.Compare(a.class.IRI, b.class.IRI)
	})
	return res
}

func (g *Generator) classFiles(ci *classInfo) ([]File, error) {
	dir := path.Join(ci.pkg.dirs...)
	iface := g.iface(ci)
	f, err := g.render("iface", path.Join(dir, ci.file+"_iface.go"), iface)
	if err != nil {
		return nil, err
	}
	res := []File{f}
	if ci.class.HasFallback() {
		return res, nil
	}
	impl := g.impl(ci)
	f, err = g.render("impl", path.Join(dir, ci.file+"_impl.go"), impl)
	if err != nil {
		return nil, err
	}
	return append(res, f), nil
}

// render executes a template and formats the result.
func (g *Generator) render(name, file string, data any) (File, error) {
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return File{}, TemplateError(name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return File{}, FormatSourceError(file, err)
	}
	return File{Path: filepath.FromSlash(file), Content: src}, nil
}

func (g *Generator) diagErr(subject string, err error) {
	g.diags.AddErr(diag.Error, subject, err)
}

// commentLines splits comments into lines of a doc comment.
func commentLines(comments []string) []string {
	var res []string
	for i, c := range comments {
		if i > 0 {
			res = append(res, "")
		}
		for _, l := range strings.Split(strings.TrimSpace(c), "\n") {
			res = append(res, strings.TrimRight(l, " \t\r"))
		}
	}
	return res
}
