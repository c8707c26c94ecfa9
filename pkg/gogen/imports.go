package gogen

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/gnames/owlgen/pkg/override"
)

// imports assigns aliases to the packages a file refers to.
type imports struct {
	self    string
	byPath  map[string]string
	byAlias map[string]string
	// typesOnly marks files without converters: decoders and validators
	// are not imported.
	typesOnly bool
}

// reserved names cannot be import aliases: generated code declares them
// or relies on the predeclared meaning.
var reserved = []string{
	"o", "v", "vs", "err", "res", "rec", "value", "values", "data",
	"any", "bool", "byte", "error", "float32", "float64", "int", "int8",
	"int16", "int32", "int64", "rune", "string", "uint", "uint8", "uint16",
	"uint32", "uint64", "uintptr", "append", "nil", "true", "false",
}

func newImports(self string) *imports {
	res := &imports{
		self:    self,
		byPath:  make(map[string]string),
		byAlias: make(map[string]string),
	}
	for _, v := range reserved {
		res.byAlias[v] = ""
	}
	return res
}

// fork returns a scratch copy.
func (im *imports) fork() *imports {
	return &imports{
		self:      im.self,
		byPath:    maps.Clone(im.byPath),
		byAlias:   maps.Clone(im.byAlias),
		typesOnly: im.typesOnly,
	}
}

// add returns the alias of an import path, "" for the file's own package.
func (im *imports) add(path, name string) string {
	if path == "" || path == im.self {
		return ""
	}
	if res, ok := im.byPath[path]; ok {
		return res
	}
	res := name
	for i := 2; ; i++ {
		if _, ok := im.byAlias[res]; !ok {
			break
		}
		res = name + strconv.Itoa(i)
	}
	im.byPath[path] = res
	im.byAlias[res] = path
	return res
}

// qualify returns a Go reference as written in the file.
func (im *imports) qualify(ref override.GoRef) string {
	if ref.Path == "" {
		return ref.Name
	}
	alias := im.add(ref.Path, ref.PkgName())
	if alias == "" {
		return ref.Name
	}
	return ref.Qualified(alias)
}

// paths returns imported paths in sorted order.
func (im *imports) paths() []string {
	return slices.Sorted(maps.Keys(im.byPath))
}

// specs returns import lines, aliased where the alias differs from the
// default package name.
func (im *imports) specs() []string {
	var res []string
	for _, path := range im.paths() {
		alias := im.byPath[path]
		ref := override.GoRef{Path: path, Name: "X"}
		if alias == ref.PkgName() {
			res = append(res, strconv.Quote(path))
			continue
		}
		res = append(res, fmt.Sprintf("%s %q", alias, path))
	}
	return res
}
