// Package override describes native-type overrides: ontology classes that
// map onto an existing Go type and a relational column type instead of a
// generated class and a table.
package override

import (
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gnames/owlgen/pkg/templates"
)

// Descriptor tells how values of a class are represented.
type Descriptor struct {
	// Primitive is the Go type of values, e.g. "string", "time.Time" or
	// "encoding/json.RawMessage". Empty means a generated type is used.
	Primitive string `yaml:"primitive"`
	// Modifier is a validator function reference (func(T) error) applied
	// to values before they are stored.
	Modifier string `yaml:"modifier"`
	// Fallback is a decoder function reference (func(string) (T, error)).
	// A class with a fallback accepts strings in addition to its own
	// values, and only its interface is generated.
	Fallback string `yaml:"fallback"`
	// SQLType is the column type of values. Classes with an SQL type are
	// stored inline and get no table.
	SQLType string `yaml:"sql_type"`
}

// Suppressed reports if a class with this descriptor produces no generated
// code.
func (d Descriptor) Suppressed() bool {
	return d.Primitive != "" && d.Fallback == ""
}

// HasFallback reports if values can be decoded from strings.
func (d Descriptor) HasFallback() bool {
	return d.Fallback != ""
}

// Table maps class IRIs to their descriptors.
type Table map[string]Descriptor

// Lookup returns the descriptor of a class.
func (t Table) Lookup(iri string) (Descriptor, bool) {
	d, ok := t[iri]
	return d, ok
}

// IRIs returns the sorted class IRIs of the table.
func (t Table) IRIs() []string {
	return slices.Sorted(maps.Keys(t))
}

// Merge returns a new table with entries of other replacing entries of t.
func (t Table) Merge(other Table) Table {
	res := make(Table, len(t)+len(other))
	maps.Copy(res, t)
	maps.Copy(res, other)
	return res
}

// Parse decodes a YAML override table.
func Parse(data []byte) (Table, error) {
	var res Table
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, DecodeError(err)
	}
	if res == nil {
		res = make(Table)
	}
	return res, nil
}

// Default returns the built-in table for XSD datatypes.
func Default() Table {
	res, err := Parse([]byte(templates.OverrideYAML))
	if err != nil {
		// embedded table is part of the build
		panic(err)
	}
	return res
}

// GoRef is a reference to a Go declaration.
type GoRef struct {
	// Path is the import path, empty for predeclared identifiers.
	Path string
	// Name is the declared identifier.
	Name string
}

// ParseGoRef splits "import/path.Name" into its parts. A leading '*' or
// "[]" stays with the name.
func ParseGoRef(s string) GoRef {
	s = strings.TrimSpace(s)
	var prefix string
	for {
		switch {
		case strings.HasPrefix(s, "*"):
			prefix += "*"
			s = s[1:]
			continue
		case strings.HasPrefix(s, "[]"):
			prefix += "[]"
			s = s[2:]
			continue
		}
		break
	}
	slash := strings.LastIndex(s, "/")
	dot := strings.LastIndex(s, ".")
	if dot <= slash {
		return GoRef{Name: prefix + s}
	}
	return GoRef{Path: s[:dot], Name: prefix + s[dot+1:]}
}

// Qualified returns the reference as written in code where the package is
// imported under alias.
func (r GoRef) Qualified(alias string) string {
	if r.Path == "" {
		return r.Name
	}
	name := strings.TrimLeft(r.Name, "*[]")
	prefix := r.Name[:len(r.Name)-len(name)]
	return prefix + alias + "." + name
}

// PkgName is the default package name of the import path.
func (r GoRef) PkgName() string {
	if r.Path == "" {
		return ""
	}
	res := r.Path[strings.LastIndex(r.Path, "/")+1:]
	if i := strings.Index(res, "."); i >= 0 {
		res = res[:i]
	}
	return res
}
