package gogen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/owlgen/pkg/ident"
	"github.com/gnames/owlgen/pkg/ontology"
	"github.com/gnames/owlgen/pkg/override"
	"github.com/gnames/owlgen/pkg/vocab"
)

// Accessor modes.
const (
	modeList  = "list"
	modePtr   = "ptr"
	modeOpt   = "opt"
	modeValue = "value"
)

type accessor struct {
	// Name is the exported property name used in method names.
	Name string
	// Field is the struct field.
	Field string
	// Key is the property IRI used in records.
	Key string
	// Type is the value type, the element type for lists.
	Type string
	// FieldType is the type of the field and of the getter.
	FieldType string
	// Param is the setter parameter type.
	Param    string
	Mode     string
	ConvExpr string
}

type ifaceData struct {
	Package  string
	Imports  []string
	Runtime  string
	Name     string
	IRI      string
	NS       []string
	Comments []string
	Embeds   []string
	Methods  []accessor
}

type implData struct {
	Package string
	Imports []string
	Runtime string
	Name    string
	Conv    string
	Fields  []accessor
}

// valueType is the Go form of values of one class.
type valueType struct {
	expr     string
	nilable  bool
	decoder  string
	modifier string
}

// valueType maps a class onto a Go type as written in a file.
func (g *Generator) valueType(c *ontology.Class, im *imports) valueType {
	var res valueType
	switch {
	case c.Native != nil && c.Native.Primitive != "":
		ref := override.ParseGoRef(c.Native.Primitive)
		res.expr = im.qualify(ref)
		res.nilable = isNilable(ref)
	case c.IRI == vocab.XsdString && c.Native == nil:
		res.expr = "string"
	default:
		ci, ok := g.classes[c]
		if !ok || g.widen.has(im.self, ci.pkg.path) {
			return valueType{expr: "any", nilable: true}
		}
		alias := im.add(ci.pkg.path, ci.pkg.name)
		res.expr = ci.name
		if alias != "" {
			res.expr = alias + "." + ci.name
		}
		res.nilable = true
	}
	if c.Native != nil && !im.typesOnly {
		if c.Native.Fallback != "" {
			res.decoder = im.qualify(override.ParseGoRef(c.Native.Fallback))
		}
		if c.Native.Modifier != "" {
			res.modifier = im.qualify(override.ParseGoRef(c.Native.Modifier))
		}
	}
	return res
}

func isNilable(ref override.GoRef) bool {
	switch {
	case strings.HasPrefix(ref.Name, "[]"), strings.HasPrefix(ref.Name, "*"),
		strings.HasPrefix(ref.Name, "map["):
		return true
	case ref.Name == "any" || ref.Name == "error":
		return true
	case ref.Path == "encoding/json" && ref.Name == "RawMessage":
		return true
	}
	return false
}

// group collects constituents sharing a Go type.
type group struct {
	valueType
	decoders  []string
	modifiers []string
	unchecked bool
}

func (g *Generator) groups(cs []*ontology.Class, im *imports) []*group {
	var res []*group
	for _, c := range cs {
		vt := g.valueType(c, im)
		idx := slices.IndexFunc(res, func(gr *group) bool { return gr.expr == vt.expr })
		if idx < 0 {
			res = append(res, &group{valueType: vt})
			idx = len(res) - 1
		}
		gr := res[idx]
		if vt.decoder != "" && !slices.Contains(gr.decoders, vt.decoder) {
			gr.decoders = append(gr.decoders, vt.decoder)
		}
		if vt.modifier == "" {
			gr.unchecked = true
		} else if !slices.Contains(gr.modifiers, vt.modifier) {
			gr.modifiers = append(gr.modifiers, vt.modifier)
		}
	}
	return res
}

func (gr *group) conv(rt string) string {
	res := fmt.Sprintf("%s.As[%s](%s)", rt, gr.expr, strings.Join(gr.decoders, ", "))
	if !gr.unchecked && len(gr.modifiers) > 0 {
		res += fmt.Sprintf(".Check(%s.AnyOf(%s))", rt, strings.Join(gr.modifiers, ", "))
	}
	return res
}

// accessor derives the types of a property: getter types from the direct
// constituents of the range, setter types from the varadic ones.
func (g *Generator) accessor(p *ontology.Property, im *imports, rt string) accessor {
	name := ident.TypeName(p.IRI)
	res := accessor{
		Name:  name,
		Field: ident.Unexported(name),
		Key:   p.IRI,
	}

	var direct, varadic []*ontology.Class
	if p.Range != nil {
		direct = g.reg.Constituents(p.Range, ontology.FlagDirect)
		varadic = g.reg.Constituents(p.Range, ontology.FlagVaradic)
	}
	// only types that end up in signatures are imported
	groups := g.groups(direct, im.fork())
	if len(groups) == 1 || !im.typesOnly {
		groups = g.groups(direct, im)
	}
	nilable := true
	switch len(groups) {
	case 0:
		res.Type = "any"
		res.ConvExpr = rt + ".As[any]()"
	case 1:
		res.Type = groups[0].expr
		res.ConvExpr = groups[0].conv(rt)
		nilable = groups[0].nilable
	default:
		res.Type = "any"
		convs := make([]string, len(groups))
		for i, gr := range groups {
			convs[i] = fmt.Sprintf("%s.Widen(%s)", rt, gr.conv(rt))
		}
		res.ConvExpr = fmt.Sprintf("%s.Either(%s)", rt, strings.Join(convs, ", "))
	}

	res.Param = "any"
	if vgroups := g.groups(varadic, im.fork()); len(vgroups) == 1 {
		res.Param = g.groups(varadic, im)[0].expr
	}

	switch {
	case p.IsArray():
		res.Mode = modeList
		res.FieldType = "[]" + res.Type
	case p.Nullable && !nilable:
		res.Mode = modePtr
		res.FieldType = "*" + res.Type
		if res.Param == res.Type {
			res.Param = "*" + res.Type
		}
	case nilable:
		res.Mode = modeOpt
		res.FieldType = res.Type
	default:
		res.Mode = modeValue
		res.FieldType = res.Type
	}
	return res
}

func (g *Generator) iface(ci *classInfo) ifaceData {
	im := newImports(ci.pkg.path)
	im.typesOnly = true
	rt := im.add(g.cfg.Runtime, runtimeName(g.cfg.Runtime))
	c := ci.class
	res := ifaceData{
		Package:  ci.pkg.name,
		Runtime:  rt,
		Name:     ci.name,
		IRI:      c.IRI,
		NS:       c.Contexts(),
		Comments: commentLines(c.Comments),
	}
	for _, p := range c.Implements() {
		pi, ok := g.classes[p]
		if !ok || p == c {
			continue
		}
		ref := pi.name
		if alias := im.add(pi.pkg.path, pi.pkg.name); alias != "" {
			ref = alias + "." + pi.name
		}
		if !slices.Contains(res.Embeds, ref) {
			res.Embeds = append(res.Embeds, ref)
		}
	}
	seen := make(map[*ontology.Property]struct{})
	for _, a := range c.Attached() {
		if _, ok := seen[a.Property]; ok {
			continue
		}
		seen[a.Property] = struct{}{}
		res.Methods = append(res.Methods, g.accessor(a.Property, im, rt))
	}
	res.Imports = im.specs()
	return res
}

func (g *Generator) impl(ci *classInfo) implData {
	im := newImports(ci.pkg.path)
	rt := im.add(g.cfg.Runtime, runtimeName(g.cfg.Runtime))
	res := implData{
		Package: ci.pkg.name,
		Runtime: rt,
		Name:    ci.name,
		Conv:    convName(ci.name),
	}
	for _, a := range g.reg.AllProperties(ci.class) {
		res.Fields = append(res.Fields, g.accessor(a.Property, im, rt))
	}
	res.Imports = im.specs()
	return res
}

func runtimeName(path string) string {
	return override.GoRef{Path: path, Name: "X"}.PkgName()
}
