// Package sqlgen generates a relational schema for a frozen ontology graph.
// Every class with a table stores its own properties; inheritance is a
// composite key (created, id) shared with every parent table and with the
// version table.
package sqlgen

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gnames/owlgen/pkg/diag"
	"github.com/gnames/owlgen/pkg/ident"
	"github.com/gnames/owlgen/pkg/ontology"
)

// Generator renders a schema script.
type Generator struct {
	reg     *ontology.Registry
	dialect Dialect
	diags   *diag.Diagnostics
	namer   *ident.Namer
}

// New creates a Generator. Identifier collisions are added to diags.
func New(reg *ontology.Registry, d Dialect, diags *diag.Diagnostics) *Generator {
	return &Generator{reg: reg, dialect: d, diags: diags, namer: ident.NewNamer()}
}

type column struct {
	name    string
	typ     string
	notNull bool
	ref     bool
}

type table struct {
	class   *ontology.Class
	name    string
	view    string
	trigger string
	columns []column
	parents []string
}

// Generate returns the schema of every class that owns a table. A class
// whose identifiers collide with another class is left out.
func (g *Generator) Generate() (*Schema, error) {
	if !g.reg.Frozen() {
		return nil, ontology.RegistryNotFrozenError()
	}
	d := g.dialect
	res := &Schema{Dialect: d.Name(), Tables: []string{IDTable, VersionTable}}
	for _, v := range bootstrapDDL(d) {
		res.Statements = append(res.Statements,
			Statement{Section: SectionBootstrap, SQL: v})
	}

	classes := slices.Clone(g.reg.Classes())
	slices.SortFunc(classes, func(a, b *ontology.Class) int {
		return cmp.Compare(a.IRI, b.IRI)
	})

	var tables []*table
	for _, c := range classes {
		if !c.HasTable() {
			continue
		}
		t, err := g.plan(c)
		if err != nil {
			g.diags.AddErr(diag.Error, c.IRI, err)
			continue
		}
		tables = append(tables, t)
	}

	byClass := make(map[*ontology.Class]*table, len(tables))
	for _, t := range tables {
		byClass[t.class] = t
	}
	linkParents(tables, byClass)

	var alters, triggers, views []Statement
	for _, t := range tables {
		iri := t.class.IRI
		res.Statements = append(res.Statements, Statement{
			Section: SectionCreate, Subject: iri, SQL: g.create(t),
		})
		if !d.InlineForeignKeys() {
			alters = append(alters, Statement{
				Section: SectionAlter, Subject: iri, SQL: g.alter(t),
			})
		}
		triggers = append(triggers, Statement{
			Section: SectionTrigger, Subject: iri,
			SQL: d.Trigger(t.trigger, t.name),
		})
		views = append(views, Statement{
			Section: SectionView, Subject: iri, SQL: g.view(t, byClass),
		})
		res.Tables = append(res.Tables, t.name)
		res.Views = append(res.Views, t.view)
	}
	res.Statements = append(res.Statements, alters...)
	res.Statements = append(res.Statements, triggers...)
	res.Statements = append(res.Statements, views...)

	slog.Info("Relational schema generated",
		"dialect", d.Name(),
		"tables", humanize.Comma(int64(len(tables))),
	)
	return res, nil
}

func (g *Generator) ident(kind, iri string) string {
	return ident.Shorten(kind+" "+iri, g.dialect.MaxIdentLen())
}

// TableName returns the unquoted table name of a class.
func (g *Generator) TableName(c *ontology.Class) string {
	return g.ident("t", c.IRI)
}

// ViewName returns the unquoted view name of a class.
func (g *Generator) ViewName(c *ontology.Class) string {
	return g.ident("v", c.IRI)
}

// plan collects names and columns of a class table.
func (g *Generator) plan(c *ontology.Class) (*table, error) {
	res := &table{
		class:   c,
		name:    g.TableName(c),
		view:    g.ViewName(c),
		trigger: g.ident("c", c.IRI),
	}
	names := []struct{ short, full string }{
		{res.name, "t " + c.IRI},
		{res.view, "v " + c.IRI},
		{res.trigger, "c " + c.IRI},
	}
	for _, v := range names {
		if err := g.namer.Claim(v.short, v.full); err != nil {
			return nil, err
		}
	}

	cols, err := g.columns(c)
	if err != nil {
		return nil, err
	}
	res.columns = cols
	return res, nil
}

// linkParents sets the parent tables of every planned table. A parent
// left out of the schema gets no foreign key.
func linkParents(tables []*table, byClass map[*ontology.Class]*table) {
	for _, t := range tables {
		for _, p := range t.class.Implements() {
			if pt, ok := byClass[p]; ok {
				t.parents = append(t.parents, pt.name)
			}
		}
	}
}

// columns returns the columns of properties attached directly to c,
// sorted by length and name.
func (g *Generator) columns(c *ontology.Class) ([]column, error) {
	namer := ident.NewNamer()
	seen := make(map[string]struct{})
	var res []column
	for _, a := range c.Attached() {
		for _, col := range g.propColumns(a.Property) {
			if _, ok := seen[col.name]; ok {
				continue
			}
			full := g.columnFull(a.Property, col)
			if err := namer.Claim(col.name, full); err != nil {
				return nil, err
			}
			seen[col.name] = struct{}{}
			res = append(res, col)
		}
	}
	slices.SortFunc(res, func(a, b column) int {
		return cmp.Or(cmp.Compare(len(a.name), len(b.name)),
			cmp.Compare(a.name, b.name))
	})
	return res, nil
}

func (g *Generator) columnFull(p *ontology.Property, col column) string {
	prefix, _, _ := strings.Cut(col.name, " ")
	return prefix + " " + p.IRI
}

// propColumns returns one column per storage kind of the direct
// constituents of the range. A property without constituents is stored as
// JSON.
func (g *Generator) propColumns(p *ontology.Property) []column {
	if p.IRI == "@id" {
		return nil
	}
	var types []*ontology.Class
	if p.Range != nil {
		types = g.reg.Constituents(p.Range, ontology.FlagDirect)
	}
	if len(types) == 0 {
		res := []column{{name: g.ident("J", p.IRI), typ: g.dialect.Type("JSON")}}
		res[0].notNull = !p.Nullable
		return res
	}
	res := make([]column, 0, len(types))
	for _, t := range types {
		sqlt := SQLType(t)
		prefix := StoragePrefix(t, sqlt)
		res = append(res, column{
			name: g.ident(prefix, p.IRI),
			typ:  g.dialect.Type(sqlt),
			ref:  prefix == "*",
		})
	}
	if !p.Nullable && len(res) == 1 {
		res[0].notNull = true
	}
	return res
}

// SQLType is the neutral column type of values of a class.
func SQLType(c *ontology.Class) string {
	if c.Native != nil && c.Native.SQLType != "" {
		return strings.ToUpper(c.Native.SQLType)
	}
	if c.Native != nil && c.Native.Suppressed() {
		return "JSON"
	}
	return "INT"
}

// StoragePrefix is the column name prefix of a storage kind.
func StoragePrefix(c *ontology.Class, sqlType string) string {
	switch {
	case c.HasTable():
		return "*"
	case strings.Contains(sqlType, "INT"):
		return "i"
	case sqlType == "FLOAT" || sqlType == "DOUBLE" ||
		strings.HasPrefix(sqlType, "DECIMAL"):
		return "f"
	case sqlType == "BOOLEAN":
		return "b"
	case strings.Contains(sqlType, "VARCHAR") || sqlType == "TEXT":
		return "s"
	case sqlType == "BLOB":
		return ">"
	case sqlType == "JSON":
		return "J"
	case sqlType == "DATETIME" || sqlType == "TIMESTAMP" ||
		sqlType == "DATE" || sqlType == "TIME":
		return "D"
	default:
		return "?"
	}
}

func (g *Generator) create(t *table) string {
	d := g.dialect
	q := d.Quote
	lines := []string{
		fmt.Sprintf("%s %s NOT NULL", q("created"), d.Type("DATETIME")),
		fmt.Sprintf("%s %s NOT NULL", q("id"), d.Type("INT")),
	}
	for _, c := range t.columns {
		line := q(c.name) + " " + c.typ
		if c.notNull {
			line += " NOT NULL"
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("PRIMARY KEY (%s, %s)", q("created"), q("id")))
	if d.InlineForeignKeys() {
		lines = append(lines, g.foreignKeys(t)...)
	}
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", q(t.name))
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")
	b.WriteString(d.InsertIgnore(IDTable, "uri", t.class.IRI))
	return b.String()
}

// foreignKeys returns the version key, one key per parent table and one
// key per reference column.
func (g *Generator) foreignKeys(t *table) []string {
	q := g.dialect.Quote
	key := fmt.Sprintf("(%s, %s)", q("created"), q("id"))
	res := []string{
		fmt.Sprintf("FOREIGN KEY %s REFERENCES %s %s ON DELETE CASCADE",
			key, q(VersionTable), key),
	}
	for _, p := range t.parents {
		res = append(res, fmt.Sprintf(
			"FOREIGN KEY %s REFERENCES %s %s ON DELETE CASCADE", key, q(p), key))
	}
	for _, c := range t.columns {
		if c.ref {
			res = append(res, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
				q(c.name), q(IDTable), q("id")))
		}
	}
	return res
}

func (g *Generator) alter(t *table) string {
	fks := g.foreignKeys(t)
	for i := range fks {
		fks[i] = "  ADD " + fks[i]
	}
	return fmt.Sprintf("ALTER TABLE %s\n%s;", g.dialect.Quote(t.name),
		strings.Join(fks, ",\n"))
}

// view joins the table with id, version and every ancestor table and
// selects the columns of the whole ancestor chain.
func (g *Generator) view(t *table, byClass map[*ontology.Class]*table) string {
	q := g.dialect.Quote
	alias := map[*ontology.Class]string{t.class: "t0"}
	var joins []string
	joins = append(joins,
		fmt.Sprintf("  INNER JOIN %s ON %s.%s = %s.%s",
			q(IDTable), q("t0"), q("id"), q(IDTable), q("id")),
		fmt.Sprintf("  INNER JOIN %s ON %s.%s = %s.%s AND %s.%s = %s.%s",
			q(VersionTable),
			q("t0"), q("created"), q(VersionTable), q("created"),
			q("t0"), q("id"), q(VersionTable), q("id")),
	)
	for _, a := range g.reg.Ancestors(t.class) {
		at, ok := byClass[a]
		if !ok {
			continue
		}
		name := fmt.Sprintf("t%d", len(alias))
		alias[a] = name
		joins = append(joins, fmt.Sprintf(
			"  INNER JOIN %s AS %s ON %s.%s = %s.%s AND %s.%s = %s.%s",
			q(at.name), q(name),
			q("t0"), q("created"), q(name), q("created"),
			q("t0"), q("id"), q(name), q("id")))
	}

	covered := make(map[string]struct{})
	var fields []string
	for _, cls := range append([]*ontology.Class{t.class}, g.reg.Ancestors(t.class)...) {
		name, ok := alias[cls]
		if !ok {
			continue
		}
		for _, c := range byClass[cls].columns {
			if _, ok := covered[c.name]; ok {
				continue
			}
			covered[c.name] = struct{}{}
			fields = append(fields, fmt.Sprintf("  %s.%s", q(name), q(c.name)))
		}
	}
	slices.SortFunc(fields, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(a), len(b)), cmp.Compare(a, b))
	})
	fields = append([]string{
		fmt.Sprintf("  %s.%s", q(IDTable), q("uri")),
		fmt.Sprintf("  %s.%s", q(VersionTable), q("created")),
		fmt.Sprintf("  %s.%s", q(VersionTable), q("id")),
		fmt.Sprintf("  %s.%s", q(VersionTable), q("type")),
	}, fields...)

	return fmt.Sprintf(`DROP VIEW IF EXISTS %s;
CREATE VIEW %s AS
SELECT
%s
FROM %s AS %s
%s;`,
		q(t.view), q(t.view), strings.Join(fields, ",\n"),
		q(t.name), q("t0"), strings.Join(joins, "\n"))
}
