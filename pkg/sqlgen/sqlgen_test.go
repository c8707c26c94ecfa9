package sqlgen_test

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/gnames/owlgen/pkg/diag"
	"github.com/gnames/owlgen/pkg/ontology"
	"github.com/gnames/owlgen/pkg/override"
	"github.com/gnames/owlgen/pkg/sqlgen"
	"github.com/gnames/owlgen/pkg/triples"
	"github.com/gnames/owlgen/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const ex = "http://example.org/"

// animals returns a graph with Animal, Dog subClassOf Animal and a
// mandatory name property of Animal.
func animals() *triples.Graph {
	g := triples.NewGraph()
	g.AddIRIs("", ex+"Animal", vocab.RdfType, vocab.OwlClass)
	g.AddIRIs("", ex+"Dog", vocab.RdfType, vocab.OwlClass)
	g.AddIRIs("", ex+"Dog", vocab.RdfsSubClassOf, ex+"Animal")
	g.AddIRIs("", ex+"name", vocab.RdfType, vocab.OwlDatatypeProperty)
	g.AddIRIs("", ex+"name", vocab.RdfsDomain, ex+"Animal")
	g.AddIRIs("", ex+"name", vocab.RdfsRange, vocab.XsdString)
	g.Add(triples.Triple{
		Subject:   triples.NewIRI(ex + "name"),
		Predicate: triples.NewIRI(vocab.MetaNullable),
		Object:    triples.NewLiteral("false"),
	})
	return g
}

func generate(t *testing.T, g *triples.Graph, d sqlgen.Dialect) (
	*sqlgen.Schema, *ontology.Registry, *diag.Diagnostics,
) {
	reg := ontology.NewRegistry(override.Default())
	var diags diag.Diagnostics
	require.Nil(t, ontology.NewBuilder(reg, g, &diags).Build())
	reg.Freeze()
	res, err := sqlgen.New(reg, d, &diags).Generate()
	require.Nil(t, err)
	return res, reg, &diags
}

func section(s *sqlgen.Schema, iri string, sec sqlgen.Section) string {
	var res []string
	for _, v := range s.BySubject(iri) {
		if v.Section == sec {
			res = append(res, v.SQL)
		}
	}
	return strings.Join(res, "\n")
}

func TestNewDialect(t *testing.T) {
	tests := []struct {
		msg, name, res string
		err            bool
	}{
		{"default", "", "mysql", false},
		{"mysql", "MySQL", "mysql", false},
		{"postgres", "postgresql", "postgres", false},
		{"sqlite", "sqlite3", "sqlite", false},
		{"unknown", "oracle", "", true},
	}
	for _, v := range tests {
		d, err := sqlgen.NewDialect(v.name)
		if v.err {
			assert.NotNil(t, err, v.msg)
			continue
		}
		require.Nil(t, err, v.msg)
		assert.Equal(t, v.res, d.Name(), v.msg)
	}
}

func TestNotFrozen(t *testing.T) {
	reg := ontology.NewRegistry(override.Default())
	var diags diag.Diagnostics
	_, err := sqlgen.New(reg, sqlgen.MySQL{}, &diags).Generate()
	assert.NotNil(t, err)
}

func TestAnimalDog(t *testing.T) {
	assert := assert.New(t)
	s, reg, diags := generate(t, animals(), sqlgen.MySQL{})
	assert.False(diags.HasErrors())
	gen := sqlgen.New(reg, sqlgen.MySQL{}, diags)

	animal, _ := reg.LookupClass(ex + "Animal")
	dog, _ := reg.LookupClass(ex + "Dog")
	animalTbl := gen.TableName(animal)
	dogTbl := gen.TableName(dog)
	assert.Equal("t http://example.org/Animal", animalTbl)
	assert.Contains(s.Tables, animalTbl)
	assert.Contains(s.Tables, dogTbl)

	create := section(s, animal.IRI, sqlgen.SectionCreate)
	assert.Contains(create, "`s http://example.org/name` TEXT NOT NULL")
	assert.Contains(create,
		"INSERT IGNORE INTO `id` (`uri`) VALUES ('http://example.org/Animal');")

	create = section(s, dog.IRI, sqlgen.SectionCreate)
	assert.NotContains(create, "name")
	assert.Equal(2, strings.Count(create, "NOT NULL"))

	alter := section(s, dog.IRI, sqlgen.SectionAlter)
	assert.Equal(2, strings.Count(alter, "FOREIGN KEY"))
	assert.Contains(alter, "REFERENCES `version`")
	assert.Contains(alter, "REFERENCES `"+animalTbl+"`")

	view := section(s, dog.IRI, sqlgen.SectionView)
	assert.Contains(view, "`t1`.`s http://example.org/name`")
	assert.Contains(view, "INNER JOIN `"+animalTbl+"` AS `t1`")
	assert.Contains(view, "`version`.`type`")

	trigger := section(s, dog.IRI, sqlgen.SectionTrigger)
	assert.Contains(trigger, "BEFORE DELETE ON `"+dogTbl+"`")

	_, ok := reg.LookupClass(vocab.XsdString)
	assert.True(ok)
	assert.Empty(s.BySubject(vocab.XsdString))
}

func TestStatementOrder(t *testing.T) {
	s, _, _ := generate(t, animals(), sqlgen.Postgres{})
	last := sqlgen.SectionBootstrap
	for _, v := range s.Statements {
		assert.GreaterOrEqual(t, int(v.Section), int(last))
		last = v.Section
	}
	script := s.Script()
	assert.Contains(t, script, "LANGUAGE plpgsql")
	trigger := section(s, ex+"Dog", sqlgen.SectionTrigger)
	assert.Contains(t, trigger, `AFTER DELETE ON "t http://example.org/Dog"`)
	assert.NotContains(t, trigger, "BEFORE DELETE")
	assert.Contains(t, trigger, "RETURN NULL;")
	assert.Contains(t, script, "ON CONFLICT DO NOTHING")
}

func TestMultipleParents(t *testing.T) {
	g := triples.NewGraph()
	for _, v := range []string{"A", "B", "C"} {
		g.AddIRIs("", ex+v, vocab.RdfType, vocab.OwlClass)
	}
	g.AddIRIs("", ex+"C", vocab.RdfsSubClassOf, ex+"A")
	g.AddIRIs("", ex+"C", vocab.RdfsSubClassOf, ex+"B")
	g.AddIRIs("", ex+"C", vocab.RdfsSubClassOf, vocab.XsdString)
	s, _, _ := generate(t, g, sqlgen.MySQL{})
	alter := section(s, ex+"C", sqlgen.SectionAlter)
	assert.Equal(t, 3, strings.Count(alter, "FOREIGN KEY"))
}

func TestColumnsPerKind(t *testing.T) {
	g := triples.NewGraph()
	g.AddIRIs("", ex+"Note", vocab.RdfType, vocab.OwlClass)
	g.AddIRIs("", ex+"Link", vocab.RdfType, vocab.OwlClass)
	g.AddIRIs("", ex+"Ref", vocab.RdfType, vocab.OwlClass)
	g.Add(triples.Triple{
		Subject:   triples.NewIRI(ex + "Ref"),
		Predicate: triples.NewIRI(vocab.OwlUnionOf),
		Object:    triples.NewBlank("l0"),
	})
	g.Add(triples.Triple{Subject: triples.NewBlank("l0"),
		Predicate: triples.NewIRI(vocab.RdfFirst), Object: triples.NewIRI(ex + "Link")})
	g.Add(triples.Triple{Subject: triples.NewBlank("l0"),
		Predicate: triples.NewIRI(vocab.RdfRest), Object: triples.NewBlank("l1")})
	g.Add(triples.Triple{Subject: triples.NewBlank("l1"),
		Predicate: triples.NewIRI(vocab.RdfFirst), Object: triples.NewIRI(vocab.XsdInteger)})
	g.Add(triples.Triple{Subject: triples.NewBlank("l1"),
		Predicate: triples.NewIRI(vocab.RdfRest), Object: triples.NewIRI(vocab.RdfNil)})
	g.AddIRIs("", ex+"target", vocab.RdfType, vocab.OwlObjectProperty)
	g.AddIRIs("", ex+"target", vocab.RdfsDomain, ex+"Note")
	g.AddIRIs("", ex+"target", vocab.RdfsRange, ex+"Ref")
	g.AddIRIs("", ex+"blob", vocab.RdfType, vocab.OwlObjectProperty)
	g.AddIRIs("", ex+"blob", vocab.RdfsDomain, ex+"Note")

	s, _, diags := generate(t, g, sqlgen.MySQL{})
	assert.False(t, diags.HasErrors())
	create := section(s, ex+"Note", sqlgen.SectionCreate)
	assert.Contains(t, create, "`* http://example.org/target` INT,")
	assert.Contains(t, create, "`i http://example.org/target` BIGINT,")
	assert.Contains(t, create, "`J http://example.org/blob` JSON,")
	alter := section(s, ex+"Note", sqlgen.SectionAlter)
	assert.Contains(t, alter,
		"FOREIGN KEY (`* http://example.org/target`) REFERENCES `id` (`id`)")
}

func TestShortNames(t *testing.T) {
	long := ex + strings.Repeat("a", 80) + "/Thing"
	g := triples.NewGraph()
	g.AddIRIs("", long, vocab.RdfType, vocab.OwlClass)
	s, reg, _ := generate(t, g, sqlgen.Postgres{})
	c, _ := reg.LookupClass(long)
	name := sqlgen.New(reg, sqlgen.Postgres{}, &diag.Diagnostics{}).TableName(c)
	assert.LessOrEqual(t, len(name), 63)
	assert.Contains(t, name, "~")
	assert.Contains(t, s.Tables, name)
}

func TestSQLiteApply(t *testing.T) {
	s, _, _ := generate(t, animals(), sqlgen.SQLite{})
	db, err := sql.Open("sqlite", ":memory:")
	require.Nil(t, err)
	defer db.Close()

	for _, v := range s.Statements {
		_, err = db.Exec(v.SQL)
		require.Nil(t, err, v.SQL)
	}
	var n int
	err = db.QueryRow(`SELECT count(*) FROM "id"`).Scan(&n)
	require.Nil(t, err)
	assert.Equal(t, 2, n)

	for _, v := range s.Views {
		err = db.QueryRow(`SELECT count(*) FROM "` + v + `"`).Scan(&n)
		require.Nil(t, err, v)
		assert.Equal(t, 0, n)
	}
}

func TestSQLiteDeleteCascade(t *testing.T) {
	s, _, _ := generate(t, animals(), sqlgen.SQLite{})
	db, err := sql.Open("sqlite", ":memory:")
	require.Nil(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.Nil(t, err)
	for _, v := range s.Statements {
		_, err = db.Exec(v.SQL)
		require.Nil(t, err, v.SQL)
	}

	rows := []string{
		`INSERT INTO "id" ("uri") VALUES ('http://example.org/rex')`,
		`INSERT INTO "version" ("created", "id", "type")
  SELECT '2025-01-01 00:00:00', r."id", d."id" FROM "id" r, "id" d
  WHERE r."uri" = 'http://example.org/rex' AND d."uri" = 'http://example.org/Dog'`,
		`INSERT INTO "t http://example.org/Animal"
  ("created", "id", "s http://example.org/name")
  SELECT "created", "id", 'Rex' FROM "version"`,
		`INSERT INTO "t http://example.org/Dog" ("created", "id")
  SELECT "created", "id" FROM "version"`,
	}
	for _, v := range rows {
		_, err = db.Exec(v)
		require.Nil(t, err, v)
	}

	var n int
	require.Nil(t, db.QueryRow(`SELECT count(*) FROM "v http://example.org/Dog"`).Scan(&n))
	assert.Equal(t, 1, n)

	_, err = db.Exec(`DELETE FROM "t http://example.org/Dog"`)
	require.Nil(t, err)
	for _, v := range []string{"version", "t http://example.org/Animal", "t http://example.org/Dog"} {
		require.Nil(t, db.QueryRow(`SELECT count(*) FROM "`+v+`"`).Scan(&n), v)
		assert.Equal(t, 0, n, v)
	}
}
