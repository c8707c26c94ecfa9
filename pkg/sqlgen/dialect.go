package sqlgen

import (
	"fmt"
	"strings"
)

// Dialect renders the parts of a schema script that differ between
// database engines.
type Dialect interface {
	// Name is the configuration name of the dialect.
	Name() string
	// MaxIdentLen is the identifier length limit in bytes.
	MaxIdentLen() int
	// Quote quotes an identifier.
	Quote(ident string) string
	// QuoteString quotes a string literal.
	QuoteString(s string) string
	// Type maps a neutral column type onto the dialect.
	Type(neutral string) string
	// InsertIgnore inserts value into column unless it is already there.
	InsertIgnore(table, column, value string) string
	// Trigger returns statements that make deleting a row of table delete
	// its version row.
	Trigger(name, table string) string
	// InlineForeignKeys reports if foreign keys are declared inside
	// CREATE TABLE instead of ALTER TABLE.
	InlineForeignKeys() bool
}

// NewDialect returns the dialect with the given name.
func NewDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql", "":
		return MySQL{}, nil
	case "postgres", "postgresql":
		return Postgres{}, nil
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	default:
		return nil, UnsupportedDialectError(name)
	}
}

func quoteWith(q, s string) string {
	return q + strings.ReplaceAll(s, q, q+q) + q
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// MySQL is the default dialect.
type MySQL struct{}

func (MySQL) Name() string              { return "mysql" }
func (MySQL) MaxIdentLen() int          { return 64 }
func (MySQL) Quote(ident string) string { return quoteWith("`", ident) }
func (MySQL) InlineForeignKeys() bool   { return false }
func (MySQL) QuoteString(s string) string {
	return quoteString(strings.ReplaceAll(s, `\`, `\\`))
}

func (MySQL) Type(neutral string) string {
	switch neutral {
	case "IDENTITY":
		return "INT NOT NULL AUTO_INCREMENT PRIMARY KEY"
	case "URI":
		return "VARCHAR(768) NOT NULL UNIQUE"
	default:
		return neutral
	}
}

func (d MySQL) InsertIgnore(table, column, value string) string {
	return fmt.Sprintf("INSERT IGNORE INTO %s (%s) VALUES (%s);",
		d.Quote(table), d.Quote(column), d.QuoteString(value))
}

func (d MySQL) Trigger(name, table string) string {
	return fmt.Sprintf(`DROP TRIGGER IF EXISTS %[1]s;
CREATE TRIGGER %[1]s BEFORE DELETE ON %[2]s
  FOR EACH ROW DELETE FROM %[3]s WHERE %[4]s = old.%[4]s AND %[5]s = old.%[5]s;`,
		d.Quote(name), d.Quote(table), d.Quote(VersionTable),
		d.Quote("created"), d.Quote("id"))
}

// Postgres renders PostgreSQL scripts.
type Postgres struct{}

func (Postgres) Name() string                { return "postgres" }
func (Postgres) MaxIdentLen() int            { return 63 }
func (Postgres) Quote(ident string) string   { return quoteWith(`"`, ident) }
func (Postgres) QuoteString(s string) string { return quoteString(s) }
func (Postgres) InlineForeignKeys() bool     { return false }

func (Postgres) Type(neutral string) string {
	switch neutral {
	case "IDENTITY":
		return "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	case "URI":
		return "TEXT NOT NULL UNIQUE"
	case "INT":
		return "BIGINT"
	case "DOUBLE":
		return "DOUBLE PRECISION"
	case "BLOB":
		return "BYTEA"
	case "DATETIME":
		return "TIMESTAMP"
	case "JSON":
		return "JSONB"
	default:
		return neutral
	}
}

func (d Postgres) InsertIgnore(table, column, value string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING;",
		d.Quote(table), d.Quote(column), d.QuoteString(value))
}

// Trigger runs after the delete: the version row cascades back to the
// deleted row, which PostgreSQL rejects while the row is still being
// deleted.
func (d Postgres) Trigger(name, table string) string {
	return fmt.Sprintf(`CREATE OR REPLACE FUNCTION %[1]s() RETURNS trigger AS $$
BEGIN
  DELETE FROM %[3]s WHERE %[4]s = OLD.%[4]s AND %[5]s = OLD.%[5]s;
  RETURN NULL;
END;
$$ LANGUAGE plpgsql;
DROP TRIGGER IF EXISTS %[1]s ON %[2]s;
CREATE TRIGGER %[1]s AFTER DELETE ON %[2]s
  FOR EACH ROW EXECUTE FUNCTION %[1]s();`,
		d.Quote(name), d.Quote(table), d.Quote(VersionTable),
		d.Quote("created"), d.Quote("id"))
}

// SQLite renders SQLite scripts. SQLite cannot add foreign keys to existing
// tables, they are declared inline.
type SQLite struct{}

func (SQLite) Name() string                { return "sqlite" }
func (SQLite) MaxIdentLen() int            { return 1024 }
func (SQLite) Quote(ident string) string   { return quoteWith(`"`, ident) }
func (SQLite) QuoteString(s string) string { return quoteString(s) }
func (SQLite) InlineForeignKeys() bool     { return true }

func (SQLite) Type(neutral string) string {
	switch neutral {
	case "IDENTITY":
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	case "URI":
		return "TEXT NOT NULL UNIQUE"
	case "INT", "BIGINT":
		return "INTEGER"
	default:
		return neutral
	}
}

func (d SQLite) InsertIgnore(table, column, value string) string {
	return fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s);",
		d.Quote(table), d.Quote(column), d.QuoteString(value))
}

func (d SQLite) Trigger(name, table string) string {
	return fmt.Sprintf(`DROP TRIGGER IF EXISTS %[1]s;
CREATE TRIGGER %[1]s BEFORE DELETE ON %[2]s
FOR EACH ROW BEGIN
  DELETE FROM %[3]s WHERE %[4]s = OLD.%[4]s AND %[5]s = OLD.%[5]s;
END;`,
		d.Quote(name), d.Quote(table), d.Quote(VersionTable),
		d.Quote("created"), d.Quote("id"))
}
