package ioschema

import (
	"context"
	"database/sql"

	atlaslite "ariga.io/atlas/sql/sqlite"
	"github.com/gnames/owlgen/pkg/db"
	"github.com/gnames/owlgen/pkg/sqlgen"
	_ "modernc.org/sqlite"
)

type sqliteApplier struct {
	path string
}

// NewSQLite creates an Applier for the SQLite database file at path.
func NewSQLite(path string) db.Applier {
	return &sqliteApplier{path: path}
}

// Apply runs the whole script, bootstrap tables included.
func (a *sqliteApplier) Apply(ctx context.Context, s *sqlgen.Schema) (*db.Report, error) {
	want := sqlgen.SQLite{}.Name()
	if s.Dialect != want {
		return nil, DialectMismatchError(s.Dialect, want)
	}

	sqlDB, err := sql.Open("sqlite", a.path)
	if err != nil {
		return nil, OpenDatabaseError(a.path, err)
	}
	defer sqlDB.Close()
	// every statement and the inspection see the same database,
	// ":memory:" included
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, OpenDatabaseError(a.path, err)
	}

	exec := func(ctx context.Context, q string) error {
		_, err := sqlDB.ExecContext(ctx, q)
		return err
	}
	n, err := run(ctx, s, exec)
	if err != nil {
		return nil, err
	}

	drv, err := atlaslite.Open(sqlDB)
	if err != nil {
		return nil, InspectError(err)
	}
	tables, err := inspect(ctx, drv)
	if err != nil {
		return nil, err
	}
	return report(s.Dialect, n, tables), nil
}
