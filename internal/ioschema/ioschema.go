// Package ioschema applies generated schema scripts to databases. This is
// an impure I/O package that implements db.Applier for PostgreSQL (GORM
// creates the bootstrap tables, statements run on one pgx connection) and
// SQLite.
package ioschema

import (
	"context"
	"log/slog"
	"slices"

	"ariga.io/atlas/sql/schema"
	"github.com/dustin/go-humanize"
	"github.com/gnames/owlgen/pkg/db"
	"github.com/gnames/owlgen/pkg/sqlgen"
)

// execer runs one SQL statement.
type execer func(ctx context.Context, sql string) error

// run executes statements of s in order, skipping sections listed in
// skip.
func run(ctx context.Context, s *sqlgen.Schema, exec execer, skip ...sqlgen.Section) (int, error) {
	var res int
	for _, st := range s.Statements {
		if slices.Contains(skip, st.Section) {
			continue
		}
		if err := exec(ctx, st.SQL); err != nil {
			return res, ApplyError(st.Section.String(), st.Subject, err)
		}
		res++
	}
	return res, nil
}

// inspect returns sorted names of tables in the default schema.
func inspect(ctx context.Context, insp schema.Inspector) ([]string, error) {
	s, err := insp.InspectSchema(ctx, "", nil)
	if err != nil {
		return nil, InspectError(err)
	}
	res := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		res = append(res, t.Name)
	}
	slices.Sort(res)
	return res, nil
}

func report(dialect string, n int, tables []string) *db.Report {
	slog.Info("Schema applied",
		"dialect", dialect,
		"statements", humanize.Comma(int64(n)),
		"tables", humanize.Comma(int64(len(tables))),
	)
	return &db.Report{Statements: n, Tables: tables}
}
