package ioschema

import (
	"context"

	atlaspg "ariga.io/atlas/sql/postgres"
	"github.com/gnames/owlgen/pkg/db"
	"github.com/gnames/owlgen/pkg/sqlgen"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type pgApplier struct {
	operator db.Operator
}

// NewPostgres creates an Applier that uses the pool of a connected
// operator.
func NewPostgres(op db.Operator) db.Applier {
	return &pgApplier{operator: op}
}

// Apply creates the bootstrap tables with GORM AutoMigrate and runs the
// rest of the script on a single connection.
func (a *pgApplier) Apply(ctx context.Context, s *sqlgen.Schema) (*db.Report, error) {
	want := sqlgen.Postgres{}.Name()
	if s.Dialect != want {
		return nil, DialectMismatchError(s.Dialect, want)
	}
	pool := a.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}

	if err := sqlgen.Migrate(gormDB); err != nil {
		return nil, MigrateSchemaError(err)
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, NotConnectedError()
	}
	defer conn.Release()

	exec := func(ctx context.Context, sql string) error {
		_, err := conn.Exec(ctx, sql)
		return err
	}
	n, err := run(ctx, s, exec, sqlgen.SectionBootstrap)
	if err != nil {
		return nil, err
	}

	drv, err := atlaspg.Open(sqlDB)
	if err != nil {
		return nil, InspectError(err)
	}
	tables, err := inspect(ctx, drv)
	if err != nil {
		return nil, err
	}
	return report(s.Dialect, n, tables), nil
}
