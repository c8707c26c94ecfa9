// Package db declares the database contracts used by 'owlgen apply'.
// Implementations live in internal/iodb and internal/ioschema.
package db

import (
	"context"

	"github.com/gnames/owlgen/pkg/config"
	"github.com/gnames/owlgen/pkg/sqlgen"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages a PostgreSQL connection pool.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. It is nil before Connect.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the public schema has any tables.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables and views of the public schema.
	DropAllTables(ctx context.Context) error
}

// Applier executes a generated schema against a database.
type Applier interface {
	// Apply runs the statements of s in order and inspects the result.
	Apply(ctx context.Context, s *sqlgen.Schema) (*Report, error)
}

// Report summarizes an applied schema.
type Report struct {
	// Statements is the number of executed statements.
	Statements int
	// Tables are names of tables found in the database afterwards.
	Tables []string
}
