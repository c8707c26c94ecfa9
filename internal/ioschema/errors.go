package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// MigrateSchemaError creates an error for failures to create
// the bootstrap tables.
func MigrateSchemaError(err error) error {
	msg := `Cannot create the <em>id</em> and <em>version</em> tables

<em>How to fix:</em>
  1. Check database permissions
  2. Drop the existing tables with <em>owlgen apply --drop</em>`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate bootstrap tables: %w", err),
	}
}

// OpenDatabaseError creates an error for a database file that
// cannot be opened.
func OpenDatabaseError(path string, err error) error {
	msg := "Cannot open database <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open %s: %w", path, err),
	}
}

// ApplyError creates an error for a statement the database
// rejected.
func ApplyError(section, subject string, err error) error {
	msg := `Cannot apply %s statement for <em>%s</em>

<em>How to fix:</em>
  1. Make sure the schema was generated for this database dialect
  2. Apply the script to an empty database`

	return &gn.Error{
		Code: errcode.SchemaApplyError,
		Msg:  msg,
		Vars: []any{section, subject},
		Err:  fmt.Errorf("failed to apply %s statement of %s: %w", section, subject, err),
	}
}

// InspectError creates an error for failures to read back the
// database schema.
func InspectError(err error) error {
	msg := "Cannot inspect the database schema"

	return &gn.Error{
		Code: errcode.SchemaInspectError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to inspect schema: %w", err),
	}
}

// DialectMismatchError creates an error for a schema generated
// for another database.
func DialectMismatchError(have, want string) error {
	msg := "Schema was generated for <em>%s</em>, cannot apply it to <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBUnsupportedDialectError,
		Msg:  msg,
		Vars: []any{have, want},
		Err:  fmt.Errorf("schema dialect %s, database %s", have, want),
	}
}
