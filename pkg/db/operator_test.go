package db_test

import (
	"testing"

	"github.com/gnames/owlgen/internal/iodb"
	"github.com/gnames/owlgen/internal/ioschema"
	"github.com/gnames/owlgen/pkg/db"
)

// TestImplementsInterfaces ensures compile-time contract compliance.
func TestImplementsInterfaces(t *testing.T) {
	var _ db.Operator = iodb.NewPgxOperator()
	var _ db.Applier = ioschema.NewPostgres(iodb.NewPgxOperator())
	var _ db.Applier = ioschema.NewSQLite(":memory:")
}
