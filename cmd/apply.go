/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/owlgen/internal/iodb"
	"github.com/gnames/owlgen/internal/ioschema"
	"github.com/gnames/owlgen/pkg/config"
	"github.com/gnames/owlgen/pkg/db"
	"github.com/gnames/owlgen/pkg/sqlgen"
	"github.com/spf13/cobra"
)

// getApplyCmd returns the apply command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getApplyCmd() *cobra.Command {
	var force bool

	applyCmd := &cobra.Command{
		Use:   "apply [ontology_dir...]",
		Short: "Apply a generated schema to a database",
		Long: `Apply compiles ontologies for the postgres or sqlite dialect and
executes the resulting schema against a database.

This command:
  1. Compiles the ontologies the same way 'owlgen generate' does
  2. Connects to PostgreSQL or opens the SQLite file
  3. Checks for existing tables and prompts for confirmation
  4. Creates the id and version tables, then runs the schema script
  5. Reports the tables found in the database afterwards

Use --force to drop existing tables without confirmation.

Examples:
  owlgen apply -d postgres ./ontologies
  owlgen apply -d sqlite --sqlite-path model.sqlite ./ontologies
  owlgen apply -d postgres --force ./ontologies`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, force)
		},
	}

	f := applyCmd.Flags()
	f.StringP("dialect", "d", "", "dialect of the database: postgres or sqlite")
	f.String("host", "", "PostgreSQL host")
	f.IntP("port", "p", 0, "PostgreSQL port")
	f.StringP("user", "u", "", "PostgreSQL user")
	f.String("database", "", "PostgreSQL database")
	f.String("sqlite-path", "", "SQLite database file")
	f.BoolVarP(&force, "force", "f", false,
		"drop existing tables without confirmation")

	return applyCmd
}

func runApply(cmd *cobra.Command, args []string, force bool) error {
	ctx := context.Background()

	opts := flagOptions(cmd, applyFlags...)
	if len(args) > 0 {
		opts = append(opts, config.OptGenerateOntologyDirs(args))
	}
	cfg.Update(opts)

	out, err := compile(cfg.Generate)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	printDiagnostics(out.Diagnostics)
	if err = out.Diagnostics.Error(); err != nil {
		gn.Warn("<warn>Schema is not applied, compilation has errors</warn>")
		return err
	}

	var rep *db.Report
	switch out.Schema.Dialect {
	case sqlgen.Postgres{}.Name():
		rep, err = applyPostgres(ctx, out.Schema, force)
	case sqlgen.SQLite{}.Name():
		rep, err = applySQLite(ctx, out.Schema, force)
	default:
		err = ioschema.DialectMismatchError(out.Schema.Dialect, "postgres or sqlite")
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if rep == nil {
		return nil
	}

	gn.Message(
		"<em>Schema applied: %s statements</em>",
		humanize.Comma(int64(rep.Statements)),
	)
	gn.Info("Tables: <em>%s</em>", strings.Join(rep.Tables, ", "))
	return nil
}

func applyPostgres(
	ctx context.Context,
	s *sqlgen.Schema,
	force bool,
) (*db.Report, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return nil, err
	}

	if hasTables {
		if !force && !confirm("Database contains existing tables.") {
			gn.Info("Aborted. No changes made.")
			return nil, nil
		}
		gn.Info("Dropping all existing tables...")
		if err = op.DropAllTables(ctx); err != nil {
			return nil, err
		}
		gn.Info("All tables dropped")
	}

	return ioschema.NewPostgres(op).Apply(ctx, s)
}

func applySQLite(
	ctx context.Context,
	s *sqlgen.Schema,
	force bool,
) (*db.Report, error) {
	path := cfg.Database.SQLitePath
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if !force && !confirm("SQLite file <em>" + path + "</em> exists.") {
			gn.Info("Aborted. No changes made.")
			return nil, nil
		}
		if err = os.Remove(path); err != nil {
			return nil, ioschema.OpenDatabaseError(path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, ioschema.OpenDatabaseError(path, err)
	}

	gn.Info("Applying schema to <em>%s</em>", path)
	return ioschema.NewSQLite(path).Apply(ctx, s)
}

// confirm asks the user before existing data is dropped.
func confirm(what string) bool {
	gn.Warn("\nWarning: %s", what)
	gn.Warn("Applying the schema will drop ALL existing tables and data.")
	fmt.Print("\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
