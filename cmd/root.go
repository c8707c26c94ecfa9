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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/internal/iofs"
	"github.com/gnames/owlgen/internal/iologger"
	app "github.com/gnames/owlgen/pkg"
	"github.com/gnames/owlgen/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

var rootCmd = getRootCmd()

// getRootCmd returns the base command when called without any subcommands.
func getRootCmd() *cobra.Command {
	res := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "owlgen",
		Short:   "owlgen compiles OWL ontologies into Go types and SQL schemas",
		Long: `owlgen reads OWL/RDF ontologies together with JSON-LD contexts and
generates a Go object model and a relational schema from them.

Commands:
  - generate: compile ontologies into Go packages and a schema script
  - apply: execute a generated schema against PostgreSQL or SQLite

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (OWLGEN_*)
  3. Config file (~/.config/owlgen/config.yaml)
  4. Built-in defaults

Nested fields use underscores (generate.output_dir becomes
OWLGEN_GENERATE_OUTPUT_DIR).`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "owlgen version" prefix
	res.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	res.Flags().BoolP("version", "V", false, "version for owlgen")

	res.AddCommand(getGenerateCmd(), getApplyCmd())
	return res
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	gn.Info(
		"Configuration file is <em>%s</em>",
		config.ConfigFilePath(homeDir),
	)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("OWLGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Generate configuration
	v.BindEnv("generate.ontology_dirs", "OWLGEN_GENERATE_ONTOLOGY_DIRS")
	v.BindEnv("generate.context_dir", "OWLGEN_GENERATE_CONTEXT_DIR")
	v.BindEnv("generate.contexts", "OWLGEN_GENERATE_CONTEXTS")
	v.BindEnv("generate.override_files", "OWLGEN_GENERATE_OVERRIDE_FILES")
	v.BindEnv("generate.output_dir", "OWLGEN_GENERATE_OUTPUT_DIR")
	v.BindEnv("generate.go_module", "OWLGEN_GENERATE_GO_MODULE")
	v.BindEnv("generate.go_root", "OWLGEN_GENERATE_GO_ROOT")
	v.BindEnv("generate.runtime_import", "OWLGEN_GENERATE_RUNTIME_IMPORT")
	v.BindEnv("generate.sql_dialect", "OWLGEN_GENERATE_SQL_DIALECT")
	v.BindEnv("generate.schema_file", "OWLGEN_GENERATE_SCHEMA_FILE")

	// Database configuration
	v.BindEnv("database.host", "OWLGEN_DATABASE_HOST")
	v.BindEnv("database.port", "OWLGEN_DATABASE_PORT")
	v.BindEnv("database.user", "OWLGEN_DATABASE_USER")
	v.BindEnv("database.password", "OWLGEN_DATABASE_PASSWORD")
	v.BindEnv("database.database", "OWLGEN_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "OWLGEN_DATABASE_SSL_MODE")
	v.BindEnv("database.sqlite_path", "OWLGEN_DATABASE_SQLITE_PATH")

	// Log configuration
	v.BindEnv("log.level", "OWLGEN_LOG_LEVEL")
	v.BindEnv("log.format", "OWLGEN_LOG_FORMAT")
	v.BindEnv("log.destination", "OWLGEN_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "OWLGEN_JOBS_NUMBER")

	v.AutomaticEnv()
}
