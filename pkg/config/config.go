// Package config provides configuration management for owlgen.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Generate: ontology_dirs, context_dir, contexts, override_files,
//     output_dir, go_module, go_root, runtime_import, sql_dialect, schema_file
//   - Database: host, port, user, password, database, ssl_mode, sqlite_path
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use OWLGEN_ prefix with underscores for nesting:
//
//	OWLGEN_GENERATE_OUTPUT_DIR=./gen
//	OWLGEN_GENERATE_SQL_DIALECT=postgres
//	OWLGEN_DATABASE_HOST=localhost
//	OWLGEN_LOG_LEVEL=info
//	OWLGEN_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete owlgen configuration.
type Config struct {
	// Generate contains inputs and outputs of the compiler.
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate"`

	// Database contains connection settings used to apply schemas.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers writing files.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// GenerateConfig contains settings of the generate command.
type GenerateConfig struct {
	// OntologyDirs are directories with ontology files. Files with .ttl,
	// .nt, .rdf and .owl extensions are loaded.
	OntologyDirs []string `mapstructure:"ontology_dirs" yaml:"ontology_dirs"`

	// ContextDir is a directory with JSON-LD context documents. A context
	// IRI maps to a path by dropping its scheme.
	ContextDir string `mapstructure:"context_dir" yaml:"context_dir"`

	// Contexts are IRIs of contexts to resolve.
	Contexts []string `mapstructure:"contexts" yaml:"contexts"`

	// OverrideFiles are YAML override tables merged over the built-in one
	// in the given order.
	OverrideFiles []string `mapstructure:"override_files" yaml:"override_files"`

	// OutputDir receives generated sources and the schema script.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// GoModule is the import path of OutputDir.
	GoModule string `mapstructure:"go_module" yaml:"go_module"`

	// GoRoot is the slash separated directory of generated packages inside
	// OutputDir.
	GoRoot string `mapstructure:"go_root" yaml:"go_root"`

	// RuntimeImport is the import path of the runtime of generated code.
	RuntimeImport string `mapstructure:"runtime_import" yaml:"runtime_import"`

	// SQLDialect of the schema script.
	// Valid values: "mysql", "postgres", "sqlite"
	SQLDialect string `mapstructure:"sql_dialect" yaml:"sql_dialect"`

	// SchemaFile is the name of the schema script inside OutputDir.
	SchemaFile string `mapstructure:"schema_file" yaml:"schema_file"`
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// SQLitePath is the database file used for the sqlite dialect.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Generate: GenerateConfig{
			OutputDir:     "gen",
			GoModule:      "example.com/model",
			GoRoot:        "pojo",
			RuntimeImport: "github.com/gnames/owlgen/pkg/pojo",
			SQLDialect:    "mysql",
			SchemaFile:    "schema.sql",
		},
		Database: DatabaseConfig{
			Host:       "localhost",
			Port:       5432,
			User:       "postgres",
			Password:   "postgres",
			Database:   "owlgen",
			SSLMode:    "disable",
			SQLitePath: "owlgen.sqlite",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
