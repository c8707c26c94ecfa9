package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// cleanList trims values and drops empty ones.
func cleanList(ss []string) []string {
	var res []string
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

// OptGenerateOntologyDirs sets directories with ontology files.
func OptGenerateOntologyDirs(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		if isValidList("Generate Ontology Dirs", ss) {
			c.Generate.OntologyDirs = ss
		}
	}
}

// OptGenerateContextDir sets the directory of context documents.
func OptGenerateContextDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Generate Context Dir", s) {
			c.Generate.ContextDir = s
		}
	}
}

// OptGenerateContexts sets IRIs of contexts to resolve.
func OptGenerateContexts(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		if isValidList("Generate Contexts", ss) {
			c.Generate.Contexts = ss
		}
	}
}

// OptGenerateOverrideFiles sets additional override tables.
func OptGenerateOverrideFiles(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		if isValidList("Generate Override Files", ss) {
			c.Generate.OverrideFiles = ss
		}
	}
}

// OptGenerateOutputDir sets the directory of generated files.
func OptGenerateOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Generate Output Dir", s) {
			c.Generate.OutputDir = s
		}
	}
}

// OptGenerateGoModule sets the import path of the output directory.
func OptGenerateGoModule(s string) Option {
	s = strings.Trim(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidString("Generate Go Module", s) {
			c.Generate.GoModule = s
		}
	}
}

// OptGenerateGoRoot sets the directory of generated packages.
func OptGenerateGoRoot(s string) Option {
	s = strings.Trim(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidString("Generate Go Root", s) {
			c.Generate.GoRoot = s
		}
	}
}

// OptGenerateRuntimeImport sets the import path of the runtime.
func OptGenerateRuntimeImport(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Generate Runtime Import", s) {
			c.Generate.RuntimeImport = s
		}
	}
}

// OptGenerateSQLDialect sets the SQL dialect of the schema script.
// Valid values: "mysql", "postgres", "sqlite".
func OptGenerateSQLDialect(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Generate.SQLDialect", s) {
			c.Generate.SQLDialect = s
		}
	}
}

// OptGenerateSchemaFile sets the name of the schema script.
func OptGenerateSchemaFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Generate Schema File", s) {
			c.Generate.SchemaFile = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseSQLitePath sets the SQLite database file.
func OptDatabaseSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database SQLite Path", s) {
			c.Database.SQLitePath = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
