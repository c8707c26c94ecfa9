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
	"github.com/gnames/owlgen/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag converts one changed flag of a command into a config option.
type funcFlag func(cmd *cobra.Command) (config.Option, bool)

func stringFlag(name string, opt func(string) config.Option) funcFlag {
	return func(cmd *cobra.Command) (config.Option, bool) {
		if !cmd.Flags().Changed(name) {
			return nil, false
		}
		s, _ := cmd.Flags().GetString(name)
		return opt(s), true
	}
}

func sliceFlag(name string, opt func([]string) config.Option) funcFlag {
	return func(cmd *cobra.Command) (config.Option, bool) {
		if !cmd.Flags().Changed(name) {
			return nil, false
		}
		ss, _ := cmd.Flags().GetStringSlice(name)
		return opt(ss), true
	}
}

func intFlag(name string, opt func(int) config.Option) funcFlag {
	return func(cmd *cobra.Command) (config.Option, bool) {
		if !cmd.Flags().Changed(name) {
			return nil, false
		}
		i, _ := cmd.Flags().GetInt(name)
		return opt(i), true
	}
}

// flagOptions collects options of changed flags, so flags only override
// values that were set explicitly.
func flagOptions(cmd *cobra.Command, flags ...funcFlag) []config.Option {
	var res []config.Option
	for _, f := range flags {
		if opt, ok := f(cmd); ok {
			res = append(res, opt)
		}
	}
	return res
}

var generateFlags = []funcFlag{
	stringFlag("context-dir", config.OptGenerateContextDir),
	sliceFlag("context", config.OptGenerateContexts),
	sliceFlag("override", config.OptGenerateOverrideFiles),
	stringFlag("output", config.OptGenerateOutputDir),
	stringFlag("module", config.OptGenerateGoModule),
	stringFlag("root", config.OptGenerateGoRoot),
	stringFlag("dialect", config.OptGenerateSQLDialect),
	stringFlag("schema-file", config.OptGenerateSchemaFile),
	intFlag("jobs", config.OptJobsNumber),
}

var applyFlags = []funcFlag{
	stringFlag("dialect", config.OptGenerateSQLDialect),
	stringFlag("host", config.OptDatabaseHost),
	intFlag("port", config.OptDatabasePort),
	stringFlag("user", config.OptDatabaseUser),
	stringFlag("database", config.OptDatabaseDatabase),
	stringFlag("sqlite-path", config.OptDatabaseSQLitePath),
}
