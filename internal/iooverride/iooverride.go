// Package iooverride reads native-type override tables from YAML files.
package iooverride

import (
	"log/slog"
	"os"

	"github.com/gnames/owlgen/pkg/override"
)

// Load returns the built-in table with every file merged over it in
// order, later files replacing entries of earlier ones.
func Load(paths ...string) (override.Table, error) {
	res := override.Default()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, ReadFileError(path, err)
		}
		tbl, err := override.Parse(data)
		if err != nil {
			return nil, FileDecodeError(path, err)
		}
		res = res.Merge(tbl)
		slog.Info("Override table loaded", "path", path, "entries", len(tbl))
	}
	return res, nil
}
