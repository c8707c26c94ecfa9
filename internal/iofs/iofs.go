// Package iofs prepares the file system for owlgen: configuration and log
// directories, the default configuration file, and discovery of input
// files.
package iofs

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/owlgen/pkg/config"
	"github.com/gnames/owlgen/pkg/templates"
)

// EnsureDirs creates the configuration and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless the file exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(templates.ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// FindFiles walks dirs and returns sorted paths of regular files whose
// extension is one of exts. Extensions are compared case-insensitively;
// no extensions means every file.
func FindFiles(dirs []string, exts ...string) ([]string, error) {
	var res []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if len(exts) == 0 || slices.Contains(exts, ext) {
				res = append(res, path)
			}
			return nil
		})
		if err != nil {
			return nil, ReadDirError(dir, err)
		}
	}
	slices.Sort(res)
	return slices.Compact(res), nil
}
