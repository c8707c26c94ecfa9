package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/owlgen/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	for _, dir := range []string{
		filepath.Join(tmpDir, ".config", "owlgen"),
		filepath.Join(tmpDir, ".local", "share", "owlgen", "logs"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), dir)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), dir)
	}
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	for range 3 {
		err := EnsureDirs(tmpDir)
		require.NoError(t, err)
	}
}

// TestTouchDir_ExistingDirectory verifies existing directory
// is not modified.
func TestTouchDir_ExistingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	existingDir := filepath.Join(tmpDir, "existing")

	err := os.MkdirAll(existingDir, 0700)
	require.NoError(t, err)

	err = touchDir(existingDir)
	require.NoError(t, err)

	info, err := os.Stat(existingDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

// TestEnsureConfigFile_ContentCorrect verifies config file
// content matches embedded template.
func TestEnsureConfigFile_ContentCorrect(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "owlgen",
		"config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, templates.ConfigYAML, string(content))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

// TestEnsureConfigFile_Idempotent verifies existing file
// is not overwritten.
func TestEnsureConfigFile_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "owlgen",
		"config.yaml")
	customContent := "# Custom config\ngenerate:\n  sql_dialect: sqlite"
	err = os.WriteFile(configPath, []byte(customContent), 0644)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content),
		"Existing config file should not be overwritten")
}

func TestFindFiles(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{
		"a.ttl",
		"sub/b.TTL",
		"sub/c.nt",
		"sub/deep/d.owl",
		"notes.txt",
	}
	for _, v := range files {
		path := filepath.Join(tmpDir, filepath.FromSlash(v))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}

	tests := []struct {
		msg  string
		exts []string
		res  []string
	}{
		{"turtle only", []string{".ttl"}, []string{"a.ttl", "sub/b.TTL"}},
		{
			"ontologies",
			[]string{".ttl", ".nt", ".owl"},
			[]string{"a.ttl", "sub/b.TTL", "sub/c.nt", "sub/deep/d.owl"},
		},
		{"all files", nil, []string{"a.ttl", "notes.txt", "sub/b.TTL", "sub/c.nt", "sub/deep/d.owl"}},
	}

	for _, v := range tests {
		res, err := FindFiles([]string{tmpDir, tmpDir}, v.exts...)
		require.NoError(t, err, v.msg)
		rel := make([]string, 0, len(res))
		for _, p := range res {
			r, err := filepath.Rel(tmpDir, p)
			require.NoError(t, err)
			rel = append(rel, filepath.ToSlash(r))
		}
		assert.Equal(t, v.res, rel, v.msg)
	}

	_, err := FindFiles([]string{filepath.Join(tmpDir, "none")})
	assert.Error(t, err)
}
