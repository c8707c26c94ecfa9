package iooverride_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/internal/iooverride"
	"github.com/gnames/owlgen/pkg/errcode"
	"github.com/gnames/owlgen/pkg/override"
	"github.com/gnames/owlgen/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(first, []byte(`
"http://example.org/Color":
  primitive: "string"
  sql_type: "VARCHAR(16)"
"http://www.w3.org/2001/XMLSchema#string":
  primitive: "string"
  sql_type: "VARCHAR(255)"
`), 0644))
	require.NoError(t, os.WriteFile(second, []byte(`
"http://example.org/Color":
  primitive: "github.com/me/colors.Color"
  fallback: "github.com/me/colors.Parse"
`), 0644))

	tbl, err := iooverride.Load(first, second)
	require.NoError(t, err)

	color, ok := tbl.Lookup("http://example.org/Color")
	require.True(t, ok)
	assert.Equal(t, override.Descriptor{
		Primitive: "github.com/me/colors.Color",
		Fallback:  "github.com/me/colors.Parse",
	}, color, "later files replace whole entries")

	str, ok := tbl.Lookup(vocab.XsdString)
	require.True(t, ok)
	assert.Equal(t, "VARCHAR(255)", str.SQLType)

	assert.Greater(t, len(tbl), len(override.Default()))
}

func TestLoadDefault(t *testing.T) {
	tbl, err := iooverride.Load()
	require.NoError(t, err)
	assert.Equal(t, override.Default(), tbl)
}

func TestLoadErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- a\n- b\n"), 0644))

	tests := []struct {
		msg  string
		path string
		code gn.ErrorCode
	}{
		{"missing file", filepath.Join(dir, "none.yaml"), errcode.ReadFileError},
		{"not a table", bad, errcode.OverrideDecodeError},
	}
	for _, v := range tests {
		_, err := iooverride.Load(v.path)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Equal(t, []any{v.path}, gnErr.Vars, v.msg)
	}
}
