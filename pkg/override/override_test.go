package override_test

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
	"github.com/gnames/owlgen/pkg/override"
	"github.com/gnames/owlgen/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	tbl := override.Default()

	d, ok := tbl.Lookup(vocab.XsdString)
	require.True(t, ok)
	assert.Equal(t, "string", d.Primitive)
	assert.Equal(t, "TEXT", d.SQLType)
	assert.True(t, d.Suppressed())

	d, ok = tbl.Lookup(vocab.XsdDateTime)
	require.True(t, ok)
	assert.True(t, d.HasFallback())
	assert.False(t, d.Suppressed())
	assert.Equal(t, "DATETIME", d.SQLType)

	d, ok = tbl.Lookup(vocab.XsdNonNegativeInteger)
	require.True(t, ok)
	assert.Contains(t, d.Modifier, "NonNegativeInteger")

	d, ok = tbl.Lookup(vocab.TypesJSON)
	require.True(t, ok)
	assert.Equal(t, "JSON", d.SQLType)

	_, ok = tbl.Lookup("http://example.org/Unknown")
	assert.False(t, ok)
}

func TestParseMerge(t *testing.T) {
	data := []byte(`
"http://example.org/Money":
  primitive: "github.com/shopspring/decimal.Decimal"
  sql_type: DECIMAL(20,4)
"http://www.w3.org/2001/XMLSchema#string":
  primitive: "string"
  sql_type: VARCHAR(255)
`)
	tbl, err := override.Parse(data)
	require.Nil(t, err)
	assert.Len(t, tbl, 2)

	res := override.Default().Merge(tbl)
	d, _ := res.Lookup(vocab.XsdString)
	assert.Equal(t, "VARCHAR(255)", d.SQLType)
	d, _ = res.Lookup("http://example.org/Money")
	assert.Equal(t, "DECIMAL(20,4)", d.SQLType)
	d, _ = res.Lookup(vocab.XsdBoolean)
	assert.Equal(t, "bool", d.Primitive)
}

func TestParseError(t *testing.T) {
	_, err := override.Parse([]byte("a: [b"))
	require.NotNil(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.OverrideDecodeError, gnErr.Code)
	assert.NotNil(t, gnErr.Err)
}

func TestParseGoRef(t *testing.T) {
	tests := []struct {
		msg, ref, path, name, pkg, qualified string
	}{
		{"builtin", "string", "", "string", "", "string"},
		{"stdlib", "time.Time", "time", "Time", "time", "t.Time"},
		{"nested", "encoding/json.RawMessage", "encoding/json",
			"RawMessage", "json", "t.RawMessage"},
		{"versioned", "gopkg.in/yaml.v3.Node", "gopkg.in/yaml.v3", "Node",
			"yaml", "t.Node"},
		{"slice", "[]byte", "", "[]byte", "", "[]byte"},
		{"pointer", "*big.Int", "big", "*Int", "big", "*t.Int"},
	}
	for _, v := range tests {
		res := override.ParseGoRef(v.ref)
		assert.Equal(t, v.path, res.Path, v.msg)
		assert.Equal(t, v.name, res.Name, v.msg)
		assert.Equal(t, v.pkg, res.PkgName(), v.msg)
		assert.Equal(t, v.qualified, res.Qualified("t"), v.msg)
	}
}
