package ident_test

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
	"github.com/gnames/owlgen/pkg/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitIRI(t *testing.T) {
	tests := []struct {
		msg, iri string
		res      []string
	}{
		{"hash", "http://example.org/ns#Animal",
			[]string{"example_org", "ns", "Animal"}},
		{"slash", "https://schema.org/Person",
			[]string{"schema_org", "Person"}},
		{"no separators", "urn:isbn:1",
			[]string{ident.Anonymous, "urn_isbn_1"}},
		{"dots", "http://example.org/./../a",
			[]string{"example_org", "a"}},
		{"query", "http://example.org/x?type=Thing",
			[]string{"example_org", "x", "type", "Thing"}},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, ident.SplitIRI(v.iri), v.msg)
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		msg, in, exported, unexported string
	}{
		{"lower", "animal", "Animal", "animal"},
		{"upper", "Dog", "Dog", "dog"},
		{"digit", "3d", "X3d", "x3d"},
		{"dash", "has-part", "Has_part", "has_part"},
		{"keyword", "Type", "Type", "type_"},
		{"empty", "--", "X", "x"},
	}
	for _, v := range tests {
		assert.Equal(t, v.exported, ident.Exported(v.in), v.msg)
		assert.Equal(t, v.unexported, ident.Unexported(v.in), v.msg)
	}
}

func TestPackageDirs(t *testing.T) {
	res := ident.PackageDirs("pojo", "http://example.org/Type/Animal")
	assert.Equal(t, []string{"pojo", "example_org", "type_"}, res)
	res = ident.PackageDirs("", "https://1.example.org/Animal")
	assert.Equal(t, []string{"x1_example_org"}, res)
	assert.Equal(t, "Animal", ident.TypeName("https://1.example.org/Animal"))
	assert.Equal(t, "animal", ident.FileBase("https://1.example.org/Animal"))
}

func TestShorten(t *testing.T) {
	short := "t http://example.org/Animal"
	assert.Equal(t, short, ident.Shorten(short, 64))

	long := "s " + "http://example.org/" + strings.Repeat("very/", 20) +
		"longPropertyName"
	res := ident.Shorten(long, 64)
	assert.LessOrEqual(t, len(res), 64)
	assert.True(t, strings.HasPrefix(res, "s longProp"))
	assert.Contains(t, res, ident.HashSep)

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, res, ident.Shorten(long, 64))
	})

	t.Run("injective", func(t *testing.T) {
		other := long + "2"
		assert.NotEqual(t, res, ident.Shorten(other, 64))
	})

	t.Run("multibyte", func(t *testing.T) {
		s := "t http://example.org/" + strings.Repeat("ж", 80)
		res := ident.Shorten(s, 63)
		assert.True(t, utf8.ValidString(res))
		assert.LessOrEqual(t, len(res), 63)
	})
}

func TestNamer(t *testing.T) {
	n := ident.NewNamer()
	require.Nil(t, n.Claim("Animal", "http://a.org/Animal"))
	require.Nil(t, n.Claim("Animal", "http://a.org/Animal"))

	err := n.Claim("Animal", "http://a.org/animal")
	require.NotNil(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.AmbiguousIdentifierCollisionError, gnErr.Code)
	require.Len(t, gnErr.Vars, 3)
	assert.Equal(t, "http://a.org/Animal", gnErr.Vars[1])
	assert.Equal(t, "http://a.org/animal", gnErr.Vars[2])

	owner, ok := n.Owner("Animal")
	assert.True(t, ok)
	assert.Equal(t, "http://a.org/Animal", owner)
}
