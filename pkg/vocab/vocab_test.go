package vocab_test

import (
	"testing"

	"github.com/gnames/owlgen/pkg/vocab"
	"github.com/stretchr/testify/assert"
)

func TestFixup(t *testing.T) {
	tests := []struct {
		msg, iri, res string
	}{
		{"activitystreams", "http://www.w3.org/ns/activitystreams#Note",
			"https://www.w3.org/ns/activitystreams#Note"},
		{"already https", "https://www.w3.org/ns/activitystreams#Note",
			"https://www.w3.org/ns/activitystreams#Note"},
		{"other", "http://example.org/a", "http://example.org/a"},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, vocab.Fixup(v.iri), v.msg)
	}
}

func TestIsAbsolute(t *testing.T) {
	assert.True(t, vocab.IsAbsolute("http://example.org/a"))
	assert.True(t, vocab.IsAbsolute("https://example.org/a"))
	assert.False(t, vocab.IsAbsolute("ex:a"))
	assert.False(t, vocab.IsAbsolute("urn:isbn:1"))
}
