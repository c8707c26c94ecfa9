package ldcontext

import (
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gnfmt"
)

// Document is a parsed context document.
type Document struct {
	// IRI is the identity of the document.
	IRI string
	// Entries of "@context" in declaration order.
	Entries []Entry
}

// Entry is either a reference to another context or an inline map of
// terms.
type Entry struct {
	// Ref is the IRI of a nested context.
	Ref string
	// Terms maps short names to declared values.
	Terms map[string]string
	// Vocab is the "@vocab" of an inline map.
	Vocab string
}

// Loader provides context documents by IRI.
type Loader interface {
	Load(iri string) (*Document, error)
}

// ParseDocument decodes a JSON-LD document and keeps its "@context".
// Term values are plain strings or objects with "@id"; other values and
// keys starting with '@' are ignored.
func ParseDocument(iri string, data []byte) (*Document, error) {
	var raw map[string]any
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &raw); err != nil {
		return nil, DecodeError(iri, err)
	}
	res := &Document{IRI: iri}
	ctx, ok := raw["@context"]
	if !ok {
		return res, nil
	}
	var items []any
	switch v := ctx.(type) {
	case []any:
		items = v
	default:
		items = []any{v}
	}
	for _, item := range items {
		switch v := item.(type) {
		case string:
			res.Entries = append(res.Entries, Entry{Ref: v})
		case map[string]any:
			res.Entries = append(res.Entries, parseTerms(v))
		}
	}
	return res, nil
}

func parseTerms(m map[string]any) Entry {
	res := Entry{Terms: make(map[string]string)}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		val := m[k]
		if obj, ok := val.(map[string]any); ok {
			val = obj["@id"]
		}
		s, ok := val.(string)
		if !ok {
			continue
		}
		if k == "@vocab" {
			res.Vocab = s
			continue
		}
		if strings.HasPrefix(k, "@") {
			continue
		}
		res.Terms[k] = s
	}
	return res
}
