// Package ioldctx loads JSON-LD context documents from a local directory.
// A context IRI maps to a path made of its scheme, host and path
// segments, optionally followed by a .jsonld or .json extension:
//
//	https://www.w3.org/ns/activitystreams
//	<dir>/https/www.w3.org/ns/activitystreams.jsonld
package ioldctx

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/owlgen/pkg/ldcontext"
)

var extensions = []string{"", ".jsonld", ".json"}

type dirLoader struct {
	dir string
}

// New creates a loader of documents stored under dir.
func New(dir string) ldcontext.Loader {
	return &dirLoader{dir: dir}
}

// Load reads and parses the document of a context IRI.
func (l *dirLoader) Load(iri string) (*ldcontext.Document, error) {
	base, err := l.path(iri)
	if err != nil {
		return nil, err
	}
	for _, ext := range extensions {
		path := base + ext
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, ReadFileError(path, err)
		}
		return ldcontext.ParseDocument(iri, data)
	}
	return nil, NotFoundError(iri, base)
}

// path returns the extension-less location of a context document.
func (l *dirLoader) path(iri string) (string, error) {
	u, err := url.Parse(iri)
	if err != nil || u.Host == "" {
		return "", NotFoundError(iri, l.dir)
	}
	parts := []string{l.dir, u.Scheme, u.Host}
	for _, v := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if v == "" || v == "." || v == ".." {
			continue
		}
		parts = append(parts, v)
	}
	return filepath.Join(parts...), nil
}

// Discover returns sorted IRIs of every context document under dir.
func Discover(dir string) ([]string, error) {
	var res []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if iri, ok := iriFor(filepath.ToSlash(rel)); ok {
			res = append(res, iri)
		}
		return nil
	})
	if err != nil {
		return nil, ReadFileError(dir, err)
	}
	slices.Sort(res)
	return slices.Compact(res), nil
}

func iriFor(rel string) (string, bool) {
	scheme, rest, ok := strings.Cut(rel, "/")
	if !ok || (scheme != "http" && scheme != "https") {
		return "", false
	}
	for _, ext := range extensions[1:] {
		if before, found := strings.CutSuffix(rest, ext); found {
			rest = before
			break
		}
	}
	return scheme + "://" + rest, true
}
