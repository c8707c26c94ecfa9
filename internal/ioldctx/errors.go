package ioldctx

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
)

// NotFoundError is returned when no document exists for a context IRI.
func NotFoundError(iri, path string) error {
	msg := `Context document for <em>%s</em> not found

<em>How to fix:</em>
  Save the document as <em>%s.jsonld</em>`
	vars := []any{iri, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ContextNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("no document for "+iri)),
	}
}

// ReadFileError is returned when a context document cannot be read.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}
