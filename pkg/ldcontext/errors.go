package ldcontext

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
)

// UnresolvedContextError is returned when a context document cannot be
// loaded.
func UnresolvedContextError(iri string, err error) error {
	msg := `Cannot resolve context <em>%s</em>

<em>Possible causes:</em>
  1. The document is missing from the context directory
  2. The document is not valid JSON

<em>How to fix:</em>
  Download the document into the context directory`
	vars := []any{iri}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnresolvedContextError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot resolve context %s: %w", fn, iri, err),
	}
}

// DecodeError is returned when a context document is not valid JSON.
func DecodeError(iri string, err error) error {
	msg := "Cannot decode context document <em>%s</em>"
	vars := []any{iri}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ContextDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode %s: %w", fn, iri, err),
	}
}
