package compiler

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
)

// MissingTargetOntologyError is reported when a context targets an
// ontology that no loaded document declares.
func MissingTargetOntologyError(ctx, ontology string) error {
	msg := "No document declares ontology <em>%s</em> targeted by <em>%s</em>"
	vars := []any{ontology, ctx}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MissingTargetOntologyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w", fn,
			errors.New("no file found containing ontology "+ontology)),
	}
}
