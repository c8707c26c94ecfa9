package ident

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
)

// CollisionError is returned when two different names map to one
// identifier.
func CollisionError(name, first, second string) error {
	msg := `Identifier <em>%s</em> is ambiguous

It is derived from both
  <em>%s</em>
  <em>%s</em>
Artifacts of the second term are not generated.`
	vars := []any{name, first, second}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AmbiguousIdentifierCollisionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: identifier %q claimed by %q and %q",
			fn, name, first, second),
	}
}
