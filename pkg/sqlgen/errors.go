package sqlgen

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
)

// UnsupportedDialectError is returned for an unknown SQL dialect name.
func UnsupportedDialectError(name string) error {
	msg := `SQL dialect <em>%s</em> is not supported

<em>How to fix:</em>
  Use one of: mysql, postgres, sqlite`
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBUnsupportedDialectError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unsupported dialect %q", fn, name),
	}
}
