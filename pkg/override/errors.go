package override

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
)

// DecodeError is returned when an override table cannot be parsed.
func DecodeError(err error) error {
	msg := `Cannot parse override table

<em>Possible causes:</em>
  1. YAML syntax error
  2. Entry is not a map of primitive, modifier, fallback, sql_type

<em>How to fix:</em>
  Compare the table with the embedded override.yaml`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OverrideDecodeError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot decode override table: %w", fn, err),
	}
}
