package pojo

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
)

// ValueTypeError is returned when a value cannot be converted to the type
// of a property.
func ValueTypeError(v any, want string) error {
	msg := "Value <em>%v</em> of type %T is not a %s"
	vars := []any{v, v, want}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ValueTypeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %T is not %s", fn, v, want),
	}
}

// ValueValidationError is returned when a value is outside of the value
// space of its datatype.
func ValueValidationError(v any, datatype string) error {
	msg := "Value <em>%v</em> is not a valid %s"
	vars := []any{v, datatype}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ValueValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid %s: %v", fn, datatype, v),
	}
}

// UnknownRecordTypeError is returned when no constructor is registered for
// the type of a record.
func UnknownRecordTypeError(iri string) error {
	msg := "No class is registered for type <em>%s</em>"
	vars := []any{iri}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownRecordTypeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown record type %q", fn, iri),
	}
}
