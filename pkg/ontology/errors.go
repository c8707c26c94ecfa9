package ontology

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
)

// RegistryFrozenError is returned when a frozen registry is asked to
// accept more statements.
func RegistryFrozenError() error {
	msg := "The ontology graph is already complete"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegistryFrozenError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("registry is frozen")),
	}
}

// RegistryNotFrozenError is returned when generation starts before the
// graph is complete.
func RegistryNotFrozenError() error {
	msg := "The ontology graph is not complete, cannot generate code"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegistryNotFrozenError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("registry is not frozen")),
	}
}
