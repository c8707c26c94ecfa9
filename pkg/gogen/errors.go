package gogen

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/errcode"
)

// TemplateError is returned when a source template cannot be rendered.
func TemplateError(name string, err error) error {
	msg := "Cannot render template <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TemplateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: template %s: %w", fn, name, err),
	}
}

// FormatSourceError is returned when generated code is not valid Go.
func FormatSourceError(path string, err error) error {
	msg := "Generated file <em>%s</em> is not valid Go"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FormatSourceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: format %s: %w", fn, path, err),
	}
}

// ImportCycleError describes packages that import each other.
func ImportCycleError(pkgs []string) error {
	msg := `Generated packages import each other: %s

<em>How to fix:</em>
  Move the classes into one namespace or break the references`
	vars := []any{strings.Join(pkgs, " -> ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportCycleError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: import cycle %v", fn, pkgs),
	}
}
