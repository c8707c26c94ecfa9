package diag_test

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/pkg/diag"
	"github.com/gnames/owlgen/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d diag.Diagnostics
	assert.False(t, d.HasErrors())
	assert.Nil(t, d.Error())

	d.AddInfo(errcode.UnattachedTermError, "http://ex.org/A", "not in context")
	d.AddWarning(errcode.UnresolvedContextError, "http://ex.org/ctx", "skipped")
	d.AddError(errcode.AmbiguousIdentifierCollisionError, "http://ex.org/B",
		"collision")
	assert.Equal(t, 3, d.Len())
	assert.True(t, d.HasErrors())
	require.NotNil(t, d.Error())
	assert.Contains(t, d.Error().Error(), "collision")

	res := d.ByCode(errcode.UnresolvedContextError)
	require.Len(t, res, 1)
	assert.Equal(t, diag.Warning, res[0].Severity)
	assert.Equal(t, "warning <http://ex.org/ctx>: skipped", res[0].String())

	var other diag.Diagnostics
	other.AddInfo(errcode.MissingDomainClassError, "", "x")
	d.Merge(other)
	assert.Len(t, d.Infos, 2)
}

func TestAddErr(t *testing.T) {
	var d diag.Diagnostics
	err := &gn.Error{
		Code: errcode.UnresolvedContextError,
		Msg:  "Cannot resolve <em>%s</em>",
		Vars: []any{"http://ex.org/ctx"},
		Err:  errors.New("boom"),
	}
	d.AddErr(diag.Warning, "http://ex.org/ctx", err)
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, errcode.UnresolvedContextError, d.Warnings[0].Code)
	assert.Equal(t, "Cannot resolve http://ex.org/ctx", d.Warnings[0].Message)

	d.AddErr(diag.Error, "", errors.New("plain"))
	require.Len(t, d.Errors, 1)
	assert.Equal(t, "plain", d.Errors[0].Message)

	d.AddErr(diag.Error, "", nil)
	assert.Len(t, d.Errors, 1)
}
