package iologger_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/owlgen/internal/iologger"
	"github.com/gnames/owlgen/pkg/config"
	"github.com/gnames/owlgen/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	logDir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "warn", Destination: "file"}

	require.NoError(t, iologger.Init(logDir, cfg))
	slog.Info("hidden")
	slog.Warn("shown", "classes", 2)

	data, err := os.ReadFile(filepath.Join(logDir, iologger.LogFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"shown"`)

	// a second Init appends to the same file
	require.NoError(t, iologger.Init(logDir, cfg))
	slog.Error("again")
	data, err = os.ReadFile(filepath.Join(logDir, iologger.LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "shown")
	assert.Contains(t, string(data), "again")
}

func TestInitError(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "missing")
	cfg := config.LogConfig{Format: "text", Level: "info", Destination: "file"}

	err := iologger.Init(logDir, cfg)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}
