package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpWhenDebugModeDisabled(t *testing.T) {
	require.NoError(t, Configure(Config{DebugMode: false}))
	l := Get(CategoryMemory)
	l.Info("should not panic or write anything: %d", 1)
}

func TestFileLoggingWhenDebugModeEnabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Configure(Config{DebugMode: true, Dir: dir, Level: "debug"}))
	defer CloseAll()

	Get(CategoryFrame).Info("frame accepted")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
	assert.Contains(t, filepath.Base(entries[0].Name()), "frame")
}

func TestCategoryDisabledIsNoOp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Configure(Config{
		DebugMode:  true,
		Dir:        dir,
		Categories: map[string]bool{string(CategoryGraph): false},
	}))
	defer CloseAll()

	assert.False(t, IsCategoryEnabled(CategoryGraph))
	assert.True(t, IsCategoryEnabled(CategoryMemory))
}

func TestRequestLoggerIncludesCorrelationID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Configure(Config{DebugMode: true, Dir: dir, Level: "debug"}))
	defer CloseAll()

	rl := WithRequestID(CategoryMemory, "corr-123")
	rl.Info("accept started")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[req:corr-123] accept started")
}
