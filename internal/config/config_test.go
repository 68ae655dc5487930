package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsSilentAndUnbounded(t *testing.T) {
	c := DefaultConfig()
	assert.False(t, c.Logging.DebugMode)
	assert.Equal(t, 0, c.Memory.MaxUndoDepth)
	assert.Equal(t, 0, c.Memory.MaxRedoDepth)
}

func TestLoadParsesYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  debug_mode: true
  level: debug
memory:
  max_undo_depth: 50
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Logging.DebugMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 50, cfg.Memory.MaxUndoDepth)
	assert.Equal(t, 0, cfg.Memory.MaxRedoDepth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
