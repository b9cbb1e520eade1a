package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClientConfigDefaults(t *testing.T) {
	cfg, err := LoadClientConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.Diagnostics.MaxFiles)
	assert.Equal(t, 20, cfg.Diagnostics.MaxItemsPerFile)
	assert.True(t, cfg.Diagnostics.RequireExistingFile)
	assert.Equal(t, 4, cfg.Workers.PoolSize)
	assert.Equal(t, 8, cfg.Workers.ReadConcurrency)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, *Default(), *cfg)
}

func TestLoadClientConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lspbridge.yaml")
	configContent := `
log_level: debug
log:
  file: /tmp/lspbridge.log
diagnostics:
  max_files: 5
  max_items_per_file: 50
workers:
  pool_size: 2
`
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o644))

	cfg, err := LoadClientConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/lspbridge.log", cfg.Log.File)
	assert.Equal(t, 5, cfg.Diagnostics.MaxFiles)
	assert.Equal(t, 50, cfg.Diagnostics.MaxItemsPerFile)
	assert.Equal(t, 2, cfg.Workers.PoolSize)
	assert.Equal(t, 8, cfg.Workers.ReadConcurrency, "unset keys keep their default")
}

func TestLoadClientConfigEnvOverride(t *testing.T) {
	t.Setenv("LSPBRIDGE_DIAGNOSTICS_MAX_FILES", "3")

	cfg, err := LoadClientConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Diagnostics.MaxFiles)
}

func TestLoadClientConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lspbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diagnostics:\n  max_files: 0\n"), 0o644))

	_, err := LoadClientConfig(path)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "diagnostics.max_files", validationErr.Field)
}

func TestLoadClientConfigMissingFile(t *testing.T) {
	_, err := LoadClientConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateLogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"

	var validationErr *ValidationError
	require.ErrorAs(t, cfg.Validate(), &validationErr)
	assert.Equal(t, "log_level", validationErr.Field)
}
