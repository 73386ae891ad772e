package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "litebind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_EmptyPathDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfig_ParsesFields(t *testing.T) {
	path := writeConfig(t, "format: json\nverbose: true\nbusy_timeout_ms: 500\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 500, cfg.BusyTimeoutMS)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "format: [unterminated\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	path := writeConfig(t, "format: csv\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLoadConfig_NegativeTimeout(t *testing.T) {
	path := writeConfig(t, "busy_timeout_ms: -1\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "busy_timeout_ms")
}
