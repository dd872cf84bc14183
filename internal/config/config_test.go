package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pathfinder.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(FileEnv, "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5001, cfg.HTTP.Port)
	assert.Equal(t, "last_wins", cfg.Solver.DuplicatePolicy)
	assert.Equal(t, "reject", cfg.Solver.EndpointPolicy)
	assert.Equal(t, 4, cfg.Solver.BatchWorkers)
	assert.Empty(t, cfg.Graph.URI)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
[http]
port = 7000
read_timeout = "3s"
metrics_enabled = true

[solver]
duplicate_policy = "keep_min"
max_nodes = 50

[logging]
format = "json"
`)
	t.Setenv(FileEnv, path)
	t.Setenv("SERVER_PORT", "7100")
	t.Setenv("SOLVER_ENDPOINT_POLICY", "ignore")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7100, cfg.HTTP.Port, "env overrides file")
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.True(t, cfg.HTTP.MetricsEnabled)
	assert.Equal(t, "keep_min", cfg.Solver.DuplicatePolicy)
	assert.Equal(t, "ignore", cfg.Solver.EndpointPolicy)
	assert.Equal(t, 50, cfg.Solver.MaxNodes)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, defaultWriteTimeout, cfg.HTTP.WriteTimeout, "unset keys keep defaults")
}

func TestLoadFile_UnknownKey(t *testing.T) {
	path := writeFile(t, "[http]\nprot = 1\n")
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "unknown key")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv(FileEnv, "")

	t.Setenv("SERVER_PORT", "99999")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SERVER_PORT", "")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "SERVER_READ_TIMEOUT")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(FileEnv, filepath.Join(t.TempDir(), "absent.toml"))
	_, err := Load()
	assert.Error(t, err)
}
