package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty temp dir and clears all env
// overrides so each test starts from pure defaults.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvTimeoutSeconds, "")
	t.Setenv(EnvMaxResults, "")
	t.Setenv(EnvPageSize, "")
	return home
}

func TestLoad_defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://civicdb.org/api/graphql", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 100, cfg.MaxResults)
	assert.Equal(t, 25, cfg.PageSize)
}

func TestLoad_envOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvBaseURL, "https://civic.example.test/graphql")
	t.Setenv(EnvTimeoutSeconds, "10")
	t.Setenv(EnvMaxResults, "50")
	t.Setenv(EnvPageSize, "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://civic.example.test/graphql", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 50, cfg.MaxResults)
	assert.Equal(t, 5, cfg.PageSize)
}

func TestLoad_invalidEnv(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{EnvTimeoutSeconds, "soon"},
		{EnvTimeoutSeconds, "0"},
		{EnvMaxResults, "-1"},
		{EnvPageSize, "lots"},
	}
	for _, tt := range tests {
		t.Run(tt.env+"="+tt.value, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_fileValues(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, DefaultConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`
base_url: "https://mirror.example.test/graphql"
timeout_seconds: 15
max_results: 40
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.test/graphql", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 40, cfg.MaxResults)
	// Unset file keys keep their defaults.
	assert.Equal(t, 25, cfg.PageSize)
}

func TestLoad_envOverridesFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, DefaultConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`
base_url: "https://file.example.test/graphql"
max_results: 40
`), 0o644))
	t.Setenv(EnvMaxResults, "60")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.test/graphql", cfg.BaseURL)
	assert.Equal(t, 60, cfg.MaxResults, "env must override file")
}

func TestLoad_badFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, DefaultConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("max_results: [nope"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}
