package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: data/test.db
api:
  auth:
    enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "hotelier", cfg.App.Name)
	assert.Equal(t, 8080, cfg.API.HTTP.Port)
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, "x-api-extra", cfg.API.Auth.HeaderExtra)
	assert.Equal(t, float64(10), cfg.API.RateLimit.RPS)
	assert.Equal(t, 20, cfg.API.RateLimit.Burst)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_API_KEY", "secret-key")
	path := writeConfig(t, `
database:
  path: data/test.db
api:
  auth:
    enabled: true
    api_keys:
      - key: "${TEST_API_KEY}"
        extra: extra
        name: test
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.API.Auth.APIKeys, 1)
	assert.Equal(t, "secret-key", cfg.API.Auth.APIKeys[0].Key)
}

func TestValidateRequiresDatabasePath(t *testing.T) {
	path := writeConfig(t, `
api:
  auth:
    enabled: false
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "database path")
}

func TestValidateRequiresKeysWhenAuthEnabled(t *testing.T) {
	path := writeConfig(t, `
database:
  path: data/test.db
api:
  auth:
    enabled: true
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "no api keys")
}
