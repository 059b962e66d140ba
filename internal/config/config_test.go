package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/dashboard-service/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearSecrets(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_POSTGRES_USER", "APP_POSTGRES_PASSWORD", "APP_POSTGRES_DB",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"DB_USER", "DB_PASSWORD", "DB_NAME",
	} {
		t.Setenv(k, "")
	}
}

const fullYAML = `
app:
  name: dashboard-service
  version: 0.1.0
  env: test
  port: 18080

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1
  max_conn_lifetime: 60
  max_conn_idle_time: 30
  health_check_period: 15

http:
  read_timeout: 3
  allowed_origins:
    - https://dash.example.com
`

func TestLoad_FromYAMLAndEnv(t *testing.T) {
	clearSecrets(t)
	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")

	cfg, err := config.Load(writeTempConfig(t, fullYAML))
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, int32(5), cfg.Postgres.MaxConns)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 3, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10, cfg.HTTP.WriteTimeout, "unset keys fall back to defaults")
	assert.Equal(t, []string{"https://dash.example.com"}, cfg.HTTP.AllowedOrigins)
}

func TestLoad_FallbackSecretNames(t *testing.T) {
	clearSecrets(t)
	t.Setenv("POSTGRES_USER", "pguser")
	t.Setenv("DB_PASSWORD", "dbpass")
	t.Setenv("POSTGRES_DB", "pgdb")

	cfg, err := config.Load(writeTempConfig(t, fullYAML))
	require.NoError(t, err)
	assert.Equal(t, "pguser", cfg.Postgres.User)
	assert.Equal(t, "dbpass", cfg.Postgres.Password)
	assert.Equal(t, "pgdb", cfg.Postgres.DBName)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearSecrets(t)
	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_PASSWORD", "p")
	t.Setenv("APP_POSTGRES_DB", "d")
	t.Setenv("APP_APP_PORT", "9191")
	t.Setenv("APP_POSTGRES_HOST", "db.internal")

	cfg, err := config.Load(writeTempConfig(t, fullYAML))
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
}

func TestLoad_MissingRequiredEnvFails(t *testing.T) {
	clearSecrets(t)
	_, err := config.Load(writeTempConfig(t, fullYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation error")
}

func TestLoad_InvalidPortFails(t *testing.T) {
	clearSecrets(t)
	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_PASSWORD", "p")
	t.Setenv("APP_POSTGRES_DB", "d")
	t.Setenv("APP_APP_PORT", "70000")

	_, err := config.Load(writeTempConfig(t, fullYAML))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
