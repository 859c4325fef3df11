package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[logs]
level = "debug"

[database]
host = "db"
port = 5433
user = "u"
password = "p"
dbname = "detailing"

[server]
http_port = 9090
cors_origins = ["http://localhost:3000"]

[auth]
jwt_secret = "0123456789abcdef0123"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "/detailing/api", cfg.Server.BasePath)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.True(t, cfg.Migrations.Enabled)
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=detailing sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "postgres://u:p@db:5433/detailing?sslmode=disable", cfg.Database.URL())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DETAILING_DB_HOST", "env-host")
	t.Setenv("DETAILING_HTTP_PORT", "7070")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
}

func TestLoad_ShortSecret(t *testing.T) {
	content := `
[database]
dbname = "detailing"
[auth]
jwt_secret = "short"
`
	_, err := Load(writeConfig(t, content))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
