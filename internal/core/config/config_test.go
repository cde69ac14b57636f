package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  http:
    port: 8080
    corsOrigins: ["https://app.example.com"]
log:
  level: debug
auth:
  secret: from-file
  tokenTTLMin: 60
db:
  dsn: host=localhost user=app dbname=app
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadFile(t *testing.T) {
	c, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", c.App.HTTP.Addr())
	assert.Equal(t, []string{"https://app.example.com"}, c.App.HTTP.CORSOrigins)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, time.Hour, c.Auth.TokenTTL())
	assert.Equal(t, "db", c.Auth.Store)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "1.0.0", c.App.Version)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_AUTH_SECRET", "from-env")
	t.Setenv("APP_AUTH_STORE", "redis")
	t.Setenv("APP_REDIS_ADDR", "cache:6379")
	t.Setenv("APP_BROKER_ENABLED", "true")

	c, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Auth.Secret)
	assert.Equal(t, "redis", c.Auth.Store)
	assert.Equal(t, "cache:6379", c.Redis.Addr)
	assert.True(t, c.Broker.Enabled)
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("APP_AUTH_SECRET", "s")
	t.Setenv("APP_DB_DSN", "host=db")

	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3333, c.App.HTTP.Port)
	assert.Equal(t, "host=db", c.DB.DSN)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "db:\n  dsn: x\n"))
	assert.ErrorContains(t, err, "auth.secret")

	_, err = Load(writeConfig(t, "auth:\n  secret: s\n  store: memcached\ndb:\n  dsn: x\n"))
	assert.ErrorContains(t, err, "auth.store")

	_, err = Load(writeConfig(t, "app: [broken"))
	assert.Error(t, err)
}
