package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadYAMLWithDefaults(t *testing.T) {
	p := writeYAML(t, `
mode: release
database:
  host: db.internal
  user: app
  dbname: equipment
auth:
  jwt_secret: s3cret
  token_ttl: 12h
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, ModeRelease, cfg.Mode)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, ":8443", cfg.HTTP.Addr)
	assert.Equal(t, "equipment", cfg.Mongo.Database)
	assert.Equal(t, uint64(10), cfg.Mongo.PoolSize)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	p := writeYAML(t, `
auth:
  jwt_secret: from-file
mongo:
  uri: mongodb://file:27017
`)
	t.Setenv("EQUIPMENT_AUTH_JWT_SECRET", "from-env")
	t.Setenv("EQUIPMENT_MONGO_URI", "mongodb://env:27017")
	t.Setenv("EQUIPMENT_HTTP_ALLOW_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("EQUIPMENT_ADMIN_PHONE", "5551234")
	t.Setenv("EQUIPMENT_ADMIN_EMAIL", "root@example.com")
	t.Setenv("EQUIPMENT_ADMIN_PASSWORD", "changeme")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "mongodb://env:27017", cfg.Mongo.URI)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowOrigins)
	assert.Equal(t, int64(5551234), cfg.Admin.Phone)
}

func TestMissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("EQUIPMENT_AUTH_JWT_SECRET", "only-env")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ModeDev, cfg.Mode)
}

func TestValidate(t *testing.T) {
	_, err := Load(writeYAML(t, "mode: dev\n"))
	assert.ErrorContains(t, err, "jwt_secret")

	_, err = Load(writeYAML(t, "mode: staging\nauth:\n  jwt_secret: x\n"))
	assert.ErrorContains(t, err, "mode")

	_, err = Load(writeYAML(t, "auth:\n  jwt_secret: x\nadmin:\n  email: a@b.c\n"))
	assert.ErrorContains(t, err, "admin.password")
}

func TestTLSFiles(t *testing.T) {
	cfg := &Config{Mode: ModeRelease}
	_, _, ok := cfg.TLSFiles()
	assert.False(t, ok)

	cfg.Certificate = Certs{Cert: "server.crt", Key: "server.key"}
	cert, key, ok := cfg.TLSFiles()
	require.True(t, ok)
	assert.Equal(t, filepath.Join("config", "tls", "release", "server.crt"), cert)
	assert.Equal(t, filepath.Join("config", "tls", "release", "server.key"), key)
}
