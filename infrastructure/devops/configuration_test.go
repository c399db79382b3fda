package devops

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":9000"
timezone: UTC
tokenTTL: 2h
signingSecret: c2VjcmV0
storage:
  driver: sqlite
  path: /tmp/clock.db
users:
  - id: 1
    name: Miro
    username: miro
    password: miro123
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	require.Len(t, cfg.Users, 1)
	assert.Equal(t, "miro", cfg.Users[0].Username)
	assert.Equal(t, 10, cfg.Storage.MaxConnections)

	secret, err := cfg.Secret()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), secret)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "Europe/Zurich", cfg.Timezone)

	_, err = cfg.Secret()
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("SWISSCLOCK_STORAGE", "mysql")
	t.Setenv("DSN", "root:pw@tcp(localhost:3306)/swissclock?parseTime=true")
	t.Setenv("SWISSCLOCK_REPORT_TO", "a@example.com,b@example.com")

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, StorageMySQL, cfg.Storage.Driver)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Reports.To)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Storage.Driver = StorageMySQL
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}
