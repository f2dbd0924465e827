package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Strict)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "datatree:", cfg.Store.Redis.Prefix)
	assert.Zero(t, cfg.Store.Redis.TTL)
	assert.Empty(t, cfg.Store.MaskKeys)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
strict: true
registry: components.yaml
store:
  driver: redis
  mask_keys: [password, "(?i)token"]
  redis:
    addr: redis:6379
    db: 2
    ttl: 90s
`), 0644))

	t.Setenv("DATATREE_SERVER_ADDR", ":9999")
	t.Setenv("DATATREE_STORE_REDIS_PREFIX", "env:")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.Bool("strict", false, "")
	require.NoError(t, flags.Parse([]string{"--log-level", "warn"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel, "explicit flag wins over file")
	assert.True(t, cfg.Strict, "unset flag does not override file")
	assert.Equal(t, "components.yaml", cfg.Registry)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, "env:", cfg.Store.Redis.Prefix)
	assert.Equal(t, 90*time.Second, cfg.Store.Redis.TTL)
	assert.Equal(t, []string{"password", "(?i)token"}, cfg.Store.MaskKeys)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorContains(t, err, "failed to read config")

	t.Chdir(t.TempDir())
	t.Setenv("DATATREE_STORE_DRIVER", "etcd")
	_, err = Load("", nil)
	assert.ErrorContains(t, err, `unsupported store driver "etcd"`)
}
