package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/littletsp/cache"
	"github.com/katalvlaran/littletsp/server"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cacheHome := isolate(t)

	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, cache.BackendFile, c.Cache.Backend)
	assert.Equal(t, filepath.Join(cacheHome, appName), c.Cache.Dir)
	assert.Equal(t, filepath.Join(cacheHome, appName, "cache.db"), c.Cache.Path)
	assert.Equal(t, 24*time.Hour, c.Cache.TTL.Duration)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, server.DefaultMaxCities, c.Server.MaxCities)
	assert.Equal(t, server.DefaultSolveTimeout, c.Server.Timeout.Duration)
}

func TestLoadConfig_TOML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[cache]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2
ttl = "90m"

[server]
addr = "0.0.0.0:9000"
max_cities = 20
timeout = "5s"
`), 0644))

	c, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cache.BackendRedis, c.Cache.Backend)
	assert.Equal(t, "cache:6379", c.Cache.RedisAddr)
	assert.Equal(t, 2, c.Cache.RedisDB)
	assert.Equal(t, 90*time.Minute, c.Cache.TTL.Duration)
	assert.Equal(t, "0.0.0.0:9000", c.Server.Addr)
	assert.Equal(t, 20, c.Server.MaxCities)
	assert.Equal(t, 5*time.Second, c.Server.Timeout.Duration)

	cc := c.cacheConfig()
	assert.Equal(t, "cache:6379", cc.RedisAddr)
	assert.Equal(t, 2, cc.RedisDB)
}

func TestLoadConfig_YAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cache:
  backend: sqlite
  path: /tmp/littletsp.db
server:
  timeout: 1m
`), 0644))

	c, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cache.BackendSQLite, c.Cache.Backend)
	assert.Equal(t, "/tmp/littletsp.db", c.Cache.Path)
	assert.Equal(t, time.Minute, c.Server.Timeout.Duration)
	assert.Equal(t, ":8080", c.Server.Addr, "unset keys keep defaults")
}

func TestLoadConfig_DefaultFileAndEnv(t *testing.T) {
	isolate(t)
	dir, err := configDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[server]\nmax_cities = 12\n"), 0644))

	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 12, c.Server.MaxCities)

	t.Setenv(envPrefix+"MAX_CITIES", "30")
	t.Setenv(envPrefix+"ADDR", ":7000")
	t.Setenv(envPrefix+"CACHE_TTL", "1h")
	c, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 30, c.Server.MaxCities)
	assert.Equal(t, ":7000", c.Server.Addr)
	assert.Equal(t, time.Hour, c.Cache.TTL.Duration)
}

func TestLoadConfig_EnvConfigPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "other.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cache]\nbackend = \"none\"\n"), 0644))
	t.Setenv(envPrefix+"CONFIG", path)

	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, cache.BackendNone, c.Cache.Backend)
}

func TestLoadConfig_Errors(t *testing.T) {
	isolate(t)

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[cache]\nttl = \"soon\"\n"), 0644))
	_, err = loadConfig(bad)
	require.Error(t, err)

	t.Setenv(envPrefix+"CACHE_BACKEND", "memcached")
	_, err = loadConfig("")
	require.ErrorIs(t, err, cache.ErrUnknownBackend)
	t.Setenv(envPrefix+"CACHE_BACKEND", "")

	t.Setenv(envPrefix+"MAX_CITIES", "many")
	_, err = loadConfig("")
	require.Error(t, err)

	t.Setenv(envPrefix+"MAX_CITIES", "1")
	_, err = loadConfig("")
	require.Error(t, err)
}

func TestCacheAndConfigDirs(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/var/cache")
	t.Setenv("XDG_CONFIG_HOME", "/etc/xdg")

	dir, err := cacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/cache", appName), dir)

	dir, err = configDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/etc/xdg", appName), dir)
}

func TestLoadConfig_SQLitePathFollowsDir(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("LITTLETSP_CACHE_DIR", dir)

	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cache.db"), c.Cache.Path)
}
