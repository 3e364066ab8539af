package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/littletsp/cache"
	"github.com/katalvlaran/littletsp/server"
)

// envPrefix prefixes every environment override.
const envPrefix = "LITTLETSP_"

// Config is the on-disk configuration. Files may be TOML (default) or YAML
// (.yaml/.yml); LITTLETSP_* environment variables override both.
type Config struct {
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend" yaml:"backend"` // none | file | sqlite | redis
	Dir           string   `toml:"dir" yaml:"dir"`
	Path          string   `toml:"path" yaml:"path"`
	RedisAddr     string   `toml:"redis_addr" yaml:"redis_addr"`
	RedisPassword string   `toml:"redis_password" yaml:"redis_password"`
	RedisDB       int      `toml:"redis_db" yaml:"redis_db"`
	TTL           duration `toml:"ttl" yaml:"ttl"`
}

// ServerConfig configures `littletsp serve`.
type ServerConfig struct {
	Addr      string   `toml:"addr" yaml:"addr"`
	MaxCities int      `toml:"max_cities" yaml:"max_cities"`
	Timeout   duration `toml:"timeout" yaml:"timeout"`
}

// duration decodes Go duration strings ("30s", "24h") from TOML and YAML.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v

	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func defaultConfig() Config {
	var c Config
	c.Cache.Backend = cache.BackendFile
	c.Cache.RedisAddr = "localhost:6379"
	c.Cache.TTL = duration{24 * time.Hour}
	if dir, err := cacheDir(); err == nil {
		c.Cache.Dir = dir
	}
	c.Server.Addr = ":8080"
	c.Server.MaxCities = server.DefaultMaxCities
	c.Server.Timeout = duration{server.DefaultSolveTimeout}

	return c
}

// loadConfig reads path (or LITTLETSP_CONFIG, or the default config file when
// both are empty) over the defaults and applies environment overrides. Only
// an explicitly named file must exist.
func loadConfig(path string) (Config, error) {
	c := defaultConfig()

	explicit := path != ""
	if !explicit {
		if v := os.Getenv(envPrefix + "CONFIG"); v != "" {
			path, explicit = v, true
		}
	}
	if !explicit {
		if dir, err := configDir(); err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decodeConfig(path, data, &c); err != nil {
				return c, fmt.Errorf("config %s: %w", path, err)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	if err := applyEnv(&c); err != nil {
		return c, err
	}
	if c.Cache.Path == "" && c.Cache.Dir != "" {
		c.Cache.Path = filepath.Join(c.Cache.Dir, "cache.db")
	}
	if err := c.validate(); err != nil {
		return c, err
	}

	return c, nil
}

func decodeConfig(path string, data []byte, c *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, c)
	default:
		_, err := toml.Decode(string(data), c)
		return err
	}
}

func applyEnv(c *Config) error {
	str := map[string]*string{
		"CACHE_BACKEND":  &c.Cache.Backend,
		"CACHE_DIR":      &c.Cache.Dir,
		"CACHE_PATH":     &c.Cache.Path,
		"REDIS_ADDR":     &c.Cache.RedisAddr,
		"REDIS_PASSWORD": &c.Cache.RedisPassword,
		"ADDR":           &c.Server.Addr,
	}
	for name, dst := range str {
		if v := os.Getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"REDIS_DB":   &c.Cache.RedisDB,
		"MAX_CITIES": &c.Server.MaxCities,
	}
	for name, dst := range ints {
		if v := os.Getenv(envPrefix + name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = n
		}
	}

	durs := map[string]*duration{
		"CACHE_TTL": &c.Cache.TTL,
		"TIMEOUT":   &c.Server.Timeout,
	}
	for name, dst := range durs {
		if v := os.Getenv(envPrefix + name); v != "" {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
		}
	}

	return nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendSQLite, cache.BackendRedis:
	default:
		return fmt.Errorf("%w: %q (want none, file, sqlite or redis)", cache.ErrUnknownBackend, c.Cache.Backend)
	}
	if c.Server.MaxCities < 2 {
		return fmt.Errorf("server.max_cities must be at least 2, got %d", c.Server.MaxCities)
	}

	return nil
}

// cacheConfig converts to the cache package's backend selection.
func (c Config) cacheConfig() cache.Config {
	return cache.Config{
		Backend:       c.Cache.Backend,
		Dir:           c.Cache.Dir,
		Path:          c.Cache.Path,
		RedisAddr:     c.Cache.RedisAddr,
		RedisPassword: c.Cache.RedisPassword,
		RedisDB:       c.Cache.RedisDB,
	}
}
