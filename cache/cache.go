// Package cache stores solved tours keyed by the instance they answer.
//
// Four backends share one byte-oriented interface:
//
//	NullCache   - never stores anything (--no-cache)
//	FileCache   - one JSON file per entry under a directory (CLI default)
//	SQLiteCache - a single-file database, handy for a long-running server
//	RedisCache  - shared across server replicas
//
// GetResult and PutResult layer tsp.Result encoding on top. Keys come from
// SolveKey, a SHA-256 over the matrix and the start city, so equal inputs hit
// the same entry whatever backend is used.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/littletsp/tsp"
)

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("cache: unknown backend")

// Cache is a byte store with optional expiry. A zero ttl means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Config selects and parameterises a backend.
type Config struct {
	Backend string
	// Dir is the FileCache root.
	Dir string
	// Path is the SQLiteCache database file.
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open builds the backend named by cfg.Backend. An empty name means none.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch cfg.Backend {
	case "", BackendNone:
		c = NewNullCache()
	case BackendFile:
		c, err = NewFileCache(cfg.Dir)
	case BackendSQLite:
		c, err = NewSQLiteCache(cfg.Path)
	case BackendRedis:
		c, err = NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)

	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data as 64 hex characters.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)

	return hex.EncodeToString(hash[:])
}

// SolveKey identifies the Solve result for m with tours rotated to start.
func SolveKey(m *tsp.CostMatrix, start int) string {
	return hashKey("solve", m.Rows(), start)
}

// GetResult loads a cached tsp.Result. An undecodable entry is deleted and
// reported as a miss.
func GetResult(ctx context.Context, c Cache, key string) (tsp.Result, bool, error) {
	var res tsp.Result
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		return res, false, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		_ = c.Delete(ctx, key)
		return tsp.Result{}, false, nil
	}

	return res, true, nil
}

// PutResult stores res under key.
func PutResult(ctx context.Context, c Cache, key string, res tsp.Result, ttl time.Duration) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cache: encode result: %w", err)
	}

	return c.Set(ctx, key, data, ttl)
}
