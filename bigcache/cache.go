package cache

import (
	"context"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type CacheInterface interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	Close() error
}

// Cache holds resolved asset bytes keyed by their reference.
type Cache struct {
	bigCache *bigcache.BigCache
}

// NewCache builds a cache whose entries live for ttl. A zero ttl uses ten minutes.
// maxSizeMB caps memory use; zero leaves bigcache unbounded.
func NewCache(ctx context.Context, ttl time.Duration, maxSizeMB int) (*Cache, error) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	config := bigcache.DefaultConfig(ttl)
	config.HardMaxCacheSize = maxSizeMB
	config.Verbose = false
	bigCache, err := bigcache.New(ctx, config)
	if err != nil {
		return nil, err
	}
	return &Cache{bigCache: bigCache}, nil
}

func (c *Cache) Set(key string, value []byte) error {
	return c.bigCache.Set(key, value)
}

func (c *Cache) Get(key string) ([]byte, error) {
	v, err := c.bigCache.Get(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, ErrMiss
	}
	return v, err
}

func (c *Cache) Delete(key string) error {
	err := c.bigCache.Delete(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (c *Cache) Close() error {
	return c.bigCache.Close()
}
