// Package memcache is an in-process implementation of domain.Cache used when no
// Redis address is configured.
package memcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"arica_go/internal/adapters/observability"
)

type entry struct {
	body    []byte
	expires time.Time
}

// Cache keeps JSON-encoded values in a fixed-size LRU. Values are encoded on Set so
// callers never share memory with the cache.
type Cache struct {
	l   *lru.Cache[string, entry]
	now func() time.Time
}

func New(size int) (*Cache, error) {
	if size <= 0 {
		size = 512
	}
	l, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{l: l, now: time.Now}, nil
}

func (c *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	e, ok := c.l.Get(key)
	if ok && !e.expires.IsZero() && c.now().After(e.expires) {
		c.l.Remove(key)
		ok = false
	}
	if !ok {
		observability.ObserveCache("lru", "miss")
		return false, nil
	}
	if err := json.Unmarshal(e.body, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	observability.ObserveCache("lru", "hit")
	return true, nil
}

// Set stores v; ttlSec <= 0 keeps it until evicted.
func (c *Cache) Set(_ context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	e := entry{body: b}
	if ttlSec > 0 {
		e.expires = c.now().Add(time.Duration(ttlSec) * time.Second)
	}
	c.l.Add(key, e)
	observability.ObserveCache("lru", "set")
	return nil
}

func (c *Cache) Del(_ context.Context, key string) error {
	c.l.Remove(key)
	observability.ObserveCache("lru", "del")
	return nil
}

func (c *Cache) Len() int { return c.l.Len() }
