// Package cache keeps recently resolved threads in memory. Only the thread
// id, slug and forum are cached, and those never change once a thread
// exists, so entries are never invalidated. Unknown handles are not cached.
package cache

import (
	"context"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/mailru/easyjson"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"tp-forum-engine/engine"
	"tp-forum-engine/models"
)

const (
	shards             = 64
	maxThreadRefSize   = 512
	maxEntriesInWindow = 10000
)

// ThreadCache decorates a ThreadResolver. Concurrent misses for the same
// handle share one lookup.
type ThreadCache struct {
	resolver engine.ThreadResolver
	cache    *bigcache.BigCache
	sf       singleflight.Group
}

func NewThreadCache(resolver engine.ThreadResolver, capacityMB int, ttl time.Duration) (*ThreadCache, error) {
	config := bigcache.DefaultConfig(ttl)
	config.Shards = shards
	config.HardMaxCacheSize = capacityMB
	config.MaxEntrySize = maxThreadRefSize
	config.MaxEntriesInWindow = maxEntriesInWindow
	config.Verbose = false

	cache, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, errors.Wrap(err, "create thread cache")
	}

	return &ThreadCache{
		resolver: resolver,
		cache:    cache,
	}, nil
}

func (c *ThreadCache) ResolveThread(h engine.ThreadHandle) (*models.ThreadRef, error) {
	key := h.String()
	if ref, ok := c.get(key); ok {
		return ref, nil
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if ref, ok := c.get(key); ok {
			return ref, nil
		}

		ref, err := c.resolver.ResolveThread(h)
		if err != nil {
			return nil, err
		}

		c.set(key, ref)
		c.set(engine.ThreadByID(ref.ID).String(), ref)
		if ref.Slug.Valid {
			c.set(engine.ThreadBySlug(ref.Slug.String).String(), ref)
		}
		return ref, nil
	})
	if err != nil {
		return nil, err
	}

	ref := *v.(*models.ThreadRef)
	return &ref, nil
}

func (c *ThreadCache) Close() error {
	return c.cache.Close()
}

func (c *ThreadCache) get(key string) (*models.ThreadRef, bool) {
	data, err := c.cache.Get(key)
	if err != nil {
		return nil, false
	}

	var ref models.ThreadRef
	if err := easyjson.Unmarshal(data, &ref); err != nil {
		return nil, false
	}
	return &ref, true
}

// set drops the entry when it cannot be encoded or stored.
func (c *ThreadCache) set(key string, ref *models.ThreadRef) {
	data, err := easyjson.Marshal(ref)
	if err != nil {
		return
	}
	_ = c.cache.Set(key, data)
}
