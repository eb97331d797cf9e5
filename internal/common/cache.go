package common

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache holds rendered read responses so repeated reads skip the store.
type Cache struct {
	*cache.Cache

	// gen counts invalidations. A fill started before an invalidation is
	// dropped, so a read racing a write cannot cache the old value.
	mu  sync.Mutex
	gen uint64
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{Cache: cache.New(expirationTime, cleanupTime)}
}

// Generation is read before loading the value passed to SetIfCurrent.
func (c *Cache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// SetIfCurrent stores value only if nothing was invalidated since gen.
func (c *Cache) SetIfCurrent(key string, value interface{}, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return false
	}

	c.Cache.Set(key, value, cache.DefaultExpiration)
	return true
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Invalidate drops every given key. Missing keys are ignored.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	for _, key := range keys {
		c.Cache.Delete(key)
	}
}

func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.Cache.Flush()
}

func CacheKeyBlogs() string {
	return "blogs:list"
}

func CacheKeyBlogSummaries() string {
	return "blogs:summary"
}

func CacheKeyBlog(id string) string {
	return "blog:" + id
}
