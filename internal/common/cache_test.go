package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupTestCache(t *testing.T) (*Cache, func()) {
	t.Helper()

	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_Set(t *testing.T) {
	cache, cleanup := setupTestCache(t)
	defer cleanup()

	cache.Set("key", "value")

	if _, ok := cache.Get("key"); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_Invalidate(t *testing.T) {
	cache, cleanup := setupTestCache(t)
	defer cleanup()

	cache.Set(CacheKeyBlogs(), "list")
	cache.Set(CacheKeyBlog("42"), "detail")
	cache.Set(CacheKeyBlog("7"), "other")

	cache.Invalidate(CacheKeyBlogs(), CacheKeyBlog("42"), "missing")

	_, ok := cache.Get(CacheKeyBlogs())
	assert.False(t, ok)
	_, ok = cache.Get(CacheKeyBlog("42"))
	assert.False(t, ok)
	_, ok = cache.Get(CacheKeyBlog("7"))
	assert.True(t, ok)
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestCache(t)
	defer cleanup()

	cache.Set("key", "value")
	cache.Flush()

	if _, ok := cache.Get("key"); ok {
		t.Error("expected cache to be flushed")
	}
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "blog:abc", CacheKeyBlog("abc"))
	assert.NotEqual(t, CacheKeyBlogs(), CacheKeyBlogSummaries())
}

func TestCache_SetIfCurrent(t *testing.T) {
	testCases := []struct {
		name    string
		between func(c *Cache)
		stored  bool
	}{
		{name: "no writes", between: func(c *Cache) {}, stored: true},
		{name: "unrelated set", between: func(c *Cache) { c.Set("other", 1) }, stored: true},
		{name: "invalidated", between: func(c *Cache) { c.Invalidate(CacheKeyBlogs()) }, stored: false},
		{name: "flushed", between: func(c *Cache) { c.Flush() }, stored: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cache, cleanup := setupTestCache(t)
			defer cleanup()

			gen := cache.Generation()
			tc.between(cache)

			assert.Equal(t, tc.stored, cache.SetIfCurrent(CacheKeyBlogs(), "stale list", gen))
			_, ok := cache.Get(CacheKeyBlogs())
			assert.Equal(t, tc.stored, ok)
		})
	}
}
