package main

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/blogshelf/internal/blogservice"
	"github.com/sushihentaime/blogshelf/internal/common"
)

func newPostPayload() map[string]any {
	return map[string]any{
		"title":       "  Audit Trails  ",
		"description": "Why logs matter",
		"content":     "# Audit\n\nEvery entry counts.",
		"category":    "Skills",
		"tags":        []string{"audit", "logs"},
		"author":      "Meera Rao",
	}
}

func TestHealthCheckHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/v1/healthcheck")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "available", body["status"])

	info := body["system_info"].(map[string]any)
	assert.Equal(t, "memory", info["store"])
}

func TestGetAllBlogsHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	t.Run("full records", func(t *testing.T) {
		code, _, body := ts.get(t, "/v1/blogs")
		assert.Equal(t, http.StatusOK, code)

		blogs := body["blogs"].([]any)
		require.Len(t, blogs, 3)
		first := blogs[0].(map[string]any)
		assert.Equal(t, "1", first["id"])
		assert.Contains(t, first, "content")
	})

	t.Run("summaries", func(t *testing.T) {
		code, _, body := ts.get(t, "/v1/blogs?view=summary")
		assert.Equal(t, http.StatusOK, code)

		blogs := body["blogs"].([]any)
		require.Len(t, blogs, 3)
		first := blogs[0].(map[string]any)
		assert.NotContains(t, first, "content")
		assert.Equal(t, "text-blue-600", first["categoryClass"])
		assert.NotEmpty(t, first["excerpt"])
	})
}

func TestGetBlogHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	tests := []struct {
		name string
		path string
		code int
	}{
		{name: "seeded blog", path: "/v1/blogs/2", code: http.StatusOK},
		{name: "unknown id", path: "/v1/blogs/999", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, body := ts.get(t, tt.path)
			assert.Equal(t, tt.code, code)

			if tt.code == http.StatusOK {
				blog := body["blog"].(map[string]any)
				assert.Equal(t, "Ace Your CA Finals", blog["title"])
				assert.Contains(t, body["html"], "<h2>")
			} else {
				assert.Equal(t, "resource not found", body["error"])
			}
		})
	}

	_, ok := app.cache.Get(common.CacheKeyBlog("2"))
	assert.True(t, ok)
}

func TestCreateBlogHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	// warm the list cache so the create has something to invalidate
	ts.get(t, "/v1/blogs")
	_, ok := app.cache.Get(common.CacheKeyBlogs())
	require.True(t, ok)

	t.Run("valid post", func(t *testing.T) {
		code, headers, body := ts.post(t, "/v1/blogs", newPostPayload())
		require.Equal(t, http.StatusCreated, code)

		blog := body["blog"].(map[string]any)
		assert.Equal(t, "Audit Trails", blog["title"])
		assert.Equal(t, "1 min read", blog["readTime"])
		assert.Equal(t, "/v1/blogs/"+blog["id"].(string), headers.Get("Location"))

		_, ok := app.cache.Get(common.CacheKeyBlogs())
		assert.False(t, ok)

		_, _, list := ts.get(t, "/v1/blogs")
		blogs := list["blogs"].([]any)
		require.Len(t, blogs, 4)
		assert.Equal(t, blog["id"], blogs[0].(map[string]any)["id"])
	})

	t.Run("missing fields", func(t *testing.T) {
		payload := newPostPayload()
		payload["title"] = "   "
		delete(payload, "author")

		code, _, body := ts.post(t, "/v1/blogs", payload)
		assert.Equal(t, http.StatusUnprocessableEntity, code)

		errs := body["error"].(map[string]any)
		assert.Equal(t, "must be provided", errs["title"])
		assert.Equal(t, "must be provided", errs["author"])
	})

	t.Run("unknown field", func(t *testing.T) {
		payload := newPostPayload()
		payload["likes"] = 3

		code, _, body := ts.post(t, "/v1/blogs", payload)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, `request body contains unknown field "likes"`, body["error"])
	})
}

func TestUpdateBlogHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	// cache the detail view first
	code, _, _ := ts.get(t, "/v1/blogs/3")
	require.Equal(t, http.StatusOK, code)

	t.Run("partial update", func(t *testing.T) {
		code, _, body := ts.patch(t, "/v1/blogs/3", map[string]any{"title": "GST in Practice"})
		require.Equal(t, http.StatusOK, code)

		blog := body["blog"].(map[string]any)
		assert.Equal(t, "GST in Practice", blog["title"])
		assert.Equal(t, "Vikram Singh", blog["author"])

		_, _, detail := ts.get(t, "/v1/blogs/3")
		assert.Equal(t, "GST in Practice", detail["blog"].(map[string]any)["title"])
	})

	t.Run("put behaves like patch", func(t *testing.T) {
		code, _, body := ts.put(t, "/v1/blogs/3", map[string]any{"tags": []string{"gst"}})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, []any{"gst"}, body["blog"].(map[string]any)["tags"])
	})

	t.Run("unknown id", func(t *testing.T) {
		code, _, _ := ts.patch(t, "/v1/blogs/404", map[string]any{"title": "x"})
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("bad cover image", func(t *testing.T) {
		code, _, body := ts.patch(t, "/v1/blogs/3", map[string]any{"coverImage": "ftp://example.com/a.png"})
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, "must be an http or https URL", body["error"].(map[string]any)["coverImage"])
	})
}

func TestDeleteBlogHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, _ := ts.delete(t, "/v1/blogs/1")
	assert.Equal(t, http.StatusOK, code)

	code, _, _ = ts.get(t, "/v1/blogs/1")
	assert.Equal(t, http.StatusNotFound, code)

	// deleting an unknown id is not an error
	code, _, _ = ts.delete(t, "/v1/blogs/1")
	assert.Equal(t, http.StatusOK, code)

	_, _, list := ts.get(t, "/v1/blogs")
	assert.Len(t, list["blogs"], 2)
}

func TestResetBlogsHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.delete(t, "/v1/blogs/1")
	ts.delete(t, "/v1/blogs/2")

	code, _, body := ts.post(t, "/v1/reset", map[string]any{})
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["blogs"], 3)

	_, _, list := ts.get(t, "/v1/blogs")
	assert.Len(t, list["blogs"], 3)
}

func TestGetCategoriesHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/v1/categories")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"Finance", "Career", "Regulations", "Skills", "Technology"}, body["categories"])
}

func TestFeedHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	res := ts.do(t, http.MethodGet, "/v1/feed.rss", nil, nil)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/rss+xml; charset=utf-8", res.Header.Get("Content-Type"))

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<rss")
	assert.Contains(t, string(body), "http://blog.test/blogs/1")
}

func TestDraftHandlers(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, _ := ts.get(t, "/v1/draft")
	assert.Equal(t, http.StatusNotFound, code)

	draft := map[string]any{"title": "Half done", "content": "so far"}
	code, _, _ = ts.put(t, "/v1/draft", draft)
	assert.Equal(t, http.StatusOK, code)

	code, _, body := ts.get(t, "/v1/draft")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Half done", body["draft"].(map[string]any)["title"])

	// publishing clears the draft
	code, _, _ = ts.post(t, "/v1/blogs", newPostPayload())
	require.Equal(t, http.StatusCreated, code)

	code, _, _ = ts.get(t, "/v1/draft")
	assert.Equal(t, http.StatusNotFound, code)

	ts.put(t, "/v1/draft", draft)
	code, _, _ = ts.delete(t, "/v1/draft")
	assert.Equal(t, http.StatusOK, code)

	code, _, _ = ts.get(t, "/v1/draft")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouterFallbacks(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/v1/nothing-here")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "resource not found", body["error"])

	code, _, body = ts.post(t, "/v1/categories", map[string]any{})
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "method not allowed", body["error"])
}

// hookKV runs onGet before every read of the store while active.
type hookKV struct {
	common.KVStore
	active atomic.Bool
	onGet  func()
}

func (h *hookKV) Get(ctx context.Context, key string) (string, bool, error) {
	if h.active.Load() {
		h.onGet()
	}
	return h.KVStore.Get(ctx, key)
}

func TestListCacheSkipsFillAfterConcurrentWrite(t *testing.T) {
	app := newTestApplication(t)
	kv := &hookKV{KVStore: common.NewMemoryKV()}
	// a mutation invalidates the cache while the list is being read
	kv.onGet = func() { app.invalidateBlogs("1") }
	kv.active.Store(true)

	app.blogService = blogservice.NewBlogService(kv, nil, app.logger, blogservice.NoLatency)
	ts := newTestServer(t, app.routes())

	for _, path := range []string{"/v1/blogs", "/v1/blogs?view=summary", "/v1/blogs/1"} {
		code, _, _ := ts.get(t, path)
		require.Equal(t, http.StatusOK, code)
	}

	for _, key := range []string{common.CacheKeyBlogs(), common.CacheKeyBlogSummaries(), common.CacheKeyBlog("1")} {
		_, ok := app.cache.Get(key)
		assert.False(t, ok, "%s must not hold a value read before the write", key)
	}

	kv.active.Store(false)

	ts.get(t, "/v1/blogs")
	_, ok := app.cache.Get(common.CacheKeyBlogs())
	assert.True(t, ok)
}
