package blogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sushihentaime/blogshelf/internal/common"
)

const (
	StorageKey = "blog-app-data"
	DraftKey   = "blog-draft"
)

var ErrRecordNotFound = errors.New("blog not found")

func newBlogModel(kv common.KVStore) *BlogModel {
	return &BlogModel{kv: kv}
}

// hasValidFormat is the shape check applied to stored data: a non-empty
// array whose first element has a truthy description and an array of tags.
// It guards against data left by an older schema.
func hasValidFormat(raw string) bool {
	var data []map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return false
	}

	if len(data) == 0 {
		return false
	}

	first := data[0]
	if !truthy(first["description"]) {
		return false
	}

	_, ok := first["tags"].([]any)
	return ok
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}

// load returns the stored collection. Missing, undecodable or badly shaped
// data is replaced by the seed dataset, in which case reseeded is true.
func (m *BlogModel) load(ctx context.Context) (blogs []Blog, reseeded bool, err error) {
	raw, ok, err := m.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, false, err
	}

	if ok && hasValidFormat(raw) {
		if err := json.Unmarshal([]byte(raw), &blogs); err == nil {
			return blogs, false, nil
		}
	}

	blogs, err = m.reset(ctx)
	if err != nil {
		return nil, false, err
	}

	return blogs, true, nil
}

func (m *BlogModel) reset(ctx context.Context) ([]Blog, error) {
	blogs := seedBlogs()
	if err := m.save(ctx, blogs); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) save(ctx context.Context, blogs []Blog) error {
	if blogs == nil {
		blogs = []Blog{}
	}

	data, err := json.Marshal(blogs)
	if err != nil {
		return fmt.Errorf("encoding blogs: %w", err)
	}

	return m.kv.Set(ctx, StorageKey, string(data))
}

// getDraft returns the stored draft. An undecodable draft counts as absent.
func (m *BlogModel) getDraft(ctx context.Context) (*Draft, bool, error) {
	raw, ok, err := m.kv.Get(ctx, DraftKey)
	if err != nil || !ok {
		return nil, false, err
	}

	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, false, nil
	}

	return &draft, true, nil
}

func (m *BlogModel) saveDraft(ctx context.Context, draft *Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}

	return m.kv.Set(ctx, DraftKey, string(data))
}

func (m *BlogModel) deleteDraft(ctx context.Context) error {
	return m.kv.Delete(ctx, DraftKey)
}

func indexOf(blogs []Blog, id string) int {
	for i := range blogs {
		if blogs[i].ID == id {
			return i
		}
	}

	return -1
}
