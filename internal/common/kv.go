package common

import (
	"context"
	"errors"

	"github.com/patrickmn/go-cache"
)

var ErrEmptyKey = errors.New("storage key must not be empty")

// KVStore is the string key-value storage the blog store persists into. It
// plays the role of browser local storage: one serialized value per key.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryKV keeps values in process memory. Nothing expires.
type MemoryKV struct {
	c *cache.Cache
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{c: cache.New(cache.NoExpiration, 0)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}

	s, ok := v.(string)
	if !ok {
		return "", false, nil
	}

	return s, true, nil
}

func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.c.Set(key, value, cache.NoExpiration)
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.c.Delete(key)
	return nil
}
