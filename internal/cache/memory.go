// ABOUTME: In-process cache backed by patrickmn/go-cache.
// ABOUTME: Default backend for single-instance deployments and tests.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache. A zero ttl keeps entries until deleted.
type Memory struct {
	c *gocache.Cache
}

var _ Cache = (*Memory)(nil)

// NewMemory creates an in-process cache.
func NewMemory(ttl time.Duration) *Memory {
	exp := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		exp = ttl
		cleanup = 2 * ttl
	}
	return &Memory{c: gocache.New(exp, cleanup)}
}

// Get decodes the value stored at key into out.
func (m *Memory) Get(_ context.Context, key string, out any) (bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		return false, nil
	}
	if err := decode(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a JSON snapshot of value.
func (m *Memory) Set(_ context.Context, key string, value any) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	m.c.SetDefault(key, data)
	return nil
}

// Delete removes the keys. Missing keys are ignored.
func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.c.Delete(key)
	}
	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	return m.c.ItemCount()
}

// Close flushes the cache.
func (m *Memory) Close() error {
	m.c.Flush()
	return nil
}
