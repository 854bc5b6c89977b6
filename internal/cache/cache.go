// ABOUTME: Key-value cache abstraction for entity snapshots and aggregate lists.
// ABOUTME: Values are stored as JSON so any backend can hold structured data.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// Cache stores JSON-encoded values under string keys.
// A missing key is reported as found=false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

func encode(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode cache value: %w", err)
	}
	return data, nil
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode cache value: %w", err)
	}
	return nil
}

// Nop is a cache that never stores anything.
type Nop struct{}

var _ Cache = Nop{}

func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Nop) Set(context.Context, string, any) error         { return nil }
func (Nop) Delete(context.Context, ...string) error        { return nil }
func (Nop) Close() error                                   { return nil }
