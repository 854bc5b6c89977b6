// ABOUTME: Charm KV cache backend with optional cloud sync.
// ABOUTME: Keeps cached snapshots on disk and shares them across linked devices.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

const defaultCharmHost = "charm.2389.dev"

// CharmConfig selects the KV database and sync behaviour.
type CharmConfig struct {
	Name     string
	Host     string
	AutoSync bool
}

// kvStore is the subset of *kv.KV the cache uses.
type kvStore interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Sync() error
	IsReadOnly() bool
	Close() error
}

// Charm is a cache backed by a Charm KV database.
type Charm struct {
	kv       kvStore
	autoSync bool
	mu       sync.RWMutex
}

var _ Cache = (*Charm)(nil)

// OpenCharm opens the Charm KV database named by cfg.
// The caller owns the returned client and must Close it.
func OpenCharm(cfg CharmConfig) (*Charm, error) {
	host := cfg.Host
	if host == "" {
		host = defaultCharmHost
	}
	if err := os.Setenv("CHARM_HOST", host); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaultsFallback(cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv %s: %w", cfg.Name, err)
	}
	return newCharm(db, cfg.AutoSync), nil
}

func newCharm(db kvStore, autoSync bool) *Charm {
	c := &Charm{kv: db, autoSync: autoSync}

	// Pull remote state on startup (skip in read-only mode)
	if autoSync && !db.IsReadOnly() {
		_ = db.Sync()
	}
	return c
}

// IsReadOnly returns true when another process holds the database lock.
func (c *Charm) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Get decodes the value stored at key into out.
func (c *Charm) Get(_ context.Context, key string, out any) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("charm get %s: %w", key, err)
	}
	if err := decode(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the encoded value.
func (c *Charm) Set(_ context.Context, key string, value any) error {
	data, err := encode(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return fmt.Errorf("cannot write: database is locked by another process")
	}
	if err := c.kv.Set([]byte(key), data); err != nil {
		return fmt.Errorf("charm set %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Delete removes the keys. Missing keys are ignored.
func (c *Charm) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return fmt.Errorf("cannot write: database is locked by another process")
	}
	for _, key := range keys {
		if err := c.kv.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("charm delete %s: %w", key, err)
		}
	}
	c.syncIfEnabled()
	return nil
}

// Sync synchronizes local state with Charm Cloud.
func (c *Charm) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

func (c *Charm) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// Close closes the KV database.
func (c *Charm) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}
