// Package settings wraps the setting store with an in-process
// read-through cache. The cache belongs to the service that owns it, not
// a package global, so tests can build isolated instances.
package settings

import (
	"context"
	"sync"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/setting"
)

// Store is the persistence interface the cache reads through to.
type Store interface {
	Get(ctx context.Context, key string) (setting.Setting, error)
	Set(ctx context.Context, value setting.Setting) error
	List(ctx context.Context) ([]setting.Setting, error)
}

// Cache is a lazy read-through cache over the setting store. Writes go to
// the store first and update the cache only on success, so the cache
// never holds a value the store rejected.
type Cache struct {
	store Store
	now   func() time.Time // injectable for testing

	mu      sync.RWMutex
	entries map[string]setting.Setting
}

// NewCache creates an empty Cache over store.
func NewCache(store Store) *Cache {
	return &Cache{
		store:   store,
		now:     time.Now,
		entries: make(map[string]setting.Setting),
	}
}

// Get returns the setting for key, from the cache when present, otherwise
// from the store.
// POST: a hit on the store populates the cache
func (c *Cache) Get(ctx context.Context, key string) (setting.Setting, error) {
	c.mu.RLock()
	s, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return s, nil
	}

	s, err := c.store.Get(ctx, key)
	if err != nil {
		return setting.Setting{}, err
	}
	c.mu.Lock()
	c.entries[key] = s
	c.mu.Unlock()
	return s, nil
}

// GetOrDefault returns the setting's value, or fallback when the key does
// not exist. Storage failures still surface.
func (c *Cache) GetOrDefault(ctx context.Context, key, fallback string) (string, error) {
	s, err := c.Get(ctx, key)
	if fault.IsNotFound(err) {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	return s.Value, nil
}

// Set validates and persists the setting, then refreshes the cached entry.
// POST: the store and the cache agree on the key
func (c *Cache) Set(ctx context.Context, key, value string) error {
	s := setting.Setting{Key: key, Value: value, UpdatedAt: c.now()}
	if err := s.Validate(); err != nil {
		return fault.Validation("key", err.Error())
	}
	if err := c.store.Set(ctx, s); err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = s
	c.mu.Unlock()
	return nil
}

// List returns every setting straight from the store and refreshes the
// cache with the result.
func (c *Cache) List(ctx context.Context) ([]setting.Setting, error) {
	all, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	for _, s := range all {
		c.entries[s.Key] = s
	}
	c.mu.Unlock()
	return all, nil
}

// Invalidate drops every cached entry. The next reads repopulate from the
// store.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]setting.Setting)
	c.mu.Unlock()
}
