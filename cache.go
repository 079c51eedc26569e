package metaengine

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested item does not exist.
var ErrNotFound = sql.ErrNoRows

// ItemCache is an in-memory cache of published items and their override
// fields with TTL. Public handlers read through it so metadata resolution
// never hits SQLite on the hot path.
type ItemCache struct {
	mu        sync.RWMutex
	items     []ContentItem
	overrides map[string]Overrides
	fetched   time.Time
	ttl       time.Duration
	store     *Store
}

// NewItemCache creates an ItemCache backed by the given Store.
func NewItemCache(s *Store, ttl time.Duration) *ItemCache {
	return &ItemCache{store: s, ttl: ttl}
}

// valid reports whether the cache holds a fresh load. The fetched timestamp,
// not the item slice, carries that state: an empty site is still a valid load.
func (c *ItemCache) valid() bool {
	return !c.fetched.IsZero() && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ItemCache) Invalidate() {
	c.mu.Lock()
	c.items = nil
	c.overrides = nil
	c.fetched = time.Time{}
	c.mu.Unlock()
}

func (c *ItemCache) load() error {
	if c.valid() {
		return nil
	}
	items, err := c.store.ListItems("")
	if err != nil {
		return err
	}
	overrides, err := c.store.ListOverrides()
	if err != nil {
		return err
	}
	c.items = items
	c.overrides = overrides
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached items and overrides after ensuring the cache is
// fresh. It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ItemCache) ensureLoaded() ([]ContentItem, map[string]Overrides, error) {
	c.mu.RLock()
	if c.valid() {
		items, overrides := c.items, c.overrides
		c.mu.RUnlock()
		return items, overrides, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.items, c.overrides, nil
}

// ListItems returns published items, optionally filtered by content type.
func (c *ItemCache) ListItems(contentType string) ([]ContentItem, error) {
	items, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		return items, nil
	}
	var filtered []ContentItem
	for _, item := range items {
		if item.Type == contentType {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// GetItem returns a single published item by slug from the cache.
func (c *ItemCache) GetItem(slug string) (ContentItem, error) {
	items, _, err := c.ensureLoaded()
	if err != nil {
		return ContentItem{}, err
	}
	for _, item := range items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return ContentItem{}, ErrNotFound
}

// GetOverrides returns the stored override fields for an item. Items with no
// stored fields get a zero Overrides.
func (c *ItemCache) GetOverrides(slug string) (Overrides, error) {
	_, overrides, err := c.ensureLoaded()
	if err != nil {
		return Overrides{}, err
	}
	return overrides[slug], nil
}
