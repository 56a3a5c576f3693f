// Package cache keeps raw response bodies of public, slowly changing endpoints.
package cache

import (
	"math"
	"sync"
	"time"
)

// Item represents a cached response body with expiration
type Item struct {
	Body       string
	StatusCode int
	Expiration int64
}

// Cache is an in-memory response cache with expiration, safe for concurrent use.
type Cache struct {
	items           map[string]Item
	mu              sync.RWMutex
	maxSize         int
	cleanupInterval time.Duration
	now             func() time.Time
	stopJanitor     chan struct{}
	stopOnce        sync.Once
}

// New creates a new cache with the given configuration and starts its janitor.
func New(config Config) *Cache {
	return newCache(config, time.Now)
}

func newCache(config Config, now func() time.Time) *Cache {
	cache := &Cache{
		items:           make(map[string]Item),
		maxSize:         config.MaxCacheSize,
		cleanupInterval: config.CleanupInterval,
		now:             now,
		stopJanitor:     make(chan struct{}),
	}

	go cache.janitor()

	return cache
}

// Key builds the cache key of a request. Only unsigned URLs may be used as keys.
func Key(method, url string) string {
	return method + " " + url
}

// Set stores a response body for the given duration. A non-positive duration stores nothing.
func (c *Cache) Set(key string, statusCode int, body string, duration time.Duration) {
	if duration <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item{
		Body:       body,
		StatusCode: statusCode,
		Expiration: c.now().Add(duration).UnixNano(),
	}

	if c.maxSize > 0 && len(c.items) > c.maxSize {
		c.removeOldest()
	}
}

// removeOldest removes the item closest to expiry
func (c *Cache) removeOldest() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, item := range c.items {
		if item.Expiration < oldestTime {
			oldestKey = key
			oldestTime = item.Expiration
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// Get retrieves a live item from the cache
func (c *Cache) Get(key string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || c.now().UnixNano() > item.Expiration {
		return Item{}, false
	}
	return item, true
}

// Len returns the number of stored items, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Delete removes an item from the cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]Item)
}

func (c *Cache) janitor() {
	interval := c.cleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-c.stopJanitor:
			return
		}
	}
}

// Stop stops the janitor goroutine. It is safe to call more than once.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stopJanitor) })
}

func (c *Cache) deleteExpired() {
	now := c.now().UnixNano()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, item := range c.items {
		if now > item.Expiration {
			delete(c.items, key)
		}
	}
}
