// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"fmt"
	"sync"
	"time"
)

// CacheEntry is one cached response body.
type CacheEntry struct {
	Data      []byte    // Response body
	FetchedAt time.Time // When the body was fetched
	URL       string    // Source URL for debugging
}

// CacheConfig holds configuration for a [Cache].
type CacheConfig struct {
	MaxSize int           // Maximum number of entries (0 = unlimited, but not recommended)
	TTL     time.Duration // How long an entry stays fresh (default: 1 hour)
}

// CacheMetrics tracks cache performance and usage.
type CacheMetrics struct {
	Size        int64 // Current number of entries
	Hits        int64 // Number of cache hits
	Misses      int64 // Number of cache misses
	Evictions   int64 // Number of LRU evictions
	Expirations int64 // Number of stale entries dropped on lookup
	TotalMemory int64 // Approximate memory usage in bytes
}

// DefaultCacheConfig is used by [NewCache] for a nil config.
var DefaultCacheConfig = CacheConfig{
	MaxSize: 100,
	TTL:     1 * time.Hour,
}

// Cache is an LRU cache of downloaded issuer certificates, keyed by URL.
//
// Thread Safety: Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	config  CacheConfig
	entries map[string]*CacheEntry
	order   []string // access order, least recently used first
	metrics CacheMetrics
	now     func() time.Time
}

// NewCache creates an empty cache. A nil config uses [DefaultCacheConfig].
func NewCache(config *CacheConfig) *Cache {
	cfg := DefaultCacheConfig
	if config != nil {
		cfg = *config
	}
	if cfg.MaxSize < 0 {
		cfg.MaxSize = 0
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheConfig.TTL
	}

	return &Cache{
		config:  cfg,
		entries: make(map[string]*CacheEntry),
		now:     time.Now,
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() CacheConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Get returns a copy of the fresh entry for url.
func (c *Cache) Get(url string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[url]
	if !exists {
		c.metrics.Misses++
		return nil, false
	}
	if c.now().Sub(entry.FetchedAt) > c.config.TTL {
		c.remove(url)
		c.metrics.Expirations++
		c.metrics.Misses++
		return nil, false
	}

	c.metrics.Hits++
	c.touch(url)

	dataCopy := make([]byte, len(entry.Data))
	copy(dataCopy, entry.Data)
	return dataCopy, true
}

// Set stores a copy of data for url, evicting the least recently used entry
// when the cache is full.
func (c *Cache) Set(url string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[url]; !exists {
		for c.config.MaxSize > 0 && len(c.entries) >= c.config.MaxSize && len(c.order) > 0 {
			c.remove(c.order[0])
			c.metrics.Evictions++
		}
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	c.entries[url] = &CacheEntry{
		Data:      dataCopy,
		FetchedAt: c.now(),
		URL:       url,
	}
	c.touch(url)
}

// Clear drops every entry and resets the metrics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)
	c.order = nil
	c.metrics = CacheMetrics{}
}

// Metrics returns a snapshot of the cache metrics.
func (c *Cache) Metrics() CacheMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	var totalMemory int64
	for _, entry := range c.entries {
		totalMemory += int64(len(entry.Data)) + int64(len(entry.URL)) + 24 // Approximate overhead
	}

	metrics := c.metrics
	metrics.Size = int64(len(c.entries))
	metrics.TotalMemory = totalMemory
	return metrics
}

// Stats returns a formatted string with cache statistics.
func (c *Cache) Stats() string {
	metrics := c.Metrics()
	config := c.Config()

	hitRate := float64(0)
	totalRequests := metrics.Hits + metrics.Misses
	if totalRequests > 0 {
		hitRate = float64(metrics.Hits) / float64(totalRequests) * 100
	}

	return fmt.Sprintf("Issuer Cache Statistics:\n"+
		"  Size: %d/%d entries\n"+
		"  Memory Usage: %.2f KB\n"+
		"  Hit Rate: %.1f%% (%d hits, %d misses)\n"+
		"  Evictions: %d\n"+
		"  Expirations: %d\n"+
		"  TTL: %v",
		metrics.Size, config.MaxSize,
		float64(metrics.TotalMemory)/1024,
		hitRate, metrics.Hits, metrics.Misses,
		metrics.Evictions,
		metrics.Expirations,
		config.TTL)
}

// touch moves url to the most recently used position. Callers hold mu.
func (c *Cache) touch(url string) {
	for i, u := range c.order {
		if u == url {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, url)
}

// remove deletes url. Callers hold mu.
func (c *Cache) remove(url string) {
	delete(c.entries, url)
	for i, u := range c.order {
		if u == url {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
