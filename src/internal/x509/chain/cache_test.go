// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "DefaultConfig",
			testFunc: func(t *testing.T) {
				c := NewCache(nil)
				assert.Equal(t, DefaultCacheConfig, c.Config())

				c = NewCache(&CacheConfig{MaxSize: -1, TTL: -time.Second})
				assert.Equal(t, CacheConfig{MaxSize: 0, TTL: time.Hour}, c.Config())
			},
		},
		{
			name: "GetSetCopies",
			testFunc: func(t *testing.T) {
				c := NewCache(nil)
				data := []byte{1, 2, 3}
				c.Set("http://a", data)
				data[0] = 9

				got, ok := c.Get("http://a")
				require.True(t, ok)
				assert.Equal(t, []byte{1, 2, 3}, got)

				got[1] = 9
				again, _ := c.Get("http://a")
				assert.Equal(t, []byte{1, 2, 3}, again)
			},
		},
		{
			name: "Miss",
			testFunc: func(t *testing.T) {
				c := NewCache(nil)
				_, ok := c.Get("http://missing")
				assert.False(t, ok)
				assert.Equal(t, int64(1), c.Metrics().Misses)
			},
		},
		{
			name: "LRUEviction",
			testFunc: func(t *testing.T) {
				c := NewCache(&CacheConfig{MaxSize: 2})
				c.Set("http://a", []byte("a"))
				c.Set("http://b", []byte("b"))

				_, ok := c.Get("http://a")
				require.True(t, ok)

				c.Set("http://c", []byte("c"))

				_, ok = c.Get("http://b")
				assert.False(t, ok, "b was least recently used")
				_, ok = c.Get("http://a")
				assert.True(t, ok)
				_, ok = c.Get("http://c")
				assert.True(t, ok)

				m := c.Metrics()
				assert.Equal(t, int64(1), m.Evictions)
				assert.Equal(t, int64(2), m.Size)
			},
		},
		{
			name: "OverwriteDoesNotEvict",
			testFunc: func(t *testing.T) {
				c := NewCache(&CacheConfig{MaxSize: 2})
				c.Set("http://a", []byte("a"))
				c.Set("http://b", []byte("b"))
				c.Set("http://a", []byte("a2"))

				got, ok := c.Get("http://a")
				require.True(t, ok)
				assert.Equal(t, []byte("a2"), got)
				assert.Zero(t, c.Metrics().Evictions)
			},
		},
		{
			name: "TTL",
			testFunc: func(t *testing.T) {
				now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
				c := NewCache(&CacheConfig{MaxSize: 10, TTL: time.Minute})
				c.now = func() time.Time { return now }

				c.Set("http://a", []byte("a"))
				now = now.Add(time.Minute)
				_, ok := c.Get("http://a")
				assert.True(t, ok)

				now = now.Add(time.Second)
				_, ok = c.Get("http://a")
				assert.False(t, ok)

				m := c.Metrics()
				assert.Equal(t, int64(1), m.Expirations)
				assert.Zero(t, m.Size)
			},
		},
		{
			name: "ClearAndStats",
			testFunc: func(t *testing.T) {
				c := NewCache(&CacheConfig{MaxSize: 5, TTL: time.Hour})
				c.Set("http://a", make([]byte, 1000))
				c.Get("http://a")
				c.Get("http://b")

				stats := c.Stats()
				assert.Contains(t, stats, "Size: 1/5 entries")
				assert.Contains(t, stats, "Hit Rate: 50.0% (1 hits, 1 misses)")
				assert.Contains(t, stats, "TTL: 1h0m0s")

				c.Clear()
				assert.Equal(t, CacheMetrics{}, c.Metrics())
			},
		},
		{
			name: "Concurrent",
			testFunc: func(t *testing.T) {
				c := NewCache(&CacheConfig{MaxSize: 16})
				var wg sync.WaitGroup
				for i := range 32 {
					wg.Go(func() {
						url := fmt.Sprintf("http://%d", i%20)
						c.Set(url, []byte(url))
						c.Get(url)
					})
				}
				wg.Wait()
				assert.LessOrEqual(t, c.Metrics().Size, int64(16))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
