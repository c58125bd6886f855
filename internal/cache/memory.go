package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory implements Cache on an in-process TTL map.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory cache. defaultTTL applies to entries stored
// with ttl <= 0; cleanupInterval is the expired-entry sweep period.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{cache: gocache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a value.
func (m *Memory) Get(key string) ([]byte, bool) {
	if val, found := m.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value with the given TTL.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	m.cache.Set(key, value, ttl)
}

// Delete removes a value.
func (m *Memory) Delete(key string) {
	m.cache.Delete(key)
}

// Clear removes every value.
func (m *Memory) Clear() {
	m.cache.Flush()
}
