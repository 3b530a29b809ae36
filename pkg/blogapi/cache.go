package blogapi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/netdepviet/blogadmin/internal/constants"
)

// CacheEntry is one cached response body with its expiry.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	ETag      string    `json:"etag,omitempty"`
}

// Expired reports whether the entry is past its TTL.
func (e *CacheEntry) Expired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Cache is the storage backend for cached read results. DeletePrefix powers
// operation-scoped invalidation: every key for one operation shares a prefix.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// MemoryCache is an in-process Cache with a soft size limit.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get retrieves an entry. Expired entries are treated as absent.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	if entry.Expired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return entry, nil
}

// Set stores an entry, evicting the entry closest to expiry when full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	if len(entry.Data) > constants.MaxCacheValueSize {
		return fmt.Errorf("%w: %d bytes", ErrCacheValueTooLarge, len(entry.Data))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictSoonest()
	}

	c.entries[key] = entry

	return nil
}

// evictSoonest removes the entry with the nearest expiry. Caller holds mu.
func (c *MemoryCache) evictSoonest() {
	var (
		victim   string
		soonest  time.Time
		haveSeen bool
	)

	for key, entry := range c.entries {
		if !haveSeen || entry.ExpiresAt.Before(soonest) {
			victim = key
			soonest = entry.ExpiresAt
			haveSeen = true
		}
	}

	if haveSeen {
		delete(c.entries, victim)
	}
}

// Delete removes one entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	return nil
}

// DeletePrefix removes every entry whose key starts with prefix.
func (c *MemoryCache) DeletePrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]*CacheEntry)
	c.mu.Unlock()

	return nil
}

// Has reports whether a live entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	return ok && !entry.Expired()
}

// Cleanup removes expired entries. Call periodically from a sweeper.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if entry.Expired() {
			delete(c.entries, key)
		}
	}
}

// CacheStats counts cache activity.
type CacheStats struct {
	Hits          int64
	Misses        int64
	Sets          int64
	Invalidations int64
}

// GetHitRate returns hits / (hits + misses), or 0 with no traffic.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// CacheManager layers key derivation and statistics over a Cache backend.
type CacheManager struct {
	cache  Cache
	logger Logger

	mu    sync.Mutex
	stats CacheStats
}

// NewCacheManager creates a manager over the given backend. A nil cache
// falls back to a default-sized memory cache; a nil logger disables logging.
func NewCacheManager(cache Cache, logger Logger) *CacheManager {
	if cache == nil {
		cache = NewMemoryCache(constants.DefaultCacheSize)
	}

	return &CacheManager{cache: cache, logger: logger}
}

// GetCacheKey derives the composite cache key for (operation, params).
// Structurally equal params always produce the same key. The "|" closes the
// operation segment so one operation's keys can never be a prefix of
// another's.
func (m *CacheManager) GetCacheKey(method, path string, params map[string]string) string {
	key := method + ":" + path + "|"
	if len(params) == 0 {
		return key
	}

	query := NewQueryParams()
	for name, value := range params {
		query.WithFilter(name, value)
	}

	return key + query.CacheKeyPart()
}

// OperationPrefix derives the invalidation prefix covering every cached
// params variant of one operation. It includes the operation terminator, so
// deleting by this prefix stops at the operation boundary.
func (m *CacheManager) OperationPrefix(endpoint Endpoint) string {
	return endpoint.Key() + "|"
}

// Get retrieves cached data for a key.
func (m *CacheManager) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := m.cache.Get(ctx, key)
	if err != nil {
		m.count(func(s *CacheStats) { s.Misses++ })

		return nil, err
	}

	m.count(func(s *CacheStats) { s.Hits++ })

	return entry.Data, nil
}

// Set stores data under a key with the given TTL.
func (m *CacheManager) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return m.SetWithETag(ctx, key, data, "", ttl)
}

// SetWithETag stores data with an entity tag for conditional requests.
func (m *CacheManager) SetWithETag(ctx context.Context, key string, data []byte, etag string, ttl time.Duration) error {
	entry := &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
		ETag:      etag,
	}

	err := m.cache.Set(ctx, key, entry)
	if err != nil {
		return fmt.Errorf("caching %s: %w", key, err)
	}

	m.count(func(s *CacheStats) { s.Sets++ })

	return nil
}

// Invalidate removes one cached entry.
func (m *CacheManager) Invalidate(ctx context.Context, key string) error {
	m.count(func(s *CacheStats) { s.Invalidations++ })

	return m.cache.Delete(ctx, key)
}

// InvalidateOperation removes every cached entry of one operation, forcing
// the next read of any params variant to refetch.
func (m *CacheManager) InvalidateOperation(ctx context.Context, endpoint Endpoint) error {
	prefix := m.OperationPrefix(endpoint)

	if m.logger != nil {
		m.logger.Debug("cache invalidation", map[string]interface{}{"operation": prefix})
	}

	m.count(func(s *CacheStats) { s.Invalidations++ })

	return m.cache.DeletePrefix(ctx, prefix)
}

// GetStats returns a snapshot of the cache statistics.
func (m *CacheManager) GetStats() CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stats
}

func (m *CacheManager) count(update func(*CacheStats)) {
	m.mu.Lock()
	update(&m.stats)
	m.mu.Unlock()
}
