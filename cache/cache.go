// Package cache provides an in-memory content cache with per-entry TTL,
// gzip-compressed payloads, and least-recently-used eviction under a
// storage quota.
package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pith"
	"github.com/klauspost/compress/gzip"
)

// Defaults applied by New for zero Config fields.
const (
	DefaultTTL                = 24 * time.Hour
	DefaultMaxStorageBytes    = 100 * 1024 * 1024
	DefaultKeyLengthThreshold = 200
)

// compressionLevel balances payload size against CPU on the write path.
const compressionLevel = 6

// Ensure Cache implements pith.ContentCache at compile time.
var _ pith.ContentCache = (*Cache)(nil)

// Config holds the cache tuning knobs. Zero values select the defaults.
type Config struct {
	// TTL is the time-to-live for each entry.
	TTL time.Duration

	// MaxStorageBytes caps the total compressed payload size.
	MaxStorageBytes int64

	// KeyLengthThreshold is the longest locator stored as its own key;
	// longer locators are hashed to bound key overhead.
	KeyLengthThreshold int
}

// entry is one cached payload with its bookkeeping.
type entry struct {
	compressed   []byte
	expiresAt    time.Time
	sizeBytes    int64
	lastAccessed time.Time
}

// Cache is a thread-safe in-memory cache for extraction results.
//
// A single mutex guards all state so the sweep-then-act sequences on the
// read and write paths compose under one hold. Methods named *Locked
// expect the caller to hold the mutex.
type Cache struct {
	ttl      time.Duration
	maxBytes int64
	keyLimit int
	logger   *slog.Logger

	mu          sync.Mutex
	entries     map[string]*entry
	totalBytes  int64
	hits        int64
	misses      int64
	evictions   int64
	expirations int64
}

// New creates a Cache with the given configuration. A nil logger disables
// logging.
func New(config Config, logger *slog.Logger) *Cache {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if config.MaxStorageBytes <= 0 {
		config.MaxStorageBytes = DefaultMaxStorageBytes
	}
	if config.KeyLengthThreshold <= 0 {
		config.KeyLengthThreshold = DefaultKeyLengthThreshold
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		ttl:      config.TTL,
		maxBytes: config.MaxStorageBytes,
		keyLimit: config.KeyLengthThreshold,
		logger:   logger,
		entries:  make(map[string]*entry),
	}
}

// Get implements pith.ContentCache. Expired and unreadable entries are
// misses; a successful read refreshes the entry's access time.
func (c *Cache) Get(url string) (*pith.ExtractedContent, bool) {
	key := c.key(url)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	c.sweepLocked(now)

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if !e.expiresAt.After(now) {
		c.removeLocked(key)
		c.expirations++
		c.misses++
		return nil, false
	}

	content, err := decode(e.compressed)
	if err != nil {
		c.logger.Error("dropping unreadable cache entry", "url", url, "err", err)
		c.removeLocked(key)
		c.misses++
		return nil, false
	}

	e.lastAccessed = now
	c.hits++
	return content, true
}

// Set implements pith.ContentCache. The payload is compressed outside the
// lock; entries are evicted in ascending last-access order until the
// projected total fits the quota.
func (c *Cache) Set(url string, content *pith.ExtractedContent) error {
	compressed, err := encode(content)
	if err != nil {
		return pith.Errorf(pith.EINTERNAL, "failed to encode content for caching: %v", err)
	}
	size := int64(len(compressed))
	if size > c.maxBytes {
		return pith.Errorf(pith.EINVALID, "entry of %d bytes exceeds the %d byte storage quota", size, c.maxBytes)
	}

	key := c.key(url)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	c.sweepLocked(now)

	// Replacing an existing entry is not an eviction.
	c.removeLocked(key)

	if over := c.totalBytes + size - c.maxBytes; over > 0 {
		c.evictLocked(over)
	}

	c.entries[key] = &entry{
		compressed:   compressed,
		expiresAt:    now.Add(c.ttl),
		sizeBytes:    size,
		lastAccessed: now,
	}
	c.totalBytes += size

	c.logger.Debug("cached content", "url", url, "size_bytes", size)
	return nil
}

// Invalidate implements pith.ContentCache.
func (c *Cache) Invalidate(url string) bool {
	key := c.key(url)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	c.removeLocked(key)
	c.logger.Debug("invalidated cache entry", "url", url)
	return true
}

// Clear implements pith.ContentCache. Counters survive a clear.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]*entry)
	c.totalBytes = 0
	c.logger.Info("cleared cache", "entries_removed", removed)
}

// Stats implements pith.ContentCache.
func (c *Cache) Stats() pith.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var hitRate float64
	if total := c.hits + c.misses; total > 0 {
		hitRate = math.Round(float64(c.hits)/float64(total)*100*100) / 100
	}

	return pith.CacheStats{
		Hits:         c.hits,
		Misses:       c.misses,
		Evictions:    c.evictions,
		Expirations:  c.expirations,
		HitRate:      hitRate,
		Entries:      len(c.entries),
		StorageBytes: c.totalBytes,
	}
}

// key derives the cache key from the locator: the locator itself when
// short, else a fixed-length hash of it.
func (c *Cache) key(url string) string {
	if len(url) <= c.keyLimit {
		return url
	}
	return fmt.Sprintf("xxh64:%016x", xxhash.Sum64String(url))
}

// sweepLocked removes entries whose TTL has passed.
func (c *Cache) sweepLocked(now time.Time) {
	removed := 0
	for key, e := range c.entries {
		if !e.expiresAt.After(now) {
			c.removeLocked(key)
			removed++
		}
	}
	if removed > 0 {
		c.expirations += int64(removed)
		c.logger.Debug("removed expired cache entries", "count", removed)
	}
}

// evictLocked frees at least bytesNeeded by removing entries in ascending
// last-access order.
func (c *Cache) evictLocked(bytesNeeded int64) {
	type candidate struct {
		key          string
		lastAccessed time.Time
		size         int64
	}
	candidates := make([]candidate, 0, len(c.entries))
	for key, e := range c.entries {
		candidates = append(candidates, candidate{key, e.lastAccessed, e.sizeBytes})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].lastAccessed.Before(candidates[j].lastAccessed)
	})

	var freed int64
	evicted := 0
	for _, cand := range candidates {
		if freed >= bytesNeeded {
			break
		}
		c.removeLocked(cand.key)
		freed += cand.size
		evicted++
	}
	if evicted > 0 {
		c.evictions += int64(evicted)
		c.logger.Info("evicted cache entries", "count", evicted, "bytes_freed", freed)
	}
}

// removeLocked deletes the entry and adjusts the storage total. Missing
// keys are a no-op.
func (c *Cache) removeLocked(key string) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	c.totalBytes -= e.sizeBytes
	delete(c.entries, key)
}

func encode(content *pith.ExtractedContent) ([]byte, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, compressionLevel)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(compressed []byte) (*pith.ExtractedContent, error) {
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	if err := zr.Close(); err != nil {
		return nil, err
	}

	var content pith.ExtractedContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, err
	}
	return &content, nil
}
