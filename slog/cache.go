package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pith"
)

// Ensure LoggingCache implements pith.ContentCache.
var _ pith.ContentCache = (*LoggingCache)(nil)

// LoggingCache wraps a ContentCache with debug logging. Lookups and
// stores are logged at debug level; clearing the cache is logged at info.
type LoggingCache struct {
	next   pith.ContentCache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next pith.ContentCache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs the lookup outcome.
func (c *LoggingCache) Get(url string) (content *pith.ExtractedContent, ok bool) {
	defer func(begin time.Time) {
		c.logger.Debug("cache lookup",
			"url", url,
			"hit", ok,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Get(url)
}

// Set delegates to the wrapped cache and logs the store outcome.
func (c *LoggingCache) Set(url string, content *pith.ExtractedContent) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache store",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Set(url, content)
}

// Invalidate delegates to the wrapped cache and logs the removal.
func (c *LoggingCache) Invalidate(url string) bool {
	existed := c.next.Invalidate(url)
	c.logger.Debug("cache invalidation",
		"url", url,
		"existed", existed,
	)
	return existed
}

// Clear delegates to the wrapped cache.
func (c *LoggingCache) Clear() {
	c.next.Clear()
	c.logger.Info("cache cleared")
}

// Stats delegates to the wrapped cache.
func (c *LoggingCache) Stats() pith.CacheStats {
	return c.next.Stats()
}
