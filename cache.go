package pith

// CacheStats is a point-in-time snapshot of cache counters.
type CacheStats struct {
	Hits         int64   `json:"hits"`
	Misses       int64   `json:"misses"`
	Evictions    int64   `json:"evictions"`
	Expirations  int64   `json:"expirations"`
	HitRate      float64 `json:"hit_rate"` // percentage, rounded to two decimals
	Entries      int     `json:"entry_count"`
	StorageBytes int64   `json:"storage_bytes"`
}

// ContentCache stores extraction results keyed by source locator, evicting
// by age and by least recent use under a storage quota.
type ContentCache interface {
	// Get returns the cached content for the locator. The second return
	// is false on a miss; expired and unreadable entries are misses.
	Get(url string) (*ExtractedContent, bool)

	// Set stores the content under the locator, evicting least recently
	// used entries as needed to keep stored bytes within the quota.
	// Returns EINVALID if the payload alone exceeds the quota.
	Set(url string, content *ExtractedContent) error

	// Invalidate removes the entry for the locator, reporting whether one
	// existed.
	Invalidate(url string) bool

	// Clear removes all entries. Counters are preserved.
	Clear()

	// Stats returns a snapshot of the cache counters.
	Stats() CacheStats
}
