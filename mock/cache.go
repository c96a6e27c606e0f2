package mock

import "github.com/fwojciec/pith"

var _ pith.ContentCache = (*ContentCache)(nil)

// ContentCache is a mock implementation of pith.ContentCache.
type ContentCache struct {
	GetFn        func(url string) (*pith.ExtractedContent, bool)
	SetFn        func(url string, content *pith.ExtractedContent) error
	InvalidateFn func(url string) bool
	ClearFn      func()
	StatsFn      func() pith.CacheStats
}

func (c *ContentCache) Get(url string) (*pith.ExtractedContent, bool) {
	return c.GetFn(url)
}

func (c *ContentCache) Set(url string, content *pith.ExtractedContent) error {
	return c.SetFn(url, content)
}

func (c *ContentCache) Invalidate(url string) bool {
	return c.InvalidateFn(url)
}

func (c *ContentCache) Clear() {
	c.ClearFn()
}

func (c *ContentCache) Stats() pith.CacheStats {
	return c.StatsFn()
}
