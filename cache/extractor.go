package cache

import (
	"log/slog"

	"github.com/fwojciec/pith"
)

// Ensure CachingExtractor implements pith.Extractor at compile time.
var _ pith.Extractor = (*CachingExtractor)(nil)

// CachingExtractor fronts an Extractor with a ContentCache keyed by the
// source locator. A cache failure never fails the extraction: write
// errors are logged and the freshly extracted content is returned anyway.
type CachingExtractor struct {
	extractor pith.Extractor
	cache     pith.ContentCache
	logger    *slog.Logger
}

// NewCachingExtractor creates a new CachingExtractor. A nil logger
// disables logging.
func NewCachingExtractor(extractor pith.Extractor, cache pith.ContentCache, logger *slog.Logger) *CachingExtractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CachingExtractor{
		extractor: extractor,
		cache:     cache,
		logger:    logger,
	}
}

// Extract implements pith.Extractor.
func (e *CachingExtractor) Extract(rawHTML string, cleaned pith.CleanResult, sourceURL string) (*pith.ExtractedContent, error) {
	if content, ok := e.cache.Get(sourceURL); ok {
		return content, nil
	}

	content, err := e.extractor.Extract(rawHTML, cleaned, sourceURL)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Set(sourceURL, content); err != nil {
		e.logger.Error("failed to cache extraction", "url", sourceURL, "err", err)
	}

	return content, nil
}
