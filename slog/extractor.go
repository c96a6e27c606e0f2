// Package slog provides logging decorators for pipeline services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pith"
)

// Ensure LoggingExtractor implements pith.Extractor.
var _ pith.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-document logging.
type LoggingExtractor struct {
	next   pith.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pith.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(rawHTML string, cleaned pith.CleanResult, sourceURL string) (content *pith.ExtractedContent, err error) {
	defer func(begin time.Time) {
		blocks := 0
		if content != nil {
			blocks = len(content.Blocks)
		}
		e.logger.Info("content extraction",
			"url", sourceURL,
			"blocks", blocks,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(rawHTML, cleaned, sourceURL)
}
