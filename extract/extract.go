// Package extract composes block segmentation and metadata analysis into
// the full content extraction pipeline.
package extract

import (
	"time"

	"github.com/fwojciec/pith"
)

// Ensure Service implements pith.Extractor at compile time.
var _ pith.Extractor = (*Service)(nil)

// Service runs the extraction pipeline for one document: segment the
// cleaned fragment, analyze the raw HTML together with the blocks, and
// assemble the envelope. It holds no state beyond its collaborators and
// is safe for concurrent use.
type Service struct {
	Segmenter pith.Segmenter
	Analyzer  pith.Analyzer
}

// Extract implements pith.Extractor.
func (s *Service) Extract(rawHTML string, cleaned pith.CleanResult, sourceURL string) (*pith.ExtractedContent, error) {
	blocks, err := s.Segmenter.Segment(cleaned.ContentHTML)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, pith.Errorf(pith.EUNPROCESSABLE, "no content blocks extracted from %s", sourceURL)
	}

	meta, err := s.Analyzer.Analyze(rawHTML, blocks)
	if err != nil {
		return nil, err
	}

	title := cleaned.Title
	if title == "" {
		title = "Untitled"
	}

	return &pith.ExtractedContent{
		URL:           sourceURL,
		Title:         title,
		Author:        meta.Author,
		DatePublished: meta.DatePublished,
		Blocks:        blocks,
		Metadata:      *meta,
		ExtractedAt:   time.Now().UTC(),
	}, nil
}
