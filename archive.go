package pith

import (
	"context"
	"time"
)

// Extraction is the archived form of an extraction result: the latest
// snapshot for a locator, stored alongside a markdown rendering for
// reading outside the pipeline. The archive keeps exactly one row per
// locator; saving again replaces it.
type Extraction struct {
	ID          string      `json:"id"`
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	ArticleType ArticleType `json:"article_type,omitempty"`
	BlockCount  int         `json:"block_count"`
	Content     string      `json:"content"`  // serialized ExtractedContent JSON
	Markdown    string      `json:"markdown"` // rendering of the cleaned HTML
	ContentHash string      `json:"content_hash"`
	ExtractedAt time.Time   `json:"extracted_at"`
	ArchivedAt  time.Time   `json:"archived_at"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "extraction URL required")
	}
	if e.Content == "" {
		return Errorf(EINVALID, "extraction content required")
	}
	return nil
}

// ExtractionFilter represents a filter for FindExtractions.
type ExtractionFilter struct {
	URL         *string      `json:"url"`
	URLContains *string      `json:"url_contains"`
	ArticleType *ArticleType `json:"article_type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArchiveService stores the latest extraction per source locator.
type ArchiveService interface {
	// SaveExtraction inserts the extraction, replacing any existing row
	// for the same URL.
	SaveExtraction(ctx context.Context, extraction *Extraction) error

	// FindExtractionByURL retrieves the archived extraction for a locator.
	// Returns ENOTFOUND if none exists.
	FindExtractionByURL(ctx context.Context, url string) (*Extraction, error)

	// FindExtractions retrieves extractions matching the filter, most
	// recently archived first.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)

	// DeleteExtraction removes the archived extraction for a locator.
	// Returns ENOTFOUND if none exists.
	DeleteExtraction(ctx context.Context, url string) error
}
