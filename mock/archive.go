package mock

import (
	"context"

	"github.com/fwojciec/pith"
)

var _ pith.ArchiveService = (*ArchiveService)(nil)

// ArchiveService is a mock implementation of pith.ArchiveService.
type ArchiveService struct {
	SaveExtractionFn      func(ctx context.Context, extraction *pith.Extraction) error
	FindExtractionByURLFn func(ctx context.Context, url string) (*pith.Extraction, error)
	FindExtractionsFn     func(ctx context.Context, filter pith.ExtractionFilter) ([]*pith.Extraction, error)
	DeleteExtractionFn    func(ctx context.Context, url string) error
}

func (s *ArchiveService) SaveExtraction(ctx context.Context, extraction *pith.Extraction) error {
	return s.SaveExtractionFn(ctx, extraction)
}

func (s *ArchiveService) FindExtractionByURL(ctx context.Context, url string) (*pith.Extraction, error) {
	return s.FindExtractionByURLFn(ctx, url)
}

func (s *ArchiveService) FindExtractions(ctx context.Context, filter pith.ExtractionFilter) ([]*pith.Extraction, error) {
	return s.FindExtractionsFn(ctx, filter)
}

func (s *ArchiveService) DeleteExtraction(ctx context.Context, url string) error {
	return s.DeleteExtractionFn(ctx, url)
}
