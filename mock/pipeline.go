// Package mock provides mock implementations of pith interfaces for
// testing.
package mock

import "github.com/fwojciec/pith"

// Compile-time interface verification.
var (
	_ pith.Cleaner   = (*Cleaner)(nil)
	_ pith.Segmenter = (*Segmenter)(nil)
	_ pith.Analyzer  = (*Analyzer)(nil)
	_ pith.Extractor = (*Extractor)(nil)
)

// Cleaner is a mock implementation of pith.Cleaner.
type Cleaner struct {
	CleanFn func(rawHTML string) (*pith.CleanResult, error)
}

func (c *Cleaner) Clean(rawHTML string) (*pith.CleanResult, error) {
	return c.CleanFn(rawHTML)
}

// Segmenter is a mock implementation of pith.Segmenter.
type Segmenter struct {
	SegmentFn func(cleanedHTML string) ([]pith.ContentBlock, error)
}

func (s *Segmenter) Segment(cleanedHTML string) ([]pith.ContentBlock, error) {
	return s.SegmentFn(cleanedHTML)
}

// Analyzer is a mock implementation of pith.Analyzer.
type Analyzer struct {
	AnalyzeFn func(rawHTML string, blocks []pith.ContentBlock) (*pith.DocumentMetadata, error)
}

func (a *Analyzer) Analyze(rawHTML string, blocks []pith.ContentBlock) (*pith.DocumentMetadata, error) {
	return a.AnalyzeFn(rawHTML, blocks)
}

// Extractor is a mock implementation of pith.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string, cleaned pith.CleanResult, sourceURL string) (*pith.ExtractedContent, error)
}

func (e *Extractor) Extract(rawHTML string, cleaned pith.CleanResult, sourceURL string) (*pith.ExtractedContent, error) {
	return e.ExtractFn(rawHTML, cleaned, sourceURL)
}
