// Package readability adapts go-readability as the reader-mode cleaning
// pass in front of the extraction pipeline.
package readability

import (
	"strings"

	"github.com/fwojciec/pith"
	"github.com/go-shiori/go-readability"
)

// Ensure Cleaner implements pith.Cleaner at compile time.
var _ pith.Cleaner = (*Cleaner)(nil)

// Cleaner wraps go-readability to reduce raw HTML to its readable core.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean processes raw HTML and returns the title and main content.
func (c *Cleaner) Clean(rawHTML string) (*pith.CleanResult, error) {
	if rawHTML == "" {
		return nil, pith.Errorf(pith.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, pith.Errorf(pith.EUNPROCESSABLE, "readability failed: %v", err)
	}

	return &pith.CleanResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
