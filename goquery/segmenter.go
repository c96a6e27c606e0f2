// Package goquery implements the extraction pipeline's DOM work: block
// segmentation of reader-cleaned HTML and metadata heuristics over the
// original raw HTML.
package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pith"
)

// Ensure Segmenter implements pith.Segmenter at compile time.
var _ pith.Segmenter = (*Segmenter)(nil)

// candidateSelector matches the block-level elements the classifier
// understands. Standalone code elements are deliberately absent: inline
// code is not a block.
const candidateSelector = "p, h1, h2, h3, h4, h5, h6, ul, ol, blockquote, pre, img, figure"

// Segmenter turns a reader-cleaned HTML fragment into ordered content
// blocks. It is stateless and safe for concurrent use.
type Segmenter struct{}

// NewSegmenter creates a new Segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment parses the cleaned HTML and emits content blocks in filtered
// document order. Tabbed-content containers are merged first (their code
// panels become blocks and the containers leave the tree), then the
// remaining candidate elements are noise-filtered and classified.
func (s *Segmenter) Segment(cleanedHTML string) ([]pith.ContentBlock, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleanedHTML))
	if err != nil {
		return nil, pith.Errorf(pith.EINVALID, "failed to parse HTML: %v", err)
	}

	root := doc.Find("body").First()
	if root.Length() == 0 {
		root = doc.Selection
	}

	var blocks []pith.ContentBlock
	blocks = mergeTabbedContent(root, blocks)

	root.Find(candidateSelector).Each(func(_ int, sel *goquery.Selection) {
		if insideTabContainer(sel) {
			return
		}
		if isNoise(sel) {
			return
		}
		if b := classify(sel, len(blocks)); b != nil {
			blocks = append(blocks, *b)
		}
	})

	return blocks, nil
}

// blockID derives a stable identifier from the block's position, type, and
// text. Identical inputs segment to identical IDs, which downstream
// translation relies on when mapping results back onto blocks.
func blockID(position int, blockType pith.BlockType, text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(fmt.Sprintf("%d:%s:%s", position, blockType, text)))
}
