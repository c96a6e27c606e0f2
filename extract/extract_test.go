package extract_test

import (
	"testing"
	"time"

	"github.com/fwojciec/pith"
	"github.com/fwojciec/pith/extract"
	"github.com/fwojciec/pith/goquery"
	"github.com/fwojciec/pith/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Service implements pith.Extractor at compile time.
var _ pith.Extractor = (*extract.Service)(nil)

func TestService_Extract(t *testing.T) {
	t.Parallel()

	t.Run("assembles the envelope from its collaborators", func(t *testing.T) {
		t.Parallel()

		blocks := []pith.ContentBlock{
			{ID: "b1", Type: pith.BlockHeading, Text: "Title", Metadata: pith.BlockMetadata{Level: 1}},
			{ID: "b2", Type: pith.BlockParagraph, Text: "Body."},
		}
		meta := &pith.DocumentMetadata{
			ArticleType:   pith.ArticleBlog,
			Author:        "Jane Smith",
			DatePublished: "2024-03-01",
		}

		var segmentedWith string
		var analyzedRaw string
		var analyzedBlocks []pith.ContentBlock

		svc := &extract.Service{
			Segmenter: &mock.Segmenter{
				SegmentFn: func(cleanedHTML string) ([]pith.ContentBlock, error) {
					segmentedWith = cleanedHTML
					return blocks, nil
				},
			},
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(rawHTML string, blocks []pith.ContentBlock) (*pith.DocumentMetadata, error) {
					analyzedRaw = rawHTML
					analyzedBlocks = blocks
					return meta, nil
				},
			},
		}

		cleaned := pith.CleanResult{Title: "Page Title", ContentHTML: "<p>Body.</p>"}
		before := time.Now().UTC()
		content, err := svc.Extract("<html>raw</html>", cleaned, "https://example.com/post")

		require.NoError(t, err)
		assert.Equal(t, "<p>Body.</p>", segmentedWith)
		assert.Equal(t, "<html>raw</html>", analyzedRaw)
		assert.Equal(t, blocks, analyzedBlocks)

		assert.Equal(t, "https://example.com/post", content.URL)
		assert.Equal(t, "Page Title", content.Title)
		assert.Equal(t, "Jane Smith", content.Author)
		assert.Equal(t, "2024-03-01", content.DatePublished)
		assert.Equal(t, blocks, content.Blocks)
		assert.Equal(t, *meta, content.Metadata)

		assert.False(t, content.ExtractedAt.Before(before))
		assert.Equal(t, time.UTC, content.ExtractedAt.Location())
	})

	t.Run("zero blocks is a fatal extraction failure", func(t *testing.T) {
		t.Parallel()

		analyzerCalled := false
		svc := &extract.Service{
			Segmenter: &mock.Segmenter{
				SegmentFn: func(string) ([]pith.ContentBlock, error) {
					return nil, nil
				},
			},
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(string, []pith.ContentBlock) (*pith.DocumentMetadata, error) {
					analyzerCalled = true
					return &pith.DocumentMetadata{}, nil
				},
			},
		}

		_, err := svc.Extract("<html></html>", pith.CleanResult{}, "https://example.com/empty")

		require.Error(t, err)
		assert.Equal(t, pith.EUNPROCESSABLE, pith.ErrorCode(err))
		assert.False(t, analyzerCalled)
	})

	t.Run("segmenter errors propagate", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{
			Segmenter: &mock.Segmenter{
				SegmentFn: func(string) ([]pith.ContentBlock, error) {
					return nil, pith.Errorf(pith.EINVALID, "failed to parse HTML")
				},
			},
			Analyzer: &mock.Analyzer{},
		}

		_, err := svc.Extract("raw", pith.CleanResult{}, "https://example.com")

		require.Error(t, err)
		assert.Equal(t, pith.EINVALID, pith.ErrorCode(err))
	})

	t.Run("analyzer errors propagate", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{
			Segmenter: &mock.Segmenter{
				SegmentFn: func(string) ([]pith.ContentBlock, error) {
					return []pith.ContentBlock{{ID: "b1", Type: pith.BlockParagraph, Text: "x"}}, nil
				},
			},
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(string, []pith.ContentBlock) (*pith.DocumentMetadata, error) {
					return nil, pith.Errorf(pith.EINVALID, "failed to parse HTML")
				},
			},
		}

		_, err := svc.Extract("raw", pith.CleanResult{}, "https://example.com")

		require.Error(t, err)
		assert.Equal(t, pith.EINVALID, pith.ErrorCode(err))
	})

	t.Run("falls back to Untitled", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{
			Segmenter: &mock.Segmenter{
				SegmentFn: func(string) ([]pith.ContentBlock, error) {
					return []pith.ContentBlock{{ID: "b1", Type: pith.BlockParagraph, Text: "x"}}, nil
				},
			},
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(string, []pith.ContentBlock) (*pith.DocumentMetadata, error) {
					return &pith.DocumentMetadata{}, nil
				},
			},
		}

		content, err := svc.Extract("raw", pith.CleanResult{}, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "Untitled", content.Title)
	})
}

// TestService_Extract_PullQuoteSurvivesAsideStripping runs the real
// pipeline over a pull quote whose raw markup wraps it in a markerless
// aside. The noise filter treats that aside as a sidebar, so the quote
// block only emerges because reader-mode cleaning strips the wrapper;
// the raw-HTML detector reports the same text independently, and the
// union carries it either way.
func TestService_Extract_PullQuoteSurvivesAsideStripping(t *testing.T) {
	t.Parallel()

	rawHTML := `<html><body>
<article>
<h1>T</h1>
<p>Body text.</p>
<aside><blockquote class="pullquote">Worth repeating.</blockquote></aside>
</article>
</body></html>`

	// What the cleaning pass hands on: the aside wrapper is gone, the
	// blockquote keeps its own class.
	cleanedHTML := `<h1>T</h1>
<p>Body text.</p>
<blockquote class="pullquote">Worth repeating.</blockquote>`

	svc := &extract.Service{
		Segmenter: goquery.NewSegmenter(),
		Analyzer:  goquery.NewAnalyzer(nil),
	}

	content, err := svc.Extract(rawHTML, pith.CleanResult{Title: "T", ContentHTML: cleanedHTML}, "https://example.com/post")
	require.NoError(t, err)

	var quotes []pith.ContentBlock
	for _, b := range content.Blocks {
		if b.Type == pith.BlockQuote {
			quotes = append(quotes, b)
		}
	}
	require.Len(t, quotes, 1)
	assert.Equal(t, "Worth repeating.", quotes[0].Text)
	assert.True(t, quotes[0].Metadata.IsPullQuote)
	assert.Contains(t, content.Metadata.PullQuotes, "Worth repeating.")
}
