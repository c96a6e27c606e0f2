package main_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pith"
	main "github.com/fwojciec/pith/cmd/pith"
	"github.com/fwojciec/pith/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughCleaner returns the raw input as the cleaned content.
func passthroughCleaner() *mock.Cleaner {
	return &mock.Cleaner{
		CleanFn: func(rawHTML string) (*pith.CleanResult, error) {
			return &pith.CleanResult{Title: "Understanding Goroutines", ContentHTML: rawHTML}, nil
		},
	}
}

func testContent(url string) *pith.ExtractedContent {
	return &pith.ExtractedContent{
		URL:   url,
		Title: "Understanding Goroutines",
		Blocks: []pith.ContentBlock{
			{ID: "0000000000000001", Type: pith.BlockHeading, Text: "Understanding Goroutines", Metadata: pith.BlockMetadata{Level: 1}},
			{ID: "0000000000000002", Type: pith.BlockParagraph, Text: "Goroutines are lightweight."},
		},
		Metadata:    pith.DocumentMetadata{ArticleType: pith.ArticleTechnical},
		ExtractedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func staticExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(rawHTML string, cleaned pith.CleanResult, sourceURL string) (*pith.ExtractedContent, error) {
			return testContent(sourceURL), nil
		},
	}
}

func writeHTMLFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts a file to JSON", func(t *testing.T) {
		t.Parallel()

		path := writeHTMLFile(t, "article.html", "<article><p>Body text.</p></article>")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Cleaner:   passthroughCleaner(),
			Extractor: staticExtractor(),
		}

		cmd := &main.ExtractCmd{Paths: []string{path}, Format: "json"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"content_blocks"`)
		assert.Contains(t, stdout.String(), "file://")
		assert.Contains(t, stderr.String(), "Extracted 1 of 1 documents")
	})

	t.Run("uses --url as the locator", func(t *testing.T) {
		t.Parallel()

		path := writeHTMLFile(t, "article.html", "<p>Body.</p>")
		var capturedURL string
		extractor := &mock.Extractor{
			ExtractFn: func(rawHTML string, cleaned pith.CleanResult, sourceURL string) (*pith.ExtractedContent, error) {
				capturedURL = sourceURL
				return testContent(sourceURL), nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Cleaner:   passthroughCleaner(),
			Extractor: extractor,
		}

		cmd := &main.ExtractCmd{
			Paths:  []string{path},
			URL:    "https://example.com/articles/goroutines",
			Format: "json",
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/articles/goroutines", capturedURL)
		assert.Contains(t, stdout.String(), "https://example.com/articles/goroutines")
	})

	t.Run("rejects --url with multiple inputs", func(t *testing.T) {
		t.Parallel()

		a := writeHTMLFile(t, "a.html", "<p>A.</p>")
		b := writeHTMLFile(t, "b.html", "<p>B.</p>")

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
		}

		cmd := &main.ExtractCmd{
			Paths:  []string{a, b},
			URL:    "https://example.com/a",
			Format: "json",
		}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, pith.EINVALID, pith.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reads stdin", func(t *testing.T) {
		t.Parallel()

		var capturedURL, capturedHTML string
		extractor := &mock.Extractor{
			ExtractFn: func(rawHTML string, cleaned pith.CleanResult, sourceURL string) (*pith.ExtractedContent, error) {
				capturedURL = sourceURL
				capturedHTML = rawHTML
				return testContent(sourceURL), nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdin:     strings.NewReader("<p>From stdin.</p>"),
			Stdout:    stdout,
			Stderr:    stderr,
			Cleaner:   passthroughCleaner(),
			Extractor: extractor,
		}

		cmd := &main.ExtractCmd{Paths: []string{"-"}, Format: "json"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "stdin", capturedURL)
		assert.Equal(t, "<p>From stdin.</p>", capturedHTML)
	})

	t.Run("continues past failing documents", func(t *testing.T) {
		t.Parallel()

		bad := writeHTMLFile(t, "bad.html", "<p></p>")
		good := writeHTMLFile(t, "good.html", "<p>Body.</p>")

		extractor := &mock.Extractor{
			ExtractFn: func(rawHTML string, cleaned pith.CleanResult, sourceURL string) (*pith.ExtractedContent, error) {
				if strings.Contains(sourceURL, "bad.html") {
					return nil, pith.Errorf(pith.EUNPROCESSABLE, "no content blocks extracted from %s", sourceURL)
				}
				return testContent(sourceURL), nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Cleaner:   passthroughCleaner(),
			Extractor: extractor,
		}

		cmd := &main.ExtractCmd{Paths: []string{bad, good}, Format: "json"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "skip")
		assert.Contains(t, stderr.String(), "Extracted 1 of 2 documents")
		assert.Contains(t, stdout.String(), "good.html")
		assert.NotContains(t, stdout.String(), "bad.html")
	})

	t.Run("fails when every document fails", func(t *testing.T) {
		t.Parallel()

		path := writeHTMLFile(t, "empty.html", "<p></p>")
		extractor := &mock.Extractor{
			ExtractFn: func(rawHTML string, cleaned pith.CleanResult, sourceURL string) (*pith.ExtractedContent, error) {
				return nil, pith.Errorf(pith.EUNPROCESSABLE, "no content blocks extracted from %s", sourceURL)
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Cleaner:   passthroughCleaner(),
			Extractor: extractor,
		}

		cmd := &main.ExtractCmd{Paths: []string{path}, Format: "json"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, pith.EUNPROCESSABLE, pith.ErrorCode(err))
		assert.Empty(t, stdout.String())
	})

	t.Run("preserves input order in output", func(t *testing.T) {
		t.Parallel()

		first := writeHTMLFile(t, "first.html", "<p>1.</p>")
		second := writeHTMLFile(t, "second.html", "<p>2.</p>")
		third := writeHTMLFile(t, "third.html", "<p>3.</p>")

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Cleaner:   passthroughCleaner(),
			Extractor: staticExtractor(),
		}

		cmd := &main.ExtractCmd{Paths: []string{first, second, third}, Format: "json", Concurrency: 3}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Less(t, strings.Index(out, "first.html"), strings.Index(out, "second.html"))
		assert.Less(t, strings.Index(out, "second.html"), strings.Index(out, "third.html"))
	})

	t.Run("renders markdown with frontmatter", func(t *testing.T) {
		t.Parallel()

		path := writeHTMLFile(t, "article.html", "<h1>Understanding Goroutines</h1>")
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "# Understanding Goroutines", nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Cleaner:   passthroughCleaner(),
			Extractor: staticExtractor(),
			Converter: converter,
		}

		cmd := &main.ExtractCmd{
			Paths:  []string{path},
			URL:    "https://example.com/goroutines",
			Format: "markdown",
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "source: https://example.com/goroutines")
		assert.Contains(t, out, "# Understanding Goroutines")
	})

	t.Run("save archives successful results", func(t *testing.T) {
		t.Parallel()

		path := writeHTMLFile(t, "article.html", "<p>Body.</p>")
		var saved *pith.Extraction
		archive := &mock.ArchiveService{
			SaveExtractionFn: func(ctx context.Context, extraction *pith.Extraction) error {
				saved = extraction
				return nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) { return "Body.", nil },
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Cleaner:   passthroughCleaner(),
			Extractor: staticExtractor(),
			Converter: converter,
			Archive:   archive,
		}

		cmd := &main.ExtractCmd{
			Paths:  []string{path},
			URL:    "https://example.com/articles/goroutines",
			Format: "json",
			Save:   true,
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "https://example.com/articles/goroutines", saved.URL)
		assert.Equal(t, "Understanding Goroutines", saved.Title)
		assert.Equal(t, pith.ArticleTechnical, saved.ArticleType)
		assert.Equal(t, 2, saved.BlockCount)
		assert.Contains(t, saved.Content, `"content_blocks"`)
		assert.Equal(t, "Body.", saved.Markdown)
		assert.Contains(t, stderr.String(), "Archived 1 extractions")
	})

	t.Run("exports rendered results atomically", func(t *testing.T) {
		t.Parallel()

		path := writeHTMLFile(t, "article.html", "<p>Body.</p>")
		savedNames := make(map[string][]byte)
		commitCalled := false
		export := &mock.ExportStore{
			SaveFn: func(ctx context.Context, name string, data []byte) error {
				savedNames[name] = data
				return nil
			},
			CommitFn: func() error {
				commitCalled = true
				return nil
			},
			AbortFn: func() error { return nil },
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Cleaner:   passthroughCleaner(),
			Extractor: staticExtractor(),
			Export:    export,
		}

		cmd := &main.ExtractCmd{
			Paths:  []string{path},
			URL:    "https://example.com/articles/goroutines",
			Format: "json",
			Out:    "exported",
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.True(t, commitCalled, "export should commit after staging succeeds")
		require.Contains(t, savedNames, "articles/goroutines.json")
		assert.Contains(t, string(savedNames["articles/goroutines.json"]), `"content_blocks"`)
		assert.Contains(t, stderr.String(), "Exported 1 results to exported")
	})

	t.Run("aborts the export when staging fails", func(t *testing.T) {
		t.Parallel()

		path := writeHTMLFile(t, "article.html", "<p>Body.</p>")
		abortCalled := false
		export := &mock.ExportStore{
			SaveFn: func(ctx context.Context, name string, data []byte) error {
				return pith.Errorf(pith.EINTERNAL, "disk full")
			},
			CommitFn: func() error { return nil },
			AbortFn: func() error {
				abortCalled = true
				return nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Cleaner:   passthroughCleaner(),
			Extractor: staticExtractor(),
			Export:    export,
		}

		cmd := &main.ExtractCmd{Paths: []string{path}, Format: "json", Out: "exported"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.True(t, abortCalled, "export should abort when staging fails")
	})

	t.Run("logs cache statistics after the batch", func(t *testing.T) {
		t.Parallel()

		path := writeHTMLFile(t, "article.html", "<p>Body.</p>")
		cache := &mock.ContentCache{
			StatsFn: func() pith.CacheStats {
				return pith.CacheStats{Hits: 2, Misses: 1, HitRate: 66.67, Entries: 1}
			},
		}

		var logBuf bytes.Buffer
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Logger:    slog.New(slog.NewTextHandler(&logBuf, nil)),
			Cleaner:   passthroughCleaner(),
			Extractor: staticExtractor(),
			Cache:     cache,
		}

		cmd := &main.ExtractCmd{Paths: []string{path}, Format: "json"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		logs := logBuf.String()
		assert.Contains(t, logs, "cache stats")
		assert.Contains(t, logs, "hits=2")
		assert.Contains(t, logs, "hit_rate=66.67")
	})
}
