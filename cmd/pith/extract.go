package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/pith"
	"github.com/fwojciec/pith/fs"
	"golang.org/x/sync/errgroup"
)

// extractInput is one document queued for extraction.
type extractInput struct {
	locator string
	html    string
}

// extractResult holds the outcome of processing a single document.
type extractResult struct {
	locator string
	cleaned *pith.CleanResult
	content *pith.ExtractedContent
	err     error
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	inputs, err := c.readInputs(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pith.ErrorMessage(err))
		return err
	}

	results := c.extractAll(deps, inputs)

	// Report failures in input order.
	var succeeded int
	var firstErr error
	for _, r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", r.locator, pith.ErrorMessage(r.err))
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		if deps.Export != nil {
			_ = deps.Export.Abort()
		}
		return firstErr
	}

	totalBytes, err := c.writeResults(deps, results)
	if err != nil {
		return err
	}

	if c.Save {
		if err := c.archiveResults(deps, results); err != nil {
			return err
		}
	}

	if deps.Cache != nil {
		stats := deps.Cache.Stats()
		logger.Info("cache stats",
			"hits", stats.Hits,
			"misses", stats.Misses,
			"evictions", stats.Evictions,
			"hit_rate", stats.HitRate,
			"entries", stats.Entries,
			"storage_bytes", stats.StorageBytes,
		)
	}

	fmt.Fprintf(deps.Stderr, "Extracted %d of %d documents (%s)\n",
		succeeded, len(results), pith.FormatBytes(int64(totalBytes)))

	return nil
}

// readInputs loads the HTML documents named on the command line.
func (c *ExtractCmd) readInputs(stdin io.Reader) ([]extractInput, error) {
	if c.URL != "" && len(c.Paths) > 1 {
		return nil, pith.Errorf(pith.EINVALID, "--url applies to a single input")
	}

	inputs := make([]extractInput, 0, len(c.Paths))
	stdinUsed := false

	for _, path := range c.Paths {
		if path == "-" {
			if stdinUsed {
				return nil, pith.Errorf(pith.EINVALID, "stdin can only be read once")
			}
			stdinUsed = true

			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			inputs = append(inputs, extractInput{locator: "stdin", html: string(data)})
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		inputs = append(inputs, extractInput{locator: "file://" + abs, html: string(data)})
	}

	if c.URL != "" && len(inputs) == 1 {
		inputs[0].locator = c.URL
	}

	return inputs, nil
}

// extractAll runs the pipeline for every input under a bounded worker
// pool. Results keep input order; per-document failures are recorded,
// not fatal.
func (c *ExtractCmd) extractAll(deps *Dependencies, inputs []extractInput) []extractResult {
	results := make([]extractResult, len(inputs))

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	g, _ := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			results[i] = c.extractOne(deps, in)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// extractOne cleans and extracts a single document.
func (c *ExtractCmd) extractOne(deps *Dependencies, in extractInput) extractResult {
	result := extractResult{locator: in.locator}

	// Check for context cancellation before processing each document
	if err := deps.Ctx.Err(); err != nil {
		result.err = err
		return result
	}

	cleaned, err := deps.Cleaner.Clean(in.html)
	if err != nil {
		result.err = err
		return result
	}

	content, err := deps.Extractor.Extract(in.html, *cleaned, in.locator)
	if err != nil {
		result.err = err
		return result
	}

	result.cleaned = cleaned
	result.content = content
	return result
}

// writeResults prints each successful result to stdout and, when an
// export store is configured, stages it there. The export commits only
// if every staged write succeeded.
func (c *ExtractCmd) writeResults(deps *Dependencies, results []extractResult) (int, error) {
	ext := ".json"
	if c.Format == "markdown" {
		ext = ".md"
	}

	var exported int
	var totalBytes int

	for _, r := range results {
		if r.err != nil {
			continue
		}

		rendered, err := c.render(deps, r)
		if err != nil {
			if deps.Export != nil {
				_ = deps.Export.Abort()
			}
			fmt.Fprintf(deps.Stderr, "error rendering %s: %s\n", r.locator, pith.ErrorMessage(err))
			return 0, err
		}

		fmt.Fprintln(deps.Stdout, rendered)
		totalBytes += len(rendered)

		if deps.Export != nil {
			name, err := fs.URLToPath(r.locator, ext)
			if err != nil {
				_ = deps.Export.Abort()
				fmt.Fprintf(deps.Stderr, "error exporting %s: %s\n", r.locator, pith.ErrorMessage(err))
				return 0, err
			}

			if err := deps.Export.Save(deps.Ctx, name, []byte(rendered)); err != nil {
				_ = deps.Export.Abort()
				fmt.Fprintf(deps.Stderr, "error exporting %s: %s\n", r.locator, pith.ErrorMessage(err))
				return 0, err
			}
			exported++
		}
	}

	if deps.Export != nil {
		if exported > 0 {
			if err := deps.Export.Commit(); err != nil {
				fmt.Fprintf(deps.Stderr, "error committing export: %v\n", err)
				return 0, err
			}
			fmt.Fprintf(deps.Stderr, "Exported %d results to %s\n", exported, c.Out)
		} else {
			_ = deps.Export.Abort()
		}
	}

	return totalBytes, nil
}

// render produces the output document for one result in the selected
// format.
func (c *ExtractCmd) render(deps *Dependencies, r extractResult) (string, error) {
	if c.Format == "markdown" {
		markdown, err := deps.Converter.Convert(r.cleaned.ContentHTML)
		if err != nil {
			return "", err
		}
		return fs.FormatMarkdown(r.content, markdown), nil
	}

	data, err := json.MarshalIndent(r.content, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// archiveResults persists each successful result through the archive
// service.
func (c *ExtractCmd) archiveResults(deps *Dependencies, results []extractResult) error {
	var archived int

	for _, r := range results {
		if r.err != nil {
			continue
		}

		markdown, err := deps.Converter.Convert(r.cleaned.ContentHTML)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error rendering %s: %s\n", r.locator, pith.ErrorMessage(err))
			return err
		}

		envelope, err := json.Marshal(r.content)
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", r.locator, err)
		}

		extraction := &pith.Extraction{
			URL:         r.content.URL,
			Title:       r.content.Title,
			ArticleType: r.content.Metadata.ArticleType,
			BlockCount:  len(r.content.Blocks),
			Content:     string(envelope),
			Markdown:    markdown,
			ExtractedAt: r.content.ExtractedAt,
		}

		if err := deps.Archive.SaveExtraction(deps.Ctx, extraction); err != nil {
			fmt.Fprintf(deps.Stderr, "error archiving %s: %s\n", r.locator, pith.ErrorMessage(err))
			return err
		}
		archived++
	}

	fmt.Fprintf(deps.Stderr, "Archived %d extractions\n", archived)
	return nil
}
