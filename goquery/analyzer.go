package goquery

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pith"
)

// Ensure Analyzer implements pith.Analyzer at compile time.
var _ pith.Analyzer = (*Analyzer)(nil)

// Analyzer derives document metadata from the original raw HTML and the
// segmented block list. Every heuristic is best-effort: malformed inputs
// (typically broken JSON-LD) are logged at debug level and contribute
// nothing.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer. A nil logger disables logging.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{logger: logger}
}

// Analyze parses the raw HTML and merges the heuristic results into a
// single metadata value. Technical articles additionally carry code
// languages, the heading hierarchy, reference links, and the API-doc
// flag; tags are computed for blog posts only.
func (a *Analyzer) Analyze(rawHTML string, blocks []pith.ContentBlock) (*pith.DocumentMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pith.Errorf(pith.EINVALID, "failed to parse HTML: %v", err)
	}

	ld := a.parseJSONLD(doc)

	meta := &pith.DocumentMetadata{}

	meta.ArticleType = articleType(doc, ld)
	if meta.ArticleType == "" && isTechnicalArticle(doc, ld) {
		meta.ArticleType = pith.ArticleTechnical
	}

	if meta.ArticleType == pith.ArticleTechnical {
		meta.CodeLanguages = pith.CodeLanguages(blocks)
		meta.HeadingStructure = pith.BuildHeadingTree(blocks)
		meta.ReferenceLinks = referenceLinks(doc)
		meta.IsAPIDoc = isAPIDocumentation(doc)
	}

	meta.Author = author(doc, ld)
	meta.Byline = byline(doc)
	meta.DatePublished = datePublished(doc, ld)
	meta.PullQuotes = unionPullQuotes(pullQuotesFromHTML(doc), blocks)

	if meta.ArticleType == pith.ArticleBlog {
		meta.Tags = tags(doc, ld)
	}

	return meta, nil
}

// parseJSONLD decodes the first embedded JSON-LD object. Documents embed
// at most one object we care about; malformed data disables the
// structured-data heuristics for this document.
func (a *Analyzer) parseJSONLD(doc *goquery.Document) map[string]any {
	script := doc.Find(`script[type="application/ld+json"]`).First()
	if script.Length() == 0 {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
		a.logger.Debug("ignoring malformed JSON-LD", "err", err)
		return nil
	}
	return data
}

// author prefers an author-named meta tag, falling back to the
// structured-data author field (plain string or nested name).
func author(doc *goquery.Document, ld map[string]any) string {
	if content := metaByNameContains(doc, "author"); content != "" {
		return content
	}

	switch v := ld["author"].(type) {
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
	case string:
		return v
	}
	return ""
}

// datePublished prefers the article:published_time property, then any
// date-named meta tag, then structured-data datePublished.
func datePublished(doc *goquery.Document, ld map[string]any) string {
	if content := doc.Find(`meta[property="article:published_time"]`).First().AttrOr("content", ""); content != "" {
		return content
	}
	if content := metaByNameContains(doc, "date"); content != "" {
		return content
	}
	if date, ok := ld["datePublished"].(string); ok {
		return date
	}
	return ""
}

var byPatternRE = regexp.MustCompile(`(?i)\bby\b`)

// byline looks for a dedicated byline class first. Failing that, an
// author-classed element counts only when its containing p/div/span text
// matches a "by ..." pattern; requiring the pattern (not just the class)
// avoids false positives from bare name tags.
func byline(doc *goquery.Document) string {
	if sel := firstByClassToken(doc, "byline"); sel != nil {
		return normalizeSpace(sel.Text())
	}

	sel := firstByClassToken(doc, "author")
	if sel == nil {
		return ""
	}
	parent := sel.Parent()
	switch goquery.NodeName(parent) {
	case "p", "div", "span":
		text := normalizeSpace(parent.Text())
		if byPatternRE.MatchString(text) {
			return text
		}
	}
	return ""
}

// firstByClassToken returns the first element (document order) with a
// class token containing the given substring, or nil.
func firstByClassToken(doc *goquery.Document, substr string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, token := range strings.Fields(sel.AttrOr("class", "")) {
			if strings.Contains(strings.ToLower(token), substr) {
				found = sel
				return false
			}
		}
		return true
	})
	return found
}

// metaByNameContains returns the content of the first meta tag whose name
// attribute contains the given substring, case-insensitively.
func metaByNameContains(doc *goquery.Document, substr string) string {
	var content string
	doc.Find("meta[name]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(sel.AttrOr("name", "")), substr) {
			content = sel.AttrOr("content", "")
			return false
		}
		return true
	})
	return content
}

// pullQuotesFromHTML collects pull-quote text from the raw document, where
// the aside wrappers that mark pull quotes still exist. Reader-mode
// cleaning often discards those wrappers, which is why the block list
// alone is not enough.
func pullQuotesFromHTML(doc *goquery.Document) []string {
	var quotes []string
	doc.Find("blockquote").Each(func(_ int, sel *goquery.Selection) {
		class := strings.ToLower(sel.AttrOr("class", ""))
		if containsAny(class, pullQuoteMarkers) {
			if text := normalizeSpace(sel.Text()); text != "" {
				quotes = append(quotes, text)
			}
			return
		}

		parent := sel.Parent()
		if goquery.NodeName(parent) != "aside" {
			return
		}
		parentClass := strings.ToLower(parent.AttrOr("class", ""))
		if !containsAny(parentClass, pullQuoteMarkers) {
			return
		}
		if text := normalizeSpace(sel.Text()); text != "" {
			quotes = append(quotes, text)
		}
	})
	return quotes
}

// unionPullQuotes merges raw-HTML detections with block-flagged quotes,
// de-duplicated by exact text, raw-HTML detections first.
func unionPullQuotes(fromHTML []string, blocks []pith.ContentBlock) []string {
	seen := make(map[string]bool)
	var quotes []string
	for _, q := range fromHTML {
		if !seen[q] {
			seen[q] = true
			quotes = append(quotes, q)
		}
	}
	for _, q := range pith.PullQuoteTexts(blocks) {
		if !seen[q] {
			seen[q] = true
			quotes = append(quotes, q)
		}
	}
	return quotes
}

// tags merges blog tags from the keywords meta tag, article:tag meta tags,
// and structured-data keywords, in that order. De-duplication is
// case-insensitive with first-seen casing kept.
func tags(doc *goquery.Document, ld map[string]any) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[strings.ToLower(tag)] {
			return
		}
		seen[strings.ToLower(tag)] = true
		out = append(out, tag)
	}

	if content := doc.Find(`meta[name="keywords"]`).First().AttrOr("content", ""); content != "" {
		for _, tag := range strings.Split(content, ",") {
			add(tag)
		}
	}

	doc.Find(`meta[name="article:tag"]`).Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("content", ""))
	})

	switch keywords := ld["keywords"].(type) {
	case []any:
		for _, kw := range keywords {
			if s, ok := kw.(string); ok {
				add(s)
			}
		}
	case string:
		for _, kw := range strings.Split(keywords, ",") {
			add(kw)
		}
	}

	return out
}
