package pith

import "time"

// ArticleType classifies a document for downstream display decisions.
type ArticleType string

// Article classifications produced by the metadata heuristics. The zero
// value means the document could not be classified.
const (
	ArticleNews      ArticleType = "news"
	ArticleBlog      ArticleType = "blog"
	ArticleTechnical ArticleType = "technical"
)

// ReferenceLink is an anchor collected from a references section of a
// technical article ("References", "See also", "Further reading").
type ReferenceLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// DocumentMetadata aggregates the results of the metadata heuristics.
// Every field is best-effort: a heuristic that fails or finds nothing
// leaves its field zero. Technical articles additionally carry code
// languages, heading structure, reference links, and the API-doc flag;
// tags are computed for blog posts only.
type DocumentMetadata struct {
	ArticleType      ArticleType       `json:"article_type,omitempty"`
	Author           string            `json:"author,omitempty"`
	Byline           string            `json:"byline,omitempty"`
	DatePublished    string            `json:"date_published,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	PullQuotes       []string          `json:"pull_quotes,omitempty"`
	CodeLanguages    []string          `json:"code_languages,omitempty"`
	HeadingStructure []*HeadingNode    `json:"heading_structure,omitempty"`
	ReferenceLinks   []ReferenceLink   `json:"reference_links,omitempty"`
	IsAPIDoc         bool              `json:"is_api_documentation,omitempty"`
	Extra            map[string]string `json:"extra,omitempty"`
}

// ExtractedContent is the complete result of one extraction call.
//
// It owns its blocks exclusively: constructed once, never mutated, and
// replaced wholesale on re-extraction. Author and DatePublished duplicate
// the metadata fields for envelope convenience.
type ExtractedContent struct {
	URL           string           `json:"url"`
	Title         string           `json:"title"`
	Author        string           `json:"author,omitempty"`
	DatePublished string           `json:"date_published,omitempty"`
	Blocks        []ContentBlock   `json:"content_blocks"`
	Metadata      DocumentMetadata `json:"metadata"`
	ExtractedAt   time.Time        `json:"extracted_at"`
}

// Validate returns an error if the content violates its structural
// invariants.
func (c *ExtractedContent) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "content URL required")
	}
	if len(c.Blocks) == 0 {
		return Errorf(EUNPROCESSABLE, "no content blocks extracted")
	}
	return nil
}
