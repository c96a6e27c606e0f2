package pith

import "sort"

// BlockType identifies the semantic kind of a content block.
type BlockType string

// Block types emitted by segmentation.
const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockQuote     BlockType = "quote"
	BlockCode      BlockType = "code"
	BlockImage     BlockType = "image"
)

// ListType distinguishes ordered from unordered list blocks.
type ListType string

// List types for BlockMetadata.ListType.
const (
	ListUnordered ListType = "unordered"
	ListOrdered   ListType = "ordered"
)

// ContentBlock is one semantic unit of extracted content.
//
// Blocks are created once during segmentation and never mutated. Their
// order is the filtered document order of the cleaned HTML; downstream
// translation maps results back onto blocks by ID, so both order and IDs
// are stable for identical inputs.
type ContentBlock struct {
	ID       string        `json:"id"`
	Type     BlockType     `json:"type"`
	Text     string        `json:"text"`
	Metadata BlockMetadata `json:"metadata"`
}

// Validate returns an error if the block violates its structural invariants.
func (b *ContentBlock) Validate() error {
	if b.ID == "" {
		return Errorf(EINVALID, "block ID required")
	}
	switch b.Type {
	case BlockHeading, BlockParagraph, BlockList, BlockQuote, BlockCode, BlockImage:
	default:
		return Errorf(EINVALID, "unknown block type %q", b.Type)
	}
	if b.Text == "" {
		return Errorf(EINVALID, "block text required")
	}
	return nil
}

// BlockMetadata carries the type-specific attributes of a block: Level for
// headings, ListType and Items for lists, IsPullQuote for quotes, Language
// for code, Src/Alt/Caption/Width/Height for images. Extra holds
// open-ended attributes that have no typed field. For lists, Items is the
// source of truth; the block's Text is only a display rendering.
type BlockMetadata struct {
	Level       int               `json:"level,omitempty"`
	ListType    ListType          `json:"list_type,omitempty"`
	Items       []string          `json:"items,omitempty"`
	IsPullQuote bool              `json:"is_pull_quote,omitempty"`
	Language    string            `json:"language,omitempty"`
	Src         string            `json:"src,omitempty"`
	Alt         string            `json:"alt,omitempty"`
	Caption     string            `json:"caption,omitempty"`
	Width       string            `json:"width,omitempty"`
	Height      string            `json:"height,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// CodeLanguages returns the sorted, de-duplicated language tags found
// across code blocks.
func CodeLanguages(blocks []ContentBlock) []string {
	seen := make(map[string]bool)
	var langs []string
	for _, b := range blocks {
		if b.Type != BlockCode || b.Metadata.Language == "" {
			continue
		}
		if seen[b.Metadata.Language] {
			continue
		}
		seen[b.Metadata.Language] = true
		langs = append(langs, b.Metadata.Language)
	}
	sort.Strings(langs)
	return langs
}

// PullQuoteTexts returns the text of quote blocks flagged as pull quotes,
// in block order.
func PullQuoteTexts(blocks []ContentBlock) []string {
	var quotes []string
	for _, b := range blocks {
		if b.Type == BlockQuote && b.Metadata.IsPullQuote {
			quotes = append(quotes, b.Text)
		}
	}
	return quotes
}
