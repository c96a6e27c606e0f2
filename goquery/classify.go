package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pith"
)

// classify converts one candidate element into a content block, or nil
// when the element should be skipped. Blocks with empty text are never
// emitted; for lists that means zero non-empty items, for images no
// usable alt or caption text.
func classify(sel *goquery.Selection, position int) *pith.ContentBlock {
	switch name := goquery.NodeName(sel); name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return headingBlock(sel, position, int(name[1]-'0'))
	case "p":
		return paragraphBlock(sel, position)
	case "ul":
		return listBlock(sel, position, pith.ListUnordered)
	case "ol":
		return listBlock(sel, position, pith.ListOrdered)
	case "blockquote":
		return quoteBlock(sel, position)
	case "pre":
		return codeBlock(sel, position)
	case "img":
		return imageBlock(sel, position)
	case "figure":
		return figureBlock(sel, position)
	default:
		return nil
	}
}

func headingBlock(sel *goquery.Selection, position, level int) *pith.ContentBlock {
	text := normalizeSpace(sel.Text())
	if text == "" {
		return nil
	}
	return &pith.ContentBlock{
		ID:       blockID(position, pith.BlockHeading, text),
		Type:     pith.BlockHeading,
		Text:     text,
		Metadata: pith.BlockMetadata{Level: level},
	}
}

func paragraphBlock(sel *goquery.Selection, position int) *pith.ContentBlock {
	text := normalizeSpace(sel.Text())
	if text == "" {
		return nil
	}
	return &pith.ContentBlock{
		ID:   blockID(position, pith.BlockParagraph, text),
		Type: pith.BlockParagraph,
		Text: text,
	}
}

func listBlock(sel *goquery.Selection, position int, listType pith.ListType) *pith.ContentBlock {
	// Direct li children only; items of nested lists belong to their own
	// list block.
	var items []string
	sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if item := normalizeSpace(li.Text()); item != "" {
			items = append(items, item)
		}
	})
	if len(items) == 0 {
		return nil
	}

	// The rendered text is a display convenience; items is the source of
	// truth for consumers.
	lines := make([]string, len(items))
	for i, item := range items {
		if listType == pith.ListOrdered {
			lines[i] = fmt.Sprintf("%d. %s", i+1, item)
		} else {
			lines[i] = "• " + item
		}
	}

	text := strings.Join(lines, "\n")
	return &pith.ContentBlock{
		ID:   blockID(position, pith.BlockList, text),
		Type: pith.BlockList,
		Text: text,
		Metadata: pith.BlockMetadata{
			ListType: listType,
			Items:    items,
		},
	}
}

func quoteBlock(sel *goquery.Selection, position int) *pith.ContentBlock {
	text := normalizeSpace(sel.Text())
	if text == "" {
		return nil
	}
	return &pith.ContentBlock{
		ID:       blockID(position, pith.BlockQuote, text),
		Type:     pith.BlockQuote,
		Text:     text,
		Metadata: pith.BlockMetadata{IsPullQuote: isPullQuote(sel)},
	}
}

// isPullQuote checks the blockquote's own class attribute for pull-quote
// markers, then its immediate parent for an aside with those markers.
func isPullQuote(sel *goquery.Selection) bool {
	class := strings.ToLower(sel.AttrOr("class", ""))
	if containsAny(class, pullQuoteMarkers) {
		return true
	}

	parent := sel.Parent()
	if goquery.NodeName(parent) != "aside" {
		return false
	}
	parentClass := strings.ToLower(parent.AttrOr("class", ""))
	return containsAny(parentClass, pullQuoteMarkers)
}

func codeBlock(sel *goquery.Selection, position int) *pith.ContentBlock {
	text := sel.Text() // preserve whitespace in code
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = pith.StripLineNumbers(text)

	return &pith.ContentBlock{
		ID:       blockID(position, pith.BlockCode, text),
		Type:     pith.BlockCode,
		Text:     text,
		Metadata: pith.BlockMetadata{Language: codeLanguage(sel)},
	}
}

// codeLanguage scans the inner code element's class tokens for the
// "language-<name>" convention. Only the pre-wrapping-code pattern carries
// a language hint.
func codeLanguage(pre *goquery.Selection) string {
	code := pre.Find("code").First()
	if code.Length() == 0 {
		return ""
	}
	for _, token := range strings.Fields(code.AttrOr("class", "")) {
		if lang, ok := strings.CutPrefix(token, "language-"); ok {
			return lang
		}
	}
	return ""
}

func imageBlock(sel *goquery.Selection, position int) *pith.ContentBlock {
	// Images inside figures are emitted by the figure handler, caption
	// included.
	if sel.ParentsFiltered("figure").Length() > 0 {
		return nil
	}

	src := sel.AttrOr("src", "")
	if src == "" {
		return nil
	}

	alt := normalizeSpace(sel.AttrOr("alt", ""))
	if alt == "" {
		return nil
	}

	meta := pith.BlockMetadata{Src: src, Alt: alt}
	meta.Width = sel.AttrOr("width", "")
	meta.Height = sel.AttrOr("height", "")

	return &pith.ContentBlock{
		ID:       blockID(position, pith.BlockImage, alt),
		Type:     pith.BlockImage,
		Text:     alt,
		Metadata: meta,
	}
}

func figureBlock(sel *goquery.Selection, position int) *pith.ContentBlock {
	img := sel.Find("img").First()
	if img.Length() == 0 {
		return nil
	}
	src := img.AttrOr("src", "")
	if src == "" {
		return nil
	}

	alt := normalizeSpace(img.AttrOr("alt", ""))
	caption := normalizeSpace(sel.Find("figcaption").First().Text())

	// Caption text takes priority over alt text as the block text.
	text := caption
	if text == "" {
		text = alt
	}
	if text == "" {
		return nil
	}

	meta := pith.BlockMetadata{Src: src, Alt: alt, Caption: caption}
	meta.Width = img.AttrOr("width", "")
	meta.Height = img.AttrOr("height", "")

	return &pith.ContentBlock{
		ID:       blockID(position, pith.BlockImage, text),
		Type:     pith.BlockImage,
		Text:     text,
		Metadata: meta,
	}
}

// normalizeSpace trims the text and collapses internal whitespace runs to
// single spaces. Code text never goes through here.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
