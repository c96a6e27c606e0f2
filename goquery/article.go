package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pith"
)

var (
	apiClassRE = regexp.MustCompile(`(?i)api[-_]?(doc|reference|endpoint)`)

	httpMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}

	// Heading keywords that introduce a reference section.
	referenceSectionKeywords = []string{"reference", "see also", "further reading", "links"}

	// Title keywords that suggest technical content when paired with a
	// structured heading layout.
	technicalTitleKeywords = []string{"api", "documentation", "guide", "tutorial", "reference", "sdk", "library"}
)

// articleType classifies the document from structured data first, then the
// Open Graph type. An empty result means neither signal was present.
func articleType(doc *goquery.Document, ld map[string]any) pith.ArticleType {
	if schemaType, ok := ld["@type"].(string); ok {
		switch schemaType {
		case "NewsArticle":
			return pith.ArticleNews
		case "BlogPosting":
			return pith.ArticleBlog
		}
	}

	ogType := strings.ToLower(doc.Find(`meta[property="og:type"]`).First().AttrOr("content", ""))
	switch {
	case strings.Contains(ogType, "blog"):
		return pith.ArticleBlog
	case strings.Contains(ogType, "article"):
		return pith.ArticleNews
	}

	return ""
}

// isTechnicalArticle reports whether the document looks like technical
// content: a TechArticle schema type, three or more logical code blocks,
// or a technical title keyword combined with at least four subheadings.
func isTechnicalArticle(doc *goquery.Document, ld map[string]any) bool {
	if schemaType, ok := ld["@type"].(string); ok && schemaType == "TechArticle" {
		return true
	}

	// Count logical code blocks without double-counting pre/code pairs.
	codeBlocks := 0
	doc.Find("pre").Each(func(_ int, sel *goquery.Selection) {
		if sel.Find("code").Length() > 0 {
			codeBlocks++
		}
	})
	doc.Find("code").Each(func(_ int, sel *goquery.Selection) {
		if sel.ParentsFiltered("pre").Length() == 0 {
			codeBlocks++
		}
	})
	if codeBlocks >= 3 {
		return true
	}

	title := strings.ToLower(doc.Find("title").First().Text())
	if containsAny(title, technicalTitleKeywords) {
		if doc.Find("h2, h3, h4").Length() >= 4 {
			return true
		}
	}

	return false
}

// isAPIDocumentation reports whether the document is API reference
// material, either by class naming or by two or more endpoint-style
// headings such as "GET /users".
func isAPIDocumentation(doc *goquery.Document) bool {
	found := false
	doc.Find("[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, token := range strings.Fields(sel.AttrOr("class", "")) {
			if apiClassRE.MatchString(token) {
				found = true
				return false
			}
		}
		return true
	})
	if found {
		return true
	}

	endpoints := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		text := normalizeSpace(sel.Text())
		for _, method := range httpMethods {
			if strings.HasPrefix(text, method+" /") {
				endpoints++
				break
			}
		}
	})
	return endpoints >= 2
}

// referenceLinks collects the anchors that follow a reference-section
// heading, up to the next heading, de-duplicated by URL in first-seen
// order.
func referenceLinks(doc *goquery.Document) []pith.ReferenceLink {
	var links []pith.ReferenceLink
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, heading *goquery.Selection) {
		text := strings.ToLower(normalizeSpace(heading.Text()))
		if !containsAny(text, referenceSectionKeywords) {
			return
		}

		for cur := heading.Next(); cur.Length() > 0 && !isHeadingName(goquery.NodeName(cur)); cur = cur.Next() {
			cur.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
				href := a.AttrOr("href", "")
				linkText := normalizeSpace(a.Text())
				if href != "" && linkText != "" {
					links = append(links, pith.ReferenceLink{Text: linkText, URL: href})
				}
			})
		}
	})

	seen := make(map[string]bool)
	var unique []pith.ReferenceLink
	for _, link := range links {
		if seen[link.URL] {
			continue
		}
		seen[link.URL] = true
		unique = append(unique, link)
	}
	return unique
}

func isHeadingName(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}
