package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// pullQuoteMarkers are class substrings that mark a quote (or its aside
// wrapper) as a pull quote. The same markers rescue an aside from the
// noise filter: pull quotes are frequently marked up as asides, and
// dropping every aside would lose them.
var pullQuoteMarkers = []string{"pull", "pullquote", "highlight"}

// noiseClassKeywords flag navigation, sidebar, and discussion regions by
// class attribute substring.
var noiseClassKeywords = []string{
	"nav", "navigation", "sidebar", "side-bar", "related", "trending",
	"menu", "comment", "comments", "disqus", "discourse", "replies",
}

// noiseIDKeywords flag the same regions by id attribute substring.
var noiseIDKeywords = []string{
	"nav", "sidebar", "menu", "related", "trending",
	"comment", "comments", "disqus", "discourse",
}

// isNoise reports whether the element sits inside navigation, sidebar, or
// comment chrome. It walks upward from the element itself, stopping before
// the body/html boundary. An aside ancestor is noise only when it lacks
// pull-quote markers.
func isNoise(sel *goquery.Selection) bool {
	if len(sel.Nodes) == 0 {
		return false
	}

	for n := sel.Nodes[0]; n != nil; {
		if isNoiseNode(n) {
			return true
		}
		parent := n.Parent
		if parent == nil || parent.Type != html.ElementNode {
			break
		}
		if parent.Data == "body" || parent.Data == "html" {
			break
		}
		n = parent
	}

	return false
}

func isNoiseNode(n *html.Node) bool {
	if n.Data == "nav" {
		return true
	}

	class := strings.ToLower(nodeAttr(n, "class"))
	if n.Data == "aside" && !containsAny(class, pullQuoteMarkers) {
		return true
	}
	if containsAny(class, noiseClassKeywords) {
		return true
	}

	id := strings.ToLower(nodeAttr(n, "id"))
	return containsAny(id, noiseIDKeywords)
}

// nodeAttr returns the value of the named attribute, or "" if absent.
func nodeAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasNodeAttr reports whether the named attribute is present at all.
func hasNodeAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
