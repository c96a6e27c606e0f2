package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pith"
	"golang.org/x/net/html"
)

// tabContainerRE matches class attributes of tab-widget containers
// ("tab-content", "tabbed_content", ...).
var tabContainerRE = regexp.MustCompile(`(?i)(?:tab|tabbed)[-_]content`)

// mergeTabbedContent flattens tabbed code panels into the block stream.
//
// Tab widgets present mutually exclusive panels (typically the same sample
// in several languages); visiting them per-element would interleave panel
// fragments with unrelated siblings. Instead, every div whose class
// matches the tab pattern or that carries a data-tabs attribute is merged
// up front: each descendant pre that wraps a code element becomes one code
// block, in document order, and the container is then removed from the
// tree so the main pass cannot visit it twice. Nested tab containers are
// not merged recursively; the outermost merge consumes them.
func mergeTabbedContent(root *goquery.Selection, blocks []pith.ContentBlock) []pith.ContentBlock {
	emitted := make(map[*html.Node]bool)

	root.Find("div").Each(func(_ int, container *goquery.Selection) {
		if !isTabContainer(container) {
			return
		}

		container.Find("pre").Each(func(_ int, pre *goquery.Selection) {
			node := pre.Get(0)
			if emitted[node] {
				return
			}
			if pre.Find("code").Length() == 0 {
				return
			}
			emitted[node] = true
			if b := classify(pre, len(blocks)); b != nil {
				blocks = append(blocks, *b)
			}
		})

		container.Remove()
	})

	return blocks
}

func isTabContainer(sel *goquery.Selection) bool {
	if class, ok := sel.Attr("class"); ok && tabContainerRE.MatchString(class) {
		return true
	}
	_, ok := sel.Attr("data-tabs")
	return ok
}

// insideTabContainer reports whether the element or any ancestor carries
// a tab marker. Merged containers leave the tree, so this guards the main
// pass against tab widgets the merger does not handle (non-div containers
// and tab-classed candidates themselves): their panels are skipped rather
// than interleaved.
func insideTabContainer(sel *goquery.Selection) bool {
	if len(sel.Nodes) == 0 {
		return false
	}
	for n := sel.Nodes[0]; n != nil; n = n.Parent {
		class := strings.ToLower(nodeAttr(n, "class"))
		if strings.Contains(class, "tabbed") || strings.Contains(class, "tab-content") {
			return true
		}
		if hasNodeAttr(n, "data-tabs") {
			return true
		}
	}
	return false
}
