// Package trafilatura adapts go-trafilatura as an alternative reader-mode
// cleaning pass, with better recall on sparse pages than readability.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pith"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements pith.Cleaner at compile time.
var _ pith.Cleaner = (*Cleaner)(nil)

// Cleaner wraps go-trafilatura to reduce raw HTML to its readable core.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean processes raw HTML and returns the title and main content.
func (c *Cleaner) Clean(rawHTML string) (*pith.CleanResult, error) {
	if rawHTML == "" {
		return nil, pith.Errorf(pith.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, pith.Errorf(pith.EUNPROCESSABLE, "trafilatura failed: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &pith.CleanResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
