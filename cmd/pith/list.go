package main

import (
	"fmt"

	"github.com/fwojciec/pith"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := pith.ExtractionFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Contains != "" {
		filter.URLContains = &c.Contains
	}
	if c.Type != "" {
		articleType := pith.ArticleType(c.Type)
		filter.ArticleType = &articleType
	}

	extractions, err := deps.Archive.FindExtractions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pith.ErrorMessage(err))
		return err
	}

	if len(extractions) == 0 {
		fmt.Fprintln(deps.Stdout, "No extractions archived. Use 'pith extract --save' to create one.")
		return nil
	}

	for _, e := range extractions {
		articleType := string(e.ArticleType)
		if articleType == "" {
			articleType = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %3d blocks  %s\n",
			e.ArchivedAt.Format("2006-01-02"), articleType, e.BlockCount,
			pith.TruncateURL(e.URL, 80))
	}

	return nil
}
