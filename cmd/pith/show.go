package main

import (
	"fmt"

	"github.com/fwojciec/pith"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	extraction, err := deps.Archive.FindExtractionByURL(deps.Ctx, c.URL)
	if err != nil {
		if pith.ErrorCode(err) == pith.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: no archived extraction for %q. Use 'pith list' to see archived extractions.\n", c.URL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pith.ErrorMessage(err))
		}
		return err
	}

	if c.Format == "markdown" {
		fmt.Fprintln(deps.Stdout, extraction.Markdown)
		return nil
	}

	fmt.Fprintln(deps.Stdout, extraction.Content)
	return nil
}
