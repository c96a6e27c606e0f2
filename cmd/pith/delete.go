package main

import (
	"fmt"

	"github.com/fwojciec/pith"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Archive.DeleteExtraction(deps.Ctx, c.URL); err != nil {
		if pith.ErrorCode(err) == pith.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: no archived extraction for %q. Use 'pith list' to see archived extractions.\n", c.URL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pith.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted extraction for %q\n", c.URL)
	return nil
}
