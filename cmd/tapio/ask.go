package main

import (
	"fmt"

	"github.com/vsalmi/tapio"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	site, err := deps.Sites.Site(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: unknown site %q. Run 'tapio sites' to see configured sites.\n", c.Site)
		return err
	}

	answer, err := deps.Asker.Ask(deps.Ctx, site.Key, c.Question)
	if err != nil {
		if tapio.ErrorCode(err) == tapio.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s. Run 'tapio vectorize %s' first.\n", tapio.ErrorMessage(err), site.Key)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tapio.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
