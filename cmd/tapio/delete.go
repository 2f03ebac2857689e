package main

import (
	"fmt"

	"github.com/vsalmi/tapio"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return tapio.Errorf(tapio.EINVALID, "use --force to confirm deletion")
	}

	site, err := deps.Sites.Site(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: unknown site %q. Run 'tapio sites' to see configured sites.\n", c.Site)
		return err
	}

	if err := deps.Chunks.DeleteChunksBySite(deps.Ctx, site.Key); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tapio.ErrorMessage(err))
		return err
	}
	if err := deps.Documents.DeleteDocumentsBySite(deps.Ctx, site.Key); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tapio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted all documents and chunks for %q\n", site.Key)
	return nil
}
