package main

import (
	"fmt"

	"github.com/vsalmi/tapio"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	site, err := deps.Sites.Site(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: unknown site %q. Run 'tapio sites' to see configured sites.\n", c.Site)
		return err
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, tapio.DocumentFilter{
		SiteKey: &site.Key,
		SortBy:  tapio.SortByDepth,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tapio.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: site %q has no documents. Run 'tapio crawl %s' first.\n", site.Key, site.Key)
		return tapio.Errorf(tapio.ENOTFOUND, "site %q has no documents", site.Key)
	}

	if c.Full {
		for _, doc := range docs {
			fmt.Fprintf(deps.Stdout, "<!-- %s -->\n%s\n\n", doc.SourceURL, doc.Content)
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Documents for %s (%d total):\n\n", site.Key, len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "  %d. [%d] %s\n     %s\n", i+1, doc.Depth, title, doc.SourceURL)
	}

	return nil
}
