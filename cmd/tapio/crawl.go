package main

import (
	"fmt"

	"github.com/vsalmi/tapio"
	"github.com/vsalmi/tapio/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	site, err := deps.Sites.Site(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tapio.ErrorMessage(err))
		return err
	}

	if c.Depth >= 0 {
		site.Crawl.Depth = c.Depth
	}

	fmt.Fprintf(deps.Stdout, "Crawling %s (%s, depth %d)\n", site.Key, site.BaseURL, site.Crawl.Depth)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			if c.Verbose {
				fmt.Fprintf(deps.Stdout, "  [%d] %s\n", event.Depth, crawl.TruncateURL(event.URL, 72))
			}
		case crawl.ProgressSkipped:
			if c.Verbose {
				fmt.Fprintf(deps.Stdout, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
			}
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
		}
	}

	result, err := deps.Crawler.CrawlSite(deps.Ctx, site, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages, skipped %d, failed %d (%s, %s)\n",
		result.Saved, result.Skipped, result.Failed,
		crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens))

	if result.Saved > 0 {
		fmt.Fprintf(deps.Stdout, "Run 'tapio vectorize %s' to index the crawled pages.\n", site.Key)
	}

	return nil
}
