// Package crawl provides site crawling orchestration.
// It coordinates fetching, content extraction and storage of pages for
// one configured site, expanding breadth-first through discovered links.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/vsalmi/tapio"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing for Bloom filter deduplication.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01

	// maxCrawlURLs limits the number of URLs processed to prevent runaway crawls.
	maxCrawlURLs = 5000
)

// Crawler orchestrates the crawling of one site at a time.
// The fetcher is chosen by the caller (HTTP or browser, per the site's
// render_js setting); everything else is parameterized by the Site.
type Crawler struct {
	Fetcher      tapio.Fetcher
	Extractor    tapio.Extractor
	Documents    tapio.DocumentService
	Writer       tapio.DocumentWriter
	Sitemaps     tapio.SitemapService
	TokenCounter tapio.TokenCounter
	RetryDelays  []time.Duration
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved   int
	Skipped int
	Failed  int
	Bytes   int
	Tokens  int
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types emitted during a crawl.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type  ProgressType
	Depth int
	URL   string
	Error error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	link   tapio.DiscoveredLink
	result *tapio.ExtractionResult
	err    error
}

// CrawlSite crawls a site breadth-first up to its configured depth and
// saves each extracted page as a document. Per-document failures are
// recorded and reported through the progress callback; they never abort
// the crawl. The returned error covers setup problems only.
func (c *Crawler) CrawlSite(ctx context.Context, site *tapio.Site, progress ProgressFunc) (*Result, error) {
	base, err := url.Parse(site.BaseURL)
	if err != nil {
		return nil, tapio.Errorf(tapio.EINVALID, "site %q: malformed base URL %q", site.Key, site.BaseURL)
	}

	limiter := NewDomainLimiter(site.Crawl.RequestDelay)
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(tapio.DiscoveredLink{URL: site.BaseURL, Depth: 0})

	// Seed from the sitemap when one is available. Seeded pages count as
	// depth 0; the depth limit applies to links found on them.
	if c.Sitemaps != nil {
		urls, err := c.Sitemaps.DiscoverURLs(ctx, site.BaseURL)
		if err == nil {
			for _, u := range urls {
				frontier.Push(tapio.DiscoveredLink{URL: u, Depth: 0})
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: site.BaseURL})
	}

	var result Result
	processed := 0

	// The frontier is depth-ordered and new links are only pushed after a
	// level is drained, so each drain yields exactly one BFS level.
	for {
		var batch []tapio.DiscoveredLink
		for {
			link, ok := frontier.Pop()
			if !ok {
				break
			}
			batch = append(batch, link)
		}
		if len(batch) == 0 || ctx.Err() != nil {
			break
		}
		if processed+len(batch) > maxCrawlURLs {
			batch = batch[:maxCrawlURLs-processed]
		}
		processed += len(batch)

		results := c.processLevel(ctx, site, batch, limiter)

		for _, r := range results {
			if r.err != nil {
				c.recordFailure(&result, r, progress)
				continue
			}

			if r.link.Depth < site.Crawl.Depth {
				for _, target := range r.result.Links {
					if !sameHost(base, target) {
						continue
					}
					frontier.Push(tapio.DiscoveredLink{URL: target, Depth: r.link.Depth + 1})
				}
			}

			if err := c.saveDocument(ctx, site, r, &result); err != nil {
				result.Failed++
				if progress != nil {
					progress(ProgressEvent{Type: ProgressFailed, Depth: r.link.Depth, URL: r.link.URL, Error: err})
				}
				continue
			}

			if progress != nil {
				progress(ProgressEvent{Type: ProgressCompleted, Depth: r.link.Depth, URL: r.link.URL})
			}
		}

		if processed >= maxCrawlURLs {
			break
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	return &result, nil
}

// processLevel fetches and extracts one BFS level with bounded concurrency.
func (c *Crawler) processLevel(ctx context.Context, site *tapio.Site, batch []tapio.DiscoveredLink, limiter tapio.DomainLimiter) []crawlResult {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	results := make([]crawlResult, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(site.Crawl.MaxConcurrent)

	for i, link := range batch {
		g.Go(func() error {
			results[i] = crawlResult{link: link}

			host := link.URL
			if u, err := url.Parse(link.URL); err == nil {
				host = u.Host
			}
			if err := limiter.Wait(gctx, host); err != nil {
				results[i].err = err
				return nil
			}

			html, err := FetchWithRetryDelays(gctx, link.URL, c.Fetcher.Fetch, nil, delays)
			if err != nil {
				results[i].err = err
				return nil
			}

			extracted, err := c.Extractor.Extract(site, link.URL, html, link.Depth)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].result = extracted
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// recordFailure classifies a per-document failure as a skip or a failure
// and reports it. Skips are documents the extraction contract excludes
// (no selector matched, fallback disabled); failures are everything else.
func (c *Crawler) recordFailure(result *Result, r crawlResult, progress ProgressFunc) {
	eventType := ProgressFailed
	if code := tapio.ErrorCode(r.err); code == tapio.ENOCONTENT || code == tapio.EUNPARSABLE {
		result.Skipped++
		eventType = ProgressSkipped
	} else {
		result.Failed++
	}
	if progress != nil {
		progress(ProgressEvent{Type: eventType, Depth: r.link.Depth, URL: r.link.URL, Error: r.err})
	}
}

// saveDocument writes one extracted page to disk when a writer is
// configured and persists it to the document store.
func (c *Crawler) saveDocument(ctx context.Context, site *tapio.Site, r crawlResult, result *Result) error {
	doc := &tapio.Document{
		SiteKey:   site.Key,
		SourceURL: r.result.SourceURL,
		Title:     r.result.Title,
		Content:   r.result.Markdown,
		Depth:     r.result.Depth,
	}

	// The writer runs first: it records the on-disk path on the document,
	// which the store persists. A write failure therefore leaves no row
	// behind for a page that is counted as failed.
	if c.Writer != nil {
		if err := c.Writer.CreateDocument(ctx, doc); err != nil {
			return err
		}
	}
	if err := c.Documents.CreateDocument(ctx, doc); err != nil {
		return err
	}

	result.Saved++
	result.Bytes += len(r.result.Markdown)
	if c.TokenCounter != nil {
		if tokens, err := c.TokenCounter.CountTokens(ctx, r.result.Markdown); err == nil {
			result.Tokens += tokens
		}
	}
	return nil
}

// sameHost reports whether target is on the same host as base.
// Exact host matching - subdomains are considered different hosts.
func sameHost(base *url.URL, target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
