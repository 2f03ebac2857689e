package tapio

import "context"

// DiscoveredLink represents a URL queued for crawling.
type DiscoveredLink struct {
	URL   string
	Depth int
}

// URLFrontier manages a crawl queue with deduplication.
// Links are returned shallowest-first so a crawl expands breadth-first.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the next link, ordered by depth then insertion.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of links in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
