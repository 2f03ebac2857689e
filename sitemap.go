package tapio

import "context"

// SitemapService discovers the page URLs a site's sitemap advertises.
// The crawler seeds its frontier with them so pages reachable only
// through navigation widgets or search still get crawled.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed in the site's sitemaps.
	// Sitemap locations come from robots.txt Sitemap directives, with
	// /sitemap.xml as the fallback; sitemap indexes are followed
	// recursively. When baseURL carries a path (a language section such
	// as https://migri.fi/en), only URLs under that path are returned.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
