package tapio

import (
	"net/url"
	"time"
)

// Default values applied to omitted optional site configuration fields.
// Consumers of a resolved Site never need to branch on field presence;
// the registry fills these in before handing the Site out.
const (
	DefaultTitleSelector = "title"
	DefaultCrawlDepth    = 1
	DefaultMaxConcurrent = 5
	DefaultRequestDelay  = time.Second
)

// Site describes how one target website is crawled and parsed.
// Sites are plain data records keyed by a stable identifier; adding a
// site means adding a configuration entry, not a new type.
type Site struct {
	// Key is the stable identifier selecting this site from the registry.
	Key string `json:"key"`

	// BaseURL scopes crawling and resolves relative links.
	BaseURL string `json:"baseUrl"`

	// Description is an optional human-readable summary.
	Description string `json:"description,omitempty"`

	// TitleSelector locates the page title. Optional; defaults to "title".
	TitleSelector string `json:"titleSelector"`

	// ContentSelectors is a priority-ordered list of CSS selectors.
	// The first selector that matches at least one node wins.
	ContentSelectors []string `json:"contentSelectors"`

	// FallbackToBody uses the document body as content when no selector
	// matches. Defaults to true.
	FallbackToBody bool `json:"fallbackToBody"`

	// RenderJS fetches pages with a headless browser instead of plain HTTP.
	RenderJS bool `json:"renderJs,omitempty"`

	Markdown MarkdownOptions `json:"markdown"`
	Crawl    CrawlOptions    `json:"crawl"`
}

// MarkdownOptions customizes HTML to Markdown conversion for a site.
type MarkdownOptions struct {
	// IgnoreLinks drops hyperlinks, keeping only their text.
	IgnoreLinks bool `json:"ignoreLinks"`

	// IgnoreImages drops images entirely.
	IgnoreImages bool `json:"ignoreImages"`

	// IgnoreTables drops tables entirely.
	IgnoreTables bool `json:"ignoreTables"`

	// WrapWidth soft-wraps prose at the given column. 0 disables wrapping.
	WrapWidth int `json:"wrapWidth"`
}

// CrawlOptions bounds crawl behavior for a site.
type CrawlOptions struct {
	// Depth is the maximum link-following depth from the base URL.
	Depth int `json:"depth"`

	// MaxConcurrent caps in-flight requests to the site.
	MaxConcurrent int `json:"maxConcurrent"`

	// RequestDelay is the minimum delay between requests to the same host.
	RequestDelay time.Duration `json:"requestDelay"`
}

// Validate returns an error if the site configuration is incomplete or
// malformed. The registry calls this for every site at load time so that
// configuration errors surface at startup, not at first use.
func (s *Site) Validate() error {
	if s.Key == "" {
		return Errorf(EINVALID, "site key required")
	}
	if s.BaseURL == "" {
		return Errorf(EINVALID, "site %q: base URL required", s.Key)
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "site %q: malformed base URL %q", s.Key, s.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "site %q: base URL scheme must be http or https", s.Key)
	}
	if len(s.ContentSelectors) == 0 {
		return Errorf(EINVALID, "site %q: at least one content selector required", s.Key)
	}
	for _, sel := range s.ContentSelectors {
		if sel == "" {
			return Errorf(EINVALID, "site %q: empty content selector", s.Key)
		}
	}
	if s.Crawl.Depth < 0 {
		return Errorf(EINVALID, "site %q: crawl depth must not be negative", s.Key)
	}
	if s.Crawl.MaxConcurrent < 1 {
		return Errorf(EINVALID, "site %q: max concurrent requests must be at least 1", s.Key)
	}
	if s.Crawl.RequestDelay < 0 {
		return Errorf(EINVALID, "site %q: request delay must not be negative", s.Key)
	}
	return nil
}

// BaseDir derives the storage directory for the site from its base URL.
// The directory is the host component (e.g., "migri.fi"), so all content
// crawled from one host lands under one directory.
func (s *Site) BaseDir() (string, error) {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", Errorf(EINVALID, "site %q: malformed base URL %q", s.Key, s.BaseURL)
	}
	host := u.Hostname()
	if host == "" {
		return "", Errorf(EINVALID, "site %q: base URL %q has no host", s.Key, s.BaseURL)
	}
	return host, nil
}

// SiteRegistry resolves site configurations by key.
type SiteRegistry interface {
	// Site returns the configuration for the given key with all defaults
	// applied. Returns ENOTFOUND if the key is unknown.
	Site(key string) (*Site, error)

	// Sites returns all configured sites ordered by key.
	Sites() []*Site
}
