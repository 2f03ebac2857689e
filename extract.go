package tapio

// ExtractionResult is the output of processing one HTML document.
// It is produced once per document and never mutated afterwards.
type ExtractionResult struct {
	// Title is the extracted page title; empty when the title selector
	// matched nothing. Title absence is never an error.
	Title string

	// Markdown is the extracted main content converted to Markdown.
	Markdown string

	// Links holds every absolute link target discovered inside the
	// extracted content, deduplicated, in order of first occurrence.
	// This set feeds the crawl frontier for the next depth level.
	Links []string

	// SourceURL is the URL the document originated from.
	SourceURL string

	// Depth is the crawl depth at which the document was found.
	Depth int
}

// Extractor extracts the main content of an HTML document according to a
// site configuration. Implementations are stateless and safe for
// concurrent use.
type Extractor interface {
	// Extract selects the title and content of the document per the site's
	// selector rules and converts the content to Markdown. Relative links
	// and image sources are rewritten to absolute URLs resolved against
	// sourceURL. depth is the crawl depth the document was found at and is
	// recorded on the result.
	//
	// Returns ENOCONTENT if no content selector matches and the site's
	// body fallback is disabled. Returns EUNPARSABLE if the document
	// cannot be parsed at all. Both are per-document conditions; callers
	// processing batches record them and continue.
	Extract(site *Site, sourceURL, html string, depth int) (*ExtractionResult, error)
}
