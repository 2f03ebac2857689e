// Package goquery provides the selector-driven content extractor.
// A site configuration parameterizes which part of a page is the main
// content; the extractor evaluates the configured CSS selectors in
// priority order, rewrites links to absolute URLs, and converts the
// selected content to Markdown.
package goquery

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/vsalmi/tapio"
)

// Compile-time interface verification.
var _ tapio.Extractor = (*Extractor)(nil)

// Extractor implements tapio.Extractor using goquery CSS selectors.
// It is stateless across calls and safe for concurrent use.
type Extractor struct {
	converter tapio.Converter
	logger    *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used to report dropped links.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor that converts selected content to
// Markdown using the given converter.
func NewExtractor(converter tapio.Converter, opts ...Option) *Extractor {
	e := &Extractor{
		converter: converter,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract selects the title and main content of the document per the
// site's selector rules and converts the content to Markdown.
//
// The title selector yielding no match is not an error; the title is
// simply empty. Content selectors form a priority list: the first
// selector with at least one match wins and later selectors are never
// consulted. With no match and fallback enabled the document body is
// used; with fallback disabled extraction fails with ENOCONTENT.
func (e *Extractor) Extract(site *tapio.Site, sourceURL, rawHTML string, depth int) (*tapio.ExtractionResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, tapio.Errorf(tapio.EUNPARSABLE, "empty HTML document at %s", sourceURL)
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, tapio.Errorf(tapio.EINVALID, "invalid source URL %q: %v", sourceURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, tapio.Errorf(tapio.EUNPARSABLE, "parsing HTML from %s: %v", sourceURL, err)
	}

	title := strings.TrimSpace(doc.Find(site.TitleSelector).First().Text())

	content, ok := selectContent(doc, site)
	if !ok {
		return nil, tapio.Errorf(tapio.ENOCONTENT, "no content selector matched %s and body fallback is disabled", sourceURL)
	}

	links := e.rewriteLinks(content, base)

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, tapio.Errorf(tapio.EUNPARSABLE, "rendering content of %s: %v", sourceURL, err)
	}

	markdown, err := e.converter.Convert(contentHTML, site.Markdown)
	if err != nil {
		return nil, err
	}

	return &tapio.ExtractionResult{
		Title:     title,
		Markdown:  markdown,
		Links:     links,
		SourceURL: sourceURL,
		Depth:     depth,
	}, nil
}

// selectContent returns the node the content selectors pick: the first
// matching node of the first selector that matches anything. Falls back
// to the document body when the site allows it.
func selectContent(doc *goquery.Document, site *tapio.Site) (*goquery.Selection, bool) {
	for _, selector := range site.ContentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel.First(), true
		}
	}
	if site.FallbackToBody {
		return doc.Find("body").First(), true
	}
	return nil, false
}

// rewriteLinks rewrites every href and src inside the selection to an
// absolute URL resolved against base, and returns the absolute link
// targets discovered, deduplicated, in order of first occurrence.
// Fragments are stripped from the discovered set (not from the rewritten
// attributes) so URLs differing only by fragment count once; links that
// cannot be resolved are dropped from the set and logged.
func (e *Extractor) rewriteLinks(content *goquery.Selection, base *url.URL) []string {
	seen := make(map[string]bool)
	var links []string

	content.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved, err := resolveRef(base, href)
		if err != nil {
			e.logger.Debug("dropping unresolvable link", "href", href, "base", base.String(), "error", err)
			return
		}
		sel.SetAttr("href", resolved.String())

		target := dedupKey(resolved)
		if target == "" || target == baseKey(base) {
			return
		}
		if !seen[target] {
			seen[target] = true
			links = append(links, target)
		}
	})

	content.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
			return
		}

		resolved, err := resolveRef(base, src)
		if err != nil {
			e.logger.Debug("dropping unresolvable image source", "src", src, "base", base.String(), "error", err)
			return
		}
		sel.SetAttr("src", resolved.String())
	})

	return links
}

// resolveRef resolves a reference against base per standard URL
// resolution rules. Protocol-relative, path-relative and fragment-only
// references all resolve; an already-absolute reference comes back
// unchanged.
func resolveRef(base *url.URL, ref string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, err
	}
	return base.ResolveReference(parsed), nil
}

// dedupKey renders a resolved URL with its fragment stripped.
func dedupKey(u *url.URL) string {
	stripped := *u
	stripped.Fragment = ""
	return stripped.String()
}

// baseKey renders the base URL with its fragment stripped, for filtering
// self-referential links out of the discovered set.
func baseKey(base *url.URL) string {
	stripped := *base
	stripped.Fragment = ""
	return stripped.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be left alone.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
