package tapio

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown honoring the given
	// per-site options. The input should be the already-selected content
	// node (e.g., from an Extractor).
	Convert(html string, opts MarkdownOptions) (string, error)
}
