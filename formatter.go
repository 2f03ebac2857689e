package tapio

import "strings"

// FormatChunks formats search results for LLM context.
// Each chunk is preceded by its source URL and heading path so the model
// can cite where an answer came from. Chunks are separated by blank lines.
func FormatChunks(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		header := r.Chunk.Metadata.Title
		if header == "" {
			header = r.Chunk.Metadata.SourceURL
		}
		if path := headerPath(r.Chunk.Metadata.Headers); path != "" {
			header += " > " + path
		}
		parts = append(parts, "## Source: "+header+"\n"+r.Chunk.Content)
	}

	return strings.Join(parts, "\n\n")
}

// headerPath flattens a heading hierarchy map into "h1 > h2 > h3" order.
func headerPath(headers map[string]string) string {
	if len(headers) == 0 {
		return ""
	}
	var parts []string
	for _, level := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		if title, ok := headers[level]; ok {
			parts = append(parts, title)
		}
	}
	return strings.Join(parts, " > ")
}
