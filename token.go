package tapio

import "context"

// TokenCounter estimates how many model tokens a piece of Markdown
// costs. Crawl summaries report the count so a user can judge the size
// of a site's content before vectorizing it.
type TokenCounter interface {
	// CountTokens returns the token count for text. Empty text counts
	// as zero tokens.
	CountTokens(ctx context.Context, text string) (int, error)
}
