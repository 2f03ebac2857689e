package tapio

import "context"

// Asker provides natural language question answering over crawled content.
type Asker interface {
	// Ask answers a natural language question using content indexed for
	// the given site. Returns ENOTFOUND if nothing is indexed for the site.
	Ask(ctx context.Context, siteKey string, question string) (string, error)
}
