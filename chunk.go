package tapio

import "context"

// Chunk represents a section of a document optimized for embedding and
// retrieval.
type Chunk struct {
	ID         string        `json:"id"`
	DocumentID string        `json:"documentId"`
	SiteKey    string        `json:"siteKey"` // Denormalized for efficient filtering
	Content    string        `json:"content"`
	Embedding  []float32     `json:"embedding,omitempty"`
	Metadata   ChunkMetadata `json:"metadata"`
}

// ChunkMetadata contains contextual information about a chunk.
type ChunkMetadata struct {
	// Header hierarchy from the document (e.g., {"h1": "Permits", "h2": "Fees"})
	Headers map[string]string `json:"headers,omitempty"`

	// Source URL for citation
	SourceURL string `json:"sourceUrl,omitempty"`

	// Title of the originating document
	Title string `json:"title,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.DocumentID == "" {
		return Errorf(EINVALID, "chunk document ID required")
	}
	if c.SiteKey == "" {
		return Errorf(EINVALID, "chunk site key required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// ChunkService represents a service for managing chunks.
type ChunkService interface {
	// CreateChunks creates multiple chunks in a batch.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// FindChunks retrieves chunks matching the filter.
	FindChunks(ctx context.Context, filter ChunkFilter) ([]*Chunk, error)

	// DeleteChunksByDocument removes all chunks for a document.
	DeleteChunksByDocument(ctx context.Context, documentID string) error

	// DeleteChunksBySite removes all chunks for a site.
	DeleteChunksBySite(ctx context.Context, siteKey string) error
}

// ChunkFilter represents a filter for FindChunks.
type ChunkFilter struct {
	ID         *string `json:"id"`
	DocumentID *string `json:"documentId"`
	SiteKey    *string `json:"siteKey"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Embedder computes embedding vectors for text.
type Embedder interface {
	// Embed returns one embedding vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// SearchService provides semantic search over chunks.
type SearchService interface {
	// Search returns chunks ordered by relevance to the query.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Filter results to a specific site.
	SiteKey string `json:"siteKey,omitempty"`

	// Maximum number of results to return.
	Limit int `json:"limit,omitempty"`

	// Minimum similarity score (0-1).
	MinScore float32 `json:"minScore,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}
