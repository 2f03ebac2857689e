package mock

import (
	"context"

	"github.com/vsalmi/tapio"
)

var _ tapio.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of tapio.ChunkService.
type ChunkService struct {
	CreateChunksFn           func(ctx context.Context, chunks []*tapio.Chunk) error
	FindChunksFn             func(ctx context.Context, filter tapio.ChunkFilter) ([]*tapio.Chunk, error)
	DeleteChunksByDocumentFn func(ctx context.Context, documentID string) error
	DeleteChunksBySiteFn     func(ctx context.Context, siteKey string) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*tapio.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter tapio.ChunkFilter) ([]*tapio.Chunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	return s.DeleteChunksByDocumentFn(ctx, documentID)
}

func (s *ChunkService) DeleteChunksBySite(ctx context.Context, siteKey string) error {
	return s.DeleteChunksBySiteFn(ctx, siteKey)
}

var _ tapio.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of tapio.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts tapio.SearchOptions) ([]tapio.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts tapio.SearchOptions) ([]tapio.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}

var _ tapio.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of tapio.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}
