package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/vsalmi/tapio"
)

// Compile-time interface verification.
var _ tapio.ChunkService = (*ChunkService)(nil)

// ChunkService implements tapio.ChunkService using SQLite.
// Embeddings are stored as little-endian float32 blobs.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks creates multiple chunks in a batch.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*tapio.Chunk) error {
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
	}

	for _, chunk := range chunks {
		chunk.ID = uuid.New().String()

		headers, err := json.Marshal(chunk.Metadata.Headers)
		if err != nil {
			return fmt.Errorf("failed to encode chunk headers: %w", err)
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO chunks (id, document_id, site_key, content, embedding, headers, source_url, title)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID, chunk.DocumentID, chunk.SiteKey, chunk.Content,
			encodeEmbedding(chunk.Embedding), string(headers),
			chunk.Metadata.SourceURL, chunk.Metadata.Title)
		if err != nil {
			return err
		}
	}

	return nil
}

// FindChunks retrieves chunks matching the filter.
func (s *ChunkService) FindChunks(ctx context.Context, filter tapio.ChunkFilter) ([]*tapio.Chunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, document_id, site_key, content, embedding, headers, source_url, title FROM chunks WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.DocumentID != nil {
		query.WriteString(" AND document_id = ?")
		args = append(args, *filter.DocumentID)
	}
	if filter.SiteKey != nil {
		query.WriteString(" AND site_key = ?")
		args = append(args, *filter.SiteKey)
	}

	query.WriteString(" ORDER BY id ASC")
	applyPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*tapio.Chunk
	for rows.Next() {
		chunk, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// DeleteChunksByDocument removes all chunks for a document.
func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	return err
}

// DeleteChunksBySite removes all chunks for a site.
func (s *ChunkService) DeleteChunksBySite(ctx context.Context, siteKey string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE site_key = ?", siteKey)
	return err
}

// scanChunk scans one chunk row. The scan function signature matches both
// sql.Row.Scan and sql.Rows.Scan.
func scanChunk(scan func(dest ...any) error) (*tapio.Chunk, error) {
	var chunk tapio.Chunk
	var embedding []byte
	var headers string

	if err := scan(&chunk.ID, &chunk.DocumentID, &chunk.SiteKey, &chunk.Content,
		&embedding, &headers, &chunk.Metadata.SourceURL, &chunk.Metadata.Title); err != nil {
		return nil, err
	}

	chunk.Embedding = decodeEmbedding(embedding)
	if err := json.Unmarshal([]byte(headers), &chunk.Metadata.Headers); err != nil {
		return nil, fmt.Errorf("failed to decode chunk headers: %w", err)
	}

	return &chunk, nil
}

// encodeEmbedding serializes a vector as a little-endian float32 blob.
func encodeEmbedding(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeEmbedding deserializes a little-endian float32 blob.
func decodeEmbedding(buf []byte) []float32 {
	if len(buf) == 0 {
		return nil
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}

// Compile-time interface verification.
var _ tapio.SearchService = (*SearchService)(nil)

// SearchService implements tapio.SearchService with brute-force cosine
// similarity over stored chunk embeddings. Fine for the corpus sizes a
// site crawl produces; an ANN index would be needed at larger scale.
type SearchService struct {
	db       *DB
	chunks   *ChunkService
	embedder tapio.Embedder
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB, embedder tapio.Embedder) *SearchService {
	return &SearchService{
		db:       db,
		chunks:   NewChunkService(db),
		embedder: embedder,
	}
}

// DefaultSearchLimit caps the number of results when SearchOptions.Limit
// is not set.
const DefaultSearchLimit = 10

// Search embeds the query and returns the most similar chunks.
func (s *SearchService) Search(ctx context.Context, query string, opts tapio.SearchOptions) ([]tapio.SearchResult, error) {
	if query == "" {
		return nil, tapio.Errorf(tapio.EINVALID, "search query required")
	}

	vecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, tapio.Errorf(tapio.EINTERNAL, "embedder returned %d vectors for one query", len(vecs))
	}
	queryVec := vecs[0]

	filter := tapio.ChunkFilter{}
	if opts.SiteKey != "" {
		filter.SiteKey = &opts.SiteKey
	}
	chunks, err := s.chunks.FindChunks(ctx, filter)
	if err != nil {
		return nil, err
	}

	var results []tapio.SearchResult
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		score := cosineSimilarity(queryVec, chunk.Embedding)
		if score < opts.MinScore {
			continue
		}
		results = append(results, tapio.SearchResult{Chunk: chunk, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched dimensions or zero vectors.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
