package gemini

import (
	"context"

	"github.com/vsalmi/tapio"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel is the Gemini embedding model used for chunks
// and queries.
const DefaultEmbeddingModel = "gemini-embedding-001"

// embedBatchSize caps how many texts go into one EmbedContent call.
const embedBatchSize = 100

// Ensure Embedder implements tapio.Embedder at compile time.
var _ tapio.Embedder = (*Embedder)(nil)

// Embedder computes embedding vectors using the Gemini embedding API.
type Embedder struct {
	client *genai.Client
	model  string
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithEmbeddingModel overrides the embedding model.
// Defaults to DefaultEmbeddingModel.
func WithEmbeddingModel(model string) EmbedderOption {
	return func(e *Embedder) {
		e.model = model
	}
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client, opts ...EmbedderOption) *Embedder {
	e := &Embedder{
		client: client,
		model:  DefaultEmbeddingModel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed returns one embedding vector per input text, in input order.
// Inputs are batched to stay within API limits.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(texts))
		batch := texts[start:end]

		contents := make([]*genai.Content, len(batch))
		for i, text := range batch {
			contents[i] = genai.NewContentFromText(text, "user")
		}

		result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
		if err != nil {
			return nil, err
		}
		if result == nil || len(result.Embeddings) != len(batch) {
			return nil, tapio.Errorf(tapio.EINTERNAL, "gemini returned %d embeddings for %d texts",
				embeddingCount(result), len(batch))
		}

		for _, emb := range result.Embeddings {
			vectors = append(vectors, emb.Values)
		}
	}

	return vectors, nil
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
