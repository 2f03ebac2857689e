package main

import (
	"fmt"

	"github.com/vsalmi/tapio"
)

// maxChunkChars bounds chunk size so each chunk embeds and retrieves well.
const maxChunkChars = 2000

// embedBatchSize is how many chunk texts are embedded per API call.
const embedBatchSize = 50

// Run executes the vectorize command.
func (c *VectorizeCmd) Run(deps *Dependencies) error {
	site, err := deps.Sites.Site(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: unknown site %q. Run 'tapio sites' to see configured sites.\n", c.Site)
		return err
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, tapio.DocumentFilter{SiteKey: &site.Key})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tapio.ErrorMessage(err))
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no documents for site %q. Run 'tapio crawl %s' first.\n", site.Key, site.Key)
		return tapio.Errorf(tapio.ENOTFOUND, "no documents for site %q", site.Key)
	}

	// Re-vectorizing replaces the site's previous index.
	if err := deps.Chunks.DeleteChunksBySite(deps.Ctx, site.Key); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tapio.ErrorMessage(err))
		return err
	}

	var chunks []*tapio.Chunk
	for _, doc := range docs {
		for _, part := range tapio.SplitMarkdown(doc.Content, maxChunkChars) {
			chunks = append(chunks, &tapio.Chunk{
				DocumentID: doc.ID,
				SiteKey:    doc.SiteKey,
				Content:    part.Content,
				Metadata: tapio.ChunkMetadata{
					Headers:   part.Headers,
					SourceURL: doc.SourceURL,
					Title:     doc.Title,
				},
			})
		}
	}

	if len(chunks) == 0 {
		fmt.Fprintf(deps.Stderr, "error: documents for site %q contain no content to index\n", site.Key)
		return tapio.Errorf(tapio.ENOCONTENT, "no content to index for site %q", site.Key)
	}

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		vectors, err := deps.Embedder.Embed(deps.Ctx, texts)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error embedding chunks: %v\n", err)
			return err
		}
		if len(vectors) != len(batch) {
			return tapio.Errorf(tapio.EINTERNAL, "embedder returned %d vectors for %d chunks", len(vectors), len(batch))
		}

		for i, vec := range vectors {
			batch[i].Embedding = vec
		}

		if err := deps.Chunks.CreateChunks(deps.Ctx, batch); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tapio.ErrorMessage(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "  indexed %d/%d chunks\n", end, len(chunks))
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d chunks from %d documents for %q.\n", len(chunks), len(docs), site.Key)
	fmt.Fprintf(deps.Stdout, "Run 'tapio ask %s \"<question>\"' to query the site.\n", site.Key)

	return nil
}
