package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsalmi/tapio"
	"github.com/vsalmi/tapio/sqlite"
)

func TestDocumentService_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("creates document with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &tapio.Document{
			SiteKey:   "migri",
			SourceURL: "https://migri.fi/en/residence-permit",
			Title:     "Residence permit",
			Content:   "# Residence permit\n\nHow to apply.",
			Depth:     1,
		}

		err := svc.CreateDocument(ctx, doc)
		require.NoError(t, err)

		assert.NotEmpty(t, doc.ID, "ID should be generated")
		assert.NotEmpty(t, doc.ContentHash, "ContentHash should be generated")
		assert.False(t, doc.FetchedAt.IsZero(), "FetchedAt should be set")
	})

	t.Run("returns error for invalid document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &tapio.Document{} // missing required fields

		err := svc.CreateDocument(ctx, doc)
		require.Error(t, err)
		assert.Equal(t, tapio.EINVALID, tapio.ErrorCode(err))
	})

	t.Run("re-crawl replaces the previous document for the same URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		first := &tapio.Document{
			SiteKey:   "migri",
			SourceURL: "https://migri.fi/en/citizenship",
			Content:   "old content",
		}
		require.NoError(t, svc.CreateDocument(ctx, first))

		second := &tapio.Document{
			SiteKey:   "migri",
			SourceURL: "https://migri.fi/en/citizenship",
			Content:   "new content",
		}
		require.NoError(t, svc.CreateDocument(ctx, second))

		siteKey := "migri"
		docs, err := svc.FindDocuments(ctx, tapio.DocumentFilter{SiteKey: &siteKey})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "new content", docs[0].Content)

		_, err = svc.FindDocumentByID(ctx, first.ID)
		assert.Equal(t, tapio.ENOTFOUND, tapio.ErrorCode(err))
	})

	t.Run("same URL on different sites does not conflict", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateDocument(ctx, &tapio.Document{
			SiteKey:   "migri",
			SourceURL: "https://example.com/shared",
			Content:   "a",
		}))
		require.NoError(t, svc.CreateDocument(ctx, &tapio.Document{
			SiteKey:   "te_palvelut",
			SourceURL: "https://example.com/shared",
			Content:   "b",
		}))

		docs, err := svc.FindDocuments(ctx, tapio.DocumentFilter{})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})
}

func TestDocumentService_FindDocumentByID(t *testing.T) {
	t.Parallel()

	t.Run("returns stored document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &tapio.Document{
			SiteKey:   "migri",
			SourceURL: "https://migri.fi/en/residence-permit",
			FilePath:  "migri.fi/en/residence-permit.md",
			Title:     "Residence permit",
			Content:   "# Residence permit",
			Depth:     2,
		}
		require.NoError(t, svc.CreateDocument(ctx, doc))

		got, err := svc.FindDocumentByID(ctx, doc.ID)
		require.NoError(t, err)

		assert.Equal(t, doc.ID, got.ID)
		assert.Equal(t, "migri", got.SiteKey)
		assert.Equal(t, "migri.fi/en/residence-permit.md", got.FilePath)
		assert.Equal(t, "Residence permit", got.Title)
		assert.Equal(t, 2, got.Depth)
		assert.Equal(t, doc.ContentHash, got.ContentHash)
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		_, err := svc.FindDocumentByID(context.Background(), "no-such-id")

		require.Error(t, err)
		assert.Equal(t, tapio.ENOTFOUND, tapio.ErrorCode(err))
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.DocumentService) {
		t.Helper()
		ctx := context.Background()
		for _, doc := range []*tapio.Document{
			{SiteKey: "migri", SourceURL: "https://migri.fi", Depth: 0, Content: "home"},
			{SiteKey: "migri", SourceURL: "https://migri.fi/en/citizenship", Depth: 1, Content: "citizenship"},
			{SiteKey: "te_palvelut", SourceURL: "https://te-palvelut.fi", Depth: 0, Content: "jobs"},
		} {
			require.NoError(t, svc.CreateDocument(ctx, doc))
		}
	}

	t.Run("filters by site key", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		seed(t, svc)

		siteKey := "migri"
		docs, err := svc.FindDocuments(context.Background(), tapio.DocumentFilter{SiteKey: &siteKey})

		require.NoError(t, err)
		assert.Len(t, docs, 2)
		for _, doc := range docs {
			assert.Equal(t, "migri", doc.SiteKey)
		}
	})

	t.Run("filters by source URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		seed(t, svc)

		sourceURL := "https://te-palvelut.fi"
		docs, err := svc.FindDocuments(context.Background(), tapio.DocumentFilter{SourceURL: &sourceURL})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "te_palvelut", docs[0].SiteKey)
	})

	t.Run("sorts by depth", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		seed(t, svc)

		siteKey := "migri"
		docs, err := svc.FindDocuments(context.Background(), tapio.DocumentFilter{
			SiteKey: &siteKey,
			SortBy:  tapio.SortByDepth,
		})

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, 0, docs[0].Depth)
		assert.Equal(t, 1, docs[1].Depth)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		seed(t, svc)

		docs, err := svc.FindDocuments(context.Background(), tapio.DocumentFilter{
			SortBy: tapio.SortByDepth,
			Limit:  2,
			Offset: 1,
		})

		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	t.Parallel()

	t.Run("deletes an existing document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &tapio.Document{SiteKey: "migri", SourceURL: "https://migri.fi", Content: "x"}
		require.NoError(t, svc.CreateDocument(ctx, doc))

		require.NoError(t, svc.DeleteDocument(ctx, doc.ID))

		_, err := svc.FindDocumentByID(ctx, doc.ID)
		assert.Equal(t, tapio.ENOTFOUND, tapio.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		err := svc.DeleteDocument(context.Background(), "no-such-id")

		require.Error(t, err)
		assert.Equal(t, tapio.ENOTFOUND, tapio.ErrorCode(err))
	})

	t.Run("cascades to chunks", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		docSvc := sqlite.NewDocumentService(db)
		chunkSvc := sqlite.NewChunkService(db)
		ctx := context.Background()

		doc := &tapio.Document{SiteKey: "migri", SourceURL: "https://migri.fi", Content: "x"}
		require.NoError(t, docSvc.CreateDocument(ctx, doc))
		require.NoError(t, chunkSvc.CreateChunks(ctx, []*tapio.Chunk{
			{DocumentID: doc.ID, SiteKey: "migri", Content: "chunk"},
		}))

		require.NoError(t, docSvc.DeleteDocument(ctx, doc.ID))

		chunks, err := chunkSvc.FindChunks(ctx, tapio.ChunkFilter{DocumentID: &doc.ID})
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})
}

func TestDocumentService_DeleteDocumentsBySite(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewDocumentService(db)
	ctx := context.Background()

	require.NoError(t, svc.CreateDocument(ctx, &tapio.Document{SiteKey: "migri", SourceURL: "https://migri.fi", Content: "a"}))
	require.NoError(t, svc.CreateDocument(ctx, &tapio.Document{SiteKey: "te_palvelut", SourceURL: "https://te-palvelut.fi", Content: "b"}))

	require.NoError(t, svc.DeleteDocumentsBySite(ctx, "migri"))

	docs, err := svc.FindDocuments(ctx, tapio.DocumentFilter{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "te_palvelut", docs[0].SiteKey)
}
