package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/vsalmi/tapio"
)

// Compile-time interface verification.
var _ tapio.DocumentService = (*DocumentService)(nil)

// DocumentService implements tapio.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document. Re-crawling a page replaces the
// previous document for the same site and source URL; its chunks are
// removed by the foreign key cascade and must be re-indexed.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *tapio.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.FetchedAt = time.Now().UTC()
	doc.ContentHash = hashContent(doc.Content)

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM documents WHERE site_key = ? AND source_url = ?
	`, doc.SiteKey, doc.SourceURL); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, site_key, file_path, source_url, title, content, content_hash, depth, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SiteKey, doc.FilePath, doc.SourceURL, doc.Title, doc.Content, doc.ContentHash,
		doc.Depth, doc.FetchedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*tapio.Document, error) {
	var doc tapio.Document
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, site_key, file_path, source_url, title, content, content_hash, depth, fetched_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.SiteKey, &doc.FilePath, &doc.SourceURL, &doc.Title,
		&doc.Content, &doc.ContentHash, &doc.Depth, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, tapio.Errorf(tapio.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	doc.FetchedAt, err = parseStoredTime(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter tapio.DocumentFilter) ([]*tapio.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, site_key, file_path, source_url, title, content, content_hash, depth, fetched_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SiteKey != nil {
		query.WriteString(" AND site_key = ?")
		args = append(args, *filter.SiteKey)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	switch filter.SortBy {
	case tapio.SortByDepth:
		query.WriteString(" ORDER BY depth ASC, source_url ASC")
	default:
		query.WriteString(" ORDER BY fetched_at DESC")
	}

	applyPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*tapio.Document
	for rows.Next() {
		var doc tapio.Document
		var fetchedAt string

		if err := rows.Scan(&doc.ID, &doc.SiteKey, &doc.FilePath, &doc.SourceURL, &doc.Title,
			&doc.Content, &doc.ContentHash, &doc.Depth, &fetchedAt); err != nil {
			return nil, err
		}

		doc.FetchedAt, err = parseStoredTime(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document. Associated chunks are
// removed by the foreign key cascade.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return tapio.Errorf(tapio.ENOTFOUND, "document not found")
	}

	return nil
}

// DeleteDocumentsBySite removes all documents for a site.
func (s *DocumentService) DeleteDocumentsBySite(ctx context.Context, siteKey string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE site_key = ?", siteKey)
	return err
}
