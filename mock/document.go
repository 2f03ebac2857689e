package mock

import (
	"context"

	"github.com/vsalmi/tapio"
)

var _ tapio.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of tapio.DocumentService.
type DocumentService struct {
	CreateDocumentFn        func(ctx context.Context, doc *tapio.Document) error
	FindDocumentByIDFn      func(ctx context.Context, id string) (*tapio.Document, error)
	FindDocumentsFn         func(ctx context.Context, filter tapio.DocumentFilter) ([]*tapio.Document, error)
	DeleteDocumentFn        func(ctx context.Context, id string) error
	DeleteDocumentsBySiteFn func(ctx context.Context, siteKey string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *tapio.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*tapio.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter tapio.DocumentFilter) ([]*tapio.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) DeleteDocumentsBySite(ctx context.Context, siteKey string) error {
	return s.DeleteDocumentsBySiteFn(ctx, siteKey)
}

var _ tapio.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of tapio.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *tapio.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *tapio.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
