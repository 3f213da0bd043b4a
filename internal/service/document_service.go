package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"distill/internal/model"
	"distill/internal/repository"
)

// DocumentService manages the stored content records.
type DocumentService interface {
	Get(ctx context.Context, id int64) (model.Document, error)
	List(ctx context.Context, filter repository.DocumentListFilter) ([]model.Document, error)
	// Create stores an ad-hoc document supplied directly through the API,
	// as opposed to one ingested from a source.
	Create(ctx context.Context, title, docURL, content string) (model.Document, error)
	Delete(ctx context.Context, id int64) error
}

type documentService struct {
	documents repository.DocumentRepository
}

// NewDocumentService creates a new document service.
func NewDocumentService(documents repository.DocumentRepository) DocumentService {
	return &documentService{documents: documents}
}

func (s *documentService) Get(ctx context.Context, id int64) (model.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Document{}, ErrNotFound
		}
		return model.Document{}, err
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context, filter repository.DocumentListFilter) ([]model.Document, error) {
	return s.documents.List(ctx, filter)
}

func (s *documentService) Create(ctx context.Context, title, docURL, content string) (model.Document, error) {
	title = strings.TrimSpace(title)
	docURL = strings.TrimSpace(docURL)
	if strings.TrimSpace(content) == "" && docURL == "" {
		return model.Document{}, fmt.Errorf("%w: document needs content or a url", ErrInvalid)
	}
	if docURL != "" && !isValidURL(docURL) {
		return model.Document{}, fmt.Errorf("%w: malformed url", ErrInvalid)
	}

	doc := model.Document{
		Status:  model.StatusPending,
		Title:   optionalString(title),
		URL:     optionalString(docURL),
		Content: optionalString(content),
	}

	id, err := s.documents.Create(ctx, doc)
	if err != nil {
		return model.Document{}, err
	}
	return s.Get(ctx, id)
}

func (s *documentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.documents.Delete(ctx, id)
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
