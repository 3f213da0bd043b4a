package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/microcosm-cc/bluemonday"

	"distill/internal/network"
	"distill/internal/repository"
)

// ReadabilityService fetches a document's page and extracts the readable
// article HTML from it.
type ReadabilityService interface {
	FetchReadableContent(ctx context.Context, documentID int64) (string, error)
}

type readabilityService struct {
	documents repository.DocumentRepository
	clients   *network.ClientFactory
	sanitizer *bluemonday.Policy
}

// NewReadabilityService creates a new readability service.
func NewReadabilityService(documents repository.DocumentRepository, clients *network.ClientFactory) ReadabilityService {
	// Remove scripts and other elements that interfere with readability
	// parsing before handing the page to the parser.
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "header", "footer", "nav", "aside", "main", "figure", "figcaption")
	p.AllowAttrs("id", "class", "lang", "dir").Globally()

	return &readabilityService{
		documents: documents,
		clients:   clients,
		sanitizer: p,
	}
}

func (s *readabilityService) FetchReadableContent(ctx context.Context, documentID int64) (string, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return "", ErrNotFound
	}

	// Return cached content if available
	if doc.ReadableContent != nil && *doc.ReadableContent != "" {
		return *doc.ReadableContent, nil
	}

	if doc.URL == nil || *doc.URL == "" {
		return "", fmt.Errorf("%w: document has no url", ErrInvalid)
	}

	// Article pages often sit behind anti-bot checks that reject plain Go
	// clients, so the fetch goes through the browser-profile session.
	body, status, err := s.clients.FetchPage(ctx, *doc.URL, 30*time.Second)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrFetch, status)
	}

	sanitized := s.sanitizer.Sanitize(string(body))

	parsedURL, err := url.Parse(*doc.URL)
	if err != nil {
		return "", fmt.Errorf("parse URL failed: %w", err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(sanitized), parsedURL)
	if err != nil {
		return "", fmt.Errorf("parse content failed: %w", err)
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}

	content := buf.String()
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: page yielded no readable content", ErrInvalid)
	}

	if err := s.documents.UpdateReadableContent(ctx, documentID, content); err != nil {
		return "", err
	}

	return content, nil
}
