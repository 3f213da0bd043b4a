package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"distill/internal/config"
	"distill/internal/logger"
	"distill/internal/model"
	"distill/internal/network"
	"distill/internal/repository"
)

// ErrAlreadyRefreshing is returned when a refresh is requested while one
// is still running.
var ErrAlreadyRefreshing = errors.New("refresh already in progress")

// refreshConcurrency bounds how many sources are fetched in parallel.
const refreshConcurrency = 4

// IngestService manages content sources and pulls their items into the
// document store.
type IngestService interface {
	AddSource(ctx context.Context, feedURL, titleOverride string) (model.Source, error)
	ListSources(ctx context.Context) ([]model.Source, error)
	DeleteSource(ctx context.Context, id int64) error
	RefreshSource(ctx context.Context, id int64) error
	RefreshAll(ctx context.Context) error
	IsRefreshing() bool
}

type ingestService struct {
	sources   repository.SourceRepository
	documents repository.DocumentRepository
	clients   *network.ClientFactory

	mu           sync.Mutex
	isRefreshing bool
}

// NewIngestService creates a new ingest service.
func NewIngestService(sources repository.SourceRepository, documents repository.DocumentRepository, clients *network.ClientFactory) IngestService {
	return &ingestService{sources: sources, documents: documents, clients: clients}
}

func (s *ingestService) AddSource(ctx context.Context, feedURL, titleOverride string) (model.Source, error) {
	trimmedURL := strings.TrimSpace(feedURL)
	if !isValidURL(trimmedURL) {
		return model.Source{}, fmt.Errorf("%w: malformed feed url", ErrInvalid)
	}
	if existing, err := s.sources.FindByURL(ctx, trimmedURL); err != nil {
		return model.Source{}, fmt.Errorf("check source url: %w", err)
	} else if existing != nil {
		return model.Source{}, ErrConflict
	}

	parsed, etag, lastModified, err := s.fetch(ctx, trimmedURL, nil, nil)
	if err != nil {
		return model.Source{}, fmt.Errorf("%w: %s", ErrFetch, err)
	}

	title := strings.TrimSpace(titleOverride)
	if title == "" {
		title = strings.TrimSpace(parsed.Title)
	}
	if title == "" {
		title = trimmedURL
	}

	source := model.Source{
		Title:        title,
		URL:          trimmedURL,
		SiteURL:      optionalString(strings.TrimSpace(parsed.Link)),
		ETag:         optionalString(etag),
		LastModified: optionalString(lastModified),
	}

	id, err := s.sources.Create(ctx, source)
	if err != nil {
		return model.Source{}, err
	}

	s.storeItems(ctx, id, parsed.Items)

	return s.sources.GetByID(ctx, id)
}

func (s *ingestService) ListSources(ctx context.Context) ([]model.Source, error) {
	return s.sources.List(ctx)
}

func (s *ingestService) DeleteSource(ctx context.Context, id int64) error {
	if _, err := s.sources.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.sources.Delete(ctx, id)
}

func (s *ingestService) RefreshSource(ctx context.Context, id int64) error {
	source, err := s.sources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.refreshSource(ctx, source)
}

func (s *ingestService) RefreshAll(ctx context.Context) error {
	s.mu.Lock()
	if s.isRefreshing {
		s.mu.Unlock()
		return ErrAlreadyRefreshing
	}
	s.isRefreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRefreshing = false
		s.mu.Unlock()
	}()

	sources, err := s.sources.List(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)
	for _, source := range sources {
		g.Go(func() error {
			if err := s.refreshSource(gctx, source); err != nil {
				// One broken source never stops the others.
				logger.Warn("source refresh failed",
					"module", "ingest",
					"action", "refresh",
					"resource", source.URL,
					"error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *ingestService) IsRefreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRefreshing
}

func (s *ingestService) refreshSource(ctx context.Context, source model.Source) error {
	parsed, etag, lastModified, err := s.fetch(ctx, source.URL, source.ETag, source.LastModified)
	if err != nil {
		_ = s.sources.SetError(ctx, source.ID, err.Error())
		return err
	}
	if parsed == nil {
		// Not modified; clear any stale error.
		if source.ErrorMessage != nil {
			_ = s.sources.ClearError(ctx, source.ID)
		}
		return nil
	}

	s.storeItems(ctx, source.ID, parsed.Items)

	if err := s.sources.UpdateCacheHeaders(ctx, source.ID, optionalString(etag), optionalString(lastModified)); err != nil {
		return err
	}
	if source.ErrorMessage != nil {
		_ = s.sources.ClearError(ctx, source.ID)
	}
	return nil
}

// fetch retrieves and parses a feed. A nil feed with nil error means the
// server answered 304 Not Modified.
func (s *ingestService) fetch(ctx context.Context, feedURL string, etag, lastModified *string) (*gofeed.Feed, string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, "", "", err
	}
	req.Header.Set("User-Agent", config.DistillUserAgent)

	// Conditional GET
	if etag != nil && *etag != "" {
		req.Header.Set("If-None-Match", *etag)
	}
	if lastModified != nil && *lastModified != "" {
		req.Header.Set("If-Modified-Since", *lastModified)
	}

	resp, err := s.clients.NewHTTPClient(ctx, 20*time.Second).Do(req)
	if err != nil {
		return nil, "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return nil, "", "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, "", "", fmt.Errorf("parse feed: %w", err)
	}

	return parsed, resp.Header.Get("ETag"), resp.Header.Get("Last-Modified"), nil
}

func (s *ingestService) storeItems(ctx context.Context, sourceID int64, feedItems []*gofeed.Item) {
	newCount := 0
	updatedCount := 0
	for _, item := range feedItems {
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		doc := itemToDocument(sourceID, item)

		exists, err := s.documents.ExistsByURL(ctx, sourceID, *doc.URL)
		if err != nil {
			logger.Warn("check feed item failed",
				"module", "ingest",
				"action", "store",
				"resource", item.Link,
				"error", err)
			continue
		}

		if err := s.documents.CreateOrUpdate(ctx, doc); err != nil {
			logger.Warn("store feed item failed",
				"module", "ingest",
				"action", "store",
				"resource", item.Link,
				"error", err)
			continue
		}

		if exists {
			updatedCount++
		} else {
			newCount++
		}
	}

	if newCount > 0 || updatedCount > 0 {
		logger.Info("feed items stored",
			"module", "ingest",
			"action", "store",
			"result", fmt.Sprintf("new=%d updated=%d", newCount, updatedCount))
	}
}

func itemToDocument(sourceID int64, item *gofeed.Item) model.Document {
	content := item.Content
	if strings.TrimSpace(content) == "" {
		content = item.Description
	}

	doc := model.Document{
		SourceID: &sourceID,
		Status:   model.StatusPending,
		Title:    optionalString(strings.TrimSpace(item.Title)),
		URL:      optionalString(strings.TrimSpace(item.Link)),
		Content:  optionalString(content),
	}
	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		doc.PublishedAt = &t
	} else if item.UpdatedParsed != nil {
		t := item.UpdatedParsed.UTC()
		doc.PublishedAt = &t
	}
	return doc
}
