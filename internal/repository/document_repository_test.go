package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"distill/internal/model"
	"distill/internal/repository"
	"distill/internal/repository/testutil"
)

func stringPtr(s string) *string { return &s }

func TestDocumentRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDocumentRepository(db)
	ctx := context.Background()

	id := testutil.SeedDocument(t, db, model.Document{
		Title:   stringPtr("Test Document"),
		URL:     stringPtr("https://example.com/article"),
		Content: stringPtr("body text"),
	})

	fetched, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, fetched.ID)
	require.Equal(t, "Test Document", *fetched.Title)
	require.Equal(t, "https://example.com/article", *fetched.URL)
	require.Equal(t, model.StatusPending, fetched.Status)
}

func TestDocumentRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDocumentRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDocumentRepository_CreateOrUpdate_Upsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDocumentRepository(db)
	ctx := context.Background()

	sourceID := testutil.SeedSource(t, db, model.Source{Title: "Source", URL: "https://example.com/feed"})

	doc := model.Document{
		SourceID: &sourceID,
		Title:    stringPtr("First title"),
		URL:      stringPtr("https://example.com/a"),
		Content:  stringPtr("v1"),
		Status:   model.StatusPending,
	}
	require.NoError(t, repo.CreateOrUpdate(ctx, doc))

	doc.Title = stringPtr("Updated title")
	doc.Content = stringPtr("v2")
	require.NoError(t, repo.CreateOrUpdate(ctx, doc))

	docs, err := repo.List(ctx, repository.DocumentListFilter{SourceID: &sourceID})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "Updated title", *docs[0].Title)
	require.Equal(t, "v2", *docs[0].Content)
}

func TestDocumentRepository_List_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDocumentRepository(db)
	ctx := context.Background()

	sourceID := testutil.SeedSource(t, db, model.Source{Title: "Source", URL: "https://example.com/feed"})

	testutil.SeedDocument(t, db, model.Document{SourceID: &sourceID, Title: stringPtr("D1"), URL: stringPtr("https://example.com/1")})
	testutil.SeedDocument(t, db, model.Document{SourceID: &sourceID, Title: stringPtr("D2"), URL: stringPtr("https://example.com/2"), Status: model.StatusProcessed})
	testutil.SeedDocument(t, db, model.Document{Title: stringPtr("D3"), URL: stringPtr("https://example.com/3")})

	docs, err := repo.List(ctx, repository.DocumentListFilter{SourceID: &sourceID})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	pending := model.StatusPending
	docs, err = repo.List(ctx, repository.DocumentListFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, docs, 2) // D1, D3

	docs, err = repo.List(ctx, repository.DocumentListFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestDocumentRepository_UpdateProcessedContent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDocumentRepository(db)
	ctx := context.Background()

	id := testutil.SeedDocument(t, db, model.Document{Title: stringPtr("D"), Content: stringPtr("raw")})

	require.NoError(t, repo.UpdateStatus(ctx, id, model.StatusFailed, "model unavailable"))
	doc, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, model.StatusFailed, doc.Status)
	require.Equal(t, "model unavailable", *doc.ErrorMessage)

	require.NoError(t, repo.UpdateProcessedContent(ctx, id, "<p>summary</p>"))
	doc, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, model.StatusProcessed, doc.Status)
	require.Equal(t, "<p>summary</p>", *doc.ProcessedContent)
	require.Nil(t, doc.ErrorMessage, "a successful processing clears the error")
}

func TestDocumentRepository_UpdateReadableContent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDocumentRepository(db)
	ctx := context.Background()

	id := testutil.SeedDocument(t, db, model.Document{URL: stringPtr("https://example.com/a")})

	require.NoError(t, repo.UpdateReadableContent(ctx, id, "<article>text</article>"))
	doc, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "<article>text</article>", *doc.ReadableContent)
}

func TestDocumentRepository_ExistsByURL(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDocumentRepository(db)
	ctx := context.Background()

	sourceID := testutil.SeedSource(t, db, model.Source{Title: "S", URL: "https://example.com/feed"})
	testutil.SeedDocument(t, db, model.Document{SourceID: &sourceID, URL: stringPtr("https://example.com/a")})

	exists, err := repo.ExistsByURL(ctx, sourceID, "https://example.com/a")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByURL(ctx, sourceID, "https://example.com/other")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestDocumentRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDocumentRepository(db)
	ctx := context.Background()

	id := testutil.SeedDocument(t, db, model.Document{Title: stringPtr("to delete")})

	require.NoError(t, repo.Delete(ctx, id))
	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, sql.ErrNoRows)
}
