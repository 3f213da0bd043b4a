package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"distill/internal/db"
	"distill/internal/model"
	"distill/internal/repository"
	"distill/internal/snowflake"
)

// NewTestDB opens a migrated database in a test-scoped temp directory.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	require.NoError(t, snowflake.Init(1))

	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

// SeedSource inserts a source and returns its ID.
func SeedSource(t *testing.T, conn *sql.DB, source model.Source) int64 {
	t.Helper()

	id, err := repository.NewSourceRepository(conn).Create(context.Background(), source)
	require.NoError(t, err)
	return id
}

// SeedDocument inserts a document and returns its ID.
func SeedDocument(t *testing.T, conn *sql.DB, doc model.Document) int64 {
	t.Helper()

	if doc.Status == "" {
		doc.Status = model.StatusPending
	}
	id, err := repository.NewDocumentRepository(conn).Create(context.Background(), doc)
	require.NoError(t, err)
	return id
}
