package service_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"distill/internal/model"
	"distill/internal/network"
	"distill/internal/repository"
	"distill/internal/repository/testutil"
	"distill/internal/service"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Rocket Launch</title><script>trackVisitor()</script></head>
<body>
  <nav><a href="/">Home</a></nav>
  <article>
    <h1>Rocket Launch</h1>
    <p>The rocket lifted off at dawn carrying a weather satellite into orbit.
    Engineers confirmed all systems performed nominally through stage separation.</p>
    <p>A second launch window opens next month for the follow-up mission, which
    will carry additional instruments for atmospheric measurements.</p>
  </article>
</body>
</html>`

func newReadabilityFixture(t *testing.T, handler http.Handler) (service.ReadabilityService, *sql.DB, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	conn := testutil.NewTestDB(t)
	documents := repository.NewDocumentRepository(conn)
	svc := service.NewReadabilityService(documents, network.NewClientFactoryForTest(server.Client()))
	return svc, conn, server
}

func TestFetchReadableContent(t *testing.T) {
	var requests int
	svc, conn, server := newReadabilityFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(samplePage))
	}))

	pageURL := server.URL + "/article"
	id := testutil.SeedDocument(t, conn, model.Document{URL: &pageURL})

	content, err := svc.FetchReadableContent(context.Background(), id)
	require.NoError(t, err)
	require.Contains(t, content, "lifted off at dawn")
	require.NotContains(t, content, "trackVisitor")

	// A second call answers from the stored copy without refetching.
	again, err := svc.FetchReadableContent(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, content, again)
	require.Equal(t, 1, requests)

	doc, err := repository.NewDocumentRepository(conn).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, doc.ReadableContent)
	require.Equal(t, content, *doc.ReadableContent)
}

func TestFetchReadableContent_NoURL(t *testing.T) {
	svc, conn, _ := newReadabilityFixture(t, http.NewServeMux())

	body := "inline only"
	id := testutil.SeedDocument(t, conn, model.Document{Content: &body})

	_, err := svc.FetchReadableContent(context.Background(), id)
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestFetchReadableContent_HTTPError(t *testing.T) {
	svc, conn, server := newReadabilityFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))

	pageURL := server.URL + "/missing"
	id := testutil.SeedDocument(t, conn, model.Document{URL: &pageURL})

	_, err := svc.FetchReadableContent(context.Background(), id)
	require.ErrorIs(t, err, service.ErrFetch)
}

func TestFetchReadableContent_NotFound(t *testing.T) {
	svc, _, _ := newReadabilityFixture(t, http.NewServeMux())

	_, err := svc.FetchReadableContent(context.Background(), 99999)
	require.ErrorIs(t, err, service.ErrNotFound)
}
