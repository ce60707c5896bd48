package server_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vangoframework/vpmshell/internal/database"
	"github.com/vangoframework/vpmshell/internal/font"
	"github.com/vangoframework/vpmshell/internal/handlers"
	"github.com/vangoframework/vpmshell/internal/logbuf"
	"github.com/vangoframework/vpmshell/internal/metrics"
	"github.com/vangoframework/vpmshell/internal/packages"
	"github.com/vangoframework/vpmshell/internal/prefs"
	"github.com/vangoframework/vpmshell/internal/projects"
	"github.com/vangoframework/vpmshell/internal/repositories"
	"github.com/vangoframework/vpmshell/internal/server"
	"github.com/vangoframework/vpmshell/internal/shell"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// database/sql keeps a connection opener goroutine until Close.
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	logs := logbuf.NewBuffer(20)
	logger := slog.New(logbuf.NewHandler(slog.NewTextHandler(io.Discard, nil), logs))

	ctx := context.Background()
	db, err := database.Open(ctx, "file:"+filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := projects.NewStore(ctx, db)
	require.NoError(t, err)
	repos, err := repositories.NewStore(ctx, db)
	require.NoError(t, err)
	installer := packages.NewInstaller(t.TempDir(), packages.WithLogger(logger))

	prefsStore, err := prefs.NewStore(strings.Repeat("s", 64), time.Hour, false)
	require.NoError(t, err)

	m := metrics.New()
	sh := shell.New(
		shell.WithFont(font.Resolve("Noto Sans JP", font.Local())),
		shell.WithStylesheets("/static/globals.css"),
	)

	return server.Router(server.Deps{
		Handlers: handlers.New(sh, store, repos, installer, prefsStore, logs, m, logger),
		Prefs:    prefsStore,
		Metrics:  m,
		Logger:   logger,
	})
}

func TestRouterServesStaticStylesheet(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/globals.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rec.Body.String(), ".flex-grow-0")
}

func TestRouterExposesMetrics(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `vpmshell_http_requests_total{method="GET",route="/projects",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `vpmshell_shell_renders_total{page="projects",result="ok"} 1`)
}

func TestRouterCountsPanickingRequests(t *testing.T) {
	router := testRouter(t)
	router.(chi.Router).Get("/explode", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `vpmshell_http_requests_total{method="GET",route="/explode",status="500"} 1`)
}

func TestRouterServesRepositoriesAndProjectPages(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/repositories", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="repositories-empty"`)
	assert.Regexp(t, `href="/repositories" class="[^"]*bg-accent[^"]*" aria-current="page"`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/00000000-0000-0000-0000-000000000000", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterRendersNotFoundInsideShell(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing/page", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<link rel="stylesheet" href="/static/globals.css">`)
	assert.Contains(t, body, "Page not found")
}

func TestRouterHealth(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServerShutsDownOnCancel(t *testing.T) {
	router := testRouter(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.New(ln.Addr().String(), router, logger)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	client.CloseIdleConnections()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServerRunReportsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := server.New(ln.Addr().String(), http.NotFoundHandler(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	err = srv.Run(context.Background())
	assert.Error(t, err)
}
