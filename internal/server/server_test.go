package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vs-portfolio/portfolio/internal/config"
	"github.com/vs-portfolio/portfolio/internal/repository"
	"github.com/vs-portfolio/portfolio/internal/repository/filesystem"
	"github.com/vs-portfolio/portfolio/internal/repository/memory"
	"github.com/vs-portfolio/portfolio/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Store.Driver = config.DriverMemory
	cfg.Auth.SessionSecret = "server-test-secret-0123456789abcdef"
	cfg.CORS.AllowedOrigins = []string{"https://front.example"}
	return cfg
}

type downStore struct{ *memory.Store }

func (downStore) Ping(context.Context) error { return context.DeadlineExceeded }

func newTestServer(t *testing.T, store repository.Store) http.Handler {
	t.Helper()
	s, err := NewWithStore(testConfig(), store, discardLogger())
	require.NoError(t, err)
	return s.Handler()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_PublicPages(t *testing.T) {
	h := newTestServer(t, memory.New())

	for _, path := range []string{
		"/", "/Home", "/Home/Index", "/Home/About", "/Home/Portfolio", "/Home/Service",
		"/Home/Contact", "/Home/Blog", "/Home/Privacy", "/Home/Error",
	} {
		t.Run(path, func(t *testing.T) {
			rec := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestRoutes_AdminIsGuarded(t *testing.T) {
	h := newTestServer(t, memory.New())

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/Admin", nil),
		httptest.NewRequest(http.MethodGet, "/Admin/Index", nil),
		httptest.NewRequest(http.MethodPost, "/Admin/AddProject", nil),
		httptest.NewRequest(http.MethodPost, "/Admin/DeleteContact/abc", nil),
	} {
		rec := serve(h, req)
		assert.Equal(t, http.StatusFound, rec.Code, req.URL.Path)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/Admin/Login"), req.URL.Path)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"), req.URL.Path)
	}

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/Admin/Login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_Static(t *testing.T) {
	h := newTestServer(t, memory.New())

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=31536000")
}

func TestRoutes_NotFound(t *testing.T) {
	h := newTestServer(t, memory.New())

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := serve(newTestServer(t, memory.New()), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(newTestServer(t, downStore{memory.New()}), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, memory.New())
	serve(h, httptest.NewRequest(http.MethodGet, "/Home/Privacy", nil))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "portfolio_http_requests_total")
}

func TestContactSubmit_CORS(t *testing.T) {
	h := newTestServer(t, memory.New())

	preflight := httptest.NewRequest(http.MethodOptions, "/Contact/Submit", nil)
	preflight.Header.Set("Origin", "https://front.example")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := serve(h, preflight)
	assert.Equal(t, "https://front.example", rec.Header().Get("Access-Control-Allow-Origin"))

	post := httptest.NewRequest(http.MethodPost, "/Contact/Submit",
		strings.NewReader(`{"name":"Ann","email":"ann@example.com","message":"Hi"}`))
	post.Header.Set("Content-Type", "application/json")
	post.Header.Set("Origin", "https://other.example")
	rec = serve(h, post)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig()
	store, err := OpenStore(ctx, cfg, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)

	cfg.Store.Driver = config.DriverSQLite
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "nested", "portfolio.db")
	store, err = OpenStore(ctx, cfg, discardLogger())
	require.NoError(t, err)
	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Close())

	cfg.Store.Driver = "cassandra"
	_, err = OpenStore(ctx, cfg, discardLogger())
	assert.Error(t, err)
}

func TestResumeRepository(t *testing.T) {
	store := memory.New()
	cfg := testConfig()

	repo, err := ResumeRepository(cfg, store)
	require.NoError(t, err)
	assert.Same(t, store, repo)

	cfg.Resume.Storage = config.ResumeOnFilesystem
	cfg.Resume.Dir = t.TempDir()
	repo, err = ResumeRepository(cfg, store)
	require.NoError(t, err)
	assert.IsType(t, &filesystem.ResumeStore{}, repo)
}

func TestAdminRepository(t *testing.T) {
	store := memory.New()
	cfg := testConfig()
	assert.Same(t, store, AdminRepository(cfg, store))

	cfg.Auth.Source = config.AuthStatic
	cfg.Auth.AdminUsername = "owner"
	cfg.Auth.AdminPassword = "secret"
	assert.Equal(t, service.StaticCredentials{Username: "owner", Password: "secret"}, AdminRepository(cfg, store))
}
