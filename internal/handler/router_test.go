package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fansite-cms/api/internal/middleware"
)

type routeRecorder struct {
	routes []string
}

func (r *routeRecorder) RecordRequest(method, route string, status int, elapsed time.Duration) {
	r.routes = append(r.routes, route)
}

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter, rec middleware.RequestRecorder) http.Handler {
	t.Helper()

	adminDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(adminDir, "index.html"), []byte("<h1>admin</h1>"), 0o644))
	uploadsDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(uploadsDir, "gallery"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploadsDir, "gallery", "a.png"), pngBytes, 0o644))

	return NewRouter(RouterConfig{
		Handlers: Handlers{
			Health:   NewHealthHandler(&mockPinger{}),
			Auth:     NewAuthHandler(AuthHandlerConfig{Service: &mockAuthService{}}),
			Album:    NewAlbumHandler(&mockAlbumService{}),
			Gallery:  NewGalleryHandler(&mockGalleryService{}),
			Notice:   NewNoticeHandler(&mockNoticeService{}),
			Video:    NewVideoHandler(&mockVideoService{}),
			Schedule: NewScheduleHandler(&mockScheduleService{}),
			Member:   NewMemberHandler(&mockMemberService{}),
			Settings: NewSettingsHandler(&mockSettingsService{}),
		},
		Verifier:       &mockVerifier{valid: "good-token"},
		LoginLimiter:   limiter,
		AllowedOrigins: []string{"https://fansite.example.com"},
		Recorder:       rec,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
		AdminDir:   adminDir,
		UploadsDir: uploadsDir,
	})
}

func TestRouter_PublicReadsNeedNoToken(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	for _, path := range []string{"/api/album", "/api/gallery", "/api/notice", "/api/video", "/api/schedule", "/api/members", "/api/settings", "/health"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestRouter_MutationsRequireAdmin(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/album"},
		{http.MethodPut, "/api/album/a1"},
		{http.MethodDelete, "/api/album/a1"},
		{http.MethodPost, "/api/gallery"},
		{http.MethodDelete, "/api/gallery"},
		{http.MethodDelete, "/api/gallery/g1"},
		{http.MethodPost, "/api/notice"},
		{http.MethodPut, "/api/notice/n1"},
		{http.MethodDelete, "/api/notice/n1"},
		{http.MethodPost, "/api/video"},
		{http.MethodPut, "/api/video/v1"},
		{http.MethodDelete, "/api/video/v1"},
		{http.MethodPost, "/api/schedule"},
		{http.MethodPut, "/api/schedule/s1"},
		{http.MethodDelete, "/api/schedule/s1"},
		{http.MethodPut, "/api/members/jiwoo"},
		{http.MethodPost, "/api/settings"},
		{http.MethodGet, "/api/auth/me"},
	}

	for _, rt := range routes {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(rt.method, rt.path, strings.NewReader("{}"))
		req.AddCookie(&http.Cookie{Name: middleware.DefaultCookieName, Value: "forged"})
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", rt.method, rt.path)
	}
}

func TestRouter_AdminTokenReachesHandler(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	req := jsonRequest(t, http.MethodPost, "/api/video", map[string]string{"title": "MV", "src": "dQw4w9WgXcQ"})
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.DefaultCookieName, Value: "good-token"})
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "admin@example.com")
}

func TestRouter_AdminPagesRedirectWithoutToken(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login?next=%2Fadmin%2F", rr.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.DefaultCookieName, Value: "good-token"})
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "admin")
}

func TestRouter_ServesUploadsWithoutListing(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/gallery/a.png", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/gallery/", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_UnknownRouteIsEnvelope404(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, decodeEnvelope(t, rr.Body).Success)
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	t.Parallel()
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{PerMinute: 2, Burst: 2})
	defer limiter.Stop()
	router := newTestRouter(t, limiter, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := jsonRequest(t, http.MethodPost, "/api/login", map[string]string{"email": "a@b.c", "password": "x"})
		req.RemoteAddr = "198.51.100.7:4000"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestRouter_MetricsAndInstrumentation(t *testing.T) {
	t.Parallel()
	rec := &routeRecorder{}
	router := newTestRouter(t, nil, rec)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "# metrics", rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/album/a1", nil))

	assert.Equal(t, []string{"GET /api/album/{id}"}, rec.routes)
}

func TestRouter_GlobalHeaders(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/album", nil)
	req.Header.Set("Origin", "https://fansite.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://fansite.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}
