package middleware

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fansite-cms/api/internal/model"
)

// captureHandler records the request context it was called with
type captureHandler struct {
	called bool
	ctx    context.Context
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func decodeEnvelope(t *testing.T, body io.Reader) model.Envelope {
	t.Helper()
	var env model.Envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

// ============================================================================
// Chain
// ============================================================================

func TestChain_AppliesInOrder(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("H"))
	})
	tag := func(s string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(s))
				next.ServeHTTP(w, r)
			})
		}
	}

	rr := httptest.NewRecorder()
	Chain(handler, tag("1"), tag("2"), tag("3")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "123H", rr.Body.String())
}

func TestChain_NoMiddlewares_ReturnsHandler(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("handler"))
	})

	rr := httptest.NewRecorder()
	Chain(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "handler", rr.Body.String())
}

// ============================================================================
// RequestID
// ============================================================================

func TestRequestID_NoHeader_GeneratesUUID(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	rr := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rr.Header().Get("X-Request-ID")
	assert.Len(t, id, 36)
	assert.Equal(t, 4, strings.Count(id, "-"))
	assert.Equal(t, id, GetRequestID(handler.ctx))
}

func TestRequestID_WithHeader_PreservesExisting(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "existing-request-id")
	rr := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(rr, req)

	assert.Equal(t, "existing-request-id", rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "existing-request-id", GetRequestID(handler.ctx))
}

func TestRequestID_OversizedHeader_Replaced(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 200))
	rr := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(rr, req)

	assert.Len(t, rr.Header().Get("X-Request-ID"), 36)
}

func TestGetRequestID_MissingOrWrongType_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetRequestID(context.WithValue(context.Background(), RequestIDKey, 12345)))
}

// ============================================================================
// Recovery
// ============================================================================

func TestRecovery_NoPanic_ProceedsNormally(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("success"))
	})

	rr := httptest.NewRecorder()
	Recovery(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", rr.Body.String())
}

func TestRecovery_WithPanic_WritesFailureEnvelope(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	rr := httptest.NewRecorder()
	Recovery(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	env := decodeEnvelope(t, rr.Body)
	assert.False(t, env.Success)
	assert.Equal(t, "internal server error", env.Message)
	assert.NotContains(t, rr.Body.String(), "something went wrong")
}

func TestRecovery_ErrAbortHandler_Repanics(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		Recovery(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

// ============================================================================
// CORS
// ============================================================================

func TestCORS_AllowedOrigin_SetsCredentialHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()

	CORS([]string{"https://example.com", "https://admin.example.com"})(&captureHandler{}).ServeHTTP(rr, req)

	assert.Equal(t, "https://example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_DisallowedOrigin_NoHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.com")
	rr := httptest.NewRecorder()

	CORS([]string{"https://allowed.com"})(&captureHandler{}).ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_Wildcard_EchoesOrigin(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://any-origin.com")
	rr := httptest.NewRecorder()

	CORS([]string{"*"})(&captureHandler{}).ServeHTTP(rr, req)

	assert.Equal(t, "https://any-origin.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight_Returns204WithoutCallingHandler(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodOptions, "/api/albums", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()

	CORS([]string{"https://example.com"})(handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.False(t, handler.called)
}

// ============================================================================
// SecurityHeaders
// ============================================================================

func TestSecurityHeaders_Set(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	SecurityHeaders(&captureHandler{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rr.Header().Get("Referrer-Policy"))
}

// ============================================================================
// Compress
// ============================================================================

func TestCompress_AcceptsGzip_CompressesResponse(t *testing.T) {
	t.Parallel()

	const body = "Hello, this is a test response that should be compressed."
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "57")
		_, _ = w.Write([]byte(body))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()

	Compress(handler).ServeHTTP(rr, req)

	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))
	assert.Empty(t, rr.Header().Get("Content-Length"))

	reader, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()

	decompressed, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, body, string(decompressed))
}

func TestCompress_NoGzipAccept_DoesNotCompress(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("uncompressed response"))
	})

	rr := httptest.NewRecorder()
	Compress(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "uncompressed response", rr.Body.String())
}

// ============================================================================
// responseWriter / Logger
// ============================================================================

func TestResponseWriter_CapturesStatusCode(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rw.statusCode)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Same(t, http.ResponseWriter(rr), rw.Unwrap())
}

func TestLogger_PassesThrough(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})

	rr := httptest.NewRecorder()
	Logger(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/albums", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "created", rr.Body.String())
}

// ============================================================================
// Instrument
// ============================================================================

type recordedRequest struct {
	method string
	route  string
	status int
}

type fakeRecorder struct {
	got []recordedRequest
}

func (f *fakeRecorder) RecordRequest(method, route string, status int, _ time.Duration) {
	f.got = append(f.got, recordedRequest{method: method, route: route, status: status})
}

func TestInstrument_RecordsMatchedPattern(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/albums/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	Instrument(rec)(mux).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/albums/abc", nil))

	require.Len(t, rec.got, 1)
	assert.Equal(t, recordedRequest{method: http.MethodGet, route: "GET /api/albums/{id}", status: http.StatusNotFound}, rec.got[0])
}

func TestInstrument_UnmatchedRoute(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	rr := httptest.NewRecorder()
	Instrument(rec)(http.NotFoundHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Len(t, rec.got, 1)
	assert.Equal(t, "unmatched", rec.got[0].route)
	assert.Equal(t, http.StatusNotFound, rec.got[0].status)
}
