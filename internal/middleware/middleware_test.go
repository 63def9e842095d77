package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/crypto_pulse/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStructuredLogging_ReusesValidRequestID(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := newRouter(middleware.StructuredLoggingMiddleware(base))

	var (
		seenID      string
		ginLogger   *slog.Logger
		stdLogger   *slog.Logger
		idAvailable bool
	)
	r.GET("/ping", func(c *gin.Context) {
		seenID, idAvailable = middleware.GetRequestID(c)
		ginLogger = middleware.GetLoggerFromContext(c)
		stdLogger = middleware.GetLoggerFromCtx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, incoming)
	w := serve(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, incoming, w.Header().Get(middleware.RequestIDHeader))
	assert.True(t, idAvailable)
	assert.Equal(t, incoming, seenID)
	require.NotNil(t, ginLogger)
	assert.Same(t, ginLogger, stdLogger)
	assert.NotSame(t, slog.Default(), ginLogger)
}

func TestStructuredLogging_ReplacesInvalidRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "missing", incoming: ""},
		{name: "not a uuid", incoming: "request-42"},
		{name: "log injection", incoming: "abc\nlevel=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
			var seenID string
			r.GET("/ping", func(c *gin.Context) {
				seenID, _ = middleware.GetRequestID(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incoming != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.incoming)
			}
			w := serve(r, req)

			got := w.Header().Get(middleware.RequestIDHeader)
			assert.NotEqual(t, tt.incoming, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
			assert.Equal(t, got, seenID)
		})
	}
}

func TestLoggerGetters_FallBackToDefault(t *testing.T) {
	r := newRouter()
	var ginLogger, stdLogger *slog.Logger
	var idAvailable bool
	r.GET("/ping", func(c *gin.Context) {
		ginLogger = middleware.GetLoggerFromContext(c)
		stdLogger = middleware.GetLoggerFromCtx(c.Request.Context())
		_, idAvailable = middleware.GetRequestID(c)
		c.Status(http.StatusOK)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Same(t, slog.Default(), ginLogger)
	assert.Same(t, slog.Default(), stdLogger)
	assert.False(t, idAvailable)
}

func TestRateLimit_HeadersAndRejection(t *testing.T) {
	l, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)

	r := newRouter(middleware.RateLimit(l))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	request := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		return serve(r, req)
	}

	first := request()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, first.Header().Get("X-RateLimit-Reset"))

	second := request()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := request()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
	assert.JSONEq(t, `{"error":"Too many requests. Please try again later."}`, third.Body.String())

	// a different client has its own budget
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.RemoteAddr = "192.0.2.11:5555"
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestNewRateLimiter_RejectsMalformedRate(t *testing.T) {
	_, err := middleware.NewRateLimiter("lots-per-minute")
	assert.Error(t, err)
}

func TestCORS_EchoesAllowedOrigin(t *testing.T) {
	r := newRouter(middleware.CORS([]string{"http://localhost:5173"}))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Expose-Headers")), strings.ToLower(middleware.RequestIDHeader))
}
