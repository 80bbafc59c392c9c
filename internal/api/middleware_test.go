package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/resonant/internal/api"
	"github.com/Bitlatte/resonant/internal/logger"
)

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(api.RecoveryMiddleware(logger.NewNop()))
	r.GET("/panic", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false}`, w.Body.String())
}

func TestRequestIDLoggerMiddleware(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(api.RequestIDLoggerMiddleware(logger.NewNop()))
	r.GET("/", func(c *gin.Context) {
		assert.NotNil(t, logger.FromContext(c.Request.Context()))
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generated", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

		id := w.Header().Get(api.RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set(api.RequestIDHeader, "req-42")
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get(api.RequestIDHeader))
	})
}

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	newEngine := func(origins []string) *gin.Engine {
		r := gin.New()
		r.Use(api.CORSMiddleware(origins))
		r.GET("/api/work", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.OPTIONS("/api/work", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	tests := []struct {
		name       string
		origins    []string
		origin     string
		method     string
		wantStatus int
		wantAllow  string
	}{
		{name: "listed origin", origins: []string{"https://resonant.studio"}, origin: "https://resonant.studio",
			method: http.MethodGet, wantStatus: http.StatusOK, wantAllow: "https://resonant.studio"},
		{name: "unlisted origin", origins: []string{"https://resonant.studio"}, origin: "https://evil.test",
			method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "wildcard", origins: []string{"*"}, origin: "https://any.test",
			method: http.MethodGet, wantStatus: http.StatusOK, wantAllow: "*"},
		{name: "preflight", origins: []string{"*"}, origin: "https://any.test",
			method: http.MethodOptions, wantStatus: http.StatusNoContent, wantAllow: "*"},
		{name: "disabled", origin: "https://any.test", method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/api/work", http.NoBody)
			req.Header.Set("Origin", tt.origin)
			newEngine(tt.origins).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
