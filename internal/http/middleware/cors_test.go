package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("with default origin", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/api/editor.preview", nil)
		w := httptest.NewRecorder()

		CORSMiddleware("")(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Accept, Content-Type, Content-Length, Accept-Encoding, X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
		// browsers refuse credentials with a wildcard origin
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("with custom origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/editor.dispatch", nil)
		w := httptest.NewRecorder()

		CORSMiddleware("https://editor.example.com")(next).ServeHTTP(w, req)

		assert.Equal(t, "https://editor.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("with explicit wildcard origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/editor.preview", nil)
		w := httptest.NewRecorder()

		CORSMiddleware("*")(next).ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("with OPTIONS request", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/api/editor.dispatch", nil)
		w := httptest.NewRecorder()

		CORSMiddleware("https://editor.example.com")(next).ServeHTTP(w, req)

		// preflight never reaches the handler
		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, called)
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
