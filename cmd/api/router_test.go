package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(path string) config.Config {
	return config.Config{
		BooksFile:       path,
		AllowedOrigins:  []string{"http://app.test"},
		RateLimitRPS:    1000,
		RateLimitBurst:  1000,
		MaxBodyBytes:    1024,
		ShutdownTimeout: time.Second,
	}
}

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	path := filepath.Join(t.TempDir(), "library.json")
	repo := book.NewJSONFileRepo(path)
	require.NoError(t, repo.Init(ctx))
	return newRouter(ctx, testConfig(path), book.NewService(repo)), path
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRouter_Probes(t *testing.T) {
	h, path := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/readyz", "").Code)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	assert.Equal(t, http.StatusServiceUnavailable, do(h, http.MethodGet, "/readyz", "").Code)
}

func TestRouter_Scenarios(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(h, http.MethodPost, "/book", `{"name":"Dune","author":"Herbert","genere":"SciFi"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1000,"name":"Dune","author":"Herbert","genere":"SciFi"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = do(h, http.MethodPost, "/book", `{"name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Please fill in all required fields. Name, author and genere are required."}`, w.Body.String())

	w = do(h, http.MethodPut, "/book/9999", `{"name":"X","author":"Y","genere":"Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid ID, book with specified id not found."}`, w.Body.String())
}

func TestRouter_StorageErrorIsOpaque(t *testing.T) {
	h, path := newTestRouter(t)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	w := do(h, http.MethodGet, "/books", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "parse books")
}

func TestRouter_BodyTooLarge(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(h, http.MethodPost, "/book", `{"name":"`+strings.Repeat("a", 2048)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(h, http.MethodPatch, "/book/1000", `{}`)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h, _ := newTestRouter(t)
	r := httptest.NewRequest(http.MethodOptions, "/book/1000", nil)
	r.Header.Set("Origin", "http://app.test")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}
