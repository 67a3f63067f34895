package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newTestAPIHandler provides an api handler operating on the given in-memory
// shelf document, with a frozen clock and predictable request ids.
func newTestAPIHandler(shelf *Shelf) *APIHandler {
	return newTestAPIHandlerWithConfig(shelf, &Config{})
}

// newTestAPIHandlerWithConfig is like newTestAPIHandler for tests needing
// specific settings, like the admin surface ones.
func newTestAPIHandlerWithConfig(shelf *Shelf, config *Config) *APIHandler {
	logger := zap.NewNop()
	storage := NewMockShelfStorage(shelf)
	clock := NewMockClocker()
	return NewAPIHandler(
		logger,
		config,
		&Statistics{started: clock.Now()},
		clock,
		NewMockUIDHandler("abc"),
		NewBookService(logger, config, storage),
		NewUserService(logger, config, storage),
	)
}

// newRequestWithID builds a test request carrying the predictable id the
// request id middleware would have attached.
func newRequestWithID(method, target string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	return r.WithContext(context.WithValue(r.Context(), RequestIDContextKey, "r:abc"))
}

func TestIndexHandler(t *testing.T) {
	shelf := NewShelf()
	api := newTestAPIHandler(&shelf)

	r := newRequestWithID(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	api.Index(w, r, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/status", w.Header().Get("Location"))
}

func TestStatusHandler(t *testing.T) {
	shelf := NewShelf()
	api := newTestAPIHandler(&shelf)

	r := newRequestWithID(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	api.Status(w, r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=UTF-8", w.Header().Get("Content-Type"))
	expected := `{"requestid":"r:abc","status":"up & running since 0 mins","message":"Hello. Bookshelf api is available. Enjoy :)"}`
	assert.JSONEq(t, expected, w.Body.String())
}

func TestHealthHandler(t *testing.T) {
	shelf := NewShelf()
	api := newTestAPIHandler(&shelf)

	r := newRequestWithID(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	api.Health(w, r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=UTF-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestNotFoundHandler(t *testing.T) {
	shelf := NewShelf()
	api := newTestAPIHandler(&shelf)

	r := newRequestWithID(http.MethodGet, "/x/books/", nil)
	w := httptest.NewRecorder()
	api.NotFound(w, r, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	expected := `{"requestid":"r:abc","message":"route does not exist","path":"GET /x/books/"}`
	assert.JSONEq(t, expected, w.Body.String())
}

func TestMethodNotAllowedHandler(t *testing.T) {
	shelf := NewShelf()
	api := newTestAPIHandler(&shelf)

	r := newRequestWithID(http.MethodPatch, "/books", nil)
	w := httptest.NewRecorder()
	api.MethodNotAllowed(w, r, nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	expected := `{"requestid":"r:abc","message":"method not allowed on this route","path":"PATCH /books"}`
	assert.JSONEq(t, expected, w.Body.String())
}

func TestPreflightHandler(t *testing.T) {
	shelf := NewShelf()
	api := newTestAPIHandler(&shelf)

	r := newRequestWithID(http.MethodOptions, "/books", nil)
	w := httptest.NewRecorder()
	api.Preflight(w, r, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
