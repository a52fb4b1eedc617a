package httpx

import (
	"log/slog"
	"net/http"
)

// HandlerFunc is an HTTP handler that hands unexpected failures back to the
// caller instead of writing them itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h to http.Handler. A returned error is logged and answered
// with an opaque 500, unless h already started the response.
func Handle(h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r),
			"err", err,
		)
		if rw, ok := w.(*responseWriter); ok && rw.wroteHeader() {
			return
		}
		JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	})
}
