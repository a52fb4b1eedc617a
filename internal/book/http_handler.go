package book

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"bookshelf/internal/httpx"
)

const (
	msgInvalidID      = "Book id is not valid."
	msgMissingFields  = "Please fill in all required fields. Name, author and genere are required."
	msgUpdateNotFound = "Invalid ID, book with specified id not found."
	msgMalformedBody  = "Request body must be valid JSON."
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// RegisterRoutes mounts the book routes on mux.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /books", httpx.Handle(h.List))
	mux.Handle("GET /book/{id}", httpx.Handle(h.Get))
	mux.Handle("POST /book", httpx.Handle(h.Create))
	mux.Handle("PUT /book/{id}", httpx.Handle(h.Update))
	mux.Handle("DELETE /book/{id}", httpx.Handle(h.Delete))
}

// List handles GET /books
// @Summary List books
// @Description Get every stored book in storage order
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) error {
	books, err := h.service.List(r.Context())
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusOK, books)
	return nil
}

// Get handles GET /book/{id}
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} Book
// @Failure 400 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /book/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		httpx.Message(w, http.StatusBadRequest, msgInvalidID)
		return nil
	}

	book, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Message(w, http.StatusBadRequest, msgInvalidID)
			return nil
		}
		return err
	}
	httpx.JSON(w, http.StatusOK, book)
	return nil
}

// Create handles POST /book
// @Summary Create book
// @Tags books
// @Accept json
// @Produce json
// @Param book body Draft true "Book fields"
// @Success 201 {object} Book
// @Failure 400 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /book [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var d Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		if tooLarge(w, r, err) {
			return nil
		}
		httpx.Message(w, http.StatusBadRequest, msgMissingFields)
		return nil
	}

	book, err := h.service.Create(r.Context(), d)
	if err != nil {
		if errors.Is(err, ErrInvalidDraft) {
			httpx.Message(w, http.StatusBadRequest, msgMissingFields)
			return nil
		}
		return err
	}
	httpx.JSON(w, http.StatusCreated, book)
	return nil
}

// Update handles PUT /book/{id}
// @Summary Replace book fields
// @Tags books
// @Accept json
// @Param id path int true "Book id"
// @Param book body Draft true "Book fields"
// @Success 204
// @Failure 400 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /book/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		httpx.Message(w, http.StatusBadRequest, msgUpdateNotFound)
		return nil
	}

	// An empty body clears the fields, like a body that omits them.
	var d Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		if tooLarge(w, r, err) {
			return nil
		}
		httpx.Message(w, http.StatusBadRequest, msgMalformedBody)
		return nil
	}

	if err := h.service.Update(r.Context(), id, d); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Message(w, http.StatusBadRequest, msgUpdateNotFound)
			return nil
		}
		return err
	}
	httpx.NoContent(w)
	return nil
}

// Delete handles DELETE /book/{id}
// @Summary Delete book
// @Description Deleting an unknown id is a no-op
// @Tags books
// @Param id path int true "Book id"
// @Success 204
// @Failure 500 {object} httpx.ErrorResponse
// @Router /book/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	if id, ok := parseID(r.PathValue("id")); ok {
		if err := h.service.Delete(r.Context(), id); err != nil {
			return err
		}
	}
	httpx.NoContent(w)
	return nil
}

// parseID reads a path id. Surrounding blanks are ignored and integral
// decimals such as "1000.0" are accepted.
func parseID(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if id, err := strconv.Atoi(raw); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func tooLarge(w http.ResponseWriter, r *http.Request, err error) bool {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return false
	}
	httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
	return true
}
