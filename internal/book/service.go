package book

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every stored book in storage order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// Get returns the book with the given id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the draft and stores it under a freshly assigned id.
func (s *Service) Create(ctx context.Context, d Draft) (Book, error) {
	if err := validate.Struct(d); err != nil {
		return Book{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	return s.repo.Create(ctx, d)
}

// Update replaces name, author and genre of the book with the given id.
func (s *Service) Update(ctx context.Context, id int, d Draft) error {
	b := Book{ID: id}
	d.apply(&b)
	return s.repo.Update(ctx, b)
}

// Delete removes the book with the given id. Unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Ping checks that storage is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
