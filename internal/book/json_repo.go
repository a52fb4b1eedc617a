package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONFileRepo stores the whole book collection as one JSON array in a file.
// Every operation loads the full file, works on the slice and writes the full
// file back. mu serializes those sequences within the process.
type JSONFileRepo struct {
	path string
	mu   sync.Mutex
}

func NewJSONFileRepo(path string) *JSONFileRepo {
	return &JSONFileRepo{path: path}
}

// Path returns the storage file location.
func (r *JSONFileRepo) Path() string {
	return r.path
}

// Init creates the storage file holding an empty collection if it does not
// exist yet. An existing file is left untouched.
func (r *JSONFileRepo) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", r.path, err)
	}
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	return r.persist([]Book{})
}

func (r *JSONFileRepo) List(ctx context.Context) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *JSONFileRepo) Get(ctx context.Context, id int) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	books, err := r.load()
	if err != nil {
		return Book{}, err
	}
	i := indexOf(books, id)
	if i < 0 {
		return Book{}, ErrNotFound
	}
	return books[i], nil
}

func (r *JSONFileRepo) Create(ctx context.Context, d Draft) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	books, err := r.load()
	if err != nil {
		return Book{}, err
	}
	b := Book{ID: nextID(books)}
	d.apply(&b)
	books = append(books, b)
	if err := r.persist(books); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *JSONFileRepo) Update(ctx context.Context, b Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	books, err := r.load()
	if err != nil {
		return err
	}
	i := indexOf(books, b.ID)
	if i < 0 {
		return ErrNotFound
	}
	Draft{Name: b.Name, Author: b.Author, Genre: b.Genre}.apply(&books[i])
	return r.persist(books)
}

// Delete removes every record carrying id. A missing id still rewrites the
// unchanged collection and is not an error.
func (r *JSONFileRepo) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	books, err := r.load()
	if err != nil {
		return err
	}
	kept := books[:0]
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	return r.persist(kept)
}

// Ping reports whether the storage file can be read and parsed.
func (r *JSONFileRepo) Ping(ctx context.Context) error {
	_, err := r.List(ctx)
	return err
}

func (r *JSONFileRepo) load() ([]Book, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read books: %w", err)
	}
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parse books: %w", err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// persist overwrites the file with the full collection, indented by two
// spaces. The data goes to a sibling temp file first and is renamed over the
// original.
func (r *JSONFileRepo) persist(books []Book) error {
	if books == nil {
		books = []Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("encode books: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write books: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write books: %w", err)
	}
	return nil
}

func indexOf(books []Book, id int) int {
	for i, b := range books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// nextID returns the largest id in books plus one, or FirstID when empty.
func nextID(books []Book) int {
	if len(books) == 0 {
		return FirstID
	}
	highest := books[0].ID
	for _, b := range books[1:] {
		if b.ID > highest {
			highest = b.ID
		}
	}
	return highest + 1
}
