package book

import (
	"errors"
)

// FirstID is the id assigned to the first book of an empty collection.
const FirstID = 1000

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrInvalidDraft is returned when a draft is missing a required field.
	ErrInvalidDraft = errors.New("invalid book draft")
)

// Book represents a book record. The genre key is spelled "genere" on disk
// and on the wire.
type Book struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Author string `json:"author"`
	Genre  string `json:"genere"`
}

// Draft holds the client-supplied fields of a book before an id is assigned.
type Draft struct {
	Name   string `json:"name" validate:"required"`
	Author string `json:"author" validate:"required"`
	Genre  string `json:"genere" validate:"required"`
}

// apply copies the draft fields onto b, leaving the id untouched.
func (d Draft) apply(b *Book) {
	b.Name = d.Name
	b.Author = d.Author
	b.Genre = d.Genre
}
