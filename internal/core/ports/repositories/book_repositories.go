package repositories

import (
	"context"

	"github.com/kvyts/library_lending_app/internal/core/domain"
)

// BookFilter narrows a book listing. Zero values impose no restriction; the
// predicates are combined with AND. Substring matches are case-insensitive.
type BookFilter struct {
	Title  string
	Author string
	Limit  int
	Offset int
}

// BookReader defines read operations for catalog data
type BookReader interface {
	// FindBookByID retrieves a specific book by its ID.
	FindBookByID(ctx context.Context, bookID int64) (*domain.Book, error)

	// FindBooks retrieves a filtered, paginated list of books ordered by title then author.
	FindBooks(ctx context.Context, filter BookFilter) ([]domain.Book, error)
}

// BookWriter defines write operations for catalog data
type BookWriter interface {
	// SaveBook persists a new book and returns it with its assigned ID.
	SaveBook(ctx context.Context, book domain.Book) (*domain.Book, error)

	// UpdateBook updates an existing book's fields.
	UpdateBook(ctx context.Context, book domain.Book) error

	// DeleteBook removes a book. Its borrowings go with it (ON DELETE CASCADE).
	DeleteBook(ctx context.Context, bookID int64) error
}

// BookRepositoryFacade combines all book-related repository interfaces
type BookRepositoryFacade interface {
	BookReader
	BookWriter
}
