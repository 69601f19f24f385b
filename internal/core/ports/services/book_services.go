package services

import (
	"context"

	"github.com/kvyts/library_lending_app/internal/core/domain"
	"github.com/kvyts/library_lending_app/internal/dto"
)

// BookReaderSvc defines read operations over the catalog. Reads are public;
// no requester is needed.
type BookReaderSvc interface {
	// GetBookByID retrieves a specific book.
	GetBookByID(ctx context.Context, bookID int64) (*domain.Book, error)

	// ListBooks retrieves books matching the optional title/author filters.
	ListBooks(ctx context.Context, params dto.ListBooksParams) ([]domain.Book, error)
}

// BookWriterSvc defines catalog mutations, restricted to staff requesters.
type BookWriterSvc interface {
	// CreateBook persists a new book.
	CreateBook(ctx context.Context, req dto.CreateBookRequest, requester domain.Requester) (*domain.Book, error)

	// UpdateBook applies a partial update to an existing book.
	UpdateBook(ctx context.Context, bookID int64, req dto.UpdateBookRequest, requester domain.Requester) (*domain.Book, error)

	// DeleteBook removes a book and, by cascade, its borrowings.
	DeleteBook(ctx context.Context, bookID int64, requester domain.Requester) error
}

// BookSvcFacade combines all book-related service interfaces
type BookSvcFacade interface {
	BookReaderSvc
	BookWriterSvc
}
