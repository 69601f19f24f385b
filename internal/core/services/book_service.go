package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kvyts/library_lending_app/internal/apperrors"
	"github.com/kvyts/library_lending_app/internal/core/domain"
	portsrepo "github.com/kvyts/library_lending_app/internal/core/ports/repositories"
	portssvc "github.com/kvyts/library_lending_app/internal/core/ports/services"
	"github.com/kvyts/library_lending_app/internal/dto"
)

// bookService implements the BookSvcFacade interface
type bookService struct {
	BaseService
	bookRepo portsrepo.BookRepositoryFacade
}

// NewBookService creates a new book service with the provided dependencies
func NewBookService(bookRepo portsrepo.BookRepositoryFacade) portssvc.BookSvcFacade {
	return &bookService{bookRepo: bookRepo}
}

// Ensure bookService implements the BookSvcFacade interface
var _ portssvc.BookSvcFacade = (*bookService)(nil)

func (s *bookService) GetBookByID(ctx context.Context, bookID int64) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find book by ID", slog.Int64("book_id", bookID))
		}
		return nil, err
	}
	return book, nil
}

func (s *bookService) ListBooks(ctx context.Context, params dto.ListBooksParams) ([]domain.Book, error) {
	books, err := s.bookRepo.FindBooks(ctx, portsrepo.BookFilter{
		Title:  params.Title,
		Author: params.Author,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list books")
		return nil, err
	}
	if books == nil {
		return []domain.Book{}, nil
	}
	return books, nil
}

func (s *bookService) CreateBook(ctx context.Context, req dto.CreateBookRequest, requester domain.Requester) (*domain.Book, error) {
	if !requester.CanMutateBooks() {
		return nil, apperrors.ErrForbidden
	}

	cover := domain.CoverType(req.Cover)
	if cover == "" {
		cover = domain.CoverSoft
	}

	now := time.Now()
	book := domain.Book{
		Title:     req.Title,
		Author:    req.Author,
		Inventory: req.Inventory,
		DailyFee:  req.DailyFee,
		Cover:     cover,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.UserID,
		},
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	created, err := s.bookRepo.SaveBook(ctx, book)
	if err != nil {
		s.LogError(ctx, err, "Failed to save book", slog.String("title", book.Title))
		return nil, err
	}

	s.LogInfo(ctx, "Book created", slog.Int64("book_id", created.BookID), slog.String("title", created.Title))
	return created, nil
}

func (s *bookService) UpdateBook(ctx context.Context, bookID int64, req dto.UpdateBookRequest, requester domain.Requester) (*domain.Book, error) {
	if !requester.CanMutateBooks() {
		return nil, apperrors.ErrForbidden
	}

	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Inventory != nil {
		book.Inventory = *req.Inventory
	}
	if req.DailyFee != nil {
		book.DailyFee = *req.DailyFee
	}
	if req.Cover != nil {
		book.Cover = domain.CoverType(*req.Cover)
	}
	book.LastUpdatedAt = time.Now()
	book.LastUpdatedBy = requester.UserID

	if err := book.Validate(); err != nil {
		return nil, err
	}

	if err := s.bookRepo.UpdateBook(ctx, *book); err != nil {
		s.LogError(ctx, err, "Failed to update book", slog.Int64("book_id", bookID))
		return nil, err
	}

	s.LogInfo(ctx, "Book updated", slog.Int64("book_id", bookID))
	return book, nil
}

// DeleteBook removes a book; its borrowings are removed by the schema's
// cascade, which is the documented deletion policy.
func (s *bookService) DeleteBook(ctx context.Context, bookID int64, requester domain.Requester) error {
	if !requester.CanMutateBooks() {
		return apperrors.ErrForbidden
	}

	if err := s.bookRepo.DeleteBook(ctx, bookID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete book", slog.Int64("book_id", bookID))
		}
		return err
	}

	s.LogInfo(ctx, "Book deleted", slog.Int64("book_id", bookID))
	return nil
}
