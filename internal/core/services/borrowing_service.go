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

// borrowingService implements the BorrowingSvcFacade interface
type borrowingService struct {
	BaseService
	borrowingRepo portsrepo.BorrowingRepositoryFacade
}

// NewBorrowingService creates a new borrowing service with the provided dependencies
func NewBorrowingService(borrowingRepo portsrepo.BorrowingRepositoryFacade) portssvc.BorrowingSvcFacade {
	return &borrowingService{borrowingRepo: borrowingRepo}
}

// Ensure borrowingService implements the BorrowingSvcFacade interface
var _ portssvc.BorrowingSvcFacade = (*borrowingService)(nil)

// today truncates the current time to a calendar date, which is the resolution
// the ledger works at.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *borrowingService) GetBorrowingByID(ctx context.Context, borrowingID int64, requester domain.Requester) (*domain.Borrowing, error) {
	borrowing, err := s.borrowingRepo.FindBorrowingByID(ctx, borrowingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find borrowing by ID", slog.Int64("borrowing_id", borrowingID))
		}
		return nil, err
	}
	// A foreign borrowing is indistinguishable from a missing one.
	if !requester.CanViewBorrowing(borrowing.UserID) {
		return nil, apperrors.ErrNotFound
	}
	return borrowing, nil
}

func (s *borrowingService) ListBorrowings(ctx context.Context, params dto.ListBorrowingsParams, requester domain.Requester) ([]domain.Borrowing, error) {
	borrowings, err := s.borrowingRepo.FindBorrowings(ctx, portsrepo.BorrowingFilter{
		OnlyActive: params.IsActive,
		UserID:     requester.EffectiveOwnerFilter(params.UserID),
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list borrowings")
		return nil, err
	}
	if borrowings == nil {
		return []domain.Borrowing{}, nil
	}
	return borrowings, nil
}

func (s *borrowingService) Borrow(ctx context.Context, req dto.CreateBorrowingRequest, requester domain.Requester) (*domain.Borrowing, error) {
	borrowDate := today()
	expected := req.ExpectedReturnDate.Time()
	if expected.Before(borrowDate) {
		return nil, apperrors.ErrInvalidReturnDate
	}

	now := time.Now()
	borrowing := domain.Borrowing{
		BookID:             req.BookID,
		UserID:             requester.UserID,
		BorrowDate:         borrowDate,
		ExpectedReturnDate: expected,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.UserID,
		},
	}

	created, err := s.borrowingRepo.CreateBorrowing(ctx, borrowing)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrNoInventory) {
			s.LogError(ctx, err, "Failed to create borrowing", slog.Int64("book_id", req.BookID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Borrowing created",
		slog.Int64("borrowing_id", created.BorrowingID),
		slog.Int64("book_id", created.BookID))
	return created, nil
}

func (s *borrowingService) Return(ctx context.Context, borrowingID int64, requester domain.Requester) error {
	borrowing, err := s.GetBorrowingByID(ctx, borrowingID, requester)
	if err != nil {
		return err
	}

	if err := s.borrowingRepo.MarkReturned(ctx, borrowing.BorrowingID, today(), requester.UserID); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyReturned) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to mark borrowing returned", slog.Int64("borrowing_id", borrowingID))
		}
		return err
	}

	s.LogInfo(ctx, "Borrowing returned", slog.Int64("borrowing_id", borrowingID))
	return nil
}

func (s *borrowingService) UpdateExpectedReturnDate(ctx context.Context, borrowingID int64, req dto.UpdateBorrowingRequest, requester domain.Requester) (*domain.Borrowing, error) {
	borrowing, err := s.GetBorrowingByID(ctx, borrowingID, requester)
	if err != nil {
		return nil, err
	}
	if !requester.CanUpdateBorrowing(borrowing.UserID) {
		return nil, apperrors.ErrForbidden
	}

	newDate := req.ExpectedReturnDate.Time()
	if newDate.Before(today()) {
		return nil, apperrors.ErrInvalidReturnDate
	}

	if err := s.borrowingRepo.UpdateExpectedReturnDate(ctx, borrowingID, newDate, requester.UserID); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyReturned) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update expected return date", slog.Int64("borrowing_id", borrowingID))
		}
		return nil, err
	}

	return s.borrowingRepo.FindBorrowingByID(ctx, borrowingID)
}

func (s *borrowingService) DeleteBorrowing(ctx context.Context, borrowingID int64, requester domain.Requester) error {
	if !requester.CanDeleteBorrowing() {
		return apperrors.ErrForbidden
	}

	if err := s.borrowingRepo.DeleteBorrowing(ctx, borrowingID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete borrowing", slog.Int64("borrowing_id", borrowingID))
		}
		return err
	}

	s.LogInfo(ctx, "Borrowing deleted", slog.Int64("borrowing_id", borrowingID))
	return nil
}
