package services

import (
	"context"

	"github.com/kvyts/library_lending_app/internal/core/domain"
	"github.com/kvyts/library_lending_app/internal/dto"
)

// BorrowingReaderSvc defines read operations over the borrowing ledger.
// Visibility is owner-or-staff; listings for non-staff are always self-scoped.
type BorrowingReaderSvc interface {
	// GetBorrowingByID retrieves a borrowing the requester is allowed to see.
	GetBorrowingByID(ctx context.Context, borrowingID int64, requester domain.Requester) (*domain.Borrowing, error)

	// ListBorrowings retrieves borrowings visible to the requester, newest first.
	ListBorrowings(ctx context.Context, params dto.ListBorrowingsParams, requester domain.Requester) ([]domain.Borrowing, error)
}

// BorrowingLifecycleSvc defines the invariant-bearing borrow/return operations.
type BorrowingLifecycleSvc interface {
	// Borrow checks availability, decrements inventory and creates an open
	// borrowing owned by the requester, all in one atomic step.
	Borrow(ctx context.Context, req dto.CreateBorrowingRequest, requester domain.Requester) (*domain.Borrowing, error)

	// Return closes an open borrowing and puts its copy back on the shelf.
	// A second call fails with apperrors.ErrAlreadyReturned.
	Return(ctx context.Context, borrowingID int64, requester domain.Requester) error

	// UpdateExpectedReturnDate edits the expected return date of an open
	// borrowing owned by the requester (or any open borrowing, for staff).
	UpdateExpectedReturnDate(ctx context.Context, borrowingID int64, req dto.UpdateBorrowingRequest, requester domain.Requester) (*domain.Borrowing, error)
}

// BorrowingAdminSvc defines the staff-only hard delete, which deliberately
// does not restore inventory.
type BorrowingAdminSvc interface {
	DeleteBorrowing(ctx context.Context, borrowingID int64, requester domain.Requester) error
}

// BorrowingSvcFacade combines all borrowing-related service interfaces
type BorrowingSvcFacade interface {
	BorrowingReaderSvc
	BorrowingLifecycleSvc
	BorrowingAdminSvc
}
