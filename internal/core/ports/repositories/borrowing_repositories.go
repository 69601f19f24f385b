package repositories

import (
	"context"
	"time"

	"github.com/kvyts/library_lending_app/internal/core/domain"
)

// BorrowingFilter narrows a borrowing listing. OnlyActive=true restricts to
// open borrowings (actual_return_date IS NULL); false imposes no restriction.
// UserID restricts to one owner when non-empty. Predicates combine with AND.
type BorrowingFilter struct {
	OnlyActive bool
	UserID     string
	Limit      int
	Offset     int
}

// BorrowingReader defines read operations for the borrowing ledger
type BorrowingReader interface {
	// FindBorrowingByID retrieves a specific borrowing by its ID.
	FindBorrowingByID(ctx context.Context, borrowingID int64) (*domain.Borrowing, error)

	// FindBorrowings retrieves a filtered, paginated list ordered by borrow_date descending.
	FindBorrowings(ctx context.Context, filter BorrowingFilter) ([]domain.Borrowing, error)
}

// BorrowingLifecycleWriter defines the two invariant-bearing ledger mutations.
// Both must execute as a single database transaction so that the borrowing
// record and the book's inventory never diverge.
type BorrowingLifecycleWriter interface {
	// CreateBorrowing locks the book row, verifies inventory > 0, decrements it
	// and inserts the borrowing. Returns apperrors.ErrNotFound when the book
	// does not exist and apperrors.ErrNoInventory when no copy is available.
	CreateBorrowing(ctx context.Context, borrowing domain.Borrowing) (*domain.Borrowing, error)

	// MarkReturned locks the borrowing row, verifies it is still open, stamps
	// actual_return_date and increments the book's inventory. Returns
	// apperrors.ErrAlreadyReturned when the borrowing is already closed.
	MarkReturned(ctx context.Context, borrowingID int64, returnedAt time.Time, updatedBy string) error

	// UpdateExpectedReturnDate overwrites expected_return_date while the
	// borrowing is still open. Returns apperrors.ErrAlreadyReturned when closed.
	UpdateExpectedReturnDate(ctx context.Context, borrowingID int64, newDate time.Time, updatedBy string) error
}

// BorrowingAdminWriter defines the administrative hard-delete override. It
// bypasses the lifecycle on purpose: inventory is NOT restored.
type BorrowingAdminWriter interface {
	DeleteBorrowing(ctx context.Context, borrowingID int64) error
}

// BorrowingRepositoryFacade combines all borrowing-related repository interfaces
type BorrowingRepositoryFacade interface {
	BorrowingReader
	BorrowingLifecycleWriter
	BorrowingAdminWriter
}
