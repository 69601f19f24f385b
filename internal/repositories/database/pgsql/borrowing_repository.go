package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvyts/library_lending_app/internal/apperrors"
	"github.com/kvyts/library_lending_app/internal/core/domain"
	portsrepo "github.com/kvyts/library_lending_app/internal/core/ports/repositories"
	"github.com/kvyts/library_lending_app/internal/models"
)

type PgxBorrowingRepository struct {
	BaseRepository
}

func newPgxBorrowingRepository(pool *pgxpool.Pool) portsrepo.BorrowingRepositoryFacade {
	return &PgxBorrowingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBorrowingRepository implements portsrepo.BorrowingRepositoryFacade
var _ portsrepo.BorrowingRepositoryFacade = (*PgxBorrowingRepository)(nil)

// Helper to convert models.Borrowing to domain.Borrowing
func toDomainBorrowing(m models.Borrowing) domain.Borrowing {
	d := domain.Borrowing{
		BorrowingID:        m.BorrowingID,
		BorrowDate:         m.BorrowDate,
		ExpectedReturnDate: m.ExpectedReturnDate,
		BookID:             m.BookID,
		UserID:             m.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.ActualReturnDate.Valid {
		t := m.ActualReturnDate.Time
		d.ActualReturnDate = &t
	}
	return d
}

const borrowingColumns = `borrowing_id, borrow_date, expected_return_date, actual_return_date, book_id, user_id, created_at, created_by, last_updated_at, last_updated_by`

func scanBorrowing(row pgx.Row) (models.Borrowing, error) {
	var m models.Borrowing
	err := row.Scan(
		&m.BorrowingID,
		&m.BorrowDate,
		&m.ExpectedReturnDate,
		&m.ActualReturnDate,
		&m.BookID,
		&m.UserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateBorrowing performs the borrow operation as a single transaction:
// lock the book row, verify a copy is available, decrement inventory and
// insert the borrowing. The row lock serializes concurrent borrows of the
// same book, so inventory=1 with N concurrent callers admits exactly one.
func (r *PgxBorrowingRepository) CreateBorrowing(ctx context.Context, borrowing domain.Borrowing) (*domain.Borrowing, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	var inventory int
	err = tx.QueryRow(ctx, `
		SELECT inventory
		FROM books
		WHERE book_id = $1
		FOR UPDATE;
	`, borrowing.BookID).Scan(&inventory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock book row", err)
	}

	if inventory <= 0 {
		return nil, apperrors.ErrNoInventory
	}

	_, err = tx.Exec(ctx, `
		UPDATE books
		SET inventory = inventory - 1, last_updated_at = $1, last_updated_by = $2
		WHERE book_id = $3;
	`, borrowing.LastUpdatedAt, borrowing.LastUpdatedBy, borrowing.BookID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decrement book inventory", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO borrowings (borrow_date, expected_return_date, actual_return_date, book_id, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, NULL, $3, $4, $5, $6, $7, $8)
		RETURNING borrowing_id;
	`,
		borrowing.BorrowDate,
		borrowing.ExpectedReturnDate,
		borrowing.BookID,
		borrowing.UserID,
		borrowing.CreatedAt,
		borrowing.CreatedBy,
		borrowing.LastUpdatedAt,
		borrowing.LastUpdatedBy,
	).Scan(&borrowing.BorrowingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert borrowing", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// MarkReturned performs the return operation as a single transaction: lock the
// borrowing row, verify it is still open, stamp the return date and put the
// copy back on the shelf. A closed borrowing fails with ErrAlreadyReturned and
// leaves inventory untouched.
func (r *PgxBorrowingRepository) MarkReturned(ctx context.Context, borrowingID int64, returnedAt time.Time, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var bookID int64
	var actualReturnDate *time.Time
	err = tx.QueryRow(ctx, `
		SELECT book_id, actual_return_date
		FROM borrowings
		WHERE borrowing_id = $1
		FOR UPDATE;
	`, borrowingID).Scan(&bookID, &actualReturnDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock borrowing row", err)
	}

	if actualReturnDate != nil {
		return apperrors.ErrAlreadyReturned
	}

	_, err = tx.Exec(ctx, `
		UPDATE borrowings
		SET actual_return_date = $1, last_updated_at = $2, last_updated_by = $3
		WHERE borrowing_id = $4;
	`, returnedAt, time.Now(), updatedBy, borrowingID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to stamp return date", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE books
		SET inventory = inventory + 1, last_updated_at = $1, last_updated_by = $2
		WHERE book_id = $3;
	`, time.Now(), updatedBy, bookID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to increment book inventory", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateExpectedReturnDate overwrites expected_return_date for a borrowing
// that is still open. The open check is part of the UPDATE predicate so a
// concurrent return cannot slip in between check and write.
func (r *PgxBorrowingRepository) UpdateExpectedReturnDate(ctx context.Context, borrowingID int64, newDate time.Time, updatedBy string) error {
	query := `
		UPDATE borrowings
		SET expected_return_date = $1, last_updated_at = $2, last_updated_by = $3
		WHERE borrowing_id = $4 AND actual_return_date IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, newDate, time.Now(), updatedBy, borrowingID)
	if err != nil {
		return fmt.Errorf("failed to update expected return date: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing borrowing from a closed one.
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM borrowings WHERE borrowing_id = $1);`, borrowingID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check borrowing existence: %w", err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrAlreadyReturned
	}
	return nil
}

func (r *PgxBorrowingRepository) FindBorrowingByID(ctx context.Context, borrowingID int64) (*domain.Borrowing, error) {
	query := `
		SELECT ` + borrowingColumns + `
		FROM borrowings
		WHERE borrowing_id = $1;
	`
	m, err := scanBorrowing(r.Pool.QueryRow(ctx, query, borrowingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find borrowing by ID %d: %w", borrowingID, err)
	}

	domainBorrowing := toDomainBorrowing(m)
	return &domainBorrowing, nil
}

// FindBorrowings lists borrowings matching the filter, newest first.
func (r *PgxBorrowingRepository) FindBorrowings(ctx context.Context, filter portsrepo.BorrowingFilter) ([]domain.Borrowing, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + borrowingColumns + `
        FROM borrowings
    `
	conditions := []string{}
	args := []any{}
	if filter.OnlyActive {
		conditions = append(conditions, "actual_return_date IS NULL")
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, "user_id = $"+strconv.Itoa(len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	args = append(args, limit)
	query += " ORDER BY borrow_date DESC, borrowing_id DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrowings: %w", err)
	}
	defer rows.Close()

	borrowings := []domain.Borrowing{}
	for rows.Next() {
		m, err := scanBorrowing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan borrowing row: %w", err)
		}
		borrowings = append(borrowings, toDomainBorrowing(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating borrowing rows: %w", rows.Err())
	}

	return borrowings, nil
}

// DeleteBorrowing hard-deletes a borrowing without touching inventory. This is
// the administrative override; the lifecycle bypass is intentional and documented.
func (r *PgxBorrowingRepository) DeleteBorrowing(ctx context.Context, borrowingID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM borrowings WHERE borrowing_id = $1;`, borrowingID)
	if err != nil {
		return fmt.Errorf("failed to delete borrowing %d: %w", borrowingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("borrowing %d not found: %w", borrowingID, apperrors.ErrNotFound)
	}
	return nil
}
