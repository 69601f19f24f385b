package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvyts/library_lending_app/internal/apperrors"
	"github.com/kvyts/library_lending_app/internal/core/domain"
	portsrepo "github.com/kvyts/library_lending_app/internal/core/ports/repositories"
	"github.com/kvyts/library_lending_app/internal/models"
)

type PgxBookRepository struct {
	BaseRepository
}

func newPgxBookRepository(pool *pgxpool.Pool) portsrepo.BookRepositoryFacade {
	return &PgxBookRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBookRepository implements portsrepo.BookRepositoryFacade
var _ portsrepo.BookRepositoryFacade = (*PgxBookRepository)(nil)

// Helper to convert domain.Book to models.Book
func toModelBook(d domain.Book) models.Book {
	return models.Book{
		BookID:    d.BookID,
		Title:     d.Title,
		Author:    d.Author,
		Inventory: d.Inventory,
		DailyFee:  d.DailyFee,
		Cover:     string(d.Cover),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Book to domain.Book
func toDomainBook(m models.Book) domain.Book {
	return domain.Book{
		BookID:    m.BookID,
		Title:     m.Title,
		Author:    m.Author,
		Inventory: m.Inventory,
		DailyFee:  m.DailyFee,
		Cover:     domain.CoverType(m.Cover),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxBookRepository) SaveBook(ctx context.Context, book domain.Book) (*domain.Book, error) {
	modelBook := toModelBook(book)
	query := `
        INSERT INTO books (title, author, inventory, daily_fee, cover, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING book_id;
    `
	err := r.Pool.QueryRow(ctx, query,
		modelBook.Title,
		modelBook.Author,
		modelBook.Inventory,
		modelBook.DailyFee,
		modelBook.Cover,
		modelBook.CreatedAt,
		modelBook.CreatedBy,
		modelBook.LastUpdatedAt,
		modelBook.LastUpdatedBy,
	).Scan(&book.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to save book: %w", err)
	}
	return &book, nil
}

func (r *PgxBookRepository) FindBookByID(ctx context.Context, bookID int64) (*domain.Book, error) {
	query := `
		SELECT book_id, title, author, inventory, daily_fee, cover, created_at, created_by, last_updated_at, last_updated_by
		FROM books
		WHERE book_id = $1;
	`
	var modelBook models.Book
	err := r.Pool.QueryRow(ctx, query, bookID).Scan(
		&modelBook.BookID,
		&modelBook.Title,
		&modelBook.Author,
		&modelBook.Inventory,
		&modelBook.DailyFee,
		&modelBook.Cover,
		&modelBook.CreatedAt,
		&modelBook.CreatedBy,
		&modelBook.LastUpdatedAt,
		&modelBook.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by ID %d: %w", bookID, err)
	}

	domainBook := toDomainBook(modelBook)
	return &domainBook, nil
}

// FindBooks lists books matching the filter, ordered by title then author.
// Filters combine with AND; substring matches are case-insensitive (ILIKE).
func (r *PgxBookRepository) FindBooks(ctx context.Context, filter portsrepo.BookFilter) ([]domain.Book, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT book_id, title, author, inventory, daily_fee, cover, created_at, created_by, last_updated_at, last_updated_by
        FROM books
    `
	conditions := []string{}
	args := []any{}
	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		conditions = append(conditions, "title ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.Author != "" {
		args = append(args, "%"+filter.Author+"%")
		conditions = append(conditions, "author ILIKE $"+strconv.Itoa(len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	args = append(args, limit)
	query += " ORDER BY title ASC, author ASC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var modelBook models.Book
		err := rows.Scan(
			&modelBook.BookID,
			&modelBook.Title,
			&modelBook.Author,
			&modelBook.Inventory,
			&modelBook.DailyFee,
			&modelBook.Cover,
			&modelBook.CreatedAt,
			&modelBook.CreatedBy,
			&modelBook.LastUpdatedAt,
			&modelBook.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, toDomainBook(modelBook))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", rows.Err())
	}

	return books, nil
}

func (r *PgxBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	modelBook := toModelBook(book)
	query := `
        UPDATE books
        SET title = $1, author = $2, inventory = $3, daily_fee = $4, cover = $5, last_updated_at = $6, last_updated_by = $7
        WHERE book_id = $8;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelBook.Title,
		modelBook.Author,
		modelBook.Inventory,
		modelBook.DailyFee,
		modelBook.Cover,
		modelBook.LastUpdatedAt,
		modelBook.LastUpdatedBy,
		modelBook.BookID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update book query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("book %d not found: %w", book.BookID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteBook removes the book row; the borrowings FK cascades.
func (r *PgxBookRepository) DeleteBook(ctx context.Context, bookID int64) error {
	query := `DELETE FROM books WHERE book_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete book %d: %w", bookID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("book %d not found: %w", bookID, apperrors.ErrNotFound)
	}
	return nil
}
