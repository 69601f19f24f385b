package models

import (
	"database/sql"
	"time"
)

// Borrowing is the database representation of a borrowing record.
// book_id is a cascading foreign key: deleting a book removes its borrowings.
type Borrowing struct {
	BorrowingID        int64        `db:"borrowing_id"`
	BorrowDate         time.Time    `db:"borrow_date"`
	ExpectedReturnDate time.Time    `db:"expected_return_date"`
	ActualReturnDate   sql.NullTime `db:"actual_return_date"`
	BookID             int64        `db:"book_id"`
	UserID             string       `db:"user_id"`
	AuditFields
}
