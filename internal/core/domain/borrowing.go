package domain

import "time"

// Borrowing links a user to a book for a date range. A borrowing with a nil
// ActualReturnDate is open: its copy is checked out and not part of the book's
// inventory. Once ActualReturnDate is set it never changes.
type Borrowing struct {
	BorrowingID        int64      `json:"borrowingID"`
	BorrowDate         time.Time  `json:"borrowDate"`
	ExpectedReturnDate time.Time  `json:"expectedReturnDate"`
	ActualReturnDate   *time.Time `json:"actualReturnDate,omitempty"`
	BookID             int64      `json:"bookID"`
	UserID             string     `json:"userID"`
	AuditFields
}

// IsOpen reports whether the borrowed copy is still out.
func (b Borrowing) IsOpen() bool {
	return b.ActualReturnDate == nil
}
