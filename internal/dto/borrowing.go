package dto

import (
	"github.com/kvyts/library_lending_app/internal/core/domain"
)

// CreateBorrowingRequest defines the data needed to borrow a book. The owner
// of the new borrowing is always the requesting identity, never client-supplied.
type CreateBorrowingRequest struct {
	BookID             int64    `json:"book" binding:"required"`
	ExpectedReturnDate DateOnly `json:"expected_return_date" binding:"required"`
}

// UpdateBorrowingRequest allows editing the expected return date of an open
// borrowing. No other field is editable after creation.
type UpdateBorrowingRequest struct {
	ExpectedReturnDate DateOnly `json:"expected_return_date" binding:"required"`
}

// ListBorrowingsParams defines query parameters for listing borrowings.
// user_id only takes effect for staff callers; everyone else is scoped to self.
type ListBorrowingsParams struct {
	IsActive bool   `form:"is_active"`
	UserID   string `form:"user_id"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}

// BorrowingResponse defines the data returned for a borrowing. UserID is only
// populated for staff callers; the shape is selected once per request based on
// the caller's role.
type BorrowingResponse struct {
	BorrowingID        int64     `json:"id"`
	BorrowDate         DateOnly  `json:"borrow_date"`
	ExpectedReturnDate DateOnly  `json:"expected_return_date"`
	ActualReturnDate   *DateOnly `json:"actual_return_date"`
	BookID             int64     `json:"book"`
	UserID             string    `json:"user_id,omitempty"`
}

// BorrowingView selects which response shape a caller receives.
type BorrowingView int

const (
	// BorrowingViewOwner omits the owner field; the caller already knows who they are.
	BorrowingViewOwner BorrowingView = iota
	// BorrowingViewStaff includes the owner of each borrowing.
	BorrowingViewStaff
)

// BorrowingViewFor resolves the response shape for a requester. Computed once
// per request, not per record.
func BorrowingViewFor(requester domain.Requester) BorrowingView {
	if requester.IsStaff {
		return BorrowingViewStaff
	}
	return BorrowingViewOwner
}

// ToBorrowingResponse converts a domain.Borrowing to BorrowingResponse DTO
func ToBorrowingResponse(b *domain.Borrowing, view BorrowingView) BorrowingResponse {
	resp := BorrowingResponse{
		BorrowingID:        b.BorrowingID,
		BorrowDate:         NewDateOnly(b.BorrowDate),
		ExpectedReturnDate: NewDateOnly(b.ExpectedReturnDate),
		ActualReturnDate:   NewDateOnlyPtr(b.ActualReturnDate),
		BookID:             b.BookID,
	}
	if view == BorrowingViewStaff {
		resp.UserID = b.UserID
	}
	return resp
}

// ToListBorrowingResponse converts a slice of domain.Borrowing to DTOs
func ToListBorrowingResponse(borrowings []domain.Borrowing, view BorrowingView) []BorrowingResponse {
	res := make([]BorrowingResponse, len(borrowings))
	for i, b := range borrowings {
		res[i] = ToBorrowingResponse(&b, view)
	}
	return res
}
