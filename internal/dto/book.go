package dto

import (
	"github.com/kvyts/library_lending_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBookRequest defines the data needed to create a new book.
// Fee bounds are validated at the domain boundary as well, so a write that
// bypasses binding still cannot persist a negative fee or inventory.
type CreateBookRequest struct {
	Title     string          `json:"title" binding:"required"`
	Author    string          `json:"author" binding:"required"`
	Inventory int             `json:"inventory" binding:"gte=0"`
	DailyFee  decimal.Decimal `json:"daily_fee"`
	Cover     string          `json:"cover" binding:"omitempty,oneof=HARD SOFT"`
}

// UpdateBookRequest defines the data allowed for a partial book update.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateBookRequest struct {
	Title     *string          `json:"title"`
	Author    *string          `json:"author"`
	Inventory *int             `json:"inventory" binding:"omitempty,gte=0"`
	DailyFee  *decimal.Decimal `json:"daily_fee"`
	Cover     *string          `json:"cover" binding:"omitempty,oneof=HARD SOFT"`
}

// ListBooksParams defines query parameters for listing books.
type ListBooksParams struct {
	Title  string `form:"title"`
	Author string `form:"author"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// BookResponse defines the full data returned for a single book.
type BookResponse struct {
	BookID    int64           `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Inventory int             `json:"inventory"`
	DailyFee  decimal.Decimal `json:"daily_fee"`
	Cover     string          `json:"cover"`
}

// BookListItemResponse is the compact shape used in listings.
type BookListItemResponse struct {
	BookID int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// ToBookResponse converts a domain.Book to BookResponse DTO
func ToBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		BookID:    b.BookID,
		Title:     b.Title,
		Author:    b.Author,
		Inventory: b.Inventory,
		DailyFee:  b.DailyFee,
		Cover:     string(b.Cover),
	}
}

// ToListBookResponse converts a slice of domain.Book to listing DTOs
func ToListBookResponse(books []domain.Book) []BookListItemResponse {
	res := make([]BookListItemResponse, len(books))
	for i, b := range books {
		res[i] = BookListItemResponse{
			BookID: b.BookID,
			Title:  b.Title,
			Author: b.Author,
		}
	}
	return res
}
