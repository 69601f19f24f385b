package domain

import (
	"fmt"

	"github.com/kvyts/library_lending_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CoverType defines the physical cover of a book.
type CoverType string

const (
	CoverHard CoverType = "HARD"
	CoverSoft CoverType = "SOFT"
)

// MaxDailyFee is the upper bound for a book's daily fee (NUMERIC(5,2) in the schema).
var MaxDailyFee = decimal.RequireFromString("999.99")

// Book represents a title in the catalog together with its available inventory.
// Inventory counts only the copies currently on the shelf; every open borrowing
// already has its copy deducted.
type Book struct {
	BookID    int64           `json:"bookID"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Inventory int             `json:"inventory"`
	DailyFee  decimal.Decimal `json:"dailyFee"`
	Cover     CoverType       `json:"cover"`
	AuditFields
}

// Validate checks the field-level invariants that must hold for every book,
// regardless of whether the write comes from a handler or from a service.
func (b Book) Validate() error {
	if b.Title == "" {
		return fmt.Errorf("title is required: %w", apperrors.ErrValidation)
	}
	if b.Author == "" {
		return fmt.Errorf("author is required: %w", apperrors.ErrValidation)
	}
	if b.Inventory < 0 {
		return fmt.Errorf("inventory cannot be negative: %w", apperrors.ErrValidation)
	}
	if b.DailyFee.IsNegative() {
		return fmt.Errorf("daily fee cannot be negative: %w", apperrors.ErrValidation)
	}
	if b.DailyFee.GreaterThan(MaxDailyFee) {
		return fmt.Errorf("daily fee cannot exceed %s: %w", MaxDailyFee.String(), apperrors.ErrValidation)
	}
	if b.Cover != CoverHard && b.Cover != CoverSoft {
		return fmt.Errorf("cover must be HARD or SOFT: %w", apperrors.ErrValidation)
	}
	return nil
}
