package models

import (
	"github.com/shopspring/decimal"
)

// Book is the database representation of a catalog entry.
// Inventory and daily_fee both carry CHECK constraints (>= 0) in the schema, so
// the database rejects writes that slip past application-level validation.
type Book struct {
	BookID    int64           `db:"book_id"`
	Title     string          `db:"title"`
	Author    string          `db:"author"`
	Inventory int             `db:"inventory"`
	DailyFee  decimal.Decimal `db:"daily_fee"`
	Cover     string          `db:"cover"`
	AuditFields
}
