package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	CategoryID   int64           `json:"category_id"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	CategoryName string          `json:"category_name"`
	CategoryType string          `json:"category_type"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TransactionFilter narrows a transaction listing. Zero values mean "no filter";
// dates are inclusive YYYY-MM-DD bounds.
type TransactionFilter struct {
	CategoryID *int64
	StartDate  string
	EndDate    string
	Search     string
	Limit      int
	Offset     int
}
