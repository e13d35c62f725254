package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
