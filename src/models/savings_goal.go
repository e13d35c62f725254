package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type SavingsGoal struct {
	ID                 int64           `json:"id"`
	UserID             int64           `json:"user_id"`
	Name               string          `json:"name"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	CurrentAmount      decimal.Decimal `json:"current_amount"`
	TargetDate         *string         `json:"target_date"`
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Progress returns current/target as a percentage rounded to cents, clamped to [0, 100].
func (g SavingsGoal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() || !g.CurrentAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred).Round(2)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// WithProgress fills ProgressPercentage from the stored amounts.
func (g SavingsGoal) WithProgress() SavingsGoal {
	g.ProgressPercentage = g.Progress()
	return g
}
