package models

import "time"

const (
	CategoryIncome  = "income"
	CategoryExpense = "expense"
)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	UserID    *int64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func ValidCategoryType(t string) bool {
	return t == CategoryIncome || t == CategoryExpense
}
