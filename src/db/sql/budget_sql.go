package db

import (
	"context"
	"fmt"

	"github.com/s155003/Budgetly/src/models"
	"github.com/shopspring/decimal"
)

const budgetColumns = `id, user_id, monthly_income, created_at, updated_at`

func scanBudget(row interface{ Scan(...any) error }, b *models.Budget) error {
	return row.Scan(&b.ID, &b.UserID, money{&b.MonthlyIncome}, timestamp{&b.CreatedAt}, timestamp{&b.UpdatedAt})
}

func CreateBudget(ctx context.Context, conn Conn, userID int64, monthlyIncome decimal.Decimal) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, monthly_income)
		VALUES ($1, $2)
		RETURNING ` + budgetColumns

	var b models.Budget
	if err := scanBudget(conn.QueryRowContext(ctx, query, userID, monthlyIncome), &b); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return &b, nil
}

// GetLatestBudget returns the user's current budget, the most recently created row.
func GetLatestBudget(ctx context.Context, conn Conn, userID int64) (*models.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var b models.Budget
	if err := scanBudget(conn.QueryRowContext(ctx, query, userID), &b); err != nil {
		return nil, notFound(err, "get latest budget")
	}
	return &b, nil
}

// UpdateLatestBudget rewrites the income of the user's current budget.
func UpdateLatestBudget(ctx context.Context, conn Conn, userID int64, monthlyIncome decimal.Decimal) (*models.Budget, error) {
	query := `
		UPDATE budgets
		SET monthly_income = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = (
			SELECT id FROM budgets
			WHERE user_id = $2
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)
		RETURNING ` + budgetColumns

	var b models.Budget
	if err := scanBudget(conn.QueryRowContext(ctx, query, monthlyIncome, userID), &b); err != nil {
		return nil, notFound(err, "failed to update budget")
	}
	return &b, nil
}

func GetBudgetHistory(ctx context.Context, conn Conn, userID int64) ([]models.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		if err := scanBudget(rows, &b); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}
