package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/s155003/Budgetly/src/models"
	"github.com/shopspring/decimal"
)

// ErrNegativeBalance is returned when a withdrawal would take a goal below zero.
var ErrNegativeBalance = errors.New("contribution would make the goal balance negative")

const goalColumns = `id, user_id, name, target_amount, current_amount, CAST(target_date AS TEXT), created_at, updated_at`

func scanGoal(row interface{ Scan(...any) error }, g *models.SavingsGoal) error {
	err := row.Scan(&g.ID, &g.UserID, &g.Name, money{&g.TargetAmount}, money{&g.CurrentAmount}, &g.TargetDate,
		timestamp{&g.CreatedAt}, timestamp{&g.UpdatedAt})
	if err != nil {
		return err
	}
	*g = g.WithProgress()
	return nil
}

func CreateGoal(ctx context.Context, conn Conn, userID int64, name string, target decimal.Decimal, targetDate *string) (*models.SavingsGoal, error) {
	query := `
		INSERT INTO savings_goals (user_id, name, target_amount, target_date)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + goalColumns

	var g models.SavingsGoal
	if err := scanGoal(conn.QueryRowContext(ctx, query, userID, name, target, targetDate), &g); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &g, nil
}

func GetGoals(ctx context.Context, conn Conn, userID int64) ([]models.SavingsGoal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := []models.SavingsGoal{}
	for rows.Next() {
		var g models.SavingsGoal
		if err := scanGoal(rows, &g); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func GetGoal(ctx context.Context, conn Conn, userID, goalID int64) (*models.SavingsGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE id = $1 AND user_id = $2`
	var g models.SavingsGoal
	if err := scanGoal(conn.QueryRowContext(ctx, query, goalID, userID), &g); err != nil {
		return nil, notFound(err, "get goal")
	}
	return &g, nil
}

// ContributeToGoal adds amount (negative for a withdrawal) to the goal's balance.
// The guard in the WHERE clause keeps the balance at or above zero.
func ContributeToGoal(ctx context.Context, conn Conn, userID, goalID int64, amount decimal.Decimal) (*models.SavingsGoal, error) {
	query := `
		UPDATE savings_goals
		SET current_amount = current_amount + $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3 AND current_amount + $1 >= 0
		RETURNING ` + goalColumns

	var g models.SavingsGoal
	err := scanGoal(conn.QueryRowContext(ctx, query, amount, goalID, userID), &g)
	if err == nil {
		return &g, nil
	}
	if err = notFound(err, "failed to contribute to goal"); !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, getErr := GetGoal(ctx, conn, userID, goalID); getErr != nil {
		return nil, getErr
	}
	return nil, ErrNegativeBalance
}

func DeleteGoal(ctx context.Context, conn Conn, userID, goalID int64) error {
	res, err := conn.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return requireRow(res)
}
