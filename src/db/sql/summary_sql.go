package db

import (
	"context"
	"fmt"

	"github.com/s155003/Budgetly/src/models"
)

// GetMonthlySummary sums the user's transactions per category type and name for
// one calendar month. Rows come back ordered by type, then largest total first.
func GetMonthlySummary(ctx context.Context, conn Conn, userID int64, year, month int) ([]models.SummaryRow, error) {
	start, end, err := models.MonthRange(year, month)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT c.type, c.name, SUM(t.amount) AS total_amount, COUNT(t.id) AS transaction_count
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date < $3
		GROUP BY c.type, c.name
		ORDER BY c.type, total_amount DESC, c.name
	`
	rows, err := conn.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}
	defer rows.Close()

	summary := []models.SummaryRow{}
	for rows.Next() {
		var r models.SummaryRow
		if err := rows.Scan(&r.Type, &r.CategoryName, money{&r.TotalAmount}, &r.TransactionCount); err != nil {
			return nil, err
		}
		summary = append(summary, r)
	}
	return summary, rows.Err()
}
