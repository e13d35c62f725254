package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/s155003/Budgetly/src/models"
	"github.com/shopspring/decimal"
)

const transactionSelect = `
	SELECT t.id, t.user_id, t.category_id, t.amount, t.description, CAST(t.date AS TEXT),
		c.name, c.type, t.created_at
	FROM transactions t
	JOIN categories c ON c.id = t.category_id
`

func scanTransaction(row interface{ Scan(...any) error }, t *models.Transaction) error {
	return row.Scan(&t.ID, &t.UserID, &t.CategoryID, money{&t.Amount}, &t.Description, &t.Date,
		&t.CategoryName, &t.CategoryType, timestamp{&t.CreatedAt})
}

func CreateTransaction(ctx context.Context, conn Conn, userID, categoryID int64, amount decimal.Decimal, description, date string) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, category_id, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	if err := conn.QueryRowContext(ctx, query, userID, categoryID, amount, description, date).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return GetTransaction(ctx, conn, userID, id)
}

func GetTransaction(ctx context.Context, conn Conn, userID, transactionID int64) (*models.Transaction, error) {
	query := transactionSelect + `WHERE t.id = $1 AND t.user_id = $2`
	var t models.Transaction
	if err := scanTransaction(conn.QueryRowContext(ctx, query, transactionID, userID), &t); err != nil {
		return nil, notFound(err, "get transaction")
	}
	return &t, nil
}

// ListTransactions returns the user's transactions, newest first, narrowed by filter.
func ListTransactions(ctx context.Context, conn Conn, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	var (
		where = []string{"t.user_id = $1"}
		args  = []any{userID}
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		where = append(where, "t.category_id = "+arg(*filter.CategoryID))
	}
	if filter.StartDate != "" {
		where = append(where, "t.date >= "+arg(filter.StartDate))
	}
	if filter.EndDate != "" {
		where = append(where, "t.date <= "+arg(filter.EndDate))
	}
	if filter.Search != "" {
		where = append(where, "LOWER(t.description) LIKE "+arg("%"+escapeLike(strings.ToLower(filter.Search))+"%")+` ESCAPE '\'`)
	}

	query := transactionSelect +
		"WHERE " + strings.Join(where, " AND ") +
		" ORDER BY t.date DESC, t.created_at DESC, t.id DESC" +
		" LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func DeleteTransaction(ctx context.Context, conn Conn, userID, transactionID int64) error {
	res, err := conn.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireRow(res)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes s match literally inside a LIKE pattern escaped with '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
