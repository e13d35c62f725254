package db

import (
	"context"
	"fmt"

	"github.com/s155003/Budgetly/src/models"
)

const categoryColumns = `id, name, type, user_id, created_at`

func scanCategory(row interface{ Scan(...any) error }, c *models.Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Type, &c.UserID, timestamp{&c.CreatedAt})
}

// GetCategories lists the global defaults plus the user's own categories.
func GetCategories(ctx context.Context, conn Conn, userID int64) ([]models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY type, name, id
	`
	rows, err := conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetVisibleCategory returns the category if it is global or owned by the user.
func GetVisibleCategory(ctx context.Context, conn Conn, userID, categoryID int64) (*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1 AND (user_id IS NULL OR user_id = $2)
	`
	var c models.Category
	if err := scanCategory(conn.QueryRowContext(ctx, query, categoryID, userID), &c); err != nil {
		return nil, notFound(err, "get category")
	}
	return &c, nil
}

func CreateCategory(ctx context.Context, conn Conn, userID int64, name, categoryType string) (*models.Category, error) {
	query := `
		INSERT INTO categories (name, type, user_id)
		VALUES ($1, $2, $3)
		RETURNING ` + categoryColumns

	var c models.Category
	if err := scanCategory(conn.QueryRowContext(ctx, query, name, categoryType, userID), &c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

// DeleteCategory only removes categories the user owns; global rows are untouchable.
func DeleteCategory(ctx context.Context, conn Conn, userID, categoryID int64) error {
	res, err := conn.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireRow(res)
}
