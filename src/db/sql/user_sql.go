package db

import (
	"context"
	"fmt"

	"github.com/s155003/Budgetly/src/models"
)

const userColumns = `id, email, first_name, last_name, password_hash, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }, u *models.User) error {
	return row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		timestamp{&u.CreatedAt}, timestamp{&u.UpdatedAt})
}

func GetUserByID(ctx context.Context, conn Conn, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user models.User
	if err := scanUser(conn.QueryRowContext(ctx, query, id), &user); err != nil {
		return nil, notFound(err, "get user")
	}
	return &user, nil
}

func GetUserByEmail(ctx context.Context, conn Conn, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user models.User
	if err := scanUser(conn.QueryRowContext(ctx, query, email), &user); err != nil {
		return nil, notFound(err, "get user by email")
	}
	return &user, nil
}

// CreateUser inserts a user. A duplicate email surfaces as an error for which
// IsUniqueViolation is true.
func CreateUser(ctx context.Context, conn Conn, req models.RegisterRequest, hashedPassword []byte) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	var user models.User
	err := scanUser(conn.QueryRowContext(ctx, query, req.Email, string(hashedPassword), req.FirstName, req.LastName), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func UpdateUserProfile(ctx context.Context, conn Conn, userID int64, firstName, lastName, email string) (*models.User, error) {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING ` + userColumns

	var user models.User
	if err := scanUser(conn.QueryRowContext(ctx, query, firstName, lastName, email, userID), &user); err != nil {
		return nil, notFound(err, "failed to update user")
	}
	return &user, nil
}

func UpdateUserPassword(ctx context.Context, conn Conn, userID int64, hashedPassword []byte) error {
	query := `UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := conn.ExecContext(ctx, query, string(hashedPassword), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireRow(res)
}

// DeleteUser removes the user; foreign keys cascade to every owned row.
func DeleteUser(ctx context.Context, conn Conn, userID int64) error {
	res, err := conn.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRow(res)
}
