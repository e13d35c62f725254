package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/s155003/Budgetly/src/cache"
	db "github.com/s155003/Budgetly/src/db/sql"
	"github.com/s155003/Budgetly/src/util"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func GetProfile(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		user, err := db.GetUserByID(r.Context(), conn, userID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "User not found")
				return
			}
			serverError(w, "Failed to get profile", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"user": user})
	}
}

// UpdateProfile changes only the fields present in the body.
func UpdateProfile(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req struct {
			FirstName *string `json:"first_name"`
			LastName  *string `json:"last_name"`
			Email     *string `json:"email"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := db.GetUserByID(r.Context(), conn, userID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "User not found")
				return
			}
			serverError(w, "Failed to update profile", err, zap.Int64("user_id", userID))
			return
		}

		firstName, lastName, email := user.FirstName, user.LastName, user.Email
		if req.FirstName != nil {
			firstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			lastName = strings.TrimSpace(*req.LastName)
		}
		if req.Email != nil {
			email = util.NormalizeEmail(*req.Email)
			if !util.ValidateEmail(email) {
				util.WriteError(w, http.StatusBadRequest, "Invalid email format")
				return
			}
		}
		if !util.ValidateName(firstName) || !util.ValidateName(lastName) {
			util.WriteError(w, http.StatusBadRequest, "Names must be at most 100 characters")
			return
		}

		updated, err := db.UpdateUserProfile(r.Context(), conn, userID, firstName, lastName, email)
		if err != nil {
			switch {
			case db.IsUniqueViolation(err):
				util.WriteError(w, http.StatusConflict, "User with this email already exists")
			case errors.Is(err, db.ErrNotFound):
				util.WriteError(w, http.StatusNotFound, "User not found")
			default:
				serverError(w, "Failed to update profile", err, zap.Int64("user_id", userID))
			}
			return
		}

		zap.L().Info("Updated profile", zap.Int64("user_id", userID))
		util.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Profile updated successfully",
			"user":    updated,
		})
	}
}

func ChangePassword(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.CurrentPassword == "" || req.NewPassword == "" {
			util.WriteError(w, http.StatusBadRequest, "Current and new password are required")
			return
		}

		user, err := db.GetUserByID(r.Context(), conn, userID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "User not found")
				return
			}
			serverError(w, "Failed to change password", err, zap.Int64("user_id", userID))
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.CurrentPassword)); err != nil {
			util.WriteError(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		if !util.ValidatePassword(req.NewPassword) {
			util.WriteError(w, http.StatusBadRequest, passwordRule)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			serverError(w, "Failed to change password", err, zap.Int64("user_id", userID))
			return
		}
		if err := db.UpdateUserPassword(r.Context(), conn, userID, hashed); err != nil {
			serverError(w, "Failed to change password", err, zap.Int64("user_id", userID))
			return
		}

		zap.L().Info("Changed password", zap.Int64("user_id", userID))
		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
	}
}

// DeleteProfile removes the account and everything it owns.
func DeleteProfile(conn *sql.DB, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := db.DeleteUser(r.Context(), conn, userID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "User not found")
				return
			}
			serverError(w, "Failed to delete account", err, zap.Int64("user_id", userID))
			return
		}
		c.DelCategories(userID)

		zap.L().Info("Deleted user", zap.Int64("user_id", userID))
		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
	}
}
