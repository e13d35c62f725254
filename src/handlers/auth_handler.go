package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	db "github.com/s155003/Budgetly/src/db/sql"
	"github.com/s155003/Budgetly/src/models"
	"github.com/s155003/Budgetly/src/util"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const passwordRule = "Password must be 8-72 characters with uppercase, lowercase, and a digit"

func Register(conn *sql.DB, tokens *util.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := util.DecodeJSON(r, &req); err != nil {
			zap.L().Warn("Failed to decode register request body", zap.Error(err))
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Email = util.NormalizeEmail(req.Email)
		req.FirstName = strings.TrimSpace(req.FirstName)
		req.LastName = strings.TrimSpace(req.LastName)

		if req.Email == "" || req.Password == "" {
			util.WriteError(w, http.StatusBadRequest, "Email and password are required")
			return
		}
		if !util.ValidateEmail(req.Email) {
			util.WriteError(w, http.StatusBadRequest, "Invalid email format")
			return
		}
		if !util.ValidatePassword(req.Password) {
			util.WriteError(w, http.StatusBadRequest, passwordRule)
			return
		}
		if !util.ValidateName(req.FirstName) || !util.ValidateName(req.LastName) {
			util.WriteError(w, http.StatusBadRequest, "Names must be at most 100 characters")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			serverError(w, "Failed to register user", err)
			return
		}

		user, err := db.CreateUser(r.Context(), conn, req, hashedPassword)
		if err != nil {
			if db.IsUniqueViolation(err) {
				zap.L().Info("Registration rejected, email already exists", zap.String("email", req.Email))
				util.WriteError(w, http.StatusConflict, "User with this email already exists")
				return
			}
			serverError(w, "Failed to register user", err, zap.String("email", req.Email))
			return
		}

		token, err := tokens.Generate(user.ID, user.Email)
		if err != nil {
			serverError(w, "Error generating token", err, zap.Int64("user_id", user.ID))
			return
		}

		zap.L().Info("Successful registration", zap.Int64("user_id", user.ID))
		util.WriteJSON(w, http.StatusCreated, models.AuthResponse{
			Message: "User registered successfully",
			Token:   token,
			User:    user,
		})
	}
}

func Login(conn *sql.DB, tokens *util.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := util.DecodeJSON(r, &credentials); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if credentials.Email == "" || credentials.Password == "" {
			util.WriteError(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		user, err := db.GetUserByEmail(r.Context(), conn, util.NormalizeEmail(credentials.Email))
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			serverError(w, "Failed to log in", err)
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(credentials.Password)); err != nil {
			zap.L().Warn("Invalid password attempt", zap.Int64("user_id", user.ID), zap.String("remote_addr", r.RemoteAddr))
			util.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := tokens.Generate(user.ID, user.Email)
		if err != nil {
			serverError(w, "Error generating token", err, zap.Int64("user_id", user.ID))
			return
		}

		zap.L().Info("Successful login", zap.Int64("user_id", user.ID))
		util.WriteJSON(w, http.StatusOK, models.AuthResponse{
			Message: "Login successful",
			Token:   token,
			User:    user,
		})
	}
}
