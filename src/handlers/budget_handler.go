package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	db "github.com/s155003/Budgetly/src/db/sql"
	"github.com/s155003/Budgetly/src/util"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type budgetRequest struct {
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
}

func decodeBudget(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	var req budgetRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return decimal.Zero, false
	}
	income := req.MonthlyIncome.Round(2)
	if !income.IsPositive() {
		util.WriteError(w, http.StatusBadRequest, "Monthly income must be greater than 0")
		return decimal.Zero, false
	}
	return income, true
}

func CreateBudget(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		income, ok := decodeBudget(w, r)
		if !ok {
			return
		}

		budget, err := db.CreateBudget(r.Context(), conn, userID, income)
		if err != nil {
			serverError(w, "Failed to create budget", err, zap.Int64("user_id", userID))
			return
		}

		zap.L().Info("Created budget", zap.Int64("budget_id", budget.ID), zap.Int64("user_id", userID))
		util.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Budget created successfully",
			"budget":  budget,
		})
	}
}

func GetBudget(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		budget, err := db.GetLatestBudget(r.Context(), conn, userID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "No budget found")
				return
			}
			serverError(w, "Failed to get budget", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"budget": budget})
	}
}

// UpdateBudget rewrites the user's current (latest) budget.
func UpdateBudget(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		income, ok := decodeBudget(w, r)
		if !ok {
			return
		}

		budget, err := db.UpdateLatestBudget(r.Context(), conn, userID, income)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "No budget found")
				return
			}
			serverError(w, "Failed to update budget", err, zap.Int64("user_id", userID))
			return
		}

		zap.L().Info("Updated budget", zap.Int64("budget_id", budget.ID), zap.Int64("user_id", userID))
		util.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Budget updated successfully",
			"budget":  budget,
		})
	}
}

func GetBudgetHistory(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		budgets, err := db.GetBudgetHistory(r.Context(), conn, userID)
		if err != nil {
			serverError(w, "Failed to get budget history", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"budgets": budgets})
	}
}
