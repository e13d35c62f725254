package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	db "github.com/s155003/Budgetly/src/db/sql"
	"github.com/s155003/Budgetly/src/util"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func CreateGoal(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req struct {
			Name         string          `json:"name"`
			TargetAmount decimal.Decimal `json:"target_amount"`
			TargetDate   *string         `json:"target_date"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			util.WriteError(w, http.StatusBadRequest, "Name and target amount are required")
			return
		}
		target := req.TargetAmount.Round(2)
		if !target.IsPositive() {
			util.WriteError(w, http.StatusBadRequest, "Target amount must be greater than 0")
			return
		}

		var targetDate *string
		if req.TargetDate != nil && *req.TargetDate != "" {
			date, err := util.ParseDate(*req.TargetDate)
			if err != nil {
				util.WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			targetDate = &date
		}

		goal, err := db.CreateGoal(r.Context(), conn, userID, req.Name, target, targetDate)
		if err != nil {
			serverError(w, "Failed to create savings goal", err, zap.Int64("user_id", userID))
			return
		}

		zap.L().Info("Created savings goal", zap.Int64("goal_id", goal.ID), zap.Int64("user_id", userID))
		util.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Savings goal created successfully",
			"goal_id": goal.ID,
			"goal":    goal,
		})
	}
}

func GetGoals(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		goals, err := db.GetGoals(r.Context(), conn, userID)
		if err != nil {
			serverError(w, "Failed to get savings goals", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"goals": goals})
	}
}

// ContributeToGoal moves money into (or, with a negative amount, out of) a goal.
func ContributeToGoal(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		goalID, ok := pathID(r, "goal_id")
		if !ok {
			util.WriteError(w, http.StatusBadRequest, "Invalid goal id")
			return
		}

		var req struct {
			Amount decimal.Decimal `json:"amount"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		amount := req.Amount.Round(2)
		if amount.IsZero() {
			util.WriteError(w, http.StatusBadRequest, "Amount must not be zero")
			return
		}

		goal, err := db.ContributeToGoal(r.Context(), conn, userID, goalID, amount)
		if err != nil {
			switch {
			case errors.Is(err, db.ErrNotFound):
				util.WriteError(w, http.StatusNotFound, "Savings goal not found")
			case errors.Is(err, db.ErrNegativeBalance):
				util.WriteError(w, http.StatusBadRequest, "Withdrawal exceeds the goal balance")
			default:
				serverError(w, "Failed to update savings goal", err, zap.Int64("user_id", userID))
			}
			return
		}

		zap.L().Info("Updated savings goal", zap.Int64("goal_id", goalID), zap.Int64("user_id", userID))
		util.WriteJSON(w, http.StatusOK, map[string]any{"goal": goal})
	}
}

func DeleteGoal(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		goalID, ok := pathID(r, "goal_id")
		if !ok {
			util.WriteError(w, http.StatusBadRequest, "Invalid goal id")
			return
		}

		if err := db.DeleteGoal(r.Context(), conn, userID, goalID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Savings goal not found")
				return
			}
			serverError(w, "Failed to delete savings goal", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Savings goal deleted successfully"})
	}
}
