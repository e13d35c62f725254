package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	db "github.com/s155003/Budgetly/src/db/sql"
	"github.com/s155003/Budgetly/src/models"
	"github.com/s155003/Budgetly/src/util"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 500
)

func CreateTransaction(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req struct {
			CategoryID  *int64           `json:"category_id"`
			Amount      *decimal.Decimal `json:"amount"`
			Description string           `json:"description"`
			Date        string           `json:"date"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.CategoryID == nil || req.Amount == nil || req.Date == "" {
			util.WriteError(w, http.StatusBadRequest, "Category, amount, and date are required")
			return
		}
		amount := req.Amount.Round(2)
		if !amount.IsPositive() {
			util.WriteError(w, http.StatusBadRequest, "Amount must be greater than 0")
			return
		}
		date, err := util.ParseDate(req.Date)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := db.GetVisibleCategory(r.Context(), conn, userID, *req.CategoryID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusBadRequest, "Invalid category")
				return
			}
			serverError(w, "Failed to add transaction", err, zap.Int64("user_id", userID))
			return
		}

		tx, err := db.CreateTransaction(r.Context(), conn, userID, *req.CategoryID, amount,
			strings.TrimSpace(req.Description), date)
		if err != nil {
			serverError(w, "Failed to add transaction", err, zap.Int64("user_id", userID))
			return
		}

		zap.L().Info("Created transaction", zap.Int64("transaction_id", tx.ID), zap.Int64("user_id", userID))
		util.WriteJSON(w, http.StatusCreated, map[string]any{
			"message":        "Transaction added successfully",
			"transaction_id": tx.ID,
			"transaction":    tx,
		})
	}
}

// parseTransactionFilter reads limit, offset, category_id, start_date, end_date
// and search from the query string.
func parseTransactionFilter(r *http.Request) (models.TransactionFilter, error) {
	q := r.URL.Query()
	filter := models.TransactionFilter{Limit: defaultTransactionLimit}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return filter, errors.New("limit must be a positive integer")
		}
		filter.Limit = min(limit, maxTransactionLimit)
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filter, errors.New("offset must be a non-negative integer")
		}
		filter.Offset = offset
	}
	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return filter, errors.New("category_id must be a positive integer")
		}
		filter.CategoryID = &id
	}
	if v := q.Get("start_date"); v != "" {
		date, err := util.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.StartDate = date
	}
	if v := q.Get("end_date"); v != "" {
		date, err := util.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.EndDate = date
	}
	filter.Search = strings.TrimSpace(q.Get("search"))
	return filter, nil
}

func GetTransactions(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		filter, err := parseTransactionFilter(r)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		transactions, err := db.ListTransactions(r.Context(), conn, userID, filter)
		if err != nil {
			serverError(w, "Failed to get transactions", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{
			"transactions": transactions,
			"limit":        filter.Limit,
			"offset":       filter.Offset,
		})
	}
}

func DeleteTransaction(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		transactionID, ok := pathID(r, "transaction_id")
		if !ok {
			util.WriteError(w, http.StatusBadRequest, "Invalid transaction id")
			return
		}

		if err := db.DeleteTransaction(r.Context(), conn, userID, transactionID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			serverError(w, "Failed to delete transaction", err, zap.Int64("user_id", userID))
			return
		}

		zap.L().Info("Deleted transaction", zap.Int64("transaction_id", transactionID), zap.Int64("user_id", userID))
		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
	}
}
