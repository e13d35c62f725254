package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/s155003/Budgetly/src/charts"
	db "github.com/s155003/Budgetly/src/db/sql"
	"github.com/s155003/Budgetly/src/models"
	"github.com/s155003/Budgetly/src/util"
	"go.uber.org/zap"
)

func parseYearMonth(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	if q.Get("year") == "" || q.Get("month") == "" {
		return 0, 0, errors.New("Year and month are required")
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, errors.New("Invalid year")
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("Month must be between 1 and 12")
	}
	return year, month, nil
}

func GetMonthlySummary(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		year, month, err := parseYearMonth(r)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		rows, err := db.GetMonthlySummary(r.Context(), conn, userID, year, month)
		if err != nil {
			serverError(w, "Failed to get monthly summary", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, models.NewMonthlySummary(year, month, rows))
	}
}

// GetSummaryChart renders the month's category totals of one type as a PNG.
func GetSummaryChart(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		year, month, err := parseYearMonth(r)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		categoryType := r.URL.Query().Get("type")
		if categoryType == "" {
			categoryType = models.CategoryExpense
		}
		if !models.ValidCategoryType(categoryType) {
			util.WriteError(w, http.StatusBadRequest, "Type must be income or expense")
			return
		}

		rows, err := db.GetMonthlySummary(r.Context(), conn, userID, year, month)
		if err != nil {
			serverError(w, "Failed to get monthly summary", err, zap.Int64("user_id", userID))
			return
		}

		png, err := charts.CategoryPie(rows, categoryType)
		if err != nil {
			serverError(w, "Failed to render chart", err, zap.Int64("user_id", userID))
			return
		}
		if png == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(png); err != nil {
			zap.L().Warn("Failed to write chart", zap.Error(err))
		}
	}
}
