package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	db "github.com/s155003/Budgetly/src/db/sql"
	"github.com/s155003/Budgetly/src/models"
	"github.com/s155003/Budgetly/src/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const recentTransactionCount = 5

type dashboard struct {
	Budget             *models.Budget        `json:"budget"`
	Summary            models.MonthlySummary `json:"summary"`
	Totals             models.SummaryTotals  `json:"totals"`
	Goals              []models.SavingsGoal  `json:"goals"`
	RecentTransactions []models.Transaction  `json:"recent_transactions"`
}

// GetDashboard loads the current month's overview, running the reads concurrently.
func GetDashboard(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		now := time.Now().UTC()
		year, month := now.Year(), int(now.Month())

		var out dashboard
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			budget, err := db.GetLatestBudget(ctx, conn, userID)
			if errors.Is(err, db.ErrNotFound) {
				return nil
			}
			out.Budget = budget
			return err
		})
		g.Go(func() error {
			rows, err := db.GetMonthlySummary(ctx, conn, userID, year, month)
			if err != nil {
				return err
			}
			out.Summary = models.NewMonthlySummary(year, month, rows)
			return nil
		})
		g.Go(func() error {
			goals, err := db.GetGoals(ctx, conn, userID)
			out.Goals = goals
			return err
		})
		g.Go(func() error {
			txs, err := db.ListTransactions(ctx, conn, userID, models.TransactionFilter{Limit: recentTransactionCount})
			out.RecentTransactions = txs
			return err
		})
		if err := g.Wait(); err != nil {
			serverError(w, "Failed to load dashboard", err, zap.Int64("user_id", userID))
			return
		}

		out.Totals = out.Summary.Totals
		util.WriteJSON(w, http.StatusOK, out)
	}
}
