package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/s155003/Budgetly/src/util"
	"go.uber.org/zap"
)

func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}
}

// Health reports whether the database answers a ping.
func Health(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := conn.PingContext(ctx); err != nil {
			zap.L().Error("Database ping failed", zap.Error(err))
			util.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "down"})
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "up"})
	}
}
