package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/s155003/Budgetly/src/middleware"
	"github.com/s155003/Budgetly/src/util"
	"go.uber.org/zap"
)

// currentUser reads the authenticated user id, answering 401 when it is absent.
func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		util.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return 0, false
	}
	return userID, true
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// serverError logs the cause and answers 500 with a generic message.
func serverError(w http.ResponseWriter, message string, err error, fields ...zap.Field) {
	zap.L().Error(message, append(fields, zap.Error(err))...)
	util.WriteError(w, http.StatusInternalServerError, message)
}
