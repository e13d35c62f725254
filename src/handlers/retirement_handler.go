package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/s155003/Budgetly/src/retirement"
	"github.com/s155003/Budgetly/src/util"
	"github.com/shopspring/decimal"
)

func RetirementPlan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Age       *int             `json:"age"`
			Income    *decimal.Decimal `json:"income"`
			Savings   *decimal.Decimal `json:"savings"`
			RiskLevel string           `json:"risk_level"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Age == nil || req.Income == nil || req.Savings == nil || req.RiskLevel == "" {
			util.WriteError(w, http.StatusBadRequest, "Age, income, savings, and risk level are required")
			return
		}
		if *req.Age < 0 || *req.Age > 119 {
			util.WriteError(w, http.StatusBadRequest, "Age must be between 0 and 119")
			return
		}
		if req.Income.IsNegative() || req.Savings.IsNegative() {
			util.WriteError(w, http.StatusBadRequest, "Income and savings must not be negative")
			return
		}
		if !retirement.ValidRiskLevel(req.RiskLevel) {
			util.WriteError(w, http.StatusBadRequest, "Risk level must be low, medium, or high")
			return
		}

		projected, err := retirement.ProjectSavings(*req.Age, *req.Savings, strings.ToLower(req.RiskLevel))
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"projected_savings": projected})
	}
}

func RetirementArticles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		age, err := strconv.Atoi(r.URL.Query().Get("age"))
		if err != nil || age < 0 || age > 119 {
			util.WriteError(w, http.StatusBadRequest, "Age must be between 0 and 119")
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"items": retirement.ArticlesForAge(age)})
	}
}
