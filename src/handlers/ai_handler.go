package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/s155003/Budgetly/src/ai"
	"github.com/s155003/Budgetly/src/cache"
	db "github.com/s155003/Budgetly/src/db/sql"
	"github.com/s155003/Budgetly/src/models"
	"github.com/s155003/Budgetly/src/util"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func aiError(w http.ResponseWriter, message string, err error, fields ...zap.Field) {
	if errors.Is(err, ai.ErrNotConfigured) {
		util.WriteError(w, http.StatusInternalServerError, ai.ErrNotConfigured.Error())
		return
	}
	serverError(w, message, err, fields...)
}

func absent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

// GetBudgetAdvice asks the model for advice. Anything the client leaves out
// (income, spending, goals) is filled in from the user's stored data.
func GetBudgetAdvice(conn *sql.DB, advisor *ai.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		if !advisor.Configured() {
			util.WriteError(w, http.StatusInternalServerError, ai.ErrNotConfigured.Error())
			return
		}

		var req struct {
			BudgetData *struct {
				MonthlyIncome decimal.Decimal `json:"monthly_income"`
			} `json:"budget_data"`
			SpendingData json.RawMessage `json:"spending_data"`
			Goals        json.RawMessage `json:"goals"`
		}
		if err := util.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		in := ai.AdviceInput{MonthlyIncome: decimal.Zero}
		if req.BudgetData != nil {
			in.MonthlyIncome = req.BudgetData.MonthlyIncome
		} else {
			budget, err := db.GetLatestBudget(r.Context(), conn, userID)
			switch {
			case err == nil:
				in.MonthlyIncome = budget.MonthlyIncome
			case !errors.Is(err, db.ErrNotFound):
				serverError(w, "Failed to get AI advice", err, zap.Int64("user_id", userID))
				return
			}
		}

		if absent(req.SpendingData) {
			now := time.Now().UTC()
			rows, err := db.GetMonthlySummary(r.Context(), conn, userID, now.Year(), int(now.Month()))
			if err != nil {
				serverError(w, "Failed to get AI advice", err, zap.Int64("user_id", userID))
				return
			}
			in.Spending = models.NewMonthlySummary(now.Year(), int(now.Month()), rows)
		} else {
			in.Spending = req.SpendingData
		}

		if absent(req.Goals) {
			goals, err := db.GetGoals(r.Context(), conn, userID)
			if err != nil {
				serverError(w, "Failed to get AI advice", err, zap.Int64("user_id", userID))
				return
			}
			in.Goals = goals
		} else {
			in.Goals = req.Goals
		}

		advice, err := advisor.BudgetAdvice(r.Context(), in)
		if err != nil {
			aiError(w, "Failed to get AI advice", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"advice": advice})
	}
}

func GetLessonHint(conn *sql.DB, c *cache.Cache, advisor *ai.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req struct {
			LessonContent   string `json:"lesson_content"`
			LessonID        *int64 `json:"lesson_id"`
			UserQuestion    string `json:"user_question"`
			DifficultyLevel string `json:"difficulty_level"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.UserQuestion = strings.TrimSpace(req.UserQuestion)
		if req.UserQuestion == "" {
			util.WriteError(w, http.StatusBadRequest, "User question is required")
			return
		}
		if req.DifficultyLevel != "" && !models.ValidDifficulty(req.DifficultyLevel) {
			util.WriteError(w, http.StatusBadRequest, "Difficulty must be beginner, intermediate, or advanced")
			return
		}
		if !advisor.Configured() {
			util.WriteError(w, http.StatusInternalServerError, ai.ErrNotConfigured.Error())
			return
		}

		if strings.TrimSpace(req.LessonContent) == "" && req.LessonID != nil {
			lesson, err := lessonByID(r.Context(), conn, c, *req.LessonID)
			if err != nil {
				if errors.Is(err, db.ErrNotFound) {
					util.WriteError(w, http.StatusNotFound, "Lesson not found")
					return
				}
				serverError(w, "Failed to get lesson hint", err, zap.Int64("user_id", userID))
				return
			}
			req.LessonContent = lesson.Title + "\n\n" + lesson.Content
			if req.DifficultyLevel == "" {
				req.DifficultyLevel = lesson.DifficultyLevel
			}
		}

		hint, err := advisor.LessonHint(r.Context(), req.LessonContent, req.UserQuestion, req.DifficultyLevel)
		if err != nil {
			aiError(w, "Failed to get lesson hint", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]string{"hint": hint})
	}
}

func GenerateQuizQuestions(advisor *ai.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req struct {
			Topic           string `json:"topic"`
			DifficultyLevel string `json:"difficulty_level"`
			NumQuestions    int    `json:"num_questions"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Topic = strings.TrimSpace(req.Topic)
		if req.Topic == "" {
			util.WriteError(w, http.StatusBadRequest, "Topic is required")
			return
		}
		if req.DifficultyLevel != "" && !models.ValidDifficulty(req.DifficultyLevel) {
			util.WriteError(w, http.StatusBadRequest, "Difficulty must be beginner, intermediate, or advanced")
			return
		}

		questions, err := advisor.QuizQuestions(r.Context(), req.Topic, req.DifficultyLevel, req.NumQuestions)
		if err != nil {
			if errors.Is(err, ai.ErrUnparsable) {
				util.WriteError(w, http.StatusInternalServerError, "Failed to parse AI response")
				return
			}
			aiError(w, "Failed to generate quiz questions", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"questions": questions})
	}
}

// AskAdvisor always answers 200; failures become a canned reply.
func AskAdvisor(advisor *ai.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]string{"response": advisor.AskAdvisor(r.Context(), req.Prompt)})
	}
}
