package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/s155003/Budgetly/src/cache"
	db "github.com/s155003/Budgetly/src/db/sql"
	"github.com/s155003/Budgetly/src/models"
	"github.com/s155003/Budgetly/src/util"
	"go.uber.org/zap"
)

func lessonByID(ctx context.Context, conn *sql.DB, c *cache.Cache, lessonID int64) (*models.Lesson, error) {
	if lesson, ok := c.Lesson(lessonID); ok {
		return lesson, nil
	}
	lesson, err := db.GetLesson(ctx, conn, lessonID)
	if err != nil {
		return nil, err
	}
	c.SetLesson(*lesson)
	return lesson, nil
}

func lessonCatalogue(ctx context.Context, conn *sql.DB, c *cache.Cache) ([]models.Lesson, error) {
	if lessons, ok := c.Lessons(); ok {
		return lessons, nil
	}
	lessons, err := db.GetAllLessons(ctx, conn)
	if err != nil {
		return nil, err
	}
	c.SetLessons(lessons)
	return lessons, nil
}

// GetLessons lists lessons with the caller's completion state.
func GetLessons(conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		lessons, err := db.GetLessons(r.Context(), conn, userID)
		if err != nil {
			serverError(w, "Failed to get lessons", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"lessons": lessons})
	}
}

func GetLesson(conn *sql.DB, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lessonID, ok := pathID(r, "lesson_id")
		if !ok {
			util.WriteError(w, http.StatusBadRequest, "Invalid lesson id")
			return
		}

		lesson, err := lessonByID(r.Context(), conn, c, lessonID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Lesson not found")
				return
			}
			serverError(w, "Failed to get lesson", err, zap.Int64("lesson_id", lessonID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"lesson": lesson})
	}
}

func SaveProgress(conn *sql.DB, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		lessonID, ok := pathID(r, "lesson_id")
		if !ok {
			util.WriteError(w, http.StatusBadRequest, "Invalid lesson id")
			return
		}

		var req struct {
			Completed bool `json:"completed"`
			Score     *int `json:"score"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
			util.WriteError(w, http.StatusBadRequest, "Score must be between 0 and 100")
			return
		}

		if _, err := lessonByID(r.Context(), conn, c, lessonID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Lesson not found")
				return
			}
			serverError(w, "Failed to save progress", err, zap.Int64("lesson_id", lessonID))
			return
		}

		progress, err := db.UpsertProgress(r.Context(), conn, userID, lessonID, req.Completed, req.Score)
		if err != nil {
			serverError(w, "Failed to save progress", err, zap.Int64("user_id", userID), zap.Int64("lesson_id", lessonID))
			return
		}

		zap.L().Info("Saved lesson progress", zap.Int64("user_id", userID), zap.Int64("lesson_id", lessonID),
			zap.Bool("completed", progress.Completed))
		util.WriteJSON(w, http.StatusOK, map[string]any{"progress": progress})
	}
}

func GetProgress(conn *sql.DB, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		progress, err := db.GetUserProgress(r.Context(), conn, userID)
		if err != nil {
			serverError(w, "Failed to get progress", err, zap.Int64("user_id", userID))
			return
		}
		lessons, err := lessonCatalogue(r.Context(), conn, c)
		if err != nil {
			serverError(w, "Failed to get progress", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, models.NewProgressOverview(progress, len(lessons)))
	}
}
