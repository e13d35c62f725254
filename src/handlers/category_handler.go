package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/s155003/Budgetly/src/cache"
	db "github.com/s155003/Budgetly/src/db/sql"
	"github.com/s155003/Budgetly/src/models"
	"github.com/s155003/Budgetly/src/util"
	"go.uber.org/zap"
)

func visibleCategories(ctx context.Context, conn *sql.DB, c *cache.Cache, userID int64) ([]models.Category, error) {
	categories, gen, ok := c.Categories(userID)
	if ok {
		return categories, nil
	}
	categories, err := db.GetCategories(ctx, conn, userID)
	if err != nil {
		return nil, err
	}
	c.SetCategories(userID, gen, categories)
	return categories, nil
}

func GetCategories(conn *sql.DB, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		categories, err := visibleCategories(r.Context(), conn, c, userID)
		if err != nil {
			serverError(w, "Failed to get categories", err, zap.Int64("user_id", userID))
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"categories": categories})
	}
}

func CreateCategory(conn *sql.DB, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || len(req.Name) > 100 {
			util.WriteError(w, http.StatusBadRequest, "Name is required and must be at most 100 characters")
			return
		}
		if !models.ValidCategoryType(req.Type) {
			util.WriteError(w, http.StatusBadRequest, "Type must be income or expense")
			return
		}

		category, err := db.CreateCategory(r.Context(), conn, userID, req.Name, req.Type)
		if err != nil {
			serverError(w, "Failed to create category", err, zap.Int64("user_id", userID))
			return
		}
		c.DelCategories(userID)

		zap.L().Info("Created category", zap.Int64("category_id", category.ID), zap.Int64("user_id", userID))
		util.WriteJSON(w, http.StatusCreated, map[string]any{"category": category})
	}
}

// DeleteCategory removes one of the user's own categories; global defaults answer 404.
func DeleteCategory(conn *sql.DB, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		categoryID, ok := pathID(r, "category_id")
		if !ok {
			util.WriteError(w, http.StatusBadRequest, "Invalid category id")
			return
		}

		if err := db.DeleteCategory(r.Context(), conn, userID, categoryID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Category not found")
				return
			}
			serverError(w, "Failed to delete category", err, zap.Int64("user_id", userID))
			return
		}
		c.DelCategories(userID)

		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
	}
}
