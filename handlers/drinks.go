// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/db"
	"github.com/shkim9348/FSND/middleware"
	"github.com/shkim9348/FSND/models"
)

var errDuplicateTitle = errors.New("a drink with this title already exists")

type DrinkHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewDrinkHandler(db *gorm.DB, cfg cliparse.Config) *DrinkHandler {
	return &DrinkHandler{db: db, cfg: cfg}
}

// parseRecipe reads and validates the recipe of a drink request
func parseRecipe(req models.DrinkRequest) ([]models.Ingredient, error) {
	recipe, err := models.ParseRecipe(req.Recipe)
	if err != nil {
		return nil, err
	}
	for _, ing := range recipe {
		if err := middleware.Validate(ing); err != nil {
			return nil, err
		}
	}
	return recipe, nil
}

// titleTaken reports whether another drink already uses title
func titleTaken(tx *gorm.DB, title string, exceptID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Drink{}).Where("title = ? AND id <> ?", title, exceptID).Count(&count).Error
	return count > 0, err
}

// saveError answers 409 for duplicate titles and falls back to dbError
func saveError(w http.ResponseWriter, err error, action string) {
	if errors.Is(err, errDuplicateTitle) || db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, errDuplicateTitle.Error())
		return
	}
	dbError(w, err, action)
}

// ListDrinks handles GET /drinks
func (h *DrinkHandler) ListDrinks(w http.ResponseWriter, r *http.Request) {
	var drinks []models.Drink
	if err := h.db.Order("id").Find(&drinks).Error; err != nil {
		dbError(w, err, "list drinks")
		return
	}

	short := make([]models.DrinkShort, 0, len(drinks))
	for _, d := range drinks {
		short = append(short, d.Short())
	}

	middleware.JSONResponse(w, http.StatusOK, models.DrinksShortResponse{Success: true, Drinks: short})
}

// ListDrinkDetails handles GET /drinks-detail
func (h *DrinkHandler) ListDrinkDetails(w http.ResponseWriter, r *http.Request) {
	var drinks []models.Drink
	if err := h.db.Order("id").Find(&drinks).Error; err != nil {
		dbError(w, err, "list drinks")
		return
	}

	long := make([]models.Drink, 0, len(drinks))
	for _, d := range drinks {
		long = append(long, d.Long())
	}

	middleware.JSONResponse(w, http.StatusOK, models.DrinksLongResponse{Success: true, Drinks: long})
}

// CreateDrink handles POST /drinks
func (h *DrinkHandler) CreateDrink(w http.ResponseWriter, r *http.Request) {
	var req models.DrinkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	recipe, err := parseRecipe(req)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" || len(recipe) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title and recipe are required")
		return
	}

	drink := models.Drink{Title: req.Title, Recipe: recipe}
	err = h.db.Transaction(func(tx *gorm.DB) error {
		taken, err := titleTaken(tx, drink.Title, 0)
		if err != nil {
			return err
		}
		if taken {
			return errDuplicateTitle
		}
		return tx.Create(&drink).Error
	})
	if err != nil {
		saveError(w, err, "create drink")
		return
	}

	slog.Info("drink created", "drink_id", drink.ID, "title", drink.Title)

	middleware.JSONResponse(w, http.StatusCreated, models.DrinksLongResponse{
		Success: true,
		Drinks:  []models.Drink{drink.Long()},
	})
}

// UpdateDrink handles PATCH /drinks/{id}
func (h *DrinkHandler) UpdateDrink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.DrinkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	recipe, err := parseRecipe(req)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" && len(recipe) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title or recipe is required")
		return
	}

	var drink models.Drink
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&drink, id).Error; err != nil {
			return err
		}
		if req.Title != "" {
			taken, err := titleTaken(tx, req.Title, id)
			if err != nil {
				return err
			}
			if taken {
				return errDuplicateTitle
			}
			drink.Title = req.Title
		}
		if len(recipe) > 0 {
			drink.Recipe = recipe
		}
		return tx.Save(&drink).Error
	})
	if err != nil {
		saveError(w, err, "update drink")
		return
	}

	slog.Info("drink updated", "drink_id", drink.ID)

	middleware.JSONResponse(w, http.StatusOK, models.DrinksLongResponse{
		Success: true,
		Drinks:  []models.Drink{drink.Long()},
	})
}

// DeleteDrink handles DELETE /drinks/{id}
func (h *DrinkHandler) DeleteDrink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res := h.db.Delete(&models.Drink{}, id)
	if res.Error != nil {
		dbError(w, res.Error, "delete drink")
		return
	}
	if res.RowsAffected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "resource not found")
		return
	}

	slog.Info("drink deleted", "drink_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteDrinkResponse{Success: true, Delete: id})
}
