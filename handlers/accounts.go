// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/shkim9348/FSND/auth"
	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/db"
	"github.com/shkim9348/FSND/middleware"
	"github.com/shkim9348/FSND/models"
)

type AccountHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewAccountHandler(db *gorm.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg}
}

// Signup handles POST /auth/signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decode(w, r, &req) {
		return
	}

	var count int64
	err := h.db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error
	if err != nil {
		dbError(w, err, "sign up")
		return
	}
	if count > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "user already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		dbError(w, err, "sign up")
		return
	}

	user := models.User{Username: req.Username, Email: req.Email, Password: hash}
	if err := h.db.Create(&user).Error; err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "user already exists")
			return
		}
		dbError(w, err, "sign up")
		return
	}

	slog.Info("user signed up", "user_id", user.ID, "username", user.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.LoginResponse{
		Message: "Sign up complete.",
		User:    user,
	})
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	var user models.User
	err := h.db.Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		dbError(w, err, "log in")
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		slog.Info("login rejected", "username", req.Username, "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "wrong password")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Message: "Logged in.",
		User:    user,
	})
}

// Index handles GET /
func Index(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.IndexResponse{Success: true})
}
