// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/middleware"
	"github.com/shkim9348/FSND/models"
	"github.com/shkim9348/FSND/pagination"
)

// QuestionsPerPage is the default page size of the question list
const QuestionsPerPage = 10

type TriviaHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewTriviaHandler(db *gorm.DB, cfg cliparse.Config) *TriviaHandler {
	return &TriviaHandler{db: db, cfg: cfg}
}

// categoryMap returns every category keyed by id
func (h *TriviaHandler) categoryMap() (map[uint]string, error) {
	var categories []models.Category
	if err := h.db.Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m, nil
}

// ListCategories handles GET /categories
func (h *TriviaHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryMap()
	if err != nil {
		dbError(w, err, "list categories")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CategoriesResponse{Categories: categories})
}

// ListQuestions handles GET /questions?page=&per_page=&category_id=
func (h *TriviaHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "page must be a number")
		return
	}
	perPage, err := queryInt(r, "per_page", QuestionsPerPage)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "per_page must be a number")
		return
	}
	categoryID, err := queryInt(r, "category_id", -1)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category_id must be a number")
		return
	}

	query := h.db.Model(&models.TriviaQuestion{}).Order("id DESC")
	if categoryID >= 0 {
		query = query.Where("category = ?", categoryID)
	}

	questions := []models.TriviaQuestion{}
	p, err := pagination.Paginate(query, page, perPage, true, &questions)
	if errors.Is(err, pagination.ErrPageOutOfRange) {
		middleware.ErrorResponse(w, http.StatusNotFound, "resource not found")
		return
	}
	if err != nil {
		dbError(w, err, "list questions")
		return
	}

	categories, err := h.categoryMap()
	if err != nil {
		dbError(w, err, "list questions")
		return
	}

	resp := models.QuestionsResponse{
		Questions:      questions,
		TotalQuestions: p.Total,
		Categories:     categories,
	}
	if name, ok := categories[uint(categoryID)]; ok && categoryID >= 0 {
		resp.CurrentCategory = &name
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *TriviaHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res := h.db.Delete(&models.TriviaQuestion{}, id)
	if res.Error != nil {
		dbError(w, res.Error, "delete question")
		return
	}
	if res.RowsAffected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "resource not found")
		return
	}

	slog.Info("question deleted", "question_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteQuestionResponse{ID: id})
}

// CreateQuestion handles POST /questions
func (h *TriviaHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if !decode(w, r, &req) {
		return
	}

	var count int64
	if err := h.db.Model(&models.Category{}).Where("id = ?", req.Category).Count(&count).Error; err != nil {
		dbError(w, err, "create question")
		return
	}
	if count == 0 {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "category does not exist")
		return
	}

	question := models.TriviaQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		Difficulty: req.Difficulty,
	}
	if err := h.db.Create(&question).Error; err != nil {
		dbError(w, err, "create question")
		return
	}

	slog.Info("question created", "question_id", question.ID, "category", question.Category)

	middleware.JSONResponse(w, http.StatusCreated, question)
}

// SearchQuestions handles POST /questions/search
func (h *TriviaHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req models.SearchQuestionsRequest
	if !decode(w, r, &req) {
		return
	}

	questions := []models.TriviaQuestion{}
	if req.SearchTerm != "" {
		err := h.db.Where(likeClause("question"), containsPattern(req.SearchTerm)).Order("id").Find(&questions).Error
		if err != nil {
			dbError(w, err, "search questions")
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuestionsResponse{
		Questions:      questions,
		TotalQuestions: int64(len(questions)),
	})
}

// CategoryQuestions handles GET /categories/{id}/questions
func (h *TriviaHandler) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := h.db.First(&category, id).Error; err != nil {
		dbError(w, err, "load category")
		return
	}

	questions := []models.TriviaQuestion{}
	if err := h.db.Where("category = ?", id).Order("id").Find(&questions).Error; err != nil {
		dbError(w, err, "load category questions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuestionsResponse{
		Questions:       questions,
		TotalQuestions:  int64(len(questions)),
		CurrentCategory: &category.Type,
	})
}

// PlayQuiz handles POST /quizzes
func (h *TriviaHandler) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.QuizRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PreviousQuestions == nil || req.QuizCategory == nil || req.QuizCategory.ID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "previous_questions and quiz_category.id are required")
		return
	}

	query := h.db.Order("RANDOM()")
	if previous := *req.PreviousQuestions; len(previous) > 0 {
		query = query.Where("id NOT IN ?", previous)
	}
	if categoryID := uint(*req.QuizCategory.ID); categoryID != 0 {
		query = query.Where("category = ?", categoryID)
	}

	var question models.TriviaQuestion
	err := query.Take(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.JSONResponse(w, http.StatusOK, models.QuizResponse{Question: nil})
		return
	}
	if err != nil {
		dbError(w, err, "pick quiz question")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuizResponse{Question: &question})
}
