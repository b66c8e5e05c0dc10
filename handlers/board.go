// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shkim9348/FSND/auth"
	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/db"
	"github.com/shkim9348/FSND/middleware"
	"github.com/shkim9348/FSND/models"
	"github.com/shkim9348/FSND/pagination"
)

// BoardPerPage is the page size of the question board
const BoardPerPage = 10

const maxUsernameAttempts = 3

var (
	errNotAuthor = errors.New("only the author may change this post")
	errOwnVote   = errors.New("you cannot vote for your own post")
)

type BoardHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewBoardHandler(db *gorm.DB, cfg cliparse.Config) *BoardHandler {
	return &BoardHandler{db: db, cfg: cfg}
}

// caller returns the account behind the request's verified email claim,
// creating one the first time an email is seen
func (h *BoardHandler) caller(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	var user models.User

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.Email == "" || !claims.EmailVerified {
		middleware.ErrorResponse(w, http.StatusForbidden, "a verified email is required")
		return user, false
	}

	err := h.db.Where("email = ?", claims.Email).First(&user).Error
	if err == nil {
		return user, true
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		dbError(w, err, "load user")
		return user, false
	}

	password, err := auth.RandomPassword()
	if err != nil {
		dbError(w, err, "create user")
		return user, false
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		dbError(w, err, "create user")
		return user, false
	}

	// The email doubles as the username; a suffix is added when a signed up
	// account already holds that name
	username := claims.Email
	for attempt := 0; ; attempt++ {
		user = models.User{Username: username, Email: claims.Email, Password: hash}
		err = h.db.Create(&user).Error
		if err == nil {
			break
		}
		if !db.IsUniqueViolation(err) || attempt == maxUsernameAttempts {
			dbError(w, err, "create user")
			return models.User{}, false
		}

		// A concurrent request may have created the same account first
		var existing models.User
		lookup := h.db.Where("email = ?", claims.Email).First(&existing).Error
		if lookup == nil {
			return existing, true
		}
		if !errors.Is(lookup, gorm.ErrRecordNotFound) {
			dbError(w, lookup, "load user")
			return models.User{}, false
		}
		username = claims.Email + "-" + uuid.NewString()[:8]
	}

	slog.Info("user created from token", "user_id", user.ID, "username", user.Username, "subject", claims.Subject)
	return user, true
}

// writeError maps board sentinel errors to their status
func writeError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, errNotAuthor), errors.Is(err, errOwnVote):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	default:
		dbError(w, err, action)
	}
}

// ListQuestions handles GET /question?page=&kw=
func (h *BoardHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		page = 1
	}
	kw := strings.TrimSpace(r.URL.Query().Get("kw"))

	query := h.db.Model(&models.BoardQuestion{})
	if kw != "" {
		pattern := containsPattern(kw)
		authors := func() *gorm.DB {
			return h.db.Model(&models.User{}).Select("id").Where(likeClause("username"), pattern)
		}
		answers := h.db.Model(&models.BoardAnswer{}).Select("question_id").
			Where(h.db.Where(likeClause("content"), pattern).Or("user_id IN (?)", authors()))

		query = query.Where(
			h.db.Where(likeClause("subject"), pattern).
				Or(likeClause("content"), pattern).
				Or("user_id IN (?)", authors()).
				Or("id IN (?)", answers),
		)
	}
	query = query.Order("create_date DESC, id DESC")

	questions := []models.BoardQuestion{}
	p, err := pagination.Paginate(query, page, BoardPerPage, false, &questions, "User", "AnswerSet", "Voter")
	if err != nil {
		dbError(w, err, "list questions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuestionPageResponse{
		Questions: questions,
		Total:     p.Total,
		Page:      p.Page,
		PerPage:   p.PerPage,
		HasPrev:   p.HasPrev(),
		PrevNum:   p.PrevNum(),
		PageNums:  p.IterPages(),
		HasNext:   p.HasNext(),
		NextNum:   p.NextNum(),
		Kw:        kw,
	})
}

// loadQuestion reads a question with its author, voters and answers
func loadQuestion(tx *gorm.DB, id uint) (models.BoardQuestion, error) {
	var q models.BoardQuestion
	err := tx.
		Preload("User").
		Preload("Voter").
		Preload("AnswerSet", func(db *gorm.DB) *gorm.DB { return db.Order("create_date, id") }).
		Preload("AnswerSet.User").
		Preload("AnswerSet.Voter").
		First(&q, id).Error
	return q, err
}

// GetQuestion handles GET /question/{id}
func (h *BoardHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	q, err := loadQuestion(h.db, id)
	if err != nil {
		dbError(w, err, "load question")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, q)
}

// CreateQuestion handles POST /question
func (h *BoardHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.QuestionRequest
	if !decode(w, r, &req) {
		return
	}

	q := models.BoardQuestion{
		Subject:    req.Subject,
		Content:    req.Content,
		CreateDate: time.Now(),
		UserID:     user.ID,
	}
	if err := h.db.Omit("User").Create(&q).Error; err != nil {
		dbError(w, err, "create question")
		return
	}
	q.User = user
	q.AnswerSet = []models.BoardAnswer{}
	q.Voter = []models.User{}

	slog.Info("question created", "question_id", q.ID, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, q)
}

// UpdateQuestion handles PUT /question/{id}
func (h *BoardHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.QuestionRequest
	if !decode(w, r, &req) {
		return
	}

	var q models.BoardQuestion
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if q, err = loadQuestion(tx, id); err != nil {
			return err
		}
		if q.UserID != user.ID {
			return errNotAuthor
		}

		now := time.Now()
		q.Subject = req.Subject
		q.Content = req.Content
		q.ModifyDate = &now
		return tx.Model(&models.BoardQuestion{ID: q.ID}).Updates(map[string]interface{}{
			"subject":     q.Subject,
			"content":     q.Content,
			"modify_date": now,
		}).Error
	})
	if err != nil {
		writeError(w, err, "update question")
		return
	}

	slog.Info("question updated", "question_id", q.ID)

	middleware.JSONResponse(w, http.StatusOK, q)
}

// DeleteQuestion handles DELETE /question/{id}
func (h *BoardHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var q models.BoardQuestion
		if err := tx.First(&q, id).Error; err != nil {
			return err
		}
		if q.UserID != user.ID {
			return errNotAuthor
		}

		if err := tx.Exec("DELETE FROM answer_voter WHERE answer_id IN (SELECT id FROM answer WHERE question_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.BoardAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&q).Association("Voter").Clear(); err != nil {
			return err
		}
		return tx.Delete(&q).Error
	})
	if err != nil {
		writeError(w, err, "delete question")
		return
	}

	slog.Info("question deleted", "question_id", id, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Question successfully deleted."})
}

// VoteQuestion handles POST /question/{id}/vote
func (h *BoardHandler) VoteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	voters := []models.User{}
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var q models.BoardQuestion
		if err := tx.Preload("Voter").First(&q, id).Error; err != nil {
			return err
		}
		if q.UserID == user.ID {
			return errOwnVote
		}

		if err := toggleVote(tx.Model(&q).Association("Voter"), q.Voter, user); err != nil {
			return err
		}
		return tx.Model(&q).Order("users.id").Association("Voter").Find(&voters)
	})
	if err != nil {
		writeError(w, err, "vote for question")
		return
	}

	slog.Info("question vote toggled", "question_id", id, "user_id", user.ID, "voters", len(voters))

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// toggleVote removes user from the voters when present and adds them otherwise
func toggleVote(assoc *gorm.Association, current []models.User, user models.User) error {
	if models.HasVoter(current, user.ID) {
		return assoc.Delete(&user)
	}
	return assoc.Append(&user)
}
