// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shkim9348/FSND/middleware"
	"github.com/shkim9348/FSND/models"
)

// answerIDs reads {qid} and {aid}, answering 404 when either is malformed
func answerIDs(w http.ResponseWriter, r *http.Request) (qid, aid uint, ok bool) {
	if qid, ok = pathID(w, r, "qid"); !ok {
		return 0, 0, false
	}
	if aid, ok = pathID(w, r, "aid"); !ok {
		return 0, 0, false
	}
	return qid, aid, true
}

// loadAnswer reads an answer of question qid with its author and voters
func loadAnswer(tx *gorm.DB, qid, aid uint) (models.BoardAnswer, error) {
	var a models.BoardAnswer
	err := tx.Preload("User").Preload("Voter").
		Where("question_id = ?", qid).
		First(&a, aid).Error
	return a, err
}

// GetAnswer handles GET /question/{qid}/answer/{aid}
func (h *BoardHandler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	qid, aid, ok := answerIDs(w, r)
	if !ok {
		return
	}

	a, err := loadAnswer(h.db, qid, aid)
	if err != nil {
		dbError(w, err, "load answer")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, a)
}

// CreateAnswer handles POST /question/{qid}/answer
func (h *BoardHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	qid, ok := pathID(w, r, "qid")
	if !ok {
		return
	}
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.AnswerRequest
	if !decode(w, r, &req) {
		return
	}

	a := models.BoardAnswer{
		QuestionID: qid,
		Content:    req.Content,
		CreateDate: time.Now(),
		UserID:     user.ID,
	}
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.BoardQuestion{}, qid).Error; err != nil {
			return err
		}
		return tx.Omit("User").Create(&a).Error
	})
	if err != nil {
		dbError(w, err, "create answer")
		return
	}
	a.User = user
	a.Voter = []models.User{}

	slog.Info("answer created", "answer_id", a.ID, "question_id", qid, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, a)
}

// UpdateAnswer handles PUT /question/{qid}/answer/{aid}
func (h *BoardHandler) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
	qid, aid, ok := answerIDs(w, r)
	if !ok {
		return
	}
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.AnswerRequest
	if !decode(w, r, &req) {
		return
	}

	var a models.BoardAnswer
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if a, err = loadAnswer(tx, qid, aid); err != nil {
			return err
		}
		if a.UserID != user.ID {
			return errNotAuthor
		}

		now := time.Now()
		a.Content = req.Content
		a.ModifyDate = &now
		return tx.Model(&models.BoardAnswer{ID: a.ID}).Updates(map[string]interface{}{
			"content":     a.Content,
			"modify_date": now,
		}).Error
	})
	if err != nil {
		writeError(w, err, "update answer")
		return
	}

	slog.Info("answer updated", "answer_id", a.ID)

	middleware.JSONResponse(w, http.StatusOK, a)
}

// DeleteAnswer handles DELETE /question/{qid}/answer/{aid}
func (h *BoardHandler) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
	qid, aid, ok := answerIDs(w, r)
	if !ok {
		return
	}
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var a models.BoardAnswer
		if err := tx.Where("question_id = ?", qid).First(&a, aid).Error; err != nil {
			return err
		}
		if a.UserID != user.ID {
			return errNotAuthor
		}
		if err := tx.Model(&a).Association("Voter").Clear(); err != nil {
			return err
		}
		return tx.Delete(&a).Error
	})
	if err != nil {
		writeError(w, err, "delete answer")
		return
	}

	slog.Info("answer deleted", "answer_id", aid, "question_id", qid)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Answer successfully deleted."})
}

// VoteAnswer handles POST /question/{qid}/answer/{aid}/vote
func (h *BoardHandler) VoteAnswer(w http.ResponseWriter, r *http.Request) {
	qid, aid, ok := answerIDs(w, r)
	if !ok {
		return
	}
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	voters := []models.User{}
	err := h.db.Transaction(func(tx *gorm.DB) error {
		a, err := loadAnswer(tx, qid, aid)
		if err != nil {
			return err
		}
		if a.UserID == user.ID {
			return errOwnVote
		}

		if err := toggleVote(tx.Model(&a).Association("Voter"), a.Voter, user); err != nil {
			return err
		}
		return tx.Model(&a).Order("users.id").Association("Voter").Find(&voters)
	})
	if err != nil {
		writeError(w, err, "vote for answer")
		return
	}

	slog.Info("answer vote toggled", "answer_id", aid, "user_id", user.ID, "voters", len(voters))

	middleware.JSONResponse(w, http.StatusOK, voters)
}
