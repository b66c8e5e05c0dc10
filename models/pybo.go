// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Domain types

type User struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	Username string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:200;not null" json:"-"` // bcrypt hash
	Email    string `gorm:"size:120;uniqueIndex;not null" json:"email"`
}

func (User) TableName() string { return "users" }

type BoardQuestion struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Subject    string     `gorm:"size:200;not null" json:"subject"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	CreateDate time.Time  `gorm:"not null;index" json:"create_date"`
	ModifyDate *time.Time `json:"modify_date"`
	UserID     uint       `gorm:"not null;index" json:"-"`

	User      User          `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	AnswerSet []BoardAnswer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answer_set"`
	Voter     []User        `gorm:"many2many:question_voter;joinForeignKey:QuestionID;joinReferences:UserID" json:"voter"`
}

func (BoardQuestion) TableName() string { return "question" }

type BoardAnswer struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	QuestionID uint       `gorm:"not null;index" json:"-"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	CreateDate time.Time  `gorm:"not null" json:"create_date"`
	ModifyDate *time.Time `json:"modify_date"`
	UserID     uint       `gorm:"not null;index" json:"-"`

	User  User   `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Voter []User `gorm:"many2many:answer_voter;joinForeignKey:AnswerID;joinReferences:UserID" json:"voter"`
}

func (BoardAnswer) TableName() string { return "answer" }

// HasVoter reports whether userID is among the loaded voters
func HasVoter(voters []User, userID uint) bool {
	for _, v := range voters {
		if v.ID == userID {
			return true
		}
	}
	return false
}

// Request types

type QuestionRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type AnswerRequest struct {
	Content string `json:"content" validate:"required"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
	Email    string `json:"email" validate:"required,email,max=120"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response types

type QuestionPageResponse struct {
	Questions []BoardQuestion `json:"questions"`
	Total     int64           `json:"total"`
	Page      int             `json:"page"`
	PerPage   int             `json:"per_page"`
	HasPrev   bool            `json:"has_prev"`
	PrevNum   *int            `json:"prev_num"`
	PageNums  []*int          `json:"page_nums"`
	HasNext   bool            `json:"has_next"`
	NextNum   *int            `json:"next_num"`
	Kw        string          `json:"kw"`
}

type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type IndexResponse struct {
	Success bool `json:"success"`
}
