// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Domain types

type TriviaQuestion struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Question   string `gorm:"not null" json:"question"`
	Answer     string `gorm:"not null" json:"answer"`
	Category   uint   `gorm:"not null;index" json:"category"`
	Difficulty int    `gorm:"not null" json:"difficulty"`
}

func (TriviaQuestion) TableName() string { return "questions" }

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"not null" json:"type"`
}

func (Category) TableName() string { return "categories" }

// DefaultCategories are inserted by db.Seed into an empty categories table
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// Request types

type CreateQuestionRequest struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   uint   `json:"category" validate:"required"`
	Difficulty int    `json:"difficulty" validate:"required,min=1,max=5"`
}

type SearchQuestionsRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type QuizCategory struct {
	ID   *FlexID `json:"id"`
	Type string  `json:"type"`
}

// QuizRequest keeps both fields as pointers so a missing key can be told
// apart from an empty list or the "all categories" id 0.
type QuizRequest struct {
	PreviousQuestions *[]uint       `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// Response types

type QuestionsResponse struct {
	Questions       []TriviaQuestion `json:"questions"`
	TotalQuestions  int64            `json:"total_questions"`
	Categories      map[uint]string  `json:"categories,omitempty"`
	CurrentCategory *string          `json:"current_category"`
}

type CategoriesResponse struct {
	Categories map[uint]string `json:"categories"`
}

type QuizResponse struct {
	Question *TriviaQuestion `json:"question"`
}

type DeleteQuestionResponse struct {
	ID uint `json:"id"`
}
