// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/shkim9348/FSND/auth"
	"github.com/shkim9348/FSND/models"
)

func mustCreate(t *testing.T, gdb *gorm.DB, value any) {
	t.Helper()
	if err := gdb.Create(value).Error; err != nil {
		t.Fatalf("Failed to create %T: %v", value, err)
	}
}

// CreateVenue inserts a venue in city/state
func CreateVenue(t *testing.T, gdb *gorm.DB, name, city, state string) models.Venue {
	t.Helper()
	v := models.Venue{
		Name:    name,
		City:    city,
		State:   state,
		Address: "1015 Folsom Street",
		Phone:   "123-123-1234",
		Genres:  []string{"Jazz", "Reggae"},
	}
	mustCreate(t, gdb, &v)
	return v
}

// CreateArtist inserts an artist
func CreateArtist(t *testing.T, gdb *gorm.DB, name string) models.Artist {
	t.Helper()
	a := models.Artist{
		Name:      name,
		City:      "San Francisco",
		State:     "CA",
		Genres:    []string{"Rock n Roll"},
		ImageLink: "https://images.example.com/" + name + ".jpg",
	}
	mustCreate(t, gdb, &a)
	return a
}

// CreateShow books artist at venue; a negative offset lies in the past
func CreateShow(t *testing.T, gdb *gorm.DB, artistID, venueID uint, offset time.Duration) models.Show {
	t.Helper()
	s := models.Show{
		ArtistID:  artistID,
		VenueID:   venueID,
		StartTime: time.Now().Add(offset).UTC().Truncate(time.Second),
	}
	if err := gdb.Omit("Artist", "Venue").Create(&s).Error; err != nil {
		t.Fatalf("Failed to create show: %v", err)
	}
	return s
}

// CreateCategories inserts the default trivia categories
func CreateCategories(t *testing.T, gdb *gorm.DB) []models.Category {
	t.Helper()
	categories := make([]models.Category, 0, len(models.DefaultCategories))
	for _, name := range models.DefaultCategories {
		categories = append(categories, models.Category{Type: name})
	}
	mustCreate(t, gdb, &categories)
	return categories
}

// CreateTriviaQuestion inserts a question of difficulty 1 into category
func CreateTriviaQuestion(t *testing.T, gdb *gorm.DB, question string, category uint) models.TriviaQuestion {
	t.Helper()
	q := models.TriviaQuestion{
		Question:   question,
		Answer:     "answer to " + question,
		Category:   category,
		Difficulty: 1,
	}
	mustCreate(t, gdb, &q)
	return q
}

// CreateDrink inserts a drink with a two ingredient recipe
func CreateDrink(t *testing.T, gdb *gorm.DB, title string) models.Drink {
	t.Helper()
	d := models.Drink{
		Title: title,
		Recipe: []models.Ingredient{
			{Name: "espresso", Color: "brown", Parts: 1},
			{Name: "milk", Color: "white", Parts: 2},
		},
	}
	mustCreate(t, gdb, &d)
	return d
}

// CreateUser inserts a user whose password is "password123"
func CreateUser(t *testing.T, gdb *gorm.DB, username, email string) models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	u := models.User{Username: username, Email: email, Password: hash}
	mustCreate(t, gdb, &u)
	return u
}

// CreateBoardQuestion inserts a question written by author
func CreateBoardQuestion(t *testing.T, gdb *gorm.DB, author models.User, subject string) models.BoardQuestion {
	t.Helper()
	q := models.BoardQuestion{
		Subject:    subject,
		Content:    "content of " + subject,
		CreateDate: time.Now(),
		UserID:     author.ID,
	}
	if err := gdb.Omit("User").Create(&q).Error; err != nil {
		t.Fatalf("Failed to create question: %v", err)
	}
	return q
}

// CreateBoardAnswer inserts an answer to question written by author
func CreateBoardAnswer(t *testing.T, gdb *gorm.DB, question models.BoardQuestion, author models.User, content string) models.BoardAnswer {
	t.Helper()
	a := models.BoardAnswer{
		QuestionID: question.ID,
		Content:    content,
		CreateDate: time.Now(),
		UserID:     author.ID,
	}
	if err := gdb.Omit("User").Create(&a).Error; err != nil {
		t.Fatalf("Failed to create answer: %v", err)
	}
	return a
}
