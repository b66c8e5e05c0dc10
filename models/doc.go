// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the gorm entities and the request and response types
for the four apps.

# Entities

Fyyur:

  - Venue, Artist: listings with JSON-encoded genres
  - Show: artist plays venue at StartTime (upcoming when StartTime >= now)

Trivia:

  - TriviaQuestion: question, answer, category id, difficulty (table questions)
  - Category: id and type (table categories)

Coffee:

  - Drink: unique title and a JSON recipe of Ingredients
  - Short() hides ingredient names, Long() returns the full recipe

Pybo:

  - User: unique username and email, bcrypt password (never serialised)
  - BoardQuestion, BoardAnswer: authored posts with voter join tables
    question_voter and answer_voter

# Request Types

Request structs carry validate tags checked by middleware.Validate:

	type CreateQuestionRequest struct {
		Question string `json:"question" validate:"required"`
		...
	}

# Errors

Every error body is an ErrorResponse:

	{"success": false, "error": 404, "message": "resource not found"}
*/
package models
