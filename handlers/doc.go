// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the four FSND apps.

# Handler Types

Each handler is a struct with database and config dependencies:

  - VenueHandler, ArtistHandler, ShowHandler: fyyur venue and artist listings
  - TriviaHandler: trivia categories, questions and the quiz
  - DrinkHandler: the coffee shop menu
  - BoardHandler: pybo questions, answers and votes
  - AccountHandler: pybo sign up and log in

Handlers are created via constructor functions that accept *gorm.DB and Config:

	venueHandler := handlers.NewVenueHandler(db, cfg)

# Fyyur

	GET    /venues          → ListVenues (grouped by city and state)
	POST   /venues/search   → SearchVenues
	GET    /venues/{id}     → GetVenue (past and upcoming shows)
	POST   /venues          → CreateVenue
	PUT    /venues/{id}     → UpdateVenue
	DELETE /venues/{id}     → DeleteVenue (removes its shows)

Artists mirror the venue routes under /artists. Shows are listed with
GET /shows and booked with POST /shows. A show is upcoming when it starts at
or after the time of the request.

# Trivia

	GET    /categories                  → ListCategories
	GET    /questions?page=             → ListQuestions (10 per page, 404 past the end)
	DELETE /questions/{id}              → DeleteQuestion
	POST   /questions                   → CreateQuestion
	POST   /questions/search            → SearchQuestions
	GET    /categories/{id}/questions   → CategoryQuestions
	POST   /quizzes                     → PlayQuiz

PlayQuiz returns a random question outside previous_questions, or null
once the category is exhausted. Category id 0 means all categories.

# Coffee

GET /drinks shows colors and parts only. The remaining routes need a
bearer token carrying the matching permission:

	GET    /drinks-detail  get:drinks-detail
	POST   /drinks         post:drinks
	PATCH  /drinks/{id}    patch:drinks
	DELETE /drinks/{id}    delete:drinks

Titles are unique; a clash answers 409.

# Pybo

Reads are public. Writes identify the caller by the verified email in their
token and create an account for it on first use. Only the author may edit
or delete a post, and nobody may vote for their own. Voting twice withdraws
the vote.

# Errors

Every failure is rendered by middleware.ErrorResponse. Missing rows and
malformed path ids both answer 404.
*/
package handlers
