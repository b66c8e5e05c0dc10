// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/handlers"
	"github.com/shkim9348/FSND/middleware"
)

// NewRouter registers the routes of cfg.App. verifier may be nil for apps
// without permission-gated routes.
func NewRouter(gdb *gorm.DB, cfg cliparse.Config, verifier middleware.TokenVerifier) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	switch cfg.App {
	case cliparse.AppFyyur:
		fyyurRoutes(mux, gdb, cfg)
	case cliparse.AppTrivia:
		triviaRoutes(mux, gdb, cfg)
	case cliparse.AppCoffee:
		coffeeRoutes(mux, gdb, cfg, verifier)
	case cliparse.AppPybo:
		pyboRoutes(mux, gdb, cfg, verifier)
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", middleware.WithLogging(handlers.Index))

	return middleware.CORS(cfg.AllowedOrigin)(middleware.TrimTrailingSlash(middleware.JSONErrors(mux)))
}

func fyyurRoutes(mux *http.ServeMux, gdb *gorm.DB, cfg cliparse.Config) {
	venueHandler := handlers.NewVenueHandler(gdb, cfg)
	artistHandler := handlers.NewArtistHandler(gdb, cfg)
	showHandler := handlers.NewShowHandler(gdb, cfg)

	// Venues
	mux.HandleFunc("GET /venues", middleware.WithLogging(venueHandler.ListVenues))
	mux.HandleFunc("POST /venues/search", middleware.WithLogging(venueHandler.SearchVenues))
	mux.HandleFunc("GET /venues/{id}", middleware.WithLogging(venueHandler.GetVenue))
	mux.HandleFunc("POST /venues", middleware.WithLogging(venueHandler.CreateVenue))
	mux.HandleFunc("PUT /venues/{id}", middleware.WithLogging(venueHandler.UpdateVenue))
	mux.HandleFunc("DELETE /venues/{id}", middleware.WithLogging(venueHandler.DeleteVenue))

	// Artists
	mux.HandleFunc("GET /artists", middleware.WithLogging(artistHandler.ListArtists))
	mux.HandleFunc("POST /artists/search", middleware.WithLogging(artistHandler.SearchArtists))
	mux.HandleFunc("GET /artists/{id}", middleware.WithLogging(artistHandler.GetArtist))
	mux.HandleFunc("POST /artists", middleware.WithLogging(artistHandler.CreateArtist))
	mux.HandleFunc("PUT /artists/{id}", middleware.WithLogging(artistHandler.UpdateArtist))
	mux.HandleFunc("DELETE /artists/{id}", middleware.WithLogging(artistHandler.DeleteArtist))

	// Shows
	mux.HandleFunc("GET /shows", middleware.WithLogging(showHandler.ListShows))
	mux.HandleFunc("POST /shows", middleware.WithLogging(showHandler.CreateShow))
}

func triviaRoutes(mux *http.ServeMux, gdb *gorm.DB, cfg cliparse.Config) {
	triviaHandler := handlers.NewTriviaHandler(gdb, cfg)

	mux.HandleFunc("GET /categories", middleware.WithLogging(triviaHandler.ListCategories))
	mux.HandleFunc("GET /categories/{id}/questions", middleware.WithLogging(triviaHandler.CategoryQuestions))
	mux.HandleFunc("GET /questions", middleware.WithLogging(triviaHandler.ListQuestions))
	mux.HandleFunc("POST /questions", middleware.WithLogging(triviaHandler.CreateQuestion))
	mux.HandleFunc("POST /questions/search", middleware.WithLogging(triviaHandler.SearchQuestions))
	mux.HandleFunc("DELETE /questions/{id}", middleware.WithLogging(triviaHandler.DeleteQuestion))
	mux.HandleFunc("POST /quizzes", middleware.WithLogging(triviaHandler.PlayQuiz))
}

func coffeeRoutes(mux *http.ServeMux, gdb *gorm.DB, cfg cliparse.Config, verifier middleware.TokenVerifier) {
	drinkHandler := handlers.NewDrinkHandler(gdb, cfg)
	protect := guard(verifier)

	// Public menu
	mux.HandleFunc("GET /drinks", middleware.WithLogging(drinkHandler.ListDrinks))

	// Baristas and managers
	mux.HandleFunc("GET /drinks-detail", protect("get:drinks-detail", drinkHandler.ListDrinkDetails))
	mux.HandleFunc("POST /drinks", protect("post:drinks", drinkHandler.CreateDrink))
	mux.HandleFunc("PATCH /drinks/{id}", protect("patch:drinks", drinkHandler.UpdateDrink))
	mux.HandleFunc("DELETE /drinks/{id}", protect("delete:drinks", drinkHandler.DeleteDrink))
}

func pyboRoutes(mux *http.ServeMux, gdb *gorm.DB, cfg cliparse.Config, verifier middleware.TokenVerifier) {
	boardHandler := handlers.NewBoardHandler(gdb, cfg)
	accountHandler := handlers.NewAccountHandler(gdb, cfg)
	protect := guard(verifier)

	// Questions
	mux.HandleFunc("GET /question", middleware.WithLogging(boardHandler.ListQuestions))
	mux.HandleFunc("GET /question/{id}", middleware.WithLogging(boardHandler.GetQuestion))
	mux.HandleFunc("POST /question", protect("post:question", boardHandler.CreateQuestion))
	mux.HandleFunc("PUT /question/{id}", protect("put:question", boardHandler.UpdateQuestion))
	mux.HandleFunc("DELETE /question/{id}", protect("delete:question", boardHandler.DeleteQuestion))
	mux.HandleFunc("POST /question/{id}/vote", protect("vote:question", boardHandler.VoteQuestion))

	// Answers
	mux.HandleFunc("POST /question/{qid}/answer", protect("post:answer", boardHandler.CreateAnswer))
	mux.HandleFunc("GET /question/{qid}/answer/{aid}", middleware.WithLogging(boardHandler.GetAnswer))
	mux.HandleFunc("PUT /question/{qid}/answer/{aid}", protect("put:answer", boardHandler.UpdateAnswer))
	mux.HandleFunc("DELETE /question/{qid}/answer/{aid}", protect("delete:answer", boardHandler.DeleteAnswer))
	mux.HandleFunc("POST /question/{qid}/answer/{aid}/vote", protect("vote:answer", boardHandler.VoteAnswer))

	// Accounts
	mux.HandleFunc("POST /auth/signup", middleware.WithLogging(accountHandler.Signup))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))
}

// guard returns a wrapper that logs a route and requires permission on it
func guard(verifier middleware.TokenVerifier) func(string, http.HandlerFunc) http.HandlerFunc {
	return func(permission string, next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequiresAuth(verifier, permission, next))
	}
}
