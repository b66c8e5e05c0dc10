// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/middleware"
	"github.com/shkim9348/FSND/models"
)

type ArtistHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewArtistHandler(db *gorm.DB, cfg cliparse.Config) *ArtistHandler {
	return &ArtistHandler{db: db, cfg: cfg}
}

// ListArtists handles GET /artists
func (h *ArtistHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	var artists []models.Artist
	if err := h.db.Select("id", "name").Order("id").Find(&artists).Error; err != nil {
		dbError(w, err, "list artists")
		return
	}

	listing := make([]models.ArtistListing, 0, len(artists))
	for _, a := range artists {
		listing = append(listing, models.ArtistListing{ID: a.ID, Name: a.Name})
	}

	middleware.JSONResponse(w, http.StatusOK, models.ArtistsResponse{Artists: listing})
}

// SearchArtists handles POST /artists/search
func (h *ArtistHandler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if !decode(w, r, &req) {
		return
	}

	var artists []models.Artist
	err := h.db.Where(likeClause("name"), containsPattern(req.SearchTerm)).Order("id").Find(&artists).Error
	if err != nil {
		dbError(w, err, "search artists")
		return
	}

	var shows []models.Show
	if err := h.db.Select("id", "artist_id", "start_time").Find(&shows).Error; err != nil {
		dbError(w, err, "search artists")
		return
	}
	now := time.Now()
	counts := make(map[uint]int)
	for _, s := range shows {
		if s.IsUpcoming(now) {
			counts[s.ArtistID]++
		}
	}

	data := make([]models.ListingSummary, 0, len(artists))
	for _, a := range artists {
		data = append(data, models.ListingSummary{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]})
	}

	middleware.JSONResponse(w, http.StatusOK, models.SearchResponse{Count: len(data), Data: data})
}

// GetArtist handles GET /artists/{id}
func (h *ArtistHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var artist models.Artist
	if err := h.db.First(&artist, id).Error; err != nil {
		dbError(w, err, "load artist")
		return
	}

	var shows []models.Show
	if err := h.db.Preload("Venue").Where("artist_id = ?", id).Order("start_time").Find(&shows).Error; err != nil {
		dbError(w, err, "load artist shows")
		return
	}

	detail := models.ArtistDetail{
		Artist:        artist,
		PastShows:     []models.ShowListing{},
		UpcomingShows: []models.ShowListing{},
	}
	now := time.Now()
	for _, s := range shows {
		listing := models.ShowListing{
			VenueID:        s.VenueID,
			VenueName:      s.Venue.Name,
			VenueImageLink: s.Venue.ImageLink,
			StartTime:      s.StartTime,
		}
		if s.IsUpcoming(now) {
			detail.UpcomingShows = append(detail.UpcomingShows, listing)
		} else {
			detail.PastShows = append(detail.PastShows, listing)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// CreateArtist handles POST /artists
func (h *ArtistHandler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var req models.ArtistRequest
	if !decode(w, r, &req) {
		return
	}

	var artist models.Artist
	req.Apply(&artist)
	if err := h.db.Create(&artist).Error; err != nil {
		dbError(w, err, "create artist")
		return
	}

	slog.Info("artist created", "artist_id", artist.ID, "name", artist.Name)

	middleware.JSONResponse(w, http.StatusCreated, artist)
}

// UpdateArtist handles PUT /artists/{id}
func (h *ArtistHandler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.ArtistRequest
	if !decode(w, r, &req) {
		return
	}

	var artist models.Artist
	if err := h.db.First(&artist, id).Error; err != nil {
		dbError(w, err, "load artist")
		return
	}

	req.Apply(&artist)
	if err := h.db.Save(&artist).Error; err != nil {
		dbError(w, err, "update artist")
		return
	}

	slog.Info("artist updated", "artist_id", artist.ID)

	middleware.JSONResponse(w, http.StatusOK, artist)
}

// DeleteArtist handles DELETE /artists/{id}
func (h *ArtistHandler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artist_id = ?", id).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Artist{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		dbError(w, err, "delete artist")
		return
	}

	slog.Info("artist deleted", "artist_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.DeletedResponse{Success: true, Deleted: id})
}
