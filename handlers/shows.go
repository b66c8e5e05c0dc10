// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/middleware"
	"github.com/shkim9348/FSND/models"
)

type ShowHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewShowHandler(db *gorm.DB, cfg cliparse.Config) *ShowHandler {
	return &ShowHandler{db: db, cfg: cfg}
}

// ListShows handles GET /shows
func (h *ShowHandler) ListShows(w http.ResponseWriter, r *http.Request) {
	var shows []models.Show
	if err := h.db.Preload("Artist").Preload("Venue").Order("start_time, id").Find(&shows).Error; err != nil {
		dbError(w, err, "list shows")
		return
	}

	listing := make([]models.ShowListing, 0, len(shows))
	for _, s := range shows {
		listing = append(listing, models.ShowListing{
			VenueID:         s.VenueID,
			VenueName:       s.Venue.Name,
			ArtistID:        s.ArtistID,
			ArtistName:      s.Artist.Name,
			ArtistImageLink: s.Artist.ImageLink,
			StartTime:       s.StartTime,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.ShowsResponse{Shows: listing})
}

// CreateShow handles POST /shows
func (h *ShowHandler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req models.ShowRequest
	if !decode(w, r, &req) {
		return
	}

	var artists, venues int64
	if err := h.db.Model(&models.Artist{}).Where("id = ?", req.ArtistID).Count(&artists).Error; err != nil {
		dbError(w, err, "create show")
		return
	}
	if err := h.db.Model(&models.Venue{}).Where("id = ?", req.VenueID).Count(&venues).Error; err != nil {
		dbError(w, err, "create show")
		return
	}
	if artists == 0 || venues == 0 {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "artist_id and venue_id must refer to existing records")
		return
	}

	show := models.Show{
		ArtistID:  req.ArtistID,
		VenueID:   req.VenueID,
		StartTime: req.StartTime.UTC(),
	}
	if err := h.db.Omit("Artist", "Venue").Create(&show).Error; err != nil {
		dbError(w, err, "create show")
		return
	}

	slog.Info("show created", "show_id", show.ID, "artist_id", show.ArtistID, "venue_id", show.VenueID)

	middleware.JSONResponse(w, http.StatusCreated, show)
}
