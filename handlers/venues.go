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

type VenueHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewVenueHandler(db *gorm.DB, cfg cliparse.Config) *VenueHandler {
	return &VenueHandler{db: db, cfg: cfg}
}

// upcomingByVenue counts the upcoming shows of every venue
func upcomingByVenue(db *gorm.DB, now time.Time) (map[uint]int, error) {
	var shows []models.Show
	if err := db.Select("id", "venue_id", "start_time").Find(&shows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]int)
	for _, s := range shows {
		if s.IsUpcoming(now) {
			counts[s.VenueID]++
		}
	}
	return counts, nil
}

// ListVenues handles GET /venues
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	var venues []models.Venue
	if err := h.db.Order("state, city, id").Find(&venues).Error; err != nil {
		dbError(w, err, "list venues")
		return
	}

	counts, err := upcomingByVenue(h.db, time.Now())
	if err != nil {
		dbError(w, err, "list venues")
		return
	}

	// Venues arrive sorted by area, so each area is a contiguous run
	areas := []models.Area{}
	for _, v := range venues {
		last := len(areas) - 1
		if last < 0 || areas[last].City != v.City || areas[last].State != v.State {
			areas = append(areas, models.Area{City: v.City, State: v.State, Venues: []models.ListingSummary{}})
			last++
		}
		areas[last].Venues = append(areas[last].Venues, models.ListingSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: counts[v.ID],
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.AreasResponse{Areas: areas})
}

// SearchVenues handles POST /venues/search
func (h *VenueHandler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if !decode(w, r, &req) {
		return
	}

	var venues []models.Venue
	err := h.db.Where(likeClause("name"), containsPattern(req.SearchTerm)).Order("id").Find(&venues).Error
	if err != nil {
		dbError(w, err, "search venues")
		return
	}

	counts, err := upcomingByVenue(h.db, time.Now())
	if err != nil {
		dbError(w, err, "search venues")
		return
	}

	data := make([]models.ListingSummary, 0, len(venues))
	for _, v := range venues {
		data = append(data, models.ListingSummary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}

	middleware.JSONResponse(w, http.StatusOK, models.SearchResponse{Count: len(data), Data: data})
}

// GetVenue handles GET /venues/{id}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var venue models.Venue
	if err := h.db.First(&venue, id).Error; err != nil {
		dbError(w, err, "load venue")
		return
	}

	var shows []models.Show
	if err := h.db.Preload("Artist").Where("venue_id = ?", id).Order("start_time").Find(&shows).Error; err != nil {
		dbError(w, err, "load venue shows")
		return
	}

	detail := models.VenueDetail{
		Venue:         venue,
		PastShows:     []models.ShowListing{},
		UpcomingShows: []models.ShowListing{},
	}
	now := time.Now()
	for _, s := range shows {
		listing := models.ShowListing{
			ArtistID:        s.ArtistID,
			ArtistName:      s.Artist.Name,
			ArtistImageLink: s.Artist.ImageLink,
			StartTime:       s.StartTime,
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

// CreateVenue handles POST /venues
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req models.VenueRequest
	if !decode(w, r, &req) {
		return
	}

	var venue models.Venue
	req.Apply(&venue)
	if err := h.db.Create(&venue).Error; err != nil {
		dbError(w, err, "create venue")
		return
	}

	slog.Info("venue created", "venue_id", venue.ID, "name", venue.Name)

	middleware.JSONResponse(w, http.StatusCreated, venue)
}

// UpdateVenue handles PUT /venues/{id}
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.VenueRequest
	if !decode(w, r, &req) {
		return
	}

	var venue models.Venue
	if err := h.db.First(&venue, id).Error; err != nil {
		dbError(w, err, "load venue")
		return
	}

	req.Apply(&venue)
	if err := h.db.Save(&venue).Error; err != nil {
		dbError(w, err, "update venue")
		return
	}

	slog.Info("venue updated", "venue_id", venue.ID)

	middleware.JSONResponse(w, http.StatusOK, venue)
}

// DeleteVenue handles DELETE /venues/{id}
func (h *VenueHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venue_id = ?", id).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Venue{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		dbError(w, err, "delete venue")
		return
	}

	slog.Info("venue deleted", "venue_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.DeletedResponse{Success: true, Deleted: id})
}
