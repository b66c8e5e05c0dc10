// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Domain types

type Venue struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	Name               string   `gorm:"not null" json:"name"`
	City               string   `gorm:"size:120;index:idx_venue_area" json:"city"`
	State              string   `gorm:"size:120;index:idx_venue_area" json:"state"`
	Address            string   `gorm:"size:120" json:"address"`
	Phone              string   `gorm:"size:120" json:"phone"`
	ImageLink          string   `gorm:"size:500" json:"image_link"`
	FacebookLink       string   `gorm:"size:120" json:"facebook_link"`
	Genres             []string `gorm:"type:text;serializer:json" json:"genres"`
	Website            string   `gorm:"size:120" json:"website"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `gorm:"type:text" json:"seeking_description"`
}

type Artist struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	Name               string   `gorm:"not null" json:"name"`
	City               string   `gorm:"size:120" json:"city"`
	State              string   `gorm:"size:120" json:"state"`
	Phone              string   `gorm:"size:120" json:"phone"`
	Genres             []string `gorm:"type:text;serializer:json" json:"genres"`
	ImageLink          string   `gorm:"size:500" json:"image_link"`
	FacebookLink       string   `gorm:"size:120" json:"facebook_link"`
	Website            string   `gorm:"size:120" json:"website"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `gorm:"type:text" json:"seeking_description"`
}

// Show joins an artist to a venue at a point in time. The same pair may
// play more than once.
type Show struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArtistID  uint      `gorm:"not null;index" json:"artist_id"`
	VenueID   uint      `gorm:"not null;index" json:"venue_id"`
	StartTime time.Time `gorm:"not null;index" json:"start_time"`

	Artist Artist `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Venue  Venue  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// IsUpcoming reports whether the show starts at or after now
func (s Show) IsUpcoming(now time.Time) bool {
	return !s.StartTime.Before(now)
}

// Request types

type VenueRequest struct {
	Name               string   `json:"name" validate:"required"`
	City               string   `json:"city" validate:"required,max=120"`
	State              string   `json:"state" validate:"required,len=2"`
	Address            string   `json:"address" validate:"required,max=120"`
	Phone              string   `json:"phone" validate:"max=120"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url,max=120"`
	Genres             []string `json:"genres" validate:"required,min=1,dive,required"`
	Website            string   `json:"website" validate:"omitempty,url,max=120"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

// Apply copies the request onto v
func (req VenueRequest) Apply(v *Venue) {
	v.Name = req.Name
	v.City = req.City
	v.State = req.State
	v.Address = req.Address
	v.Phone = req.Phone
	v.ImageLink = req.ImageLink
	v.FacebookLink = req.FacebookLink
	v.Genres = req.Genres
	v.Website = req.Website
	v.SeekingTalent = req.SeekingTalent
	v.SeekingDescription = req.SeekingDescription
}

type ArtistRequest struct {
	Name               string   `json:"name" validate:"required"`
	City               string   `json:"city" validate:"required,max=120"`
	State              string   `json:"state" validate:"required,len=2"`
	Phone              string   `json:"phone" validate:"max=120"`
	Genres             []string `json:"genres" validate:"required,min=1,dive,required"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url,max=120"`
	Website            string   `json:"website" validate:"omitempty,url,max=120"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}

// Apply copies the request onto a
func (req ArtistRequest) Apply(a *Artist) {
	a.Name = req.Name
	a.City = req.City
	a.State = req.State
	a.Phone = req.Phone
	a.Genres = req.Genres
	a.ImageLink = req.ImageLink
	a.FacebookLink = req.FacebookLink
	a.Website = req.Website
	a.SeekingVenue = req.SeekingVenue
	a.SeekingDescription = req.SeekingDescription
}

type ShowRequest struct {
	ArtistID  uint       `json:"artist_id" validate:"required"`
	VenueID   uint       `json:"venue_id" validate:"required"`
	StartTime *time.Time `json:"start_time" validate:"required"`
}

type SearchRequest struct {
	SearchTerm string `json:"search_term"`
}

// Response types

type ListingSummary struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type Area struct {
	City   string           `json:"city"`
	State  string           `json:"state"`
	Venues []ListingSummary `json:"venues"`
}

type AreasResponse struct {
	Areas []Area `json:"areas"`
}

type ArtistListing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ArtistsResponse struct {
	Artists []ArtistListing `json:"artists"`
}

type SearchResponse struct {
	Count int              `json:"count"`
	Data  []ListingSummary `json:"data"`
}

// ShowListing is a show as rendered on venue, artist and show pages.
// Venue pages leave the venue fields empty and vice versa.
type ShowListing struct {
	VenueID         uint      `json:"venue_id,omitempty"`
	VenueName       string    `json:"venue_name,omitempty"`
	VenueImageLink  string    `json:"venue_image_link,omitempty"`
	ArtistID        uint      `json:"artist_id,omitempty"`
	ArtistName      string    `json:"artist_name,omitempty"`
	ArtistImageLink string    `json:"artist_image_link,omitempty"`
	StartTime       time.Time `json:"start_time"`
}

type ShowsResponse struct {
	Shows []ShowListing `json:"shows"`
}

type VenueDetail struct {
	Venue
	PastShows          []ShowListing `json:"past_shows"`
	UpcomingShows      []ShowListing `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	Artist
	PastShows          []ShowListing `json:"past_shows"`
	UpcomingShows      []ShowListing `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}

type DeletedResponse struct {
	Success bool `json:"success"`
	Deleted uint `json:"deleted"`
}
