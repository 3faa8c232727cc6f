package models

import "time"

// Show is a booking of one artist at one venue at a point in time.
type Show struct {
	ID        int64     `json:"id"`
	StartTime time.Time `json:"start_time"`
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
}

// ShowFilter narrows show listings.
type ShowFilter struct {
	VenueID  int64      // 0 matches any venue
	ArtistID int64      // 0 matches any artist
	After    *time.Time // strictly later start times only
}

// ShowDetails is a show joined with the venue and artist it links.
// Populated via JOIN queries.
type ShowDetails struct {
	ShowID          int64
	StartTime       time.Time
	VenueID         int64
	VenueName       string
	VenueImageLink  string
	ArtistID        int64
	ArtistName      string
	ArtistImageLink string
}

// Summary is the short form of a venue or artist used by listings and search.
type Summary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	City             string `json:"-"`
	State            string `json:"-"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}
