package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fyyur/internal/models"
	"fyyur/internal/store"
)

// bootstrapDemoData seeds a few venues, artists and shows when both the
// venue and artist tables are empty.
func bootstrapDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	for _, table := range []string{"venues", "artists"} {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			return fmt.Errorf("count %s: %w", table, err)
		}
		if count > 0 {
			return nil
		}
	}

	venueIDs := make(map[string]int64)
	for _, v := range demoVenues() {
		created, err := dataStore.CreateVenue(ctx, v)
		if err != nil {
			return fmt.Errorf("seed venue %q: %w", v.Name, err)
		}
		venueIDs[v.Name] = created.ID
	}

	artistIDs := make(map[string]int64)
	for _, a := range demoArtists() {
		created, err := dataStore.CreateArtist(ctx, a)
		if err != nil {
			return fmt.Errorf("seed artist %q: %w", a.Name, err)
		}
		artistIDs[a.Name] = created.ID
	}

	for _, s := range demoShows() {
		show := models.Show{
			VenueID:   venueIDs[s.venue],
			ArtistID:  artistIDs[s.artist],
			StartTime: s.start,
		}
		if _, err := dataStore.CreateShow(ctx, show); err != nil {
			return fmt.Errorf("seed show %s at %s: %w", s.artist, s.venue, err)
		}
	}

	log.Info().Msg("demo data seeded")
	return nil
}

func demoVenues() []models.Venue {
	return []models.Venue{
		{
			Name:               "The Musical Hop",
			City:               "San Francisco",
			State:              "CA",
			Address:            "1015 Folsom Street",
			Phone:              "123-123-1234",
			Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
			WebsiteLink:        "https://www.themusicalhop.com",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		},
		{
			Name:         "The Dueling Pianos Bar",
			City:         "New York",
			State:        "NY",
			Address:      "335 Delancey Street",
			Phone:        "914-003-1132",
			Genres:       []string{"Classical", "R&B", "Hip-Hop"},
			WebsiteLink:  "https://www.theduelingpianos.com",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
		},
		{
			Name:         "Park Square Live Music & Coffee",
			City:         "San Francisco",
			State:        "CA",
			Address:      "34 Whiskey Moore Ave",
			Phone:        "415-000-1234",
			Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
			WebsiteLink:  "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		},
	}
}

func demoArtists() []models.Artist {
	return []models.Artist{
		{
			Name:               "Guns N Petals",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			Genres:             []string{"Rock n Roll"},
			WebsiteLink:        "https://www.gunsnpetalsband.com",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		},
		{
			Name:         "Matt Quevedo",
			City:         "New York",
			State:        "NY",
			Phone:        "300-400-5000",
			Genres:       []string{"Jazz"},
			FacebookLink: "https://www.facebook.com/mattquevedo923251523",
		},
		{
			Name:   "The Wild Sax Band",
			City:   "San Francisco",
			State:  "CA",
			Phone:  "432-325-5432",
			Genres: []string{"Jazz", "Classical"},
		},
	}
}

type demoShow struct {
	venue  string
	artist string
	start  time.Time
}

func demoShows() []demoShow {
	at := func(year int, month time.Month, day, hour, minute int) time.Time {
		return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	}
	return []demoShow{
		{"The Musical Hop", "Guns N Petals", at(2019, time.May, 21, 21, 30)},
		{"Park Square Live Music & Coffee", "Matt Quevedo", at(2019, time.June, 15, 23, 0)},
		{"Park Square Live Music & Coffee", "The Wild Sax Band", at(2035, time.April, 1, 20, 0)},
		{"Park Square Live Music & Coffee", "The Wild Sax Band", at(2035, time.April, 8, 20, 0)},
		{"Park Square Live Music & Coffee", "The Wild Sax Band", at(2035, time.April, 15, 20, 0)},
	}
}
