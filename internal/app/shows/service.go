package shows

import (
	"context"
	"time"

	"fyyur/internal/app"
	"fyyur/internal/models"
)

// Store defines persistence operations for shows.
type Store interface {
	CreateShow(ctx context.Context, show models.Show) (models.Show, error)
	UpcomingShowListings(ctx context.Context, now time.Time) ([]models.ShowDetails, error)
}

// Listing is one row of the shows page.
type Listing struct {
	VenueID         int64  `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// Service coordinates show listings and bookings.
type Service interface {
	Upcoming(ctx context.Context) ([]Listing, error)
	Create(ctx context.Context, show models.Show) (models.Show, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a shows Service. A nil now uses the server wall clock.
func New(store Store, now func() time.Time) Service {
	return &service{store: store, now: app.Clock(now)}
}

func (s *service) Upcoming(ctx context.Context) ([]Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	details, err := s.store.UpcomingShowListings(ctx, s.now())
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(details))
	for _, d := range details {
		listings = append(listings, Listing{
			VenueID:         d.VenueID,
			VenueName:       d.VenueName,
			ArtistID:        d.ArtistID,
			ArtistName:      d.ArtistName,
			ArtistImageLink: d.ArtistImageLink,
			StartTime:       models.FormatStartTime(d.StartTime),
		})
	}
	return listings, nil
}

func (s *service) Create(ctx context.Context, show models.Show) (models.Show, error) {
	if err := ctx.Err(); err != nil {
		return models.Show{}, err
	}

	var created models.Show
	err := app.Mutate("show", "create", "", func() error {
		var err error
		created, err = s.store.CreateShow(ctx, show)
		return err
	})
	return created, err
}
