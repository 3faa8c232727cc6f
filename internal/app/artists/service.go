package artists

import (
	"context"
	"time"

	"fyyur/internal/app"
	"fyyur/internal/models"
)

// Store defines persistence operations for artists.
type Store interface {
	CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error)
	GetArtist(ctx context.Context, id int64) (models.Artist, error)
	ListArtists(ctx context.Context, filter models.ArtistFilter) ([]models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, artist models.Artist) (models.Artist, error)
	ArtistSummaries(ctx context.Context, filter models.ArtistFilter, now time.Time) ([]models.Summary, error)
	ShowsForArtist(ctx context.Context, artistID int64) ([]models.ShowDetails, error)
}

// Entry is an artist as shown in the artist list.
type Entry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Show is a booking as listed on an artist page.
type Show struct {
	VenueID        int64  `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

// Detail is the artist page projection.
type Detail struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
	PastShows          []Show   `json:"past_shows"`
	UpcomingShows      []Show   `json:"upcoming_shows"`
	PastShowsCount     int      `json:"past_shows_count"`
	UpcomingShowsCount int      `json:"upcoming_shows_count"`
}

// Service coordinates artist browsing and mutations.
type Service interface {
	List(ctx context.Context) ([]Entry, error)
	Search(ctx context.Context, term string) (app.SearchResult, error)
	Detail(ctx context.Context, id int64) (Detail, error)
	Get(ctx context.Context, id int64) (models.Artist, error)
	Create(ctx context.Context, artist models.Artist) (models.Artist, error)
	Update(ctx context.Context, id int64, artist models.Artist) (models.Artist, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs an artists Service. A nil now uses the server wall clock.
func New(store Store, now func() time.Time) Service {
	return &service{store: store, now: app.Clock(now)}
}

func (s *service) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artists, err := s.store.ListArtists(ctx, models.ArtistFilter{})
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(artists))
	for _, a := range artists {
		entries = append(entries, Entry{ID: a.ID, Name: a.Name})
	}
	return entries, nil
}

func (s *service) Search(ctx context.Context, term string) (app.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return app.SearchResult{}, err
	}

	matches, err := s.store.ArtistSummaries(ctx, models.ArtistFilter{NameContains: term}, s.now())
	if err != nil {
		return app.SearchResult{}, err
	}
	return app.NewSearchResult(matches), nil
}

func (s *service) Detail(ctx context.Context, id int64) (Detail, error) {
	if err := ctx.Err(); err != nil {
		return Detail{}, err
	}

	artist, err := s.store.GetArtist(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	shows, err := s.store.ShowsForArtist(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	past, upcoming := app.SplitByTime(shows, s.now())

	return Detail{
		ID:                 artist.ID,
		Name:               artist.Name,
		Genres:             artist.Genres,
		City:               artist.City,
		State:              artist.State,
		Phone:              artist.Phone,
		Website:            artist.WebsiteLink,
		FacebookLink:       artist.FacebookLink,
		SeekingVenue:       artist.SeekingVenue,
		SeekingDescription: artist.SeekingDescription,
		ImageLink:          artist.ImageLink,
		PastShows:          toShows(past),
		UpcomingShows:      toShows(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func toShows(details []models.ShowDetails) []Show {
	shows := make([]Show, 0, len(details))
	for _, d := range details {
		shows = append(shows, Show{
			VenueID:        d.VenueID,
			VenueName:      d.VenueName,
			VenueImageLink: d.VenueImageLink,
			StartTime:      models.FormatStartTime(d.StartTime),
		})
	}
	return shows
}

func (s *service) Get(ctx context.Context, id int64) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	return s.store.GetArtist(ctx, id)
}

func (s *service) Create(ctx context.Context, artist models.Artist) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}

	var created models.Artist
	err := app.Mutate("artist", "create", artist.Name, func() error {
		var err error
		created, err = s.store.CreateArtist(ctx, artist)
		return err
	})
	return created, err
}

func (s *service) Update(ctx context.Context, id int64, artist models.Artist) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}

	var updated models.Artist
	err := app.Mutate("artist", "update", artist.Name, func() error {
		var err error
		updated, err = s.store.UpdateArtist(ctx, id, artist)
		return err
	})
	return updated, err
}
