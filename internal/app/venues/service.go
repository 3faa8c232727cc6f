package venues

import (
	"context"
	"sort"
	"time"

	"fyyur/internal/app"
	"fyyur/internal/models"
)

// Store defines persistence operations for venues.
type Store interface {
	CreateVenue(ctx context.Context, venue models.Venue) (models.Venue, error)
	GetVenue(ctx context.Context, id int64) (models.Venue, error)
	UpdateVenue(ctx context.Context, id int64, venue models.Venue) (models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
	VenueSummaries(ctx context.Context, filter models.VenueFilter, now time.Time) ([]models.Summary, error)
	ShowsForVenue(ctx context.Context, venueID int64) ([]models.ShowDetails, error)
}

// Area groups the venues sharing one exact (city, state) pair.
type Area struct {
	City   string           `json:"city"`
	State  string           `json:"state"`
	Venues []models.Summary `json:"venues"`
}

// Show is a booking as listed on a venue page.
type Show struct {
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// Detail is the venue page projection.
type Detail struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	Website            string   `json:"website"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
	PastShows          []Show   `json:"past_shows"`
	UpcomingShows      []Show   `json:"upcoming_shows"`
	PastShowsCount     int      `json:"past_shows_count"`
	UpcomingShowsCount int      `json:"upcoming_shows_count"`
}

// Service coordinates venue browsing and mutations.
type Service interface {
	Directory(ctx context.Context) ([]Area, error)
	Search(ctx context.Context, term string) (app.SearchResult, error)
	Detail(ctx context.Context, id int64) (Detail, error)
	Get(ctx context.Context, id int64) (models.Venue, error)
	Create(ctx context.Context, venue models.Venue) (models.Venue, error)
	Update(ctx context.Context, id int64, venue models.Venue) (models.Venue, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a venues Service. A nil now uses the server wall clock.
func New(store Store, now func() time.Time) Service {
	return &service{store: store, now: app.Clock(now)}
}

func (s *service) Directory(ctx context.Context) ([]Area, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summaries, err := s.store.VenueSummaries(ctx, models.VenueFilter{}, s.now())
	if err != nil {
		return nil, err
	}
	return groupByArea(summaries), nil
}

// groupByArea partitions summaries by exact (city, state). Areas are ordered
// by state then city; venues keep their input order within an area.
func groupByArea(summaries []models.Summary) []Area {
	type key struct{ city, state string }

	index := make(map[key]int)
	areas := make([]Area, 0)
	for _, sum := range summaries {
		k := key{sum.City, sum.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: sum.City, State: sum.State, Venues: []models.Summary{}})
		}
		areas[i].Venues = append(areas[i].Venues, sum)
	}

	sort.SliceStable(areas, func(i, j int) bool {
		if areas[i].State != areas[j].State {
			return areas[i].State < areas[j].State
		}
		return areas[i].City < areas[j].City
	})
	return areas
}

func (s *service) Search(ctx context.Context, term string) (app.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return app.SearchResult{}, err
	}

	matches, err := s.store.VenueSummaries(ctx, models.VenueFilter{NameContains: term}, s.now())
	if err != nil {
		return app.SearchResult{}, err
	}
	return app.NewSearchResult(matches), nil
}

func (s *service) Detail(ctx context.Context, id int64) (Detail, error) {
	if err := ctx.Err(); err != nil {
		return Detail{}, err
	}

	venue, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	shows, err := s.store.ShowsForVenue(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	past, upcoming := app.SplitByTime(shows, s.now())

	return Detail{
		ID:                 venue.ID,
		Name:               venue.Name,
		City:               venue.City,
		State:              venue.State,
		Address:            venue.Address,
		Phone:              venue.Phone,
		Genres:             venue.Genres,
		ImageLink:          venue.ImageLink,
		FacebookLink:       venue.FacebookLink,
		Website:            venue.WebsiteLink,
		SeekingTalent:      venue.SeekingTalent,
		SeekingDescription: venue.SeekingDescription,
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
			ArtistID:        d.ArtistID,
			ArtistName:      d.ArtistName,
			ArtistImageLink: d.ArtistImageLink,
			StartTime:       models.FormatStartTime(d.StartTime),
		})
	}
	return shows
}

func (s *service) Get(ctx context.Context, id int64) (models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return models.Venue{}, err
	}
	return s.store.GetVenue(ctx, id)
}

func (s *service) Create(ctx context.Context, venue models.Venue) (models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return models.Venue{}, err
	}

	var created models.Venue
	err := app.Mutate("venue", "create", venue.Name, func() error {
		var err error
		created, err = s.store.CreateVenue(ctx, venue)
		return err
	})
	return created, err
}

func (s *service) Update(ctx context.Context, id int64, venue models.Venue) (models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return models.Venue{}, err
	}

	var updated models.Venue
	err := app.Mutate("venue", "update", venue.Name, func() error {
		var err error
		updated, err = s.store.UpdateVenue(ctx, id, venue)
		return err
	})
	return updated, err
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return app.Mutate("venue", "delete", "", func() error {
		return s.store.DeleteVenue(ctx, id)
	})
}
