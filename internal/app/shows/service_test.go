package shows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/app"
	"fyyur/internal/models"
	"fyyur/internal/store"
)

type memoryStore struct {
	venues  map[int64]string
	artists map[int64]string
	shows   []models.Show
	seenNow time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		venues:  map[int64]string{1: "The Musical Hop"},
		artists: map[int64]string{4: "Guns N Petals"},
	}
}

func (m *memoryStore) CreateShow(_ context.Context, show models.Show) (models.Show, error) {
	if _, ok := m.venues[show.VenueID]; !ok {
		return models.Show{}, store.ErrConstraintViolation
	}
	if _, ok := m.artists[show.ArtistID]; !ok {
		return models.Show{}, store.ErrConstraintViolation
	}
	show.ID = int64(len(m.shows) + 1)
	m.shows = append(m.shows, show)
	return show, nil
}

func (m *memoryStore) UpcomingShowListings(_ context.Context, now time.Time) ([]models.ShowDetails, error) {
	m.seenNow = now
	var out []models.ShowDetails
	for _, s := range m.shows {
		if !s.StartTime.After(now) {
			continue
		}
		out = append(out, models.ShowDetails{
			ShowID:          s.ID,
			StartTime:       s.StartTime,
			VenueID:         s.VenueID,
			VenueName:       m.venues[s.VenueID],
			ArtistID:        s.ArtistID,
			ArtistName:      m.artists[s.ArtistID],
			ArtistImageLink: "petals.png",
		})
	}
	return out, nil
}

func TestUpcomingExcludesPastShows(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	m := newMemoryStore()
	svc := New(m, func() time.Time { return now })

	_, err := svc.Create(context.Background(), models.Show{VenueID: 1, ArtistID: 4, StartTime: now.AddDate(1, 0, 0)})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), models.Show{VenueID: 1, ArtistID: 4, StartTime: now.AddDate(-1, 0, 0)})
	require.NoError(t, err)

	listings, err := svc.Upcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, Listing{
		VenueID:         1,
		VenueName:       "The Musical Hop",
		ArtistID:        4,
		ArtistName:      "Guns N Petals",
		ArtistImageLink: "petals.png",
		StartTime:       "2027-10-14 12:00:00",
	}, listings[0])
	assert.Equal(t, now, m.seenNow)
}

func TestCreateUnknownVenueFails(t *testing.T) {
	m := newMemoryStore()
	_, err := New(m, nil).Create(context.Background(), models.Show{VenueID: 99, ArtistID: 4, StartTime: time.Now()})

	require.ErrorIs(t, err, app.ErrMutationFailed)
	assert.ErrorIs(t, err, store.ErrConstraintViolation)
	assert.Empty(t, m.shows)
}

func TestUpcomingEmpty(t *testing.T) {
	listings, err := New(newMemoryStore(), nil).Upcoming(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, listings)
	assert.Empty(t, listings)
}
