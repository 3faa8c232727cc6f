package artists

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/app"
	"fyyur/internal/models"
	"fyyur/internal/store"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

type memoryStore struct {
	artists   []models.Artist
	shows     []models.ShowDetails
	updateErr error
}

func (m *memoryStore) add(a models.Artist) models.Artist {
	a.ID = int64(len(m.artists) + 1)
	m.artists = append(m.artists, a)
	return a
}

func (m *memoryStore) CreateArtist(_ context.Context, a models.Artist) (models.Artist, error) {
	return m.add(a), nil
}

func (m *memoryStore) GetArtist(_ context.Context, id int64) (models.Artist, error) {
	for _, a := range m.artists {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Artist{}, store.ErrArtistNotFound
}

func (m *memoryStore) ListArtists(context.Context, models.ArtistFilter) ([]models.Artist, error) {
	return m.artists, nil
}

func (m *memoryStore) UpdateArtist(_ context.Context, id int64, a models.Artist) (models.Artist, error) {
	if m.updateErr != nil {
		return models.Artist{}, m.updateErr
	}
	for i := range m.artists {
		if m.artists[i].ID == id {
			a.ID = id
			m.artists[i] = a
			return a, nil
		}
	}
	return models.Artist{}, store.ErrArtistNotFound
}

func (m *memoryStore) ArtistSummaries(_ context.Context, f models.ArtistFilter, now time.Time) ([]models.Summary, error) {
	var out []models.Summary
	for _, a := range m.artists {
		if !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.NameContains)) {
			continue
		}
		sum := models.Summary{ID: a.ID, Name: a.Name}
		for _, s := range m.shows {
			if s.ArtistID == a.ID && s.StartTime.After(now) {
				sum.NumUpcomingShows++
			}
		}
		out = append(out, sum)
	}
	return out, nil
}

func (m *memoryStore) ShowsForArtist(_ context.Context, id int64) ([]models.ShowDetails, error) {
	var out []models.ShowDetails
	for _, s := range m.shows {
		if s.ArtistID == id {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestListReturnsIDAndName(t *testing.T) {
	m := &memoryStore{}
	m.add(models.Artist{Name: "Guns N Petals", City: "San Francisco"})
	m.add(models.Artist{Name: "Matt Quevedo"})

	entries, err := New(m, nil).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Entry{{ID: 1, Name: "Guns N Petals"}, {ID: 2, Name: "Matt Quevedo"}}, entries)
}

func TestSearchCountsUpcomingShows(t *testing.T) {
	m := &memoryStore{}
	a := m.add(models.Artist{Name: "The Wild Sax Band"})
	m.add(models.Artist{Name: "Matt Quevedo"})
	m.shows = []models.ShowDetails{
		{ArtistID: a.ID, StartTime: fixedNow.Add(time.Hour)},
		{ArtistID: a.ID, StartTime: fixedNow.Add(-time.Hour)},
	}

	res, err := New(m, func() time.Time { return fixedNow }).Search(context.Background(), "BAND")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "The Wild Sax Band", res.Data[0].Name)
	assert.Equal(t, 1, res.Data[0].NumUpcomingShows)
}

func TestDetailResolvesVenues(t *testing.T) {
	m := &memoryStore{}
	a := m.add(models.Artist{Name: "Guns N Petals", SeekingVenue: true, WebsiteLink: "https://gunsnpetals.example"})
	m.shows = []models.ShowDetails{
		{VenueID: 1, VenueName: "The Musical Hop", VenueImageLink: "hop.png", ArtistID: a.ID, StartTime: fixedNow.Add(-time.Hour)},
		{VenueID: 3, VenueName: "Park Square", VenueImageLink: "park.png", ArtistID: a.ID, StartTime: fixedNow.Add(time.Hour)},
	}

	detail, err := New(m, func() time.Time { return fixedNow }).Detail(context.Background(), a.ID)
	require.NoError(t, err)

	assert.True(t, detail.SeekingVenue)
	assert.Equal(t, "https://gunsnpetals.example", detail.Website)
	require.Len(t, detail.PastShows, 1)
	require.Len(t, detail.UpcomingShows, 1)
	assert.Equal(t, "The Musical Hop", detail.PastShows[0].VenueName)
	assert.Equal(t, "park.png", detail.UpcomingShows[0].VenueImageLink)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 1, detail.UpcomingShowsCount)
}

func TestUpdateFailureKeepsSubmittedName(t *testing.T) {
	m := &memoryStore{updateErr: store.ErrConstraintViolation}
	a := m.add(models.Artist{Name: "Before"})

	_, err := New(m, nil).Update(context.Background(), a.ID, models.Artist{Name: "After"})
	require.Error(t, err)

	var mutErr *app.MutationError
	require.ErrorAs(t, err, &mutErr)
	assert.Equal(t, "After", mutErr.Name)
	assert.Equal(t, "update", mutErr.Op)
	assert.ErrorIs(t, err, store.ErrConstraintViolation)
}

func TestGetUnknownArtist(t *testing.T) {
	_, err := New(&memoryStore{}, nil).Get(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrArtistNotFound)
}
