package venues

import (
	"context"
	"errors"
	"sort"
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

// memoryStore is an in-memory Store used to exercise the aggregation logic.
type memoryStore struct {
	venues    map[int64]models.Venue
	shows     []models.ShowDetails
	nextID    int64
	createErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{venues: make(map[int64]models.Venue)}
}

func (m *memoryStore) add(v models.Venue) models.Venue {
	m.nextID++
	v.ID = m.nextID
	m.venues[v.ID] = v
	return v
}

func (m *memoryStore) book(venueID int64, artist string, start time.Time) {
	m.shows = append(m.shows, models.ShowDetails{
		ShowID:     int64(len(m.shows) + 1),
		StartTime:  start,
		VenueID:    venueID,
		VenueName:  m.venues[venueID].Name,
		ArtistID:   int64(len(artist)),
		ArtistName: artist,
	})
}

func (m *memoryStore) CreateVenue(_ context.Context, v models.Venue) (models.Venue, error) {
	if m.createErr != nil {
		return models.Venue{}, m.createErr
	}
	return m.add(v), nil
}

func (m *memoryStore) GetVenue(_ context.Context, id int64) (models.Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return models.Venue{}, store.ErrVenueNotFound
	}
	return v, nil
}

func (m *memoryStore) UpdateVenue(_ context.Context, id int64, v models.Venue) (models.Venue, error) {
	if _, ok := m.venues[id]; !ok {
		return models.Venue{}, store.ErrVenueNotFound
	}
	v.ID = id
	m.venues[id] = v
	return v, nil
}

func (m *memoryStore) DeleteVenue(_ context.Context, id int64) error {
	delete(m.venues, id)
	kept := m.shows[:0]
	for _, s := range m.shows {
		if s.VenueID != id {
			kept = append(kept, s)
		}
	}
	m.shows = kept
	return nil
}

func (m *memoryStore) VenueSummaries(_ context.Context, f models.VenueFilter, now time.Time) ([]models.Summary, error) {
	var out []models.Summary
	for _, v := range m.venues {
		if f.NameContains != "" && !strings.Contains(strings.ToLower(v.Name), strings.ToLower(f.NameContains)) {
			continue
		}
		sum := models.Summary{ID: v.ID, Name: v.Name, City: v.City, State: v.State}
		for _, s := range m.shows {
			if s.VenueID == v.ID && s.StartTime.After(now) {
				sum.NumUpcomingShows++
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryStore) ShowsForVenue(_ context.Context, venueID int64) ([]models.ShowDetails, error) {
	var out []models.ShowDetails
	for _, s := range m.shows {
		if s.VenueID == venueID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func newTestService(m *memoryStore) Service {
	return New(m, func() time.Time { return fixedNow })
}

func TestDirectoryPartitionsEveryVenueOnce(t *testing.T) {
	m := newMemoryStore()
	hop := m.add(models.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA"})
	m.add(models.Venue{Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA"})
	m.add(models.Venue{Name: "The Dueling Pianos Bar", City: "New York", State: "NY"})
	m.add(models.Venue{Name: "Lowercase Hall", City: "san francisco", State: "CA"})
	m.book(hop.ID, "Guns N Petals", fixedNow.Add(24*time.Hour))
	m.book(hop.ID, "Matt Quevedo", fixedNow.Add(-24*time.Hour))

	areas, err := newTestService(m).Directory(context.Background())
	require.NoError(t, err)

	require.Len(t, areas, 3, "grouping uses exact city/state strings")
	assert.Equal(t, "CA", areas[0].State)
	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, "san francisco", areas[1].City)
	assert.Equal(t, "NY", areas[2].State)

	seen := make(map[int64]int)
	for _, area := range areas {
		for _, v := range area.Venues {
			seen[v.ID]++
			venue := m.venues[v.ID]
			assert.Equal(t, area.City, venue.City)
			assert.Equal(t, area.State, venue.State)
		}
	}
	assert.Len(t, seen, len(m.venues))
	for id, n := range seen {
		assert.Equal(t, 1, n, "venue %d listed more than once", id)
	}

	for _, v := range areas[0].Venues {
		if v.ID == hop.ID {
			assert.Equal(t, 1, v.NumUpcomingShows)
		}
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	m := newMemoryStore()
	m.add(models.Venue{Name: "Venue A"})
	m.add(models.Venue{Name: "MY VENUE"})
	m.add(models.Venue{Name: "The Hall"})

	res, err := newTestService(m).Search(context.Background(), "ven")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Count)
	assert.Len(t, res.Data, res.Count)
	names := []string{res.Data[0].Name, res.Data[1].Name}
	assert.ElementsMatch(t, []string{"Venue A", "MY VENUE"}, names)
}

func TestDetailSplitsPastAndUpcoming(t *testing.T) {
	m := newMemoryStore()
	v := m.add(models.Venue{Name: "The Fillmore", City: "San Francisco", State: "CA", Genres: []string{"Rock", "Jazz"}})
	m.book(v.ID, "Later", fixedNow.Add(72*time.Hour))
	m.book(v.ID, "Earlier", fixedNow.Add(-72*time.Hour))
	m.book(v.ID, "Soon", fixedNow.Add(time.Hour))

	detail, err := newTestService(m).Detail(context.Background(), v.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 2, detail.UpcomingShowsCount)
	assert.Equal(t, 3, detail.PastShowsCount+detail.UpcomingShowsCount)
	assert.Equal(t, "Earlier", detail.PastShows[0].ArtistName)
	assert.Equal(t, "Soon", detail.UpcomingShows[0].ArtistName)
	assert.Equal(t, "Later", detail.UpcomingShows[1].ArtistName)
	assert.Equal(t, models.FormatStartTime(fixedNow.Add(time.Hour)), detail.UpcomingShows[0].StartTime)
	assert.Equal(t, []string{"Rock", "Jazz"}, detail.Genres)
}

func TestDetailWithoutShows(t *testing.T) {
	m := newMemoryStore()
	v := m.add(models.Venue{Name: "Empty"})

	detail, err := newTestService(m).Detail(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, detail.PastShowsCount)
	assert.Equal(t, 0, detail.UpcomingShowsCount)
	assert.NotNil(t, detail.PastShows)
	assert.NotNil(t, detail.UpcomingShows)
}

func TestDetailUnknownVenue(t *testing.T) {
	_, err := newTestService(newMemoryStore()).Detail(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrVenueNotFound)
}

func TestCreateFailureIsMutationError(t *testing.T) {
	m := newMemoryStore()
	m.createErr = store.ErrConnectionFailure

	_, err := newTestService(m).Create(context.Background(), models.Venue{Name: "Down"})
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrMutationFailed)
	assert.ErrorIs(t, err, store.ErrConnectionFailure)

	var mutErr *app.MutationError
	require.True(t, errors.As(err, &mutErr))
	assert.Equal(t, "Down", mutErr.Name)
}

func TestUpdateOverwritesEveryField(t *testing.T) {
	m := newMemoryStore()
	v := m.add(models.Venue{Name: "Old", City: "Austin", State: "TX", Phone: "111", Genres: []string{"Blues"}, SeekingTalent: true})

	svc := newTestService(m)
	_, err := svc.Update(context.Background(), v.ID, models.Venue{Name: "New", City: "Austin", State: "TX", Phone: "111"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "111", got.Phone)
	assert.False(t, got.SeekingTalent)
	assert.Empty(t, got.Genres)
}

func TestDeleteRemovesVenueShows(t *testing.T) {
	m := newMemoryStore()
	v := m.add(models.Venue{Name: "Doomed"})
	other := m.add(models.Venue{Name: "Other"})
	m.book(v.ID, "A", fixedNow.Add(time.Hour))
	m.book(v.ID, "B", fixedNow.Add(-time.Hour))
	m.book(other.ID, "C", fixedNow.Add(time.Hour))

	svc := newTestService(m)
	require.NoError(t, svc.Delete(context.Background(), v.ID))
	require.NoError(t, svc.Delete(context.Background(), 999), "deleting a missing venue is a no-op")

	assert.Len(t, m.shows, 1)
	_, err := svc.Get(context.Background(), v.ID)
	assert.ErrorIs(t, err, store.ErrVenueNotFound)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(newMemoryStore()).Directory(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
