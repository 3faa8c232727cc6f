package forms

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func venueValues() url.Values {
	return url.Values{
		"name":                {"The Fillmore"},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"address":             {"1805 Geary Blvd"},
		"phone":               {"415-346-3000"},
		"image_link":          {""},
		"facebook_link":       {""},
		"genres":              {"Rock n Roll", "Blues"},
		"website_link":        {"https://fillmore.example"},
		"seeking_description": {""},
	}
}

func TestVenueFromForm(t *testing.T) {
	values := venueValues()
	values.Set("seeking_talent", "y")

	venue, err := VenueFromForm(values)
	require.NoError(t, err)
	assert.Equal(t, "The Fillmore", venue.Name)
	assert.Equal(t, []string{"Rock n Roll", "Blues"}, venue.Genres)
	assert.True(t, venue.SeekingTalent)
	assert.Equal(t, "", venue.ImageLink)
}

func TestVenueFromFormUncheckedAndNoGenres(t *testing.T) {
	values := venueValues()
	values.Del("genres")

	venue, err := VenueFromForm(values)
	require.NoError(t, err)
	assert.False(t, venue.SeekingTalent)
	assert.Equal(t, []string{}, venue.Genres)
}

func TestVenueFromFormAbsentField(t *testing.T) {
	values := venueValues()
	values.Del("phone")

	_, err := VenueFromForm(values)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFieldAbsent)

	var absent *FieldAbsentError
	require.ErrorAs(t, err, &absent)
	assert.Equal(t, "phone", absent.Field)
}

func TestArtistFromForm(t *testing.T) {
	values := url.Values{
		"name":                {"Guns N Petals"},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"phone":               {"326-123-5000"},
		"image_link":          {"petals.png"},
		"facebook_link":       {""},
		"website_link":        {""},
		"seeking_venue":       {""},
		"seeking_description": {"Looking for shows"},
	}

	artist, err := ArtistFromForm(values)
	require.NoError(t, err)
	assert.True(t, artist.SeekingVenue)
	assert.Equal(t, "Looking for shows", artist.SeekingDescription)
	assert.Equal(t, []string{}, artist.Genres)

	values.Del("city")
	_, err = ArtistFromForm(values)
	assert.ErrorIs(t, err, ErrFieldAbsent)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "The Fillmore", DisplayName(url.Values{"name": {"The Fillmore"}}))
	assert.Equal(t, "", DisplayName(url.Values{}))
}

func TestShowFromForm(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	for _, raw := range []string{
		"2035-04-01 20:00:00",
		"2035-04-01T20:00:00",
		"2035-04-01T20:00",
		"2035-04-01T20:00:00-07:00",
	} {
		t.Run(raw, func(t *testing.T) {
			show, err := ShowFromForm(url.Values{
				"start_time": {raw},
				"venue_id":   {"1"},
				"artist_id":  {"4"},
			})
			require.NoError(t, err)
			assert.True(t, want.Equal(show.StartTime), "got %s", show.StartTime)
			assert.Equal(t, int64(1), show.VenueID)
			assert.Equal(t, int64(4), show.ArtistID)
		})
	}
}

func TestShowFromFormErrors(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
		want   error
	}{
		{"absent artist", url.Values{"start_time": {"2035-04-01 20:00:00"}, "venue_id": {"1"}}, ErrFieldAbsent},
		{"bad time", url.Values{"start_time": {"tomorrow"}, "venue_id": {"1"}, "artist_id": {"1"}}, ErrInvalidField},
		{"bad id", url.Values{"start_time": {"2035-04-01 20:00:00"}, "venue_id": {"one"}, "artist_id": {"1"}}, ErrInvalidField},
		{"zero id", url.Values{"start_time": {"2035-04-01 20:00:00"}, "venue_id": {"1"}, "artist_id": {"0"}}, ErrInvalidField},
		{"negative id", url.Values{"start_time": {"2035-04-01 20:00:00"}, "venue_id": {"-3"}, "artist_id": {"1"}}, ErrInvalidField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ShowFromForm(tc.values)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}
