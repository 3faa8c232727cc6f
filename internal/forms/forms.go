// Package forms turns submitted form values into venue, artist and show
// inputs.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"fyyur/internal/models"
)

var (
	// ErrFieldAbsent is matched by every FieldAbsentError.
	ErrFieldAbsent = errors.New("required field absent")
	// ErrInvalidField reports a present field whose value cannot be parsed.
	ErrInvalidField = errors.New("invalid field")
)

// FieldAbsentError names a required key missing from a submission.
type FieldAbsentError struct {
	Field string
}

func (e *FieldAbsentError) Error() string {
	return fmt.Sprintf("required field %q absent", e.Field)
}

func (e *FieldAbsentError) Is(target error) bool {
	return target == ErrFieldAbsent
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// startTimeLayouts are tried in order when parsing a show start time.
var startTimeLayouts = []string{
	models.DisplayTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// DisplayName returns the raw name value used in flash messages. It is
// empty when the key is absent.
func DisplayName(values url.Values) string {
	return values.Get("name")
}

type reader struct {
	values url.Values
	err    error
}

// field returns the first value of key and records the first absent key.
func (r *reader) field(key string) string {
	vs, ok := r.values[key]
	if !ok || len(vs) == 0 {
		if r.err == nil {
			r.err = &FieldAbsentError{Field: key}
		}
		return ""
	}
	return vs[0]
}

func (r *reader) checked(key string) bool {
	_, ok := r.values[key]
	return ok
}

func (r *reader) genres() []string {
	genres := r.values["genres"]
	if genres == nil {
		return []string{}
	}
	return append([]string(nil), genres...)
}

// VenueFromForm reads a venue submission.
func VenueFromForm(values url.Values) (models.Venue, error) {
	r := &reader{values: values}
	venue := models.Venue{
		Name:               r.field("name"),
		City:               r.field("city"),
		State:              r.field("state"),
		Address:            r.field("address"),
		Phone:              r.field("phone"),
		ImageLink:          r.field("image_link"),
		FacebookLink:       r.field("facebook_link"),
		Genres:             r.genres(),
		WebsiteLink:        r.field("website_link"),
		SeekingTalent:      r.checked("seeking_talent"),
		SeekingDescription: r.field("seeking_description"),
	}
	if r.err != nil {
		return models.Venue{}, r.err
	}
	return venue, nil
}

// ArtistFromForm reads an artist submission.
func ArtistFromForm(values url.Values) (models.Artist, error) {
	r := &reader{values: values}
	artist := models.Artist{
		Name:               r.field("name"),
		City:               r.field("city"),
		State:              r.field("state"),
		Phone:              r.field("phone"),
		Genres:             r.genres(),
		ImageLink:          r.field("image_link"),
		FacebookLink:       r.field("facebook_link"),
		WebsiteLink:        r.field("website_link"),
		SeekingVenue:       r.checked("seeking_venue"),
		SeekingDescription: r.field("seeking_description"),
	}
	if r.err != nil {
		return models.Artist{}, r.err
	}
	return artist, nil
}

type showInput struct {
	VenueID   int64     `validate:"required,gt=0"`
	ArtistID  int64     `validate:"required,gt=0"`
	StartTime time.Time `validate:"required"`
}

// ShowFromForm reads and parses a show submission.
func ShowFromForm(values url.Values) (models.Show, error) {
	r := &reader{values: values}
	rawStart := r.field("start_time")
	rawVenue := r.field("venue_id")
	rawArtist := r.field("artist_id")
	if r.err != nil {
		return models.Show{}, r.err
	}

	var in showInput
	var err error
	if in.StartTime, err = parseStartTime(rawStart); err != nil {
		return models.Show{}, err
	}
	if in.VenueID, err = parseID("venue_id", rawVenue); err != nil {
		return models.Show{}, err
	}
	if in.ArtistID, err = parseID("artist_id", rawArtist); err != nil {
		return models.Show{}, err
	}

	if err := validatorInstance().Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return models.Show{}, fmt.Errorf("%w: %s failed %s", ErrInvalidField, verrs[0].Field(), verrs[0].Tag())
		}
		return models.Show{}, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}

	return models.Show{StartTime: in.StartTime, VenueID: in.VenueID, ArtistID: in.ArtistID}, nil
}

func parseStartTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if layout == time.RFC3339 {
			// Stored timestamps carry no zone; keep the wall-clock reading.
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: start_time %q", ErrInvalidField, raw)
}

func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidField, field, raw)
	}
	return id, nil
}
