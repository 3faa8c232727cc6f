package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fyyur/internal/models"
)

// ErrVenueNotFound indicates no venue exists with the requested id.
var ErrVenueNotFound = errors.New("venue not found")

const venueColumns = `
	id, name, city, state, address, phone, image_link, facebook_link,
	genres, website_link, seeking_talent, seeking_description
`

// CreateVenue inserts a venue and returns it with its generated id.
func (s *Store) CreateVenue(ctx context.Context, venue models.Venue) (models.Venue, error) {
	genres, err := encodeGenres(venue.Genres)
	if err != nil {
		return models.Venue{}, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
			                    genres, website_link, seeking_talent, seeking_description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11)
			RETURNING id
		`, venue.Name, venue.City, venue.State, venue.Address, venue.Phone, venue.ImageLink,
			venue.FacebookLink, genres, venue.WebsiteLink, venue.SeekingTalent, venue.SeekingDescription,
		).Scan(&venue.ID)
		if err != nil {
			return fmt.Errorf("insert venue: %w", classify(err))
		}
		return nil
	})
	if err != nil {
		return models.Venue{}, err
	}

	if venue.Genres == nil {
		venue.Genres = []string{}
	}
	return venue, nil
}

// GetVenue retrieves a single venue by id.
func (s *Store) GetVenue(ctx context.Context, id int64) (models.Venue, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = $1`, id)

	venue, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Venue{}, ErrVenueNotFound
	}
	if err != nil {
		return models.Venue{}, fmt.Errorf("select venue: %w", classify(err))
	}
	return venue, nil
}

// ListVenues returns the venues matching filter ordered by id.
func (s *Store) ListVenues(ctx context.Context, filter models.VenueFilter) ([]models.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues`

	clauses, args := placeClauses("", filter.NameContains, filter.City, filter.State, nil)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", classify(err))
	}
	defer rows.Close()

	venues := make([]models.Venue, 0)
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", classify(err))
	}

	return venues, nil
}

// VenueSummaries returns id, name, location and the number of shows starting
// after now for every venue matching filter, ordered by name.
func (s *Store) VenueSummaries(ctx context.Context, filter models.VenueFilter, now time.Time) ([]models.Summary, error) {
	clauses, args := placeClauses("v.", filter.NameContains, filter.City, filter.State, []any{now})

	query := `
		SELECT v.id, v.name, v.city, v.state,
		       COUNT(s.id) FILTER (WHERE s.start_time > $1) AS num_upcoming_shows
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
	`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " GROUP BY v.id ORDER BY v.name ASC, v.id ASC"

	return s.summaries(ctx, "venue", query, args)
}

// UpdateVenue overwrites every field of the venue identified by id.
func (s *Store) UpdateVenue(ctx context.Context, id int64, venue models.Venue) (models.Venue, error) {
	genres, err := encodeGenres(venue.Genres)
	if err != nil {
		return models.Venue{}, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE venues
			SET name = $1, city = $2, state = $3, address = $4, phone = $5,
			    image_link = $6, facebook_link = $7, genres = $8::jsonb,
			    website_link = $9, seeking_talent = $10, seeking_description = $11
			WHERE id = $12
		`, venue.Name, venue.City, venue.State, venue.Address, venue.Phone, venue.ImageLink,
			venue.FacebookLink, genres, venue.WebsiteLink, venue.SeekingTalent, venue.SeekingDescription, id)
		if err != nil {
			return fmt.Errorf("update venue: %w", classify(err))
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update venue: %w", classify(err))
		}
		if affected == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
	if err != nil {
		return models.Venue{}, err
	}

	venue.ID = id
	if venue.Genres == nil {
		venue.Genres = []string{}
	}
	return venue, nil
}

// DeleteVenue removes a venue together with its shows. Deleting an id that
// does not exist is not an error.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete venue: %w", classify(err))
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (models.Venue, error) {
	var (
		v           models.Venue
		genres      []byte
		seeking     flag
		description sql.NullString
	)
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&v.FacebookLink, &genres, &v.WebsiteLink, &seeking, &description); err != nil {
		return models.Venue{}, err
	}

	decoded, err := decodeGenres(genres)
	if err != nil {
		return models.Venue{}, err
	}
	v.Genres = decoded
	v.SeekingTalent = bool(seeking)
	v.SeekingDescription = description.String

	return v, nil
}

// placeClauses builds the WHERE clauses shared by venue and artist filters.
// Placeholders are numbered after any args passed in.
func placeClauses(prefix, nameContains, city, state string, args []any) ([]string, []any) {
	var clauses []string

	if nameContains != "" {
		args = append(args, likePattern(nameContains))
		clauses = append(clauses, fmt.Sprintf("%sname ILIKE $%d", prefix, len(args)))
	}
	if city != "" {
		args = append(args, city)
		clauses = append(clauses, fmt.Sprintf("%scity = $%d", prefix, len(args)))
	}
	if state != "" {
		args = append(args, state)
		clauses = append(clauses, fmt.Sprintf("%sstate = $%d", prefix, len(args)))
	}

	return clauses, args
}

func (s *Store) summaries(ctx context.Context, entity, query string, args []any) ([]models.Summary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s summaries: %w", entity, classify(err))
	}
	defer rows.Close()

	summaries := make([]models.Summary, 0)
	for rows.Next() {
		var sum models.Summary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.City, &sum.State, &sum.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan %s summary: %w", entity, err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s summaries: %w", entity, classify(err))
	}

	return summaries, nil
}
