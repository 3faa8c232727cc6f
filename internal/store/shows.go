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

// ErrShowNotFound indicates no show exists with the requested id.
var ErrShowNotFound = errors.New("show not found")

// CreateShow books an artist at a venue. Unknown venue or artist ids are
// rejected by the foreign keys and surface as ErrConstraintViolation.
func (s *Store) CreateShow(ctx context.Context, show models.Show) (models.Show, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO shows (start_time, venue_id, artist_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, show.StartTime, show.VenueID, show.ArtistID).Scan(&show.ID)
		if err != nil {
			return fmt.Errorf("insert show: %w", classify(err))
		}
		return nil
	})
	if err != nil {
		return models.Show{}, err
	}
	return show, nil
}

// GetShow retrieves a single show by id.
func (s *Store) GetShow(ctx context.Context, id int64) (models.Show, error) {
	var show models.Show
	err := s.db.QueryRowContext(ctx, `
		SELECT id, start_time, venue_id, artist_id
		FROM shows
		WHERE id = $1
	`, id).Scan(&show.ID, &show.StartTime, &show.VenueID, &show.ArtistID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Show{}, ErrShowNotFound
	}
	if err != nil {
		return models.Show{}, fmt.Errorf("select show: %w", classify(err))
	}
	return show, nil
}

// ListShows returns the shows matching filter ordered by start time.
func (s *Store) ListShows(ctx context.Context, filter models.ShowFilter) ([]models.Show, error) {
	query := `SELECT id, start_time, venue_id, artist_id FROM shows`

	var (
		clauses []string
		args    []any
	)
	if filter.VenueID > 0 {
		args = append(args, filter.VenueID)
		clauses = append(clauses, fmt.Sprintf("venue_id = $%d", len(args)))
	}
	if filter.ArtistID > 0 {
		args = append(args, filter.ArtistID)
		clauses = append(clauses, fmt.Sprintf("artist_id = $%d", len(args)))
	}
	if filter.After != nil {
		args = append(args, *filter.After)
		clauses = append(clauses, fmt.Sprintf("start_time > $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY start_time ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select shows: %w", classify(err))
	}
	defer rows.Close()

	shows := make([]models.Show, 0)
	for rows.Next() {
		var show models.Show
		if err := rows.Scan(&show.ID, &show.StartTime, &show.VenueID, &show.ArtistID); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, show)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", classify(err))
	}

	return shows, nil
}

// DeleteShow removes a single show. Missing ids are not an error.
func (s *Store) DeleteShow(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete show: %w", classify(err))
		}
		return nil
	})
}

const showDetailsQuery = `
	SELECT s.id, s.start_time,
	       v.id, v.name, v.image_link,
	       a.id, a.name, a.image_link
	FROM shows s
	INNER JOIN venues v ON v.id = s.venue_id
	INNER JOIN artists a ON a.id = s.artist_id
`

// ShowsForVenue returns every show booked at the venue, earliest first.
func (s *Store) ShowsForVenue(ctx context.Context, venueID int64) ([]models.ShowDetails, error) {
	return s.showDetails(ctx, showDetailsQuery+`
		WHERE s.venue_id = $1
		ORDER BY s.start_time ASC, s.id ASC
	`, venueID)
}

// ShowsForArtist returns every show the artist is booked for, earliest first.
func (s *Store) ShowsForArtist(ctx context.Context, artistID int64) ([]models.ShowDetails, error) {
	return s.showDetails(ctx, showDetailsQuery+`
		WHERE s.artist_id = $1
		ORDER BY s.start_time ASC, s.id ASC
	`, artistID)
}

// UpcomingShowListings returns every show starting after now, earliest first.
func (s *Store) UpcomingShowListings(ctx context.Context, now time.Time) ([]models.ShowDetails, error) {
	return s.showDetails(ctx, showDetailsQuery+`
		WHERE s.start_time > $1
		ORDER BY s.start_time ASC, s.id ASC
	`, now)
}

func (s *Store) showDetails(ctx context.Context, query string, args ...any) ([]models.ShowDetails, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select show details: %w", classify(err))
	}
	defer rows.Close()

	details := make([]models.ShowDetails, 0)
	for rows.Next() {
		var d models.ShowDetails
		if err := rows.Scan(&d.ShowID, &d.StartTime,
			&d.VenueID, &d.VenueName, &d.VenueImageLink,
			&d.ArtistID, &d.ArtistName, &d.ArtistImageLink); err != nil {
			return nil, fmt.Errorf("scan show details: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show details: %w", classify(err))
	}

	return details, nil
}
