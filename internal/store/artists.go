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

// ErrArtistNotFound indicates no artist exists with the requested id.
var ErrArtistNotFound = errors.New("artist not found")

const artistColumns = `
	id, name, city, state, phone, genres, image_link, facebook_link,
	website_link, seeking_venue, seeking_description
`

// CreateArtist inserts an artist and returns it with its generated id.
func (s *Store) CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error) {
	genres, err := encodeGenres(artist.Genres)
	if err != nil {
		return models.Artist{}, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link,
			                     website_link, seeking_venue, seeking_description)
			VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10)
			RETURNING id
		`, artist.Name, artist.City, artist.State, artist.Phone, genres, artist.ImageLink,
			artist.FacebookLink, artist.WebsiteLink, artist.SeekingVenue, artist.SeekingDescription,
		).Scan(&artist.ID)
		if err != nil {
			return fmt.Errorf("insert artist: %w", classify(err))
		}
		return nil
	})
	if err != nil {
		return models.Artist{}, err
	}

	if artist.Genres == nil {
		artist.Genres = []string{}
	}
	return artist, nil
}

// GetArtist retrieves a single artist by id.
func (s *Store) GetArtist(ctx context.Context, id int64) (models.Artist, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = $1`, id)

	artist, err := scanArtist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return models.Artist{}, fmt.Errorf("select artist: %w", classify(err))
	}
	return artist, nil
}

// ListArtists returns the artists matching filter ordered by id.
func (s *Store) ListArtists(ctx context.Context, filter models.ArtistFilter) ([]models.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists`

	clauses, args := placeClauses("", filter.NameContains, filter.City, filter.State, nil)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", classify(err))
	}
	defer rows.Close()

	artists := make([]models.Artist, 0)
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", classify(err))
	}

	return artists, nil
}

// ArtistSummaries mirrors VenueSummaries for artists.
func (s *Store) ArtistSummaries(ctx context.Context, filter models.ArtistFilter, now time.Time) ([]models.Summary, error) {
	clauses, args := placeClauses("a.", filter.NameContains, filter.City, filter.State, []any{now})

	query := `
		SELECT a.id, a.name, a.city, a.state,
		       COUNT(s.id) FILTER (WHERE s.start_time > $1) AS num_upcoming_shows
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
	`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " GROUP BY a.id ORDER BY a.name ASC, a.id ASC"

	return s.summaries(ctx, "artist", query, args)
}

// UpdateArtist overwrites every field of the artist identified by id.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist models.Artist) (models.Artist, error) {
	genres, err := encodeGenres(artist.Genres)
	if err != nil {
		return models.Artist{}, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE artists
			SET name = $1, city = $2, state = $3, phone = $4, genres = $5::jsonb,
			    image_link = $6, facebook_link = $7, website_link = $8,
			    seeking_venue = $9, seeking_description = $10
			WHERE id = $11
		`, artist.Name, artist.City, artist.State, artist.Phone, genres, artist.ImageLink,
			artist.FacebookLink, artist.WebsiteLink, artist.SeekingVenue, artist.SeekingDescription, id)
		if err != nil {
			return fmt.Errorf("update artist: %w", classify(err))
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update artist: %w", classify(err))
		}
		if affected == 0 {
			return ErrArtistNotFound
		}
		return nil
	})
	if err != nil {
		return models.Artist{}, err
	}

	artist.ID = id
	if artist.Genres == nil {
		artist.Genres = []string{}
	}
	return artist, nil
}

// DeleteArtist removes an artist. Shows are not cascaded: an artist that is
// still booked cannot be deleted and ErrConstraintViolation is returned.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete artist: %w", classify(err))
		}
		return nil
	})
}

func scanArtist(row rowScanner) (models.Artist, error) {
	var (
		a           models.Artist
		genres      []byte
		seeking     flag
		description sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres, &a.ImageLink,
		&a.FacebookLink, &a.WebsiteLink, &seeking, &description); err != nil {
		return models.Artist{}, err
	}

	decoded, err := decodeGenres(genres)
	if err != nil {
		return models.Artist{}, err
	}
	a.Genres = decoded
	a.SeekingVenue = bool(seeking)
	a.SeekingDescription = description.String

	return a, nil
}
