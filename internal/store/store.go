package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConstraintViolation signals a foreign-key, not-null or other
	// integrity constraint rejected the write.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrConnectionFailure signals the database could not be reached.
	ErrConnectionFailure = errors.New("database connection failure")
)

// Store provides persistence for venues, artists and shows backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return classify(err)
	}
	return nil
}

// withTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", classify(err))
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", classify(err))
	}
	tx = nil

	return nil
}

// classify maps driver errors onto the package's error kinds while keeping
// the original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"):
			return fmt.Errorf("%w: %s (%s)", ErrConstraintViolation, pgErr.Message, pgErr.Code)
		case strings.HasPrefix(pgErr.Code, "08"):
			return fmt.Errorf("%w: %s (%s)", ErrConnectionFailure, pgErr.Message, pgErr.Code)
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}

	return err
}

func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", fmt.Errorf("marshal genres: %w", err)
	}
	return string(b), nil
}

func decodeGenres(raw []byte) ([]string, error) {
	genres := []string{}
	if len(raw) == 0 {
		return genres, nil
	}
	if err := json.Unmarshal(raw, &genres); err != nil {
		return nil, fmt.Errorf("unmarshal genres: %w", err)
	}
	return genres, nil
}

// flag scans boolean columns that may hold legacy textual values such as
// "t" or "true" and normalizes them to a bool.
type flag bool

func (f *flag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = flag(v)
	case int64:
		*f = v != 0
	case []byte:
		return f.parse(string(v))
	case string:
		return f.parse(v)
	default:
		return fmt.Errorf("scan flag: unsupported type %T", src)
	}
	return nil
}

func (f *flag) parse(raw string) error {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "t", "true", "1", "y", "yes", "on":
		*f = true
	case "f", "false", "0", "n", "no", "off", "":
		*f = false
	default:
		return fmt.Errorf("scan flag: unrecognized value %q", raw)
	}
	return nil
}

// likePattern builds an ILIKE pattern matching term as a literal substring.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}
