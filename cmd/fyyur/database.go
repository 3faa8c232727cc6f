package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

const (
	pingTimeout    = 5 * time.Second
	maxWait        = 30 * time.Second
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// openDatabase establishes a database connection and retries until the instance responds.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := pingWithBackoff(ctx, db.PingContext, maxWait); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// pingWithBackoff calls ping until it succeeds, ctx is done or wait elapses.
func pingWithBackoff(ctx context.Context, ping func(context.Context) error, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	backoff := initialBackoff

	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}

		if ctx.Err() != nil || time.Now().Add(backoff).After(deadline) {
			return fmt.Errorf("ping database: %w", err)
		}

		log.Warn().Err(err).Dur("retry_in", backoff).Msg("database not ready")
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping database: %w", err)
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
