package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/config"
	"fyyur/internal/logging"
	"fyyur/internal/store"
	"fyyur/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		ErrorLogPath: cfg.Logging.ErrorLogPath,
		Debug:        cfg.Debug,
	})
	if err != nil {
		return err
	}
	defer logger.Close()
	logging.SetGlobalLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	dataStore := store.New(db)

	if cfg.SeedDemo {
		if err := bootstrapDemoData(ctx, db, dataStore); err != nil {
			return err
		}
	}

	srv := web.New(
		venues.New(dataStore, nil),
		artists.New(dataStore, nil),
		shows.New(dataStore, nil),
		dataStore,
	)
	server := newHTTPServer(cfg.Server.Addr(), srv.Handler(cfg.CORS.AllowedOrigins))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Fyyur listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
