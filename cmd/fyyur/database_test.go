package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPingWithBackoffRetriesUntilReady(t *testing.T) {
	calls := 0
	ping := func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("connection refused")
		}
		return nil
	}

	if err := pingWithBackoff(context.Background(), ping, 5*time.Second); err != nil {
		t.Fatalf("pingWithBackoff() error = %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 ping attempts, got %d", calls)
	}
}

func TestPingWithBackoffGivesUp(t *testing.T) {
	ping := func(context.Context) error { return errors.New("connection refused") }

	err := pingWithBackoff(context.Background(), ping, 0)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPingWithBackoffRespectsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pingWithBackoff(ctx, func(ctx context.Context) error { return ctx.Err() }, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDemoShowsReferenceSeededEntities(t *testing.T) {
	venues := map[string]bool{}
	for _, v := range demoVenues() {
		venues[v.Name] = true
	}
	artists := map[string]bool{}
	for _, a := range demoArtists() {
		artists[a.Name] = true
	}
	for _, s := range demoShows() {
		if !venues[s.venue] || !artists[s.artist] {
			t.Fatalf("demo show %+v references unknown venue or artist", s)
		}
	}
}
