// Package app holds the pieces shared by the venue, artist and show services.
package app

import (
	"errors"
	"fmt"
	"time"

	"fyyur/internal/metrics"
	"fyyur/internal/models"
)

// ErrMutationFailed is matched by every MutationError.
var ErrMutationFailed = errors.New("mutation failed")

// MutationError reports a create, update or delete that could not be
// committed. Name is the display name taken from the submission.
type MutationError struct {
	Entity string
	Op     string
	Name   string
	Err    error
}

func (e *MutationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s %s failed: %v", e.Op, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s %s %q failed: %v", e.Op, e.Entity, e.Name, e.Err)
}

func (e *MutationError) Unwrap() []error {
	return []error{ErrMutationFailed, e.Err}
}

// Mutate runs fn once, records the outcome and wraps a failure in a
// MutationError.
func Mutate(entity, op, name string, fn func() error) error {
	err := fn()
	metrics.RecordMutation(entity, op, err)
	if err != nil {
		return &MutationError{Entity: entity, Op: op, Name: name, Err: err}
	}
	return nil
}

// SearchResult is the envelope returned by name searches.
type SearchResult struct {
	Count int              `json:"count"`
	Data  []models.Summary `json:"data"`
}

// NewSearchResult wraps matches in a SearchResult.
func NewSearchResult(matches []models.Summary) SearchResult {
	if matches == nil {
		matches = []models.Summary{}
	}
	return SearchResult{Count: len(matches), Data: matches}
}

// SplitByTime partitions shows into those starting at or before now and
// those starting strictly after it, keeping the input order.
func SplitByTime(shows []models.ShowDetails, now time.Time) (past, upcoming []models.ShowDetails) {
	past = make([]models.ShowDetails, 0)
	upcoming = make([]models.ShowDetails, 0)
	for _, show := range shows {
		if show.StartTime.After(now) {
			upcoming = append(upcoming, show)
		} else {
			past = append(past, show)
		}
	}
	return past, upcoming
}

// Clock returns now, or the server wall clock when now is nil.
func Clock(now func() time.Time) func() time.Time {
	if now == nil {
		return models.WallClock
	}
	return now
}
