package models

import "time"

// DisplayTimeLayout is the textual form show start times take in listings.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// Start times are stored as timestamps without a zone holding the server's
// wall clock. WallClock returns "now" in the same representation so that
// comparisons against scanned values are made on wall-clock readings.
func WallClock() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
}

// FormatStartTime renders t with DisplayTimeLayout.
func FormatStartTime(t time.Time) string {
	return t.Format(DisplayTimeLayout)
}
