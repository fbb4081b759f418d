package sqlite

import "time"

// timeLayout is a fixed-width UTC format. Fixed width keeps lexical
// ordering of the TEXT column identical to chronological ordering,
// which ORDER BY created_at relies on.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
