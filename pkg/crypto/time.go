package crypto

import "time"

const iso8601Millis = "2006-01-02T15:04:05.000Z"

// NowISO8601 returns the current instant as an ISO-8601 UTC timestamp at
// millisecond resolution.
func NowISO8601() string {
	return time.Now().UTC().Format(iso8601Millis)
}

// FormatISO8601 formats t as an ISO-8601 UTC timestamp at millisecond
// resolution.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(iso8601Millis)
}

// ParseISO8601 parses a millisecond-resolution ISO-8601 UTC timestamp.
func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(iso8601Millis, s)
}
