package repository

import (
	"time"
)

const timestampLayout = time.RFC3339Nano

// formatTimestamp normalises t to UTC before formatting for storage.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp parses a stored timestamp. Values written before
// sub-second precision was kept still parse as RFC3339.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Parse(time.RFC3339, s)
	}
	return t, nil
}

// nowUTC returns the current UTC time.
func nowUTC() time.Time {
	return time.Now().UTC()
}
