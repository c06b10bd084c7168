package service

import "time"

// parseDate parses the YYYY-MM-DD wire format used for date fields.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
