package util

import "time"

// ISODate is the wire format for calendar dates throughout the service.
const ISODate = "2006-01-02"

// DatesBetween lists every calendar day from start through end inclusive.
// A reversed range yields an empty slice rather than an error.
func DatesBetween(start, end time.Time) []time.Time {
	if end.Before(start) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ParseISODate parses a "YYYY-MM-DD" string.
func ParseISODate(value string) (time.Time, error) {
	return time.Parse(ISODate, value)
}
