// Package dateutils provides common date and time operations used throughout
// the application.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date format constants used when reading purchase files.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutFull     = "2006-01-02 15:04:05"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
)

// CommonFormats is the list of layouts tried, in order, when parsing
// timestamps from purchase files.
var CommonFormats = []string{
	time.RFC3339,
	DateLayoutFull,
	"2006-01-02T15:04:05",
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutUS,
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
}

// ParseDate attempts to parse a timestamp string using the common layouts.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// FormatDate formats a time according to the specified layout, defaulting to
// the full layout so time-of-day information survives a CSV round trip.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutFull
	}
	return date.Format(layout)
}

// IsWeekend reports whether a date falls on a Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	day := date.Weekday()
	return day == time.Saturday || day == time.Sunday
}

// StartOfDay returns midnight of the given date, preserving its location.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfWeek returns midnight of the Monday of the week containing the
// given date.
func StartOfWeek(date time.Time) time.Time {
	day := StartOfDay(date)
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of the month containing the
// given date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
