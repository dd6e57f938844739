package utils

import (
	"fmt"
	"strings"
	"time"
)

// Accepted layouts for the user-supplied flight date. The form historically
// sent "MM-DD-YYYY h:mm a"; the current UI sends "YYYY-MM-DD" with an
// optional wall-clock time.
var flightDateLayouts = []string{
	"01-02-2006 3:04 PM",
	"01-02-2006 3:04PM",
	"2006-01-02 3:04 PM",
	"2006-01-02 3:04PM",
	"2006-01-02",
}

// Layouts seen in provider departure/arrival timings. Offsets are always
// present; seconds sometimes are not.
var flightTimingLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04-07:00",
}

// ParseFlightDate parses a user-supplied flight date/time. The result is in
// the departure airport's local wall-clock time; no zone information is
// attached beyond UTC since the form carries none.
func ParseFlightDate(s string) (time.Time, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range flightDateLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized flight date %q", s)
}

// ParseFlightTiming parses a departure or arrival timing from the flight
// data provider, keeping its UTC offset.
func ParseFlightTiming(s string) (time.Time, error) {
	for _, layout := range flightTimingLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized flight timing %q", s)
}

// CheckinTime is the moment the check-in job should run: exactly one
// calendar day before departure, computed on the departure airport's
// wall clock. AddDate keeps the local wall-clock time across a DST change,
// which a flat -24h of absolute time would not.
func CheckinTime(departure time.Time) time.Time {
	return departure.AddDate(0, 0, -1)
}

// FormatScheduledDepartureDate renders a departure date the way the
// provider's schedule API expects it.
func FormatScheduledDepartureDate(t time.Time) string {
	return t.Format("2006-01-02")
}
