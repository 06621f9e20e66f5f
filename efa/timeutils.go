package efa

import (
	"strings"
	"time"
	_ "time/tzdata"
)

// The backend interprets all date/time request parameters in one fixed civil
// time zone. This file is the single normalization point for time; no other
// component re-derives it.
const serviceTimeZone = "Europe/Rome"

const (
	serviceDateLayout = "20060102"
	serviceTimeLayout = "15:04"
)

var serviceLocation = loadServiceLocation()

func loadServiceLocation() *time.Location {
	loc, err := time.LoadLocation(serviceTimeZone)
	if err != nil {
		// tzdata is compiled in, so this only triggers on a corrupt build.
		return time.FixedZone("CET", 60*60)
	}
	return loc
}

// ServiceLocation returns the backend's civil time zone. Callers parsing
// zone-naive user input must parse it in this location, not the host's.
func ServiceLocation() *time.Location {
	return serviceLocation
}

// toServiceTime converts a reference instant into the service time zone. A
// zero instant means "now".
func toServiceTime(when time.Time, clock Clock) time.Time {
	if when.IsZero() {
		when = clock.Now()
	}
	return when.In(serviceLocation)
}

// parseBackendTime parses an ISO-like time string from the backend. A
// trailing "Z" designator is normalized to an explicit offset first.
// Unparsable values yield nil; a missing time is a valid state.
func parseBackendTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
