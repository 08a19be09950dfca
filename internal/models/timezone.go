package models

import (
	"sync"
	"time"
)

var zones sync.Map

// LocalTime converts now into the named IANA zone. An empty or unknown zone
// leaves now in its own location.
func LocalTime(now time.Time, zone string) time.Time {
	if zone == "" {
		return now
	}
	if loc, ok := zones.Load(zone); ok {
		return now.In(loc.(*time.Location))
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return now
	}
	zones.Store(zone, loc)
	return now.In(loc)
}

// LocalDate is the calendar date at now in the named zone.
func LocalDate(now time.Time, zone string) string {
	return LocalTime(now, zone).Format(DateLayout)
}
