package models

import "time"

// Source is the confidence tier of a resolution.
type Source string

const (
	SourceGPS     Source = "GPS"
	SourceIP      Source = "IP"
	SourceProfile Source = "Profile"
	SourceDefault Source = "Default"
)

// Origin tells where the returned times came from.
type Origin string

const (
	OriginNetwork Origin = "network"
	OriginCache   Origin = "cache"
	OriginStale   Origin = "stale"
	OriginDefault Origin = "default"
)

type Resolution struct {
	Times    PrayerTimes  `json:"times"`
	Source   Source       `json:"source"`
	Origin   Origin       `json:"origin"`
	Date     string       `json:"date"`
	Location *Coordinates `json:"location,omitempty"`
	Label    string       `json:"label,omitempty"`
	Timezone string       `json:"timezone,omitempty"`
}

// LocalTime is now at the resolved location, or now unchanged when the
// location's zone is unknown.
func (r *Resolution) LocalTime(now time.Time) time.Time {
	return LocalTime(now, r.Timezone)
}

func (r *Resolution) Degraded() bool {
	return r.Origin == OriginStale || r.Origin == OriginDefault
}
