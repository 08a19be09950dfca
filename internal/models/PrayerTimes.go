package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Marker string

const (
	Fajr    Marker = "Fajr"
	Sunrise Marker = "Sunrise"
	Dhuhr   Marker = "Dhuhr"
	Asr     Marker = "Asr"
	Sunset  Marker = "Sunset"
	Maghrib Marker = "Maghrib"
	Isha    Marker = "Isha"
)

// AllMarkers lists every field of PrayerTimes in chronological order.
var AllMarkers = []Marker{Fajr, Sunrise, Dhuhr, Asr, Sunset, Maghrib, Isha}

// DailyPrayers are the five prayers; Sunrise and Sunset are reference points only.
var DailyPrayers = []Marker{Fajr, Dhuhr, Asr, Maghrib, Isha}

var ErrInvalidPrayerTimes = errors.New("invalid prayer times")

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type PrayerTimes struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Sunset  string `json:"Sunset"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

func DefaultPrayerTimes() PrayerTimes {
	return PrayerTimes{
		Fajr:    "05:15",
		Sunrise: "06:45",
		Dhuhr:   "12:30",
		Asr:     "15:30",
		Sunset:  "18:10",
		Maghrib: "18:15",
		Isha:    "19:45",
	}
}

// NormalizeClock drops everything after the clock value, e.g. "04:32 (AST)" -> "04:32".
func NormalizeClock(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	return s
}

func IsClock(s string) bool {
	return clockPattern.MatchString(s)
}

// PrayerTimesFromTimings builds a normalized record from a provider timings object.
func PrayerTimesFromTimings(timings map[string]string) (PrayerTimes, error) {
	var p PrayerTimes
	for _, m := range AllMarkers {
		raw, ok := timings[string(m)]
		if !ok {
			return PrayerTimes{}, fmt.Errorf("%w: missing %s", ErrInvalidPrayerTimes, m)
		}
		p.set(m, NormalizeClock(raw))
	}
	if err := p.Validate(); err != nil {
		return PrayerTimes{}, err
	}
	return p, nil
}

func (p PrayerTimes) Get(m Marker) string {
	switch m {
	case Fajr:
		return p.Fajr
	case Sunrise:
		return p.Sunrise
	case Dhuhr:
		return p.Dhuhr
	case Asr:
		return p.Asr
	case Sunset:
		return p.Sunset
	case Maghrib:
		return p.Maghrib
	case Isha:
		return p.Isha
	}
	return ""
}

func (p *PrayerTimes) set(m Marker, v string) {
	switch m {
	case Fajr:
		p.Fajr = v
	case Sunrise:
		p.Sunrise = v
	case Dhuhr:
		p.Dhuhr = v
	case Asr:
		p.Asr = v
	case Sunset:
		p.Sunset = v
	case Maghrib:
		p.Maghrib = v
	case Isha:
		p.Isha = v
	}
}

func (p PrayerTimes) Normalize() PrayerTimes {
	var out PrayerTimes
	for _, m := range AllMarkers {
		out.set(m, NormalizeClock(p.Get(m)))
	}
	return out
}

func (p PrayerTimes) Validate() error {
	for _, m := range AllMarkers {
		if v := p.Get(m); !IsClock(v) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidPrayerTimes, m, v)
		}
	}
	return nil
}
