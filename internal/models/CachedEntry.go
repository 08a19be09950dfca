package models

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

const DateLayout = "2006-01-02"

// CachedEntry is the stored value behind a prayer time cache key.
// Date is the calendar date in Timezone, the IANA zone the provider reported
// for the location. Seq orders concurrent writers; a write never replaces a
// higher Seq.
type CachedEntry struct {
	Date     string       `json:"date"`
	Times    PrayerTimes  `json:"times"`
	Location *Coordinates `json:"location,omitempty"`
	Timezone string       `json:"timezone,omitempty"`
	Seq      uint64       `json:"seq,omitempty"`
}

func (e *CachedEntry) FreshOn(date string) bool {
	return e != nil && e.Date == date
}

// FreshAt reports whether the entry is for the current date at its location.
func (e *CachedEntry) FreshAt(now time.Time) bool {
	return e != nil && e.Date == LocalDate(now, e.Timezone)
}

func (e *CachedEntry) Covers(c Coordinates, tolerance float64) bool {
	return e != nil && e.Location != nil && e.Location.Near(c, tolerance)
}

func (e *CachedEntry) Validate() error {
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("invalid cache date %q: %w", e.Date, err)
	}
	return e.Times.Validate()
}

func EncodeEntry(e *CachedEntry) ([]byte, error) {
	return json.Marshal(e)
}

func DecodeEntry(data []byte) (*CachedEntry, error) {
	var e CachedEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("malformed cache entry: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
