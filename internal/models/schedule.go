package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Schedule struct {
	Current     Marker `json:"current"`
	Next        Marker `json:"next"`
	NextTime    string `json:"next_time"`
	NextTime12h string `json:"next_time_12h"`
	TimeLeft    string `json:"time_left"`
	SecondsLeft int64  `json:"seconds_left"`
}

func minuteOfDay(clock string) (int, bool) {
	if !IsClock(clock) {
		return 0, false
	}
	h, _ := strconv.Atoi(clock[:2])
	m, _ := strconv.Atoi(clock[3:])
	return h*60 + m, true
}

// CurrentPrayer is the latest daily prayer at or before now, Isha when none has started yet.
func CurrentPrayer(t PrayerTimes, now time.Time) Marker {
	cur := now.Hour()*60 + now.Minute()
	found := Isha
	for _, m := range DailyPrayers {
		if v, ok := minuteOfDay(t.Get(m)); ok && cur >= v {
			found = m
		}
	}
	return found
}

// NextPrayer is the first daily prayer strictly after now, wrapping to Fajr.
func NextPrayer(t PrayerTimes, now time.Time) Marker {
	cur := now.Hour()*60 + now.Minute()
	for _, m := range DailyPrayers {
		if v, ok := minuteOfDay(t.Get(m)); ok && v > cur {
			return m
		}
	}
	return Fajr
}

// TimeUntil returns the time from now to the marker's next occurrence.
func TimeUntil(t PrayerTimes, m Marker, now time.Time) time.Duration {
	v, ok := minuteOfDay(t.Get(m))
	if !ok {
		return 0
	}
	target := time.Date(now.Year(), now.Month(), now.Day(), v/60, v%60, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target.Sub(now)
}

func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("-%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Format12h renders "17:05" as "5:05 PM"; malformed input yields "--:--".
func Format12h(clock string) string {
	v, ok := minuteOfDay(strings.TrimSpace(clock))
	if !ok {
		return "--:--"
	}
	h, m := v/60, v%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}

func BuildSchedule(t PrayerTimes, now time.Time) Schedule {
	next := NextPrayer(t, now)
	left := TimeUntil(t, next, now)
	return Schedule{
		Current:     CurrentPrayer(t, now),
		Next:        next,
		NextTime:    t.Get(next),
		NextTime12h: Format12h(t.Get(next)),
		TimeLeft:    FormatCountdown(left),
		SecondsLeft: int64(left / time.Second),
	}
}
