package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedEntry_FreshOn(t *testing.T) {
	e := &CachedEntry{Date: "2024-03-15", Times: DefaultPrayerTimes()}
	assert.True(t, e.FreshOn("2024-03-15"))
	assert.False(t, e.FreshOn("2024-03-16"))

	var missing *CachedEntry
	assert.False(t, missing.FreshOn("2024-03-15"))
}

func TestCachedEntry_FreshAtUsesEntryZone(t *testing.T) {
	now := time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)

	jakarta := &CachedEntry{Date: "2024-03-16", Times: DefaultPrayerTimes(), Timezone: "Asia/Jakarta"}
	assert.True(t, jakarta.FreshAt(now))
	assert.False(t, jakarta.FreshAt(now.Add(-6*time.Hour)))

	server := &CachedEntry{Date: "2024-03-15", Times: DefaultPrayerTimes()}
	assert.True(t, server.FreshAt(now))

	var missing *CachedEntry
	assert.False(t, missing.FreshAt(now))
}

func TestCachedEntry_Covers(t *testing.T) {
	loc := Coordinates{21.4225, 39.8262}
	e := &CachedEntry{Date: "2024-03-15", Times: DefaultPrayerTimes(), Location: &loc}

	assert.True(t, e.Covers(Coordinates{21.425, 39.83}, DefaultDriftTolerance))
	assert.False(t, e.Covers(Coordinates{24.7136, 46.6753}, DefaultDriftTolerance))

	noLoc := &CachedEntry{Date: "2024-03-15", Times: DefaultPrayerTimes()}
	assert.False(t, noLoc.Covers(loc, DefaultDriftTolerance))
}

func TestEncodeDecodeEntry(t *testing.T) {
	loc := Coordinates{21.4225, 39.8262}
	in := &CachedEntry{Date: "2024-03-15", Times: DefaultPrayerTimes(), Location: &loc, Seq: 7}

	data, err := EncodeEntry(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2024-03-15"`)
	assert.Contains(t, string(data), `"Fajr":"05:15"`)

	out, err := DecodeEntry(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeEntry_Malformed(t *testing.T) {
	_, err := DecodeEntry([]byte("{not json"))
	assert.Error(t, err)

	_, err = DecodeEntry([]byte(`{"date":"yesterday","times":{}}`))
	assert.Error(t, err)

	_, err = DecodeEntry([]byte(`{"date":"2024-03-15","times":{"Fajr":"05:15"}}`))
	assert.ErrorIs(t, err, ErrInvalidPrayerTimes)
}

func TestResolution_Degraded(t *testing.T) {
	assert.False(t, (&Resolution{Origin: OriginNetwork}).Degraded())
	assert.False(t, (&Resolution{Origin: OriginCache}).Degraded())
	assert.True(t, (&Resolution{Origin: OriginStale}).Degraded())
	assert.True(t, (&Resolution{Origin: OriginDefault}).Degraded())
}
