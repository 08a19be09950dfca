package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"prayerd/internal/models"
	"prayerd/internal/providers"
	"prayerd/internal/structures"
	"strconv"
	"time"
)

const (
	ProviderAladhan = "aladhan"
	aladhanDate     = "02-01-2006"
)

type PrayerTimesClientInterface interface {
	ByCoordinates(ctx context.Context, date time.Time, coords models.Coordinates) (Timings, error)
	ByCity(ctx context.Context, date time.Time, city, country string) (Timings, error)
}

// Timings is one day of prayer times. Timezone is the IANA zone the times
// are expressed in, empty when the provider did not say.
type Timings struct {
	Times    models.PrayerTimes
	Timezone string
}

// PrayerTimesClient queries the Aladhan timings API. Every request carries the
// same calculation method so Fajr and Isha angles stay consistent.
type PrayerTimesClient struct {
	endpoint
	method int
}

type aladhanResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings map[string]string `json:"timings"`
		Meta    struct {
			Timezone string `json:"timezone"`
		} `json:"meta"`
	} `json:"data"`
}

func NewPrayerTimesClient(conf *structures.Config, client *http.Client, logger providers.Logger, metrics providers.MetricsProviderInterface) PrayerTimesClientInterface {
	p := conf.Providers.PrayerTimes
	return &PrayerTimesClient{
		endpoint: endpoint{
			name:    ProviderAladhan,
			baseURL: p.BaseURL,
			timeout: p.Timeout,
			client:  client,
			logger:  logger,
			metrics: metrics,
		},
		method: p.Method,
	}
}

// ByCoordinates asks for the times on date's calendar day in date's own
// location, so callers pass a time already converted to the target zone.
func (c *PrayerTimesClient) ByCoordinates(ctx context.Context, date time.Time, coords models.Coordinates) (Timings, error) {
	if err := coords.Validate(); err != nil {
		return Timings{}, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Lng, 'f', -1, 64))
	q.Set("method", strconv.Itoa(c.method))
	return c.fetch(ctx, "/timings/"+date.Format(aladhanDate), q)
}

func (c *PrayerTimesClient) ByCity(ctx context.Context, date time.Time, city, country string) (Timings, error) {
	if city == "" || country == "" {
		return Timings{}, fmt.Errorf("%w: city and country are required", ErrInvalidLocation)
	}
	q := url.Values{}
	q.Set("city", city)
	q.Set("country", country)
	q.Set("method", strconv.Itoa(c.method))
	return c.fetch(ctx, "/timingsByCity/"+date.Format(aladhanDate), q)
}

func (c *PrayerTimesClient) fetch(ctx context.Context, path string, q url.Values) (Timings, error) {
	var resp aladhanResponse
	if err := c.getJSON(ctx, path, q, &resp); err != nil {
		return Timings{}, err
	}
	if resp.Data.Timings == nil {
		return Timings{}, fmt.Errorf("%w: %s: no timings", ErrMalformed, c.name)
	}
	times, err := models.PrayerTimesFromTimings(resp.Data.Timings)
	if err != nil {
		return Timings{}, fmt.Errorf("%w: %s: %v", ErrMalformed, c.name, err)
	}
	zone := resp.Data.Meta.Timezone
	if zone != "" {
		if _, err := time.LoadLocation(zone); err != nil {
			c.logger.Warnf(providers.TypeApp, "%s: ignoring unknown timezone %q", c.name, zone)
			zone = ""
		}
	}
	return Timings{Times: times, Timezone: zone}, nil
}
