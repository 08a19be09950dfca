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
)

const ProviderBigDataCloud = "bigdatacloud"

type Place struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
	CountryCode          string `json:"countryCode"`
}

type GeocodingClientInterface interface {
	Reverse(ctx context.Context, coords models.Coordinates) (*Place, error)
}

type GeocodingClient struct {
	endpoint
}

func NewGeocodingClient(conf *structures.Config, client *http.Client, logger providers.Logger, metrics providers.MetricsProviderInterface) GeocodingClientInterface {
	g := conf.Providers.Geocoding
	return &GeocodingClient{endpoint: endpoint{
		name:    ProviderBigDataCloud,
		baseURL: g.BaseURL,
		timeout: g.Timeout,
		client:  client,
		logger:  logger,
		metrics: metrics,
	}}
}

func (c *GeocodingClient) Reverse(ctx context.Context, coords models.Coordinates) (*Place, error) {
	if err := coords.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Lng, 'f', -1, 64))
	q.Set("localityLanguage", "en")

	var place Place
	if err := c.getJSON(ctx, "/data/reverse-geocode-client", q, &place); err != nil {
		return nil, err
	}
	return &place, nil
}
