package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"prayerd/internal/models"
	"prayerd/internal/providers"
	"prayerd/internal/structures"
	"strconv"

	json "github.com/goccy/go-json"
)

const ProviderGeoJS = "geojs"

type IPLocation struct {
	IP          string             `json:"ip"`
	Coordinates models.Coordinates `json:"coordinates"`
	City        string             `json:"city,omitempty"`
	Country     string             `json:"country,omitempty"`
	Timezone    string             `json:"timezone,omitempty"`
}

type IPGeoClientInterface interface {
	// Lookup geolocates ip, or the caller's own address when ip is empty.
	Lookup(ctx context.Context, ip string) (*IPLocation, error)
}

type IPGeoClient struct {
	endpoint
}

type geojsResponse struct {
	IP        string          `json:"ip"`
	Latitude  json.RawMessage `json:"latitude"`
	Longitude json.RawMessage `json:"longitude"`
	City      string          `json:"city"`
	Country   string          `json:"country"`
	Timezone  string          `json:"timezone"`
}

func NewIPGeoClient(conf *structures.Config, client *http.Client, logger providers.Logger, metrics providers.MetricsProviderInterface) IPGeoClientInterface {
	g := conf.Providers.IPGeo
	return &IPGeoClient{endpoint: endpoint{
		name:    ProviderGeoJS,
		baseURL: g.BaseURL,
		timeout: g.Timeout,
		client:  client,
		logger:  logger,
		metrics: metrics,
	}}
}

func (c *IPGeoClient) Lookup(ctx context.Context, ip string) (*IPLocation, error) {
	path := "/v1/ip/geo.json"
	if ip != "" {
		parsed := net.ParseIP(ip)
		if parsed == nil {
			return nil, fmt.Errorf("%w: bad ip %q", ErrInvalidLocation, ip)
		}
		path = "/v1/ip/geo/" + parsed.String() + ".json"
	}

	var resp geojsResponse
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	lat, err := parseCoordinate(resp.Latitude)
	if err != nil {
		return nil, fmt.Errorf("%w: %s latitude: %v", ErrMalformed, c.name, err)
	}
	lng, err := parseCoordinate(resp.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%w: %s longitude: %v", ErrMalformed, c.name, err)
	}
	coords := models.Coordinates{Lat: lat, Lng: lng}
	if err := coords.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}

	return &IPLocation{
		IP:          resp.IP,
		Coordinates: coords,
		City:        resp.City,
		Country:     resp.Country,
		Timezone:    resp.Timezone,
	}, nil
}

// parseCoordinate accepts both "51.2993" and 51.2993.
func parseCoordinate(raw json.RawMessage) (float64, error) {
	s := string(bytes.Trim(bytes.TrimSpace(raw), `"`))
	if s == "" || s == "null" {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not finite: %s", s)
	}
	return v, nil
}
