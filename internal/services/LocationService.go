package services

import (
	"context"
	"fmt"
	"prayerd/internal/clients"
	"prayerd/internal/models"
	"prayerd/internal/providers"
)

type LocationServiceInterface interface {
	ReverseGeocode(ctx context.Context, coords models.Coordinates) string
	Qibla(coords models.Coordinates) float64
}

type LocationService struct {
	geocoding clients.GeocodingClientInterface
	cache     providers.CacheProviderInterface
	logger    providers.Logger
}

func NewLocationService(geocoding clients.GeocodingClientInterface, cache providers.CacheProviderInterface, logger providers.Logger) LocationServiceInterface {
	return &LocationService{geocoding: geocoding, cache: cache, logger: logger}
}

// ReverseGeocode returns a "City, Country" label for coords. When the lookup
// fails the coordinates themselves are the label.
func (s *LocationService) ReverseGeocode(ctx context.Context, coords models.Coordinates) string {
	key := fmt.Sprintf("geo:%.2f,%.2f", coords.Lat, coords.Lng)
	if label, ok := s.cache.Get(key); ok {
		return string(label)
	}

	place, err := s.geocoding.Reverse(ctx, coords)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Reverse geocode for %s failed: %s", coords, err)
		return coords.String()
	}

	label := placeLabel(place)
	if label == "" {
		return coords.String()
	}
	s.cache.Set(key, []byte(label))
	return label
}

func (s *LocationService) Qibla(coords models.Coordinates) float64 {
	return models.QiblaBearing(coords)
}

func placeLabel(p *clients.Place) string {
	city := p.City
	if city == "" {
		city = p.Locality
	}
	if city == "" {
		city = p.PrincipalSubdivision
	}
	return joinLabel(city, p.CountryName)
}
