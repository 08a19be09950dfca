package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"prayerd/internal/controllers"
	"prayerd/internal/models"
	"prayerd/internal/providers"
	"prayerd/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- minimal mocks for routes test ---

type routeTestPrayerService struct{}

func (m *routeTestPrayerService) ResolveByCoordinates(_ context.Context, _ string, _ models.Coordinates) *models.Resolution {
	return &models.Resolution{Times: models.DefaultPrayerTimes(), Source: models.SourceGPS, Origin: models.OriginDefault}
}
func (m *routeTestPrayerService) ResolveByCity(_ context.Context, _, _, _ string) *models.Resolution {
	return &models.Resolution{Times: models.DefaultPrayerTimes(), Source: models.SourceProfile, Origin: models.OriginDefault}
}
func (m *routeTestPrayerService) ResolveByIP(_ context.Context, _, _ string) *models.Resolution {
	return &models.Resolution{Times: models.DefaultPrayerTimes(), Source: models.SourceDefault, Origin: models.OriginDefault}
}
func (m *routeTestPrayerService) ReadCache(_ string) (*models.CachedEntry, bool) { return nil, false }
func (m *routeTestPrayerService) Schedule(t models.PrayerTimes, now time.Time) models.Schedule {
	return models.BuildSchedule(t, now)
}

type routeTestLocationService struct{}

func (m *routeTestLocationService) ReverseGeocode(_ context.Context, c models.Coordinates) string {
	return c.String()
}
func (m *routeTestLocationService) Qibla(_ models.Coordinates) float64 { return 0 }

func newRouteTestMux() *http.ServeMux {
	ac := controllers.NewApiController(&testutil.MockLogger{}, &routeTestPrayerService{}, &routeTestLocationService{}, &providers.FixedClock{At: time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)})
	mux := http.NewServeMux()
	for _, r := range InitRoutes(ac).GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}
	return mux
}

func TestInitRoutes_RegistersApiRoutes(t *testing.T) {
	ac := controllers.NewApiController(&testutil.MockLogger{}, &routeTestPrayerService{}, &routeTestLocationService{}, &providers.FixedClock{})
	routes := InitRoutes(ac).GetRoutes()

	require.Len(t, routes, 5)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/times")
	assert.Contains(t, urls, "/times/city")
	assert.Contains(t, urls, "/times/ip")
	assert.Contains(t, urls, "/times/cached")
	assert.Contains(t, urls, "/location")
}

func TestInitRoutes_Dispatch(t *testing.T) {
	mux := newRouteTestMux()

	cases := []struct {
		url  string
		code int
	}{
		{"/times?lat=21.4225&lng=39.8262", http.StatusOK},
		{"/times/city?city=Mecca&country=Saudi+Arabia", http.StatusOK},
		{"/times/ip", http.StatusOK},
		{"/times/cached", http.StatusNotFound},
		{"/location?lat=21.4225&lng=39.8262", http.StatusOK},
		{"/times?lat=100&lng=0", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.url, nil))
		assert.Equal(t, tc.code, rr.Code, tc.url)
	}
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	mux := newRouteTestMux()

	req := httptest.NewRequest(http.MethodPost, "/times?lat=1&lng=1", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	req = httptest.NewRequest(http.MethodHead, "/times/cached", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
