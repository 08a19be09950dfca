package controllers

import (
	"errors"
	"net"
	"net/http"
	"prayerd/internal/models"
	"prayerd/internal/providers"
	"prayerd/internal/services"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

var (
	coordinateRules = validate.MS{
		"lat":   "required|float",
		"lng":   "required|float",
		"scope": "maxLen:64",
	}
	cityRules = validate.MS{
		"city":    "required|maxLen:100",
		"country": "required|maxLen:100",
		"scope":   "maxLen:64",
	}
	scopeRules = validate.MS{
		"scope": "maxLen:64",
	}
)

type ApiController struct {
	logger   providers.Logger
	prayer   services.PrayerServiceInterface
	location services.LocationServiceInterface
	clock    providers.Clock
}

// timesResponse is a resolution together with the schedule derived from it.
type timesResponse struct {
	*models.Resolution
	models.Schedule
}

type cachedResponse struct {
	*models.CachedEntry
	models.Schedule
}

type locationResponse struct {
	Coordinates models.Coordinates `json:"coordinates"`
	Label       string             `json:"label"`
	Qibla       float64            `json:"qibla"`
}

func NewApiController(logger providers.Logger, prayer services.PrayerServiceInterface, location services.LocationServiceInterface, clock providers.Clock) *ApiController {
	return &ApiController{
		logger:   logger,
		prayer:   prayer,
		location: location,
		clock:    clock,
	}
}

func validateQuery(r *http.Request, rules validate.MS) error {
	v := validate.FromQuery(r.URL.Query()).Create()
	v.StringRules(rules)
	if !v.Validate() {
		return errors.New(v.Errors.One())
	}
	return nil
}

func parseCoordinates(r *http.Request) (models.Coordinates, error) {
	if err := validateQuery(r, coordinateRules); err != nil {
		return models.Coordinates{}, err
	}
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return models.Coordinates{}, err
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		return models.Coordinates{}, err
	}
	coords := models.Coordinates{Lat: lat, Lng: lng}
	return coords, coords.Validate()
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		ac.logger.Errorf(providers.TypeHttp, "Unable to encode response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	ac.logger.Debugf(providers.TypeHttp, "Rejected %s: %s", r.URL.RequestURI(), err)
	http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
}

// respondResolution attaches the schedule as seen from the resolved location.
func (ac *ApiController) respondResolution(w http.ResponseWriter, res *models.Resolution) {
	ac.writeJSON(w, http.StatusOK, timesResponse{
		Resolution: res,
		Schedule:   ac.prayer.Schedule(res.Times, res.LocalTime(ac.clock.Now())),
	})
}

func (ac *ApiController) GetTimes(w http.ResponseWriter, r *http.Request) {
	coords, err := parseCoordinates(r)
	if err != nil {
		ac.badRequest(w, r, err)
		return
	}
	ac.respondResolution(w, ac.prayer.ResolveByCoordinates(r.Context(), r.URL.Query().Get("scope"), coords))
}

func (ac *ApiController) GetTimesByCity(w http.ResponseWriter, r *http.Request) {
	if err := validateQuery(r, cityRules); err != nil {
		ac.badRequest(w, r, err)
		return
	}
	q := r.URL.Query()
	ac.respondResolution(w, ac.prayer.ResolveByCity(r.Context(), q.Get("scope"), q.Get("city"), q.Get("country")))
}

func (ac *ApiController) GetTimesByIP(w http.ResponseWriter, r *http.Request) {
	if err := validateQuery(r, scopeRules); err != nil {
		ac.badRequest(w, r, err)
		return
	}
	ac.respondResolution(w, ac.prayer.ResolveByIP(r.Context(), r.URL.Query().Get("scope"), clientIP(r)))
}

func (ac *ApiController) GetCachedTimes(w http.ResponseWriter, r *http.Request) {
	if err := validateQuery(r, scopeRules); err != nil {
		ac.badRequest(w, r, err)
		return
	}
	entry, ok := ac.prayer.ReadCache(r.URL.Query().Get("scope"))
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	ac.writeJSON(w, http.StatusOK, cachedResponse{
		CachedEntry: entry,
		Schedule:    ac.prayer.Schedule(entry.Times, models.LocalTime(ac.clock.Now(), entry.Timezone)),
	})
}

func (ac *ApiController) GetLocation(w http.ResponseWriter, r *http.Request) {
	coords, err := parseCoordinates(r)
	if err != nil {
		ac.badRequest(w, r, err)
		return
	}
	ac.writeJSON(w, http.StatusOK, locationResponse{
		Coordinates: coords,
		Label:       ac.location.ReverseGeocode(r.Context(), coords),
		Qibla:       ac.location.Qibla(coords),
	})
}

// clientIP picks the caller's public address. An empty result means the
// geolocation provider should look up the address it sees.
func clientIP(r *http.Request) string {
	candidate := ""
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		candidate, _, _ = strings.Cut(xff, ",")
	} else if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		candidate = realIP
	} else if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		candidate = host
	}

	ip := net.ParseIP(strings.TrimSpace(candidate))
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() {
		return ""
	}
	return ip.String()
}
