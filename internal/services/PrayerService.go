package services

import (
	"context"
	"prayerd/internal/clients"
	"prayerd/internal/models"
	"prayerd/internal/providers"
	"prayerd/internal/storage"
	"prayerd/internal/structures"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultScope = "default"

	coordsKeyPrefix = "prayer:coords:"
	cityKeyPrefix   = "prayer:city:"
)

type PrayerServiceInterface interface {
	ResolveByCoordinates(ctx context.Context, scope string, coords models.Coordinates) *models.Resolution
	ResolveByCity(ctx context.Context, scope, city, country string) *models.Resolution
	ResolveByIP(ctx context.Context, scope, ip string) *models.Resolution
	ReadCache(scope string) (*models.CachedEntry, bool)
	Schedule(times models.PrayerTimes, now time.Time) models.Schedule
}

// PrayerService resolves the day's prayer times for a scope. Every Resolve*
// call returns a usable result: network or cache when possible, otherwise
// today's stored entry, otherwise the built-in defaults. "Today" is the
// calendar date at the location whenever its zone is known.
type PrayerService struct {
	store       storage.KeyValueStore
	prayerTimes clients.PrayerTimesClientInterface
	ipGeo       clients.IPGeoClientInterface
	clock       providers.Clock
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	tolerance   float64

	group singleflight.Group
	seq   *atomic.Uint64
	mu    sync.Mutex
}

func NewPrayerService(
	conf *structures.Config,
	store storage.KeyValueStore,
	prayerTimes clients.PrayerTimesClientInterface,
	ipGeo clients.IPGeoClientInterface,
	clock providers.Clock,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) PrayerServiceInterface {
	tolerance := conf.App.DriftTolerance
	if tolerance <= 0 {
		tolerance = models.DefaultDriftTolerance
	}
	return &PrayerService{
		store:       store,
		prayerTimes: prayerTimes,
		ipGeo:       ipGeo,
		clock:       clock,
		logger:      logger,
		metrics:     metrics,
		tolerance:   tolerance,
		// Seeded from wall time so entries restored from an earlier run never
		// outrank writes made by this one.
		seq: atomic.NewUint64(uint64(time.Now().UnixNano())),
	}
}

func NormalizeScope(scope string) string {
	scope = strings.ToLower(strings.TrimSpace(scope))
	if scope == "" {
		return DefaultScope
	}
	return scope
}

func coordsKey(scope string) string {
	return coordsKeyPrefix + scope
}

func cityKey(scope, city, country string) string {
	return cityKeyPrefix + scope + ":" + strings.ToLower(city) + "_" + strings.ToLower(country)
}

func (s *PrayerService) ResolveByCoordinates(ctx context.Context, scope string, coords models.Coordinates) *models.Resolution {
	res := s.resolveCoordinates(ctx, NormalizeScope(scope), coords, "")
	res.Source = models.SourceGPS
	return s.finish(res)
}

func (s *PrayerService) ResolveByIP(ctx context.Context, scope, ip string) *models.Resolution {
	loc, err := s.ipGeo.Lookup(ctx, ip)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "IP lookup for %q failed, using defaults: %s", ip, err)
		res := s.defaults()
		res.Source = models.SourceDefault
		return s.finish(res)
	}

	res := s.resolveCoordinates(ctx, NormalizeScope(scope), loc.Coordinates, loc.Timezone)
	res.Source = models.SourceIP
	res.Label = joinLabel(loc.City, loc.Country)
	return s.finish(res)
}

func (s *PrayerService) ResolveByCity(ctx context.Context, scope, city, country string) *models.Resolution {
	city, country = strings.TrimSpace(city), strings.TrimSpace(country)
	if city == "" || country == "" {
		s.logger.Warnf(providers.TypeApp, "Resolve by city without city or country, using defaults")
		res := s.defaults()
		res.Source = models.SourceProfile
		return s.finish(res)
	}

	key := cityKey(NormalizeScope(scope), city, country)

	var res models.Resolution
	entry, ok := s.load(key)
	if ok && entry.FreshAt(s.clock.Now()) {
		res = fromEntry(entry, models.OriginCache)
	} else {
		zone := ""
		if ok {
			zone = entry.Timezone
		}
		v, _, _ := s.group.Do(key, func() (interface{}, error) {
			return s.fetchCity(context.WithoutCancel(ctx), key, city, country, zone), nil
		})
		res = v.(models.Resolution)
	}
	res.Source = models.SourceProfile
	res.Label = joinLabel(city, country)
	return s.finish(res)
}

func (s *PrayerService) ReadCache(scope string) (*models.CachedEntry, bool) {
	entry, ok := s.load(coordsKey(NormalizeScope(scope)))
	if !ok || !entry.FreshAt(s.clock.Now()) {
		return nil, false
	}
	return entry, true
}

func (s *PrayerService) Schedule(times models.PrayerTimes, now time.Time) models.Schedule {
	return models.BuildSchedule(times, now)
}

// resolveCoordinates serves a fresh entry covering coords or fetches one.
// zone is the location's IANA zone when the caller already knows it.
func (s *PrayerService) resolveCoordinates(ctx context.Context, scope string, coords models.Coordinates, zone string) models.Resolution {
	key := coordsKey(scope)
	if entry, ok := s.load(key); ok && entry.Covers(coords, s.tolerance) {
		if entry.FreshAt(s.clock.Now()) {
			return fromEntry(entry, models.OriginCache)
		}
		if zone == "" {
			zone = entry.Timezone
		}
	}

	// Shared calls outlive a cancelled caller; the provider timeout still bounds them.
	v, _, _ := s.group.Do(key+"@"+coords.String(), func() (interface{}, error) {
		return s.fetchCoordinates(context.WithoutCancel(ctx), key, coords, zone), nil
	})
	return v.(models.Resolution)
}

func (s *PrayerService) fetchCoordinates(ctx context.Context, key string, coords models.Coordinates, zone string) models.Resolution {
	seq := s.seq.Inc()

	day, date, err := s.fetchDay(zone, func(at time.Time) (clients.Timings, error) {
		return s.prayerTimes.ByCoordinates(ctx, at, coords)
	})
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Prayer times for %s unavailable: %s", coords, err)
		return s.fallback(key)
	}

	loc := coords
	entry := &models.CachedEntry{
		Date:     date,
		Times:    day.Times,
		Location: &loc,
		Timezone: day.Timezone,
		Seq:      seq,
	}
	s.save(key, entry)
	return fromEntry(entry, models.OriginNetwork)
}

func (s *PrayerService) fetchCity(ctx context.Context, key, city, country, zone string) models.Resolution {
	seq := s.seq.Inc()

	day, date, err := s.fetchDay(zone, func(at time.Time) (clients.Timings, error) {
		return s.prayerTimes.ByCity(ctx, at, city, country)
	})
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Prayer times for %s, %s unavailable: %s", city, country, err)
		return s.fallback(key)
	}

	entry := &models.CachedEntry{
		Date:     date,
		Times:    day.Times,
		Timezone: day.Timezone,
		Seq:      seq,
	}
	s.save(key, entry)
	return fromEntry(entry, models.OriginNetwork)
}

// fetchDay asks the provider for the current date in zone, or in the server
// zone when none is known yet. The provider reports the location's real zone;
// when that lands on a different calendar day the request is repeated once for
// the right date. The returned date is the one the times belong to.
func (s *PrayerService) fetchDay(zone string, call func(at time.Time) (clients.Timings, error)) (clients.Timings, string, error) {
	now := s.clock.Now()
	at := models.LocalTime(now, zone)

	day, err := call(at)
	if err != nil {
		return clients.Timings{}, "", err
	}
	if day.Timezone == "" || day.Timezone == zone {
		return day, at.Format(models.DateLayout), nil
	}

	local := models.LocalTime(now, day.Timezone)
	if local.Format(models.DateLayout) == at.Format(models.DateLayout) {
		return day, at.Format(models.DateLayout), nil
	}
	s.logger.Debugf(providers.TypeApp, "Location zone %s is on %s, fetching again", day.Timezone, local.Format(models.DateLayout))
	again, err := call(local)
	if err != nil {
		return clients.Timings{}, "", err
	}
	if again.Timezone == "" {
		again.Timezone = day.Timezone
	}
	return again, local.Format(models.DateLayout), nil
}

// fallback serves the entry stored under key when it is still for today,
// whatever its location, and the built-in defaults otherwise.
func (s *PrayerService) fallback(key string) models.Resolution {
	if entry, ok := s.load(key); ok && entry.FreshAt(s.clock.Now()) {
		return fromEntry(entry, models.OriginStale)
	}
	return s.defaults()
}

func (s *PrayerService) defaults() models.Resolution {
	return models.Resolution{
		Times:  models.DefaultPrayerTimes(),
		Origin: models.OriginDefault,
		Date:   s.clock.Today(),
	}
}

// load decodes the entry under key. Entries that fail to decode are removed.
func (s *PrayerService) load(key string) (*models.CachedEntry, bool) {
	data, ok := s.store.Get(key)
	if !ok {
		return nil, false
	}
	entry, err := models.DecodeEntry(data)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Dropping unreadable entry %s: %s", key, err)
		s.store.Delete(key)
		return nil, false
	}
	return entry, true
}

// save writes entry unless the store already holds one from a newer resolution.
func (s *PrayerService) save(key string, entry *models.CachedEntry) {
	data, err := models.EncodeEntry(entry)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Unable to encode entry %s: %s", key, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.load(key); ok && current.Seq > entry.Seq {
		s.logger.Debugf(providers.TypeApp, "Skip write to %s: seq %d is older than %d", key, entry.Seq, current.Seq)
		return
	}
	s.store.Set(key, data)
	s.metrics.SetStoreEntries(s.store.Len())
}

func (s *PrayerService) finish(res models.Resolution) *models.Resolution {
	s.metrics.IncResolutions(string(res.Source), string(res.Origin))
	if res.Degraded() {
		s.logger.Infof(providers.TypeApp, "Serving %s prayer times (%s) for %s", res.Origin, res.Source, res.Date)
	}
	return &res
}

func fromEntry(e *models.CachedEntry, origin models.Origin) models.Resolution {
	return models.Resolution{
		Times:    e.Times,
		Origin:   origin,
		Date:     e.Date,
		Location: e.Location,
		Timezone: e.Timezone,
	}
}

func joinLabel(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	default:
		return country
	}
}
