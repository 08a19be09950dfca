package internal

import (
	"context"
	"prayerd/internal/models"
	"prayerd/internal/persistence"
	"prayerd/internal/persistence/interfaces"
	"prayerd/internal/providers"
	"prayerd/internal/services"
	"prayerd/internal/storage"
)

// Resolver runs a single resolution outside the HTTP server, sharing the
// daemon's store so cached and stale entries carry over between runs.
type Resolver struct {
	prayer    services.PrayerServiceInterface
	location  services.LocationServiceInterface
	scheduler   interfaces.SchedulerInterface
	store       storage.KeyValueStore
	fileManager *persistence.FileManager
	clock       providers.Clock
	logger      providers.Logger
}

type ResolveRequest struct {
	Scope   string
	Coords  *models.Coordinates
	City    string
	Country string
	// IP is used when neither coordinates nor a city are given; empty means
	// the address the provider sees.
	IP string
}

type ResolveResult struct {
	*models.Resolution
	models.Schedule
	Qibla *float64 `json:"qibla,omitempty"`
}

func NewResolver(prayer services.PrayerServiceInterface, location services.LocationServiceInterface, scheduler interfaces.SchedulerInterface, store storage.KeyValueStore, fileManager *persistence.FileManager, clock providers.Clock, logger providers.Logger) *Resolver {
	return &Resolver{
		prayer:      prayer,
		location:    location,
		scheduler:   scheduler,
		store:       store,
		fileManager: fileManager,
		clock:       clock,
		logger:      logger,
	}
}

// Close releases the store, the snapshot codec and the log files.
func (r *Resolver) Close() {
	release(r.logger, r.store, r.fileManager)
}

func (r *Resolver) Resolve(ctx context.Context, req ResolveRequest) (*ResolveResult, error) {
	if err := r.scheduler.Restore(); err != nil {
		r.logger.Warnf(providers.TypeApp, "Restore error: %s", err)
	}

	var res *models.Resolution
	var qibla *float64
	switch {
	case req.Coords != nil:
		if err := req.Coords.Validate(); err != nil {
			return nil, err
		}
		res = r.prayer.ResolveByCoordinates(ctx, req.Scope, *req.Coords)
		res.Label = r.location.ReverseGeocode(ctx, *req.Coords)
		q := r.location.Qibla(*req.Coords)
		qibla = &q
	case req.City != "" || req.Country != "":
		res = r.prayer.ResolveByCity(ctx, req.Scope, req.City, req.Country)
	default:
		res = r.prayer.ResolveByIP(ctx, req.Scope, req.IP)
	}

	if err := r.scheduler.Persist(); err != nil {
		r.logger.Warnf(providers.TypeApp, "Persist error: %s", err)
	}

	return &ResolveResult{
		Resolution: res,
		Schedule:   r.prayer.Schedule(res.Times, res.LocalTime(r.clock.Now())),
		Qibla:      qibla,
	}, nil
}
