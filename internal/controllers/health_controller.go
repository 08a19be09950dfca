package controllers

import (
	"fmt"
	"net/http"
	"prayerd/internal/providers"
	"prayerd/internal/storage"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	store     storage.KeyValueStore
	metrics   providers.MetricsProviderInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	StoreBackend  string  `json:"store_backend"`
	StoreEntries  int     `json:"store_entries"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := hc.store.Len()
	hc.metrics.SetStoreEntries(entries)

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		StoreBackend:  hc.store.Backend(),
		StoreEntries:  entries,
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store storage.KeyValueStore, metrics providers.MetricsProviderInterface) *HealthController {
	return &HealthController{
		store:     store,
		metrics:   metrics,
		startTime: time.Now(),
	}
}
