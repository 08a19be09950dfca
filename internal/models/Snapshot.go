package models

import (
	"time"

	json "github.com/goccy/go-json"
)

const SnapshotVersion = 1

// Snapshot is the on-disk envelope of the local store.
type Snapshot struct {
	Version int                        `json:"version"`
	SavedAt time.Time                  `json:"saved_at"`
	Entries map[string]json.RawMessage `json:"entries"`
}
