// Package persistence snapshots the local store to disk and restores it on start.
package persistence

import (
	"fmt"
	"os"
	"prayerd/internal/models"
	"prayerd/internal/persistence/interfaces"
	"prayerd/internal/providers"
	"prayerd/internal/storage"
	"time"

	json "github.com/goccy/go-json"
)

type FileManager struct {
	store      storage.KeyValueStore
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store storage.KeyValueStore, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	entries := f.store.Snapshot()
	snapshot := models.Snapshot{
		Version: models.SnapshotVersion,
		SavedAt: time.Now().UTC(),
		Entries: make(map[string]json.RawMessage, len(entries)),
	}
	for key, value := range entries {
		if !json.Valid(value) {
			f.logger.Warnf(providers.TypeApp, "Skipping unreadable entry %s", key)
			continue
		}
		snapshot.Entries[key] = value
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores a snapshot into the store. A missing file is not an error.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return fmt.Errorf("unable to decompress %s: %w", fileName, err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		return fmt.Errorf("unable to decode %s: %w", fileName, err)
	}
	if snapshot.Version > models.SnapshotVersion {
		return fmt.Errorf("snapshot %s has unsupported version %d", fileName, snapshot.Version)
	}

	entries := make(map[string][]byte, len(snapshot.Entries))
	for key, value := range snapshot.Entries {
		entries[key] = value
	}
	f.store.Restore(entries)
	f.logger.Infof(providers.TypeApp, "Restored %d entries saved at %s", len(entries), snapshot.SavedAt.Format(time.RFC3339))
	return nil
}
