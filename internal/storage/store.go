// Package storage holds the local key-value store behind the prayer time cache.
//
// Stored values are derived data that can always be fetched again, so backends
// report failures as misses instead of errors.
package storage

import (
	"fmt"
	"prayerd/internal/providers"
	"prayerd/internal/structures"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type KeyValueStore interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
	Len() int
	Snapshot() map[string][]byte
	Restore(entries map[string][]byte)
	Backend() string
	Close() error
}

func NewStoreProvider(conf *structures.Config, logger providers.Logger) (KeyValueStore, error) {
	switch conf.Store.Backend {
	case "", BackendMemory:
		logger.Infof(providers.TypeApp, "Store backend: memory")
		return NewBoundedMemoryStore(conf.Store.Memory), nil
	case BackendRedis:
		logger.Infof(providers.TypeApp, "Store backend: redis at %s", conf.Store.Redis.Addr)
		return NewRedisStore(conf.Store.Redis, logger), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", conf.Store.Backend)
	}
}
