package storage

import (
	"prayerd/internal/structures"
	"prayerd/internal/testutil"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStore(structures.RedisConfig{
		Addr:   mr.Addr(),
		Prefix: "prayerd:",
		TTL:    48 * time.Hour,
	}, &testutil.MockLogger{})
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_SetGet(t *testing.T) {
	s, mr := newTestRedisStore(t)

	s.Set("prayer:coords:default", []byte("payload"))

	v, ok := s.Get("prayer:coords:default")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), v)

	raw, err := mr.Get("prayerd:prayer:coords:default")
	require.NoError(t, err)
	assert.Equal(t, "payload", raw)
	assert.Equal(t, 48*time.Hour, mr.TTL("prayerd:prayer:coords:default"))
	assert.Equal(t, BackendRedis, s.Backend())
}

func TestRedisStore_MissIsNotLogged(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := &testutil.MockLogger{}
	s := NewRedisStore(structures.RedisConfig{Addr: mr.Addr()}, logger)
	defer s.Close()

	_, ok := s.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, logger.Count("warn"))
}

func TestRedisStore_Delete(t *testing.T) {
	s, _ := newTestRedisStore(t)
	s.Set("k", []byte("v"))
	s.Delete("k")

	_, ok := s.Get("k")
	assert.False(t, ok)
}

func TestRedisStore_SnapshotRestoreLen(t *testing.T) {
	s, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set("other:key", "ignored"))

	s.Restore(map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	})

	assert.Equal(t, 2, s.Len())
	snap := s.Snapshot()
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, snap)
}

func TestRedisStore_UnavailableDegradesToMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := &testutil.MockLogger{}
	s := NewRedisStore(structures.RedisConfig{Addr: mr.Addr(), Timeout: 200 * time.Millisecond}, logger)
	defer s.Close()
	mr.Close()

	s.Set("k", []byte("v"))
	_, ok := s.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Snapshot())
	assert.Greater(t, logger.Count("error"), 0)
}

func TestNewStoreProvider(t *testing.T) {
	logger := &testutil.MockLogger{}

	s, err := NewStoreProvider(&structures.Config{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	mr := miniredis.RunT(t)
	conf := &structures.Config{Store: structures.StoreConfig{
		Backend: BackendRedis,
		Redis:   structures.RedisConfig{Addr: mr.Addr()},
	}}
	s, err = NewStoreProvider(conf, logger)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)

	_, err = NewStoreProvider(&structures.Config{Store: structures.StoreConfig{Backend: "etcd"}}, logger)
	assert.Error(t, err)
}
