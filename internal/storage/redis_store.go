package storage

import (
	"context"
	"errors"
	"prayerd/internal/providers"
	"prayerd/internal/structures"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisTimeout = 2 * time.Second
	redisScanBatch      = 256
)

type RedisStore struct {
	client  *redis.Client
	logger  providers.Logger
	prefix  string
	ttl     time.Duration
	timeout time.Duration
}

func NewRedisStore(conf structures.RedisConfig, logger providers.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Username: conf.Username,
		Password: conf.Password,
		DB:       conf.DB,
	})
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}
	return &RedisStore{
		client:  client,
		logger:  logger,
		prefix:  conf.Prefix,
		ttl:     conf.TTL,
		timeout: timeout,
	}
}

func (s *RedisStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *RedisStore) Get(key string) ([]byte, bool) {
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warnf(providers.TypeApp, "redis get %s: %s", key, err)
		}
		return nil, false
	}
	return val, true
}

func (s *RedisStore) Set(key string, value []byte) {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		s.logger.Errorf(providers.TypeApp, "redis set %s: %s", key, err)
	}
}

func (s *RedisStore) Delete(key string) {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		s.logger.Errorf(providers.TypeApp, "redis del %s: %s", key, err)
	}
}

func (s *RedisStore) keys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		out    []string
	)
	for {
		batch, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", redisScanBatch).Result()
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}

func (s *RedisStore) Len() int {
	ctx, cancel := s.ctx()
	defer cancel()

	keys, err := s.keys(ctx)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "redis scan: %s", err)
		return 0
	}
	return len(keys)
}

func (s *RedisStore) Snapshot() map[string][]byte {
	ctx, cancel := s.ctx()
	defer cancel()

	out := make(map[string][]byte)
	keys, err := s.keys(ctx)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "redis scan: %s", err)
		return out
	}
	for _, k := range keys {
		val, err := s.client.Get(ctx, k).Bytes()
		if err != nil {
			continue
		}
		out[strings.TrimPrefix(k, s.prefix)] = val
	}
	return out
}

func (s *RedisStore) Restore(entries map[string][]byte) {
	if len(entries) == 0 {
		return
	}
	ctx, cancel := s.ctx()
	defer cancel()

	pipe := s.client.Pipeline()
	for k, v := range entries {
		pipe.Set(ctx, s.prefix+k, v, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Errorf(providers.TypeApp, "redis restore: %s", err)
	}
}

func (s *RedisStore) Backend() string {
	return BackendRedis
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
